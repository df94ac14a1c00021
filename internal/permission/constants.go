package permission

// Log messages
const (
	LogMsgRoleGranted    = "Role granted"
	LogMsgRoleRevoked    = "Role revoked"
	LogMsgRolesReset     = "All roles cleared"
	LogMsgRoleLookupFail = "Failed to look up user roles"
)

// Error messages
const (
	ErrMsgOwnerOnly = "only bot owners can manage roles"
)
