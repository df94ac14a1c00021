package catalog

// Column names in the catalog CSV header
const (
	ColumnKey      = "key"
	ColumnCategory = "category"
)

// Error message formats
const (
	ErrMsgOpenFailed        = "failed to open item catalog"
	ErrMsgReadHeaderFailed  = "failed to read catalog header"
	ErrMsgMissingColumn     = "catalog header is missing column %q"
	ErrMsgNoLanguageColumns = "catalog header has no language columns"
	ErrMsgReadRowFailed     = "failed to read catalog row %d"
	ErrMsgEmptyKey          = "row %d: empty key"
	ErrMsgInvalidCategory   = "row %d: invalid category %q for item %q"
	ErrMsgNoNames           = "row %d: item %q has no names"
	ErrMsgNoMatchableNames  = "row %d: item %q has no name a message could match"
	ErrMsgDuplicateKey      = "row %d: duplicate key %q"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Item catalog loaded"
)
