package worker

// Worker names used in shutdown logging
const (
	WorkerNameExpiry = "expiry worker"
)

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the pool and expiry worker
const (
	LogMsgWorkerQueueFull       = "Worker queue full, job dropped"
	LogMsgSchedulingSpawnExpiry = "Scheduling spawn expiry"
	LogMsgSpawnExpired          = "Spawn expired uncaught"
	LogMsgSpawnGoneBeforeArm    = "Spawn already resolved, expiry not armed"
	LogMsgPublishFailed         = "Failed to publish event"
)

// Test constants
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestWorkerProcessWaitTime = 100 // milliseconds
	TestExpectedJobCount      = 2
)
