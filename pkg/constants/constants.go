// Package constants provides shared constants used throughout the
// reconciliation codebase. This includes timeouts, limits, file
// permissions, and other configuration values that should be consistent
// across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ReconcileTimeout bounds a single reconciliation job from file read
	// to result persistence
	ReconcileTimeout = 2 * time.Minute

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 30 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 30 * time.Second

	// ShutdownTimeout is how long graceful shutdown waits for in-flight
	// requests and jobs to drain
	ShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxUploadBytes is the maximum accepted size for a single uploaded
	// CSV file; the core materializes both datasets in memory
	MaxUploadBytes = 32 << 20 // 32 MiB

	// QueueBufferSize is the buffer size of the job queue channel
	QueueBufferSize = 100

	// DefaultWorkerCount is the default number of reconciliation workers
	DefaultWorkerCount = 4
)

// Retention constants for the job store
const (
	// DefaultJobRetention is how long completed job records and their
	// uploaded files are kept before the cleanup schedule removes them
	DefaultJobRetention = 30 * 24 * time.Hour

	// CleanupSchedule is the cron expression for the retention sweep
	CleanupSchedule = "0 3 * * *"
)
