// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, ambiguous).
	UserError = 1

	// ConfigError indicates an invalid config file, environment or backend setup.
	ConfigError = 2

	// StorageError indicates the change was applied in memory but could not be saved.
	StorageError = 3
)
