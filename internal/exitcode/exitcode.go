// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including an empty task list.
	Success = 0

	// UserError indicates a user error (bad args, unknown command or flag).
	UserError = 1

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 2

	// BackendError indicates the fetch failed or the server could not run.
	BackendError = 3
)
