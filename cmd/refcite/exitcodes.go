package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed store or input, validation failure)
	ExitConflict    = 4 // Import stopped at a name collision
	ExitNotFound    = 5 // Named reference does not exist
)
