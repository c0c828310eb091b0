package main

// Exit codes for the CLI
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUnreachable   = 2
	ExitNotConfigured = 3
	ExitTaskNotFound  = 4
	ExitUnauthorized  = 5
	ExitValidation    = 6
	ExitRateLimited   = 7
)
