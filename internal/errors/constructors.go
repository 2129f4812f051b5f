package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *RunnerError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *RunnerError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *RunnerError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Runner errors

func DirUnreadable(dir string, cause error) *RunnerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "examples directory unreadable").
		WithContext("dir", dir)
}

func ToolUnavailable(command string, cause error) *RunnerError {
	return Wrap(cause, CategoryTool, SeverityFatal, "external build tool could not be started").
		WithContext("command", command)
}

// Internal errors

func InternalError(message string, cause error) *RunnerError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
