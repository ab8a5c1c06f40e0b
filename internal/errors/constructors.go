package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocPubError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *DocPubError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *DocPubError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

func SourceNotFound(path string) *DocPubError {
	return New(CategoryConfig, SeverityFatal, "source path not found").
		WithContext("path", path)
}

// Generation errors

func GenerationFailed(stage string, cause error) *DocPubError {
	return Wrap(cause, CategoryDoxygen, SeverityFatal, "documentation generation failed").
		WithContext("stage", stage)
}

func WorkspaceError(operation string, cause error) *DocPubError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed").
		WithContext("operation", operation)
}

func MetadataError(field string, cause error) *DocPubError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "project metadata resolution failed").
		WithContext("field", field)
}

// Publish errors

func PublishFailed(target string, cause error) *DocPubError {
	return Wrap(cause, CategoryPublish, SeverityFatal, "publish failed").
		WithContext("target", target)
}

func GitAuthError(target string, cause error) *DocPubError {
	return Wrap(cause, CategoryAuth, SeverityFatal, "git authentication failed").
		WithContext("target", target)
}

func GitNetworkError(target string, cause error) *DocPubError {
	return WrapRetryable(cause, CategoryGit, SeverityWarning, "git network error").
		WithContext("target", target)
}

// Internal errors

func InternalError(message string, cause error) *DocPubError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
