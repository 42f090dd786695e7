package errors

import "fmt"

// WrapParseError wraps a failure to parse item.
func WrapParseError(item string, cause error) *SyntaxError {
	return &SyntaxError{
		BaseError: Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause),
		Input:     item,
	}
}

// WrapGenerateError wraps a failure at stage while generating target.
func WrapGenerateError(stage, target string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:  Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", target), cause),
		TargetFile: target,
		Stage:      stage,
	}
}

// WrapTemplateError wraps a template execution failure.
func WrapTemplateError(templateName string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:  Wrap(TemplateErrorCode, fmt.Sprintf("failed to execute template '%s'", templateName), cause),
		TargetFile: templateName,
		Stage:      "template",
	}
}

// WrapFileSystemError wraps file system related errors.
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s file '%s'", operation, path), cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration loading errors.
func WrapConfigurationError(source string, cause error) *BaseError {
	return Wrap(ConfigurationErrorCode, fmt.Sprintf("invalid configuration from %s", source), cause).
		WithContext("source", source)
}
