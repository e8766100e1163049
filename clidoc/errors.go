package clidoc

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to the errors returned by this module.
const (
	CodeMissingOption     = "MISSING_OPTION"
	CodeInvalidOption     = "INVALID_OPTION"
	CodeInvalidStyle      = "INVALID_STYLE"
	CodeMissingName       = "MISSING_NAME"
	CodeAttributeNotFound = "ATTRIBUTE_NOT_FOUND"
	CodeWrongType         = "WRONG_TYPE"
	CodeUnknownClass      = "UNKNOWN_CLASS"
	CodeModuleNotFound    = "MODULE_NOT_FOUND"
	CodeLoadFailed        = "LOAD_FAILED"
	CodeContractViolation = "CONTRACT_VIOLATION"
)

// ConfigError reports a problem with how documentation was requested: a
// missing or malformed directive option, an unusable command object or a
// node that cannot be named.
func ConfigError(code, format string, args ...any) *goerrors.Error {
	return goerrors.New(fmt.Sprintf(format, args...), goerrors.CategoryValidation).WithTextCode(code)
}

// LoadError wraps a failure to load a command from its source. Load failures
// are configuration errors from the caller's point of view.
func LoadError(source error, code, format string, args ...any) *goerrors.Error {
	if source == nil {
		return ConfigError(code, format, args...)
	}
	return goerrors.Wrap(source, goerrors.CategoryValidation, fmt.Sprintf(format, args...)).WithTextCode(code)
}

// ContractError reports a command tree that broke its own contract, such as
// a group listing a child it cannot resolve.
func ContractError(format string, args ...any) *goerrors.Error {
	return goerrors.New(fmt.Sprintf(format, args...), goerrors.CategoryInternal).WithTextCode(CodeContractViolation)
}

// IsConfigError reports whether err is a configuration or load error.
func IsConfigError(err error) bool {
	return goerrors.IsValidation(err)
}

// HasCode reports whether err carries the given text code.
func HasCode(err error, code string) bool {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode == code
	}
	return false
}
