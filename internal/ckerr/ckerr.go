// Package ckerr defines stable error codes for all mod-manager failure modes.
package ckerr

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// DescriptorNotFound indicates a .mod descriptor file is missing
	DescriptorNotFound ErrorCode = "DESCRIPTOR_NOT_FOUND"
	// DescriptorInvalid indicates a .mod descriptor could not be parsed
	DescriptorInvalid ErrorCode = "DESCRIPTOR_INVALID"
	// ModNotFound indicates a mod name is not in the current mod list
	ModNotFound ErrorCode = "MOD_NOT_FOUND"
	// ModDirMissing indicates a mod's content directory does not exist
	ModDirMissing ErrorCode = "MOD_DIR_MISSING"
	// EncodingUnknown indicates a file's text encoding could not be detected
	EncodingUnknown ErrorCode = "ENCODING_UNKNOWN"
	// ParseFailed indicates a definition file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// LogMissing indicates the game error.log was not found
	LogMissing ErrorCode = "LOG_MISSING"
	// ProfileInvalid indicates a mod profile or load-order file is malformed
	ProfileInvalid ErrorCode = "PROFILE_INVALID"
	// PlaysetInvalid indicates a launcher playset JSON is malformed
	PlaysetInvalid ErrorCode = "PLAYSET_INVALID"
	// LauncherDBError indicates the launcher sqlite database rejected an operation
	LauncherDBError ErrorCode = "LAUNCHER_DB_ERROR"
	// ConfigInvalid indicates the tool configuration is malformed
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// Error represents a mod-manager error with code, message, and suggestions
type Error struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new Error
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	DescriptorNotFound: {
		{
			Type:        RunCommand,
			Command:     "ck3mm mods list --all",
			Safe:        true,
			Description: "List descriptors found under the mod directory",
		},
	},
	EncodingUnknown: {
		{
			Type:        RunCommand,
			Command:     "ck3mm encoding fix ${file}",
			Safe:        true,
			Description: "Convert the file to UTF-8 with BOM (a .bak backup is kept)",
		},
	},
	LogMissing: {
		{
			Type:        OpenDocs,
			URL:         "https://ck3.paradoxwikis.com/Mod_troubleshooting",
			Description: "Enable debug logging in the launcher so error.log is written",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "ck3mm init --force",
			Safe:        false,
			Description: "Rewrite the default configuration file",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
