package errno

import (
	"errors"
)

// Tool failure kinds. Tool failures are reported as entity.ToolResult values
// carrying one of these as their Kind, never returned as Go errors.
var (
	ErrFileNotFound       = errors.New("file not found")
	ErrNotFound           = errors.New("not found")
	ErrNotADirectory      = errors.New("not a directory")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrDecode             = errors.New("decode error")
	ErrInvalidRange       = errors.New("invalid range")
	ErrRangeTooLarge      = errors.New("range too large")
	ErrMissingParameters  = errors.New("missing parameters")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrUnknownTool        = errors.New("unknown tool")
	ErrIO                 = errors.New("io error")
	ErrToolAlreadyExists  = errors.New("tool already registered")
	ErrEmptyModelResponse = errors.New("empty model response")
)

// Exchange and provider errors, returned as Go errors.
var (
	ErrEmptyInput         = errors.New("empty user input")
	ErrModelRequest       = errors.New("model request failed")
	ErrProviderNotFound   = errors.New("provider not registered")
	ErrProviderRegistered = errors.New("provider already registered")
)
