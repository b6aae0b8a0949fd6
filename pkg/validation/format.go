// Package validation provides common validation utilities.
package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/debt-dashboard/pkg/constants"
)

var (
	// ErrInvalidOutputFormat is returned for an unsupported output format.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidLogLevel is returned for an unsupported log level.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat is returned for an unsupported log format.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

var outputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatYAML,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range outputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("%w: expected one of %v, got %q", ErrInvalidOutputFormat, outputFormats, format)
}

// ValidateLogLevel checks if the level is one zap understands. An empty level
// selects the default.
func ValidateLogLevel(level string) error {
	switch level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
}

// ValidateLogFormat checks if the log encoding is supported. An empty format
// selects the default.
func ValidateLogFormat(format string) error {
	switch format {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidLogFormat, format)
}
