// SPDX-License-Identifier: MIT
// Package diag defines the error taxonomy and the warning collector shared by
// every pipeline stage.
//
// Error policy:
//   - ConfigError is raised before any stage starts (bad lengths, enums, ranges).
//   - DataError is raised by the stage that meets a degenerate input and names
//     the offending variable.
//   - Both abort the pipeline; callers branch with errors.Is(err, ErrConfig) or
//     errors.As(err, *DataError).
//   - Warnings never abort; they are collected and returned with the result.
package diag

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is the sentinel matched by every ConfigError.
	ErrConfig = errors.New("diag: invalid configuration")

	// ErrData is the sentinel matched by every DataError.
	ErrData = errors.New("diag: invalid data")
)

// ConfigError reports a malformed parameter or input shape.
type ConfigError struct {
	// Field names the offending parameter (e.g. "nperm", "type[3]").
	Field string
	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Configf builds a ConfigError with a formatted reason.
func Configf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DataError reports a degenerate variable or an unusable sample.
type DataError struct {
	// Variable is the name of the offending column (empty for dataset-wide issues).
	Variable string
	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements error.
func (e *DataError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("data: %s", e.Reason)
	}

	return fmt.Sprintf("data: variable %q: %s", e.Variable, e.Reason)
}

// Is reports whether target is ErrData.
func (e *DataError) Is(target error) bool { return target == ErrData }

// Dataf builds a DataError with a formatted reason.
func Dataf(variable, format string, args ...any) error {
	return &DataError{Variable: variable, Reason: fmt.Sprintf(format, args...)}
}
