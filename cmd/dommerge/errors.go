package main

import (
	"fmt"
	"strings"
)

// CLIError is a user-facing CLI error with context and suggestions,
// grounded in nanostore/cmd/errors.go's CLIError shape.
type CLIError struct {
	Operation   string
	Cause       string
	Details     string
	Suggestions []string
	Underlying  error
}

func (e *CLIError) Error() string {
	var msg strings.Builder
	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("failed to %s", e.Operation))
	} else {
		msg.WriteString("operation failed")
	}
	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}
	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}
	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, s := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, s))
		}
	}
	return msg.String()
}

func (e *CLIError) Unwrap() error { return e.Underlying }

func newConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

func newRunError(operation string, under error) *CLIError {
	return &CLIError{
		Operation:  operation,
		Cause:      under.Error(),
		Underlying: under,
	}
}
