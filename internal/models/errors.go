package models

import (
	"fmt"
	"strings"
)

// MissingDependencyError reports a field whose default could not be derived
// because the configuration lacks the field(s) it cascades from.
type MissingDependencyError struct {
	Field  string // the field that could not be resolved
	Needs  string // what it would have been derived from
	Reason string
}

func (e *MissingDependencyError) Error() string {
	if e.Needs != "" {
		return fmt.Sprintf("cannot resolve %s from %s: %s", e.Field, e.Needs, e.Reason)
	}
	return fmt.Sprintf("cannot resolve %s: %s", e.Field, e.Reason)
}

// UnsupportedRegionError reports a region outside the closed set of regions
// the image map covers.
type UnsupportedRegionError struct {
	Region    string
	Supported []string
}

func (e *UnsupportedRegionError) Error() string {
	return fmt.Sprintf("unsupported region %q (supported: %s)",
		e.Region, strings.Join(e.Supported, ", "))
}

// InvalidCombinationError reports feature drift between the pieces handed to
// the assembler, e.g. a database security group present while the resolved
// database flag is off.
type InvalidCombinationError struct {
	Feature string // "database" or "table"
	Detail  string
}

func (e *InvalidCombinationError) Error() string {
	return fmt.Sprintf("invalid %s combination: %s", e.Feature, e.Detail)
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ProviderError represents cloud provider operation errors in the
// publishing layer
type ProviderError struct {
	Provider  string // "aws"
	Operation string // "init", "publish", "status", etc.
	Resource  string // bucket name, app name, etc.
	Cause     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error during %s operation on resource '%s': %v",
		e.Provider, e.Operation, e.Resource, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
