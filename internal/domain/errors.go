package domain

import "fmt"

// ConfigurationError reports configuration that cannot form a usable tag
// filter. It is fatal: no meaningful selection can happen until the
// configuration is fixed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// NoMatchingTagError reports that no tag satisfied the active selection
// criteria. Criteria carries the pattern that produced zero candidates so
// the operator can diagnose a missing or mistagged release.
type NoMatchingTagError struct {
	Criteria string
}

func (e *NoMatchingTagError) Error() string {
	return fmt.Sprintf("no tags found matching %s", e.Criteria)
}
