// Package types holds small value types shared across the validator:
// currently just the Severity enum used to classify error-taxonomy members
// (see errors.ValidationError) as fatal or advisory.
package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Severity classifies how serious a condition reported by the library is.
// Every entry in the error taxonomy (spec.md §7) is fatal; Severity exists
// so the CLI and library logging can also classify advisory conditions
// (e.g. an unknown attribute silently dropped by the parser, spec.md §4.1)
// without promoting them to errors.
type Severity int

const (
	INFO Severity = iota
	WARNING
	ERROR
	CRITICAL
)

func (s Severity) String() string {
	switch s {
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML implements the yaml.Marshaler interface.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	return s.parseFromString(str)
}

func (s *Severity) parseFromString(str string) error {
	switch str {
	case "INFO":
		*s = INFO
	case "WARNING":
		*s = WARNING
	case "ERROR":
		*s = ERROR
	case "CRITICAL":
		*s = CRITICAL
	default:
		return fmt.Errorf("invalid severity: %s", str)
	}
	return nil
}
