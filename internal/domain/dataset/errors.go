package dataset

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Kind classifies pipeline failures so callers can tell malformed input from
// misconfiguration without string matching.
type Kind string

const (
	KindNone            Kind = ""
	KindSchema          Kind = "schema"
	KindDuplicateColumn Kind = "duplicate_column"
	KindConfig          Kind = "config"
	KindPrecondition    Kind = "precondition"
)

var (
	ErrSchema          = crerr.New("schema error")
	ErrDuplicateColumn = crerr.New("duplicate column")
	ErrConfig          = crerr.New("configuration error")
	ErrPrecondition    = crerr.New("precondition violation")
)

// SchemaError reports required columns that are absent after normalization.
type SchemaError struct {
	Dataset string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: dataset %q missing required column(s) [%s]; found [%s]",
		ErrSchema, e.Dataset, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// DuplicateColumnError reports source labels that normalize to the same label.
type DuplicateColumnError struct {
	Dataset string
	Label   string
	Sources []string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("%s: dataset %q columns %q all normalize to %q",
		ErrDuplicateColumn, e.Dataset, e.Sources, e.Label)
}

func (e *DuplicateColumnError) Unwrap() error { return ErrDuplicateColumn }

// ConfigError reports a request or static configuration that cannot be served,
// e.g. an aggregation over a metric the rows do not carry.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

func NewConfigError(field, format string, args ...any) error {
	return crerr.WithStack(&ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// NewPreconditionError reports an input that violates a caller-asserted
// precondition, such as a coordinate outside the pitch.
func NewPreconditionError(format string, args ...any) error {
	return crerr.Wrapf(ErrPrecondition, format, args...)
}

func newSchemaError(name string, missing, found []string) error {
	return crerr.WithStack(&SchemaError{
		Dataset: name,
		Missing: append([]string(nil), missing...),
		Found:   append([]string(nil), found...),
	})
}

func newDuplicateColumnError(name, label string, sources []string) error {
	return crerr.WithStack(&DuplicateColumnError{
		Dataset: name,
		Label:   label,
		Sources: append([]string(nil), sources...),
	})
}

// KindOf returns the Kind of the first pipeline error found in err's chain.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case crerr.Is(err, ErrSchema):
		return KindSchema
	case crerr.Is(err, ErrDuplicateColumn):
		return KindDuplicateColumn
	case crerr.Is(err, ErrConfig):
		return KindConfig
	case crerr.Is(err, ErrPrecondition):
		return KindPrecondition
	default:
		return KindNone
	}
}
