package main

import (
	"errors"
	"fmt"
	"go/token"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Severity is the level of a Diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic codes
const (
	CodeUnreachable = "unreachable"
	CodeMarker      = "marker"
	CodeCollision   = "collision"
	CodeNoMembers   = "no-members"
	CodeOutput      = "output"
)

var ErrNoMembers = errors.New("no testable members found")

// Diagnostic is a single finding reported while scanning or generating.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	// Member is the qualified member name, e.g. "Subject.multiplySum".
	Member string
	Pos    token.Position
}

func (d Diagnostic) String() string {
	loc := ""
	if d.Pos.IsValid() {
		loc = d.Pos.String() + ": "
	}
	if d.Member != "" {
		return fmt.Sprintf("%s%s [%s] %s: %s", loc, d.Severity, d.Code, d.Member, d.Message)
	}
	return fmt.Sprintf("%s%s [%s] %s", loc, d.Severity, d.Code, d.Message)
}

// Diagnostics accumulates findings in report order.
type Diagnostics struct {
	list []Diagnostic
}

func (d *Diagnostics) Add(diag Diagnostic) {
	d.list = append(d.list, diag)
}

func (d *Diagnostics) Errorf(code string, m *Member, format string, args ...any) {
	d.add(SeverityError, code, m, format, args...)
}

func (d *Diagnostics) Warnf(code string, m *Member, format string, args ...any) {
	d.add(SeverityWarning, code, m, format, args...)
}

func (d *Diagnostics) Infof(code string, m *Member, format string, args ...any) {
	d.add(SeverityInfo, code, m, format, args...)
}

func (d *Diagnostics) add(sev Severity, code string, m *Member, format string, args ...any) {
	diag := Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
	if m != nil {
		diag.Member = m.QualifiedName()
		diag.Pos = m.Pos
	}
	d.Add(diag)
}

// All returns every diagnostic in report order.
func (d *Diagnostics) All() []Diagnostic {
	return d.list
}

// WithCode returns the diagnostics carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var found []Diagnostic
	for _, diag := range d.list {
		if diag.Code == code {
			found = append(found, diag)
		}
	}
	return found
}

func (d *Diagnostics) HasErrors() bool {
	for _, diag := range d.list {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err combines every error diagnostic into a single error, or returns nil.
func (d *Diagnostics) Err() error {
	var err error
	for _, diag := range d.list {
		if diag.Severity != SeverityError {
			continue
		}
		if diag.Code == CodeNoMembers {
			err = multierr.Append(err, fmt.Errorf("%s: %w", diag.Message, ErrNoMembers))
			continue
		}
		err = multierr.Append(err, errors.New(diag.String()))
	}
	return err
}

// Log writes the non-error diagnostics to the logger. Errors are returned
// through Err and reported by the caller.
func (d *Diagnostics) Log(logger *zap.Logger) {
	for _, diag := range d.list {
		fields := []zap.Field{zap.String("code", diag.Code)}
		if diag.Member != "" {
			fields = append(fields, zap.String("member", diag.Member))
		}
		if diag.Pos.IsValid() {
			fields = append(fields, zap.Stringer("pos", diag.Pos))
		}
		switch diag.Severity {
		case SeverityInfo:
			logger.Debug(diag.Message, fields...)
		case SeverityWarning:
			logger.Warn(diag.Message, fields...)
		}
	}
}
