// Package paramrange implements the parameter-range engine: declaring,
// clamping, freezing, and enumerating the integer tuning parameters an
// attack algorithm exposes to the optimisation core.
package paramrange

import (
	"github.com/agbru/hardness-estimator/internal/apperr"
)

// Flavour distinguishes tuning parameters the algorithm can compute
// analytically (Independent) from ones that must be co-optimised by search
// (Joint).
type Flavour int

const (
	// Independent parameters are computed by the algorithm from the problem
	// parameters and the already-fixed parameters, not by enumeration.
	Independent Flavour = iota
	// Joint parameters are included in the Cartesian-product search.
	Joint
)

func (f Flavour) String() string {
	if f == Independent {
		return "independent"
	}
	return "joint"
}

// Parameter is a single named integer tuning parameter with a closed
// interval [Min,Max]. Fixed degenerates the interval to a single value and
// tells the search loop to skip enumerating it.
type Parameter struct {
	Name    string
	Min     int
	Max     int
	Fixed   bool
	Flavour Flavour

	declaredMin int
	declaredMax int
}

// Assignment is a full tuning-parameter assignment: every joint parameter
// present, plus whichever independents the algorithm has filled in. It is
// the open map the boundary between the framework and a cost function uses,
// per spec.md §9's "dynamic-keyword parameters" note.
type Assignment map[string]int

// Schema is the ordered list of tuning parameters for one algorithm,
// independents-first, joints-last. The order is part of the algorithm's
// declared contract: it is the row-major enumeration order for joints, and
// the resolution order for independents.
type Schema struct {
	order  []string
	params map[string]*Parameter
}

// NewSchema returns an empty schema ready for Declare calls.
func NewSchema() *Schema {
	return &Schema{params: make(map[string]*Parameter)}
}

// Declare registers a new tuning parameter with its declared [min,max] box.
// It panics (a programmer error) if the name is already declared or if
// min > max.
func (s *Schema) Declare(name string, min, max int, flavour Flavour) {
	if _, exists := s.params[name]; exists {
		apperr.Panic("paramrange: parameter %q already declared", name)
	}
	if min > max {
		apperr.Panic("paramrange: parameter %q declared with min=%d > max=%d", name, min, max)
	}
	s.params[name] = &Parameter{
		Name: name, Min: min, Max: max, Flavour: flavour,
		declaredMin: min, declaredMax: max,
	}
	s.order = append(s.order, name)
}

// Names returns the parameter names in declaration order (independents
// first, per Declare call order — the caller is responsible for declaring
// independents before joints, as spec.md §4.2 requires).
func (s *Schema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Independents returns the names of independent parameters, in declaration
// order.
func (s *Schema) Independents() []string {
	var out []string
	for _, name := range s.order {
		if s.params[name].Flavour == Independent {
			out = append(out, name)
		}
	}
	return out
}

// Joints returns the names of joint parameters, in declaration order.
func (s *Schema) Joints() []string {
	var out []string
	for _, name := range s.order {
		if s.params[name].Flavour == Joint {
			out = append(out, name)
		}
	}
	return out
}

// Get returns the parameter by name, or nil if it was never declared.
func (s *Schema) Get(name string) *Parameter {
	return s.params[name]
}

// mustGet returns the parameter by name or panics with a ProgrammerError:
// referencing an undeclared parameter name is never a recoverable mistake.
func (s *Schema) mustGet(name string) *Parameter {
	p, ok := s.params[name]
	if !ok {
		apperr.Panic("paramrange: undeclared tuning parameter %q", name)
	}
	return p
}

// SetRange narrows a declared parameter's box. It returns a ConfigError if
// the resulting interval would be empty.
func (s *Schema) SetRange(name string, min, max int) error {
	p := s.mustGet(name)
	if min > max {
		return apperr.NewConfigError("paramrange: set_range(%q, %d, %d) produces an empty interval", name, min, max)
	}
	p.Min, p.Max, p.Fixed = min, max, false
	return nil
}

// SetValue freezes a declared parameter to a single value, equivalent to
// SetRange(name, v, v), and marks it Fixed so the search loop skips
// enumerating it.
func (s *Schema) SetValue(name string, v int) error {
	p := s.mustGet(name)
	p.Min, p.Max, p.Fixed = v, v, true
	return nil
}

// Reset clears all user fixes/narrowings, restoring every parameter's
// originally-declared range.
func (s *Schema) Reset() {
	for _, p := range s.params {
		p.Min, p.Max, p.Fixed = p.declaredMin, p.declaredMax, false
	}
}

// Clone returns a deep copy of the schema, used by the search loop to
// materialise a working copy with independents frozen without mutating the
// caller's schema (spec.md §4.5's "_fix_ranges_for_already_set_parameters").
func (s *Schema) Clone() *Schema {
	clone := &Schema{
		order:  append([]string(nil), s.order...),
		params: make(map[string]*Parameter, len(s.params)),
	}
	for name, p := range s.params {
		cp := *p
		clone.params[name] = &cp
	}
	return clone
}
