package iobject

import (
	"regexp"
	"time"
)

// MemberDef is the compiled description of one named field: its type,
// constraints, and the dotted access path used in error messages.
//
// Unresolved schema references are kept lazy per §9 ("resolve lazily at
// validation time... represent compiled MemberDefs whose type is a
// schema reference by storing a handle and resolving on use"): SchemaRef
// holds the owning Definitions plus the referenced name, and Schema is
// filled in (and cached) the first time Resolve is called.
type MemberDef struct {
	Type     string
	Path     string
	Optional bool
	Nullable bool
	HasDefault bool
	Default  any
	Choices  []any
	Of       *MemberDef // array element spec
	Schema   *Schema    // nested/object schema, resolved eagerly or via SchemaRef

	Min    *float64
	Max    *float64
	Len    *int
	MinLen *int
	MaxLen *int

	// MinTime/MaxTime bound datetime/date/time members; populated by the
	// compiler instead of Min/Max since those are numeric-only.
	MinTime *time.Time
	MaxTime *time.Time

	Pattern       string
	compiledRegex *regexp.Regexp

	Precision *int
	Scale     *int

	SchemaRef *SchemaRef // lazy cyclic reference, see Resolve
}

// SchemaRef is a lazily-resolved handle to a named schema living in some
// Definitions map, used to support cyclic schema references (§9).
type SchemaRef struct {
	Defs *Definitions
	Name string
}

// Resolve returns m.Schema, resolving m.SchemaRef against its owning
// Definitions on first use and memoizing the result.
func (m *MemberDef) Resolve() *Schema {
	if m.Schema != nil {
		return m.Schema
	}
	if m.SchemaRef == nil {
		return nil
	}
	if v := m.SchemaRef.Defs.GetValue(m.SchemaRef.Name); v != nil {
		if s, ok := v.(*Schema); ok {
			m.Schema = s
		}
	}
	return m.Schema
}

// CompiledPattern compiles Pattern on first use and memoizes it on this
// MemberDef (§5: "Compiled regex caches on MemberDef are internally
// lazily initialized with memoization; no cross-document sharing").
// Patterns are anchored at both ends unless already anchored.
func (m *MemberDef) CompiledPattern() (*regexp.Regexp, error) {
	if m.compiledRegex != nil {
		return m.compiledRegex, nil
	}
	if m.Pattern == "" {
		return nil, nil
	}
	pat := m.Pattern
	if len(pat) == 0 || pat[0] != '^' {
		pat = "^" + pat
	}
	if len(pat) == 0 || pat[len(pat)-1] != '$' {
		pat = pat + "$"
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	m.compiledRegex = re
	return re, nil
}

// Schema is the compiled output of the Schema Compiler (C6): an ordered
// list of member names, each with a MemberDef, plus an Open flag marking
// a trailing wildcard member that accepts extra keys.
type Schema struct {
	Name        string
	MemberOrder []string
	Members     map[string]*MemberDef
	Open        bool
	Wildcard    *MemberDef // the '*' member def, when Open and declared
}

// NewSchema returns an empty compiled Schema named name.
func NewSchema(name string) *Schema {
	return &Schema{Name: name, Members: make(map[string]*MemberDef)}
}

// AddMember appends name to MemberOrder and registers its MemberDef.
func (s *Schema) AddMember(name string, def *MemberDef) {
	if _, exists := s.Members[name]; !exists {
		s.MemberOrder = append(s.MemberOrder, name)
	}
	s.Members[name] = def
}

// Member returns the MemberDef for name, or nil.
func (s *Schema) Member(name string) *MemberDef {
	return s.Members[name]
}
