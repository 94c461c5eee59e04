package iobject

import (
	"sort"
	"strings"
)

// Header holds a Document's definitions plus its resolved default
// schema ("$schema"), per §3.
type Header struct {
	Definitions *Definitions
	Schema      *Schema
}

// SectionCollection preserves section insertion order while supporting
// lookup by name (§3 "SectionCollection preserves insertion order and
// supports lookup by name").
type SectionCollection struct {
	order  []string
	byName map[string]*SectionNode
}

// NewSectionCollection returns an empty SectionCollection.
func NewSectionCollection() *SectionCollection {
	return &SectionCollection{byName: make(map[string]*SectionNode)}
}

// Push appends a section, keyed by its derived Name().
func (c *SectionCollection) Push(s *SectionNode) {
	name := s.Name()
	if _, exists := c.byName[name]; !exists {
		c.order = append(c.order, name)
	}
	c.byName[name] = s
}

// Get returns the section named name, or nil.
func (c *SectionCollection) Get(name string) *SectionNode {
	return c.byName[name]
}

// Names returns section names in insertion order.
func (c *SectionCollection) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of sections.
func (c *SectionCollection) Len() int { return len(c.order) }

// Document is the top-level parsed artifact: a Header of definitions
// plus an ordered collection of Sections, with any accumulated syntax
// errors (§3).
type Document struct {
	Header   Header
	Sections *SectionCollection
	Errors   []*CodecError
}

// Parse tokenizes and parses source into a Document, compiling header
// schemas and merging in any externally supplied defs (non-destructively:
// the document's own definitions win on key collision) (§6).
func Parse(source string, defs *Definitions, collector *ErrorCollector, opts *ParseOptions) *Document {
	o := DefaultParseOptions()
	if opts != nil {
		o = *opts
	}

	tokens := NewTokenizer(source, o.Tokenizer).Tokenize()
	docNode := NewParser(tokens).Parse()

	headerDefs := NewDefinitions()
	var headerSchema *Schema
	errs := append([]*CodecError{}, docNode.Errors...)

	if docNode.Header != nil {
		schema, herrs := processHeader(docNode.Header, headerDefs)
		headerSchema = schema
		errs = append(errs, herrs...)
	}

	if defs != nil {
		headerDefs.Merge(defs, false)
	}

	sections := NewSectionCollection()
	for _, s := range docNode.Sections {
		sections.Push(s)
	}

	doc := &Document{
		Header:   Header{Definitions: headerDefs, Schema: headerSchema},
		Sections: sections,
		Errors:   errs,
	}

	if collector != nil {
		for _, e := range errs {
			collector.Add(e)
		}
	}
	return doc
}

// processHeader implements the §4.3 two-pass definitions algorithm: push
// variables/metadata immediately, stash schema ASTs, then compile every
// stashed schema once Definitions is fully populated so $refs resolve.
// A header whose body is a single top-level ObjectNode (not a
// Collection) is the "$schema" sugar form.
func processHeader(header *SectionNode, headerDefs *Definitions) (*Schema, []*CodecError) {
	var errs []*CodecError

	switch child := header.Child.(type) {
	case nil:
		return nil, nil

	case *ObjectNode:
		compiled, err := CompileSchema(child, headerDefs, "$schema")
		if err != nil {
			return nil, []*CodecError{err}
		}
		if perr := headerDefs.Push("$schema", compiled, true, false); perr != nil {
			errs = append(errs, perr)
		}
		return compiled, errs

	case *CollectionNode:
		type stashedSchema struct {
			key  string
			node Node
		}
		var stash []stashedSchema

		for _, item := range child.Items {
			if en, ok := item.(*ErrorNode); ok {
				errs = append(errs, en.Err)
				continue
			}
			obj, ok := item.(*ObjectNode)
			if !ok || len(obj.Members) != 1 || obj.Members[0].Key == nil {
				errs = append(errs, NewCodecError(KindInvalidDefinition, "header entry must be a single 'key: value' pair", rangeOf(item)))
				continue
			}
			m := obj.Members[0]
			key := m.KeyName()
			switch {
			case strings.HasPrefix(key, "$"):
				stash = append(stash, stashedSchema{key: key, node: m.Value})
			case strings.HasPrefix(key, "@"):
				if err := headerDefs.Push(key, m.Value.ToValue(headerDefs), false, true); err != nil {
					errs = append(errs, err)
				}
			default:
				if err := headerDefs.Push(key, m.Value.ToValue(headerDefs), false, false); err != nil {
					errs = append(errs, err)
				}
			}
		}

		var defaultSchema *Schema
		for _, s := range stash {
			compiled, err := CompileSchema(s.node, headerDefs, s.key)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if perr := headerDefs.Push(s.key, compiled, true, false); perr != nil {
				errs = append(errs, perr)
			}
			if s.key == "$schema" {
				defaultSchema = compiled
			}
		}
		return defaultSchema, errs

	default:
		return nil, []*CodecError{NewCodecError(KindInvalidDefinition, "header must be an object or a collection of definitions", rangeOf(header.Child))}
	}
}

// ParseDefinitions is the §6 convenience wrapper: trims source, appends
// a bare "---" if the source has no section separator of its own, parses,
// and returns just the header's Definitions.
func ParseDefinitions(source string, defs *Definitions, collector *ErrorCollector, opts *ParseOptions) *Definitions {
	trimmed := strings.TrimSpace(source)
	if !strings.Contains(trimmed, "---") {
		trimmed += "\n---"
	}
	doc := Parse(trimmed, defs, collector, opts)
	if doc == nil {
		return nil
	}
	return doc.Header.Definitions
}

// Process resolves the named section's schema (by its schema reference,
// defaulting to "$schema") and runs it through the Schema Processor
// (C8), dispatching to ProcessSchema or ProcessCollection depending on
// whether the section holds a single object or a collection. An
// unresolved schema falls back to plain AST-to-value conversion, per the
// data-flow note in §2 ("unresolved schema -> pass-through conversion").
func (d *Document) Process(sectionName string, collector *ErrorCollector) (any, *CodecError) {
	sec := d.Sections.Get(sectionName)
	if sec == nil {
		return nil, NewCodecError(KindExpectedObject, "no such section: "+sectionName, PositionRange{})
	}

	schema := d.resolveSectionSchema(sec)
	if schema == nil {
		if sec.Child == nil {
			return nil, nil
		}
		return sec.Child.ToValue(d.Header.Definitions), nil
	}

	switch child := sec.Child.(type) {
	case nil:
		return nil, nil
	case *CollectionNode:
		return ProcessCollection(child, schema, d.Header.Definitions, collector)
	default:
		return ProcessSchema(child, schema, d.Header.Definitions, collector)
	}
}

func (d *Document) resolveSectionSchema(sec *SectionNode) *Schema {
	entry := d.Header.Definitions.Get(sec.SchemaName())
	if entry == nil {
		return nil
	}
	s, _ := entry.Value.(*Schema)
	return s
}

// LoadDocument builds a Document from plain Go values (the inverse of
// converting a Document to values): each top-level key becomes a
// section, a []any value becomes a Collection, anything else becomes a
// single Object/scalar body. Out of scope per §1 ("plain-object
// load/dump convenience wrappers" are an external collaborator), so this
// is a best-effort convenience: map key order is not preserved by Go, so
// sections are emitted in sorted key order for determinism.
func LoadDocument(plainObject map[string]any, opts *StringifyOptions) *Document {
	keys := make([]string, 0, len(plainObject))
	for k := range plainObject {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sections := NewSectionCollection()
	for _, key := range keys {
		val := plainObject[key]
		var child Node
		if items, ok := val.([]any); ok {
			nodes := make([]Node, len(items))
			for i, it := range items {
				nodes[i] = nodeFromValue(it)
			}
			child = &CollectionNode{Items: nodes}
		} else {
			child = nodeFromValue(val)
		}
		nameTok := Token{Kind: STRING, SubKind: SubStringOpen, Text: key, Value: key}
		sections.Push(&SectionNode{Child: child, NameToken: &TokenNode{Tok: nameTok}})
	}

	return &Document{Header: Header{Definitions: NewDefinitions()}, Sections: sections}
}

// nodeFromValue adapts a plain Go value into the Node interface so it
// can flow through the same ObjectNode/ArrayNode machinery as parsed
// AST: maps become ObjectNodes, slices become ArrayNodes, everything
// else is a literalNode leaf.
func nodeFromValue(v any) Node {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]*MemberNode, 0, len(keys))
		for _, k := range keys {
			keyTok := Token{Kind: STRING, SubKind: SubStringOpen, Text: k, Value: k}
			members = append(members, &MemberNode{Key: &TokenNode{Tok: keyTok}, Value: nodeFromValue(val[k])})
		}
		return &ObjectNode{Members: members}
	case []any:
		elems := make([]Node, len(val))
		for i, it := range val {
			elems[i] = nodeFromValue(it)
		}
		return &ArrayNode{Elements: elems}
	default:
		return &literalNode{value: v}
	}
}
