package iobject

// Node is the tagged-union contract every AST variant satisfies: a
// position range plus a conversion to a plain Go value. There is no
// dynamic dispatch beyond these two operations — callers type-switch on
// the concrete variant when they need variant-specific fields.
type Node interface {
	Ranged
	ToValue(defs *Definitions) any
}

// DocumentNode is the parser's top-level output: an optional header
// section plus an ordered list of data sections, with all accumulated
// syntax errors.
type DocumentNode struct {
	Header   *SectionNode
	Sections []*SectionNode
	Errors   []*CodecError
	Span     PositionRange
}

func (d *DocumentNode) Range() PositionRange { return d.Span }

func (d *DocumentNode) ToValue(defs *Definitions) any {
	out := make(map[string]any, len(d.Sections))
	for _, s := range d.Sections {
		out[s.Name()] = s.ToValue(defs)
	}
	return out
}

// SectionNode holds one named body: either a single Object or a
// Collection of Objects, plus the raw name/schema tokens the parser saw.
type SectionNode struct {
	Child       Node // *ObjectNode, *CollectionNode, or nil
	NameToken   *TokenNode
	SchemaToken *TokenNode
	Span        PositionRange
}

func (s *SectionNode) Range() PositionRange { return s.Span }

// Name derives the section's display name: NameToken text, else the
// schema token with its leading '$' stripped, else "unnamed".
func (s *SectionNode) Name() string {
	if s.NameToken != nil {
		return textOf(s.NameToken.Tok)
	}
	if s.SchemaToken != nil {
		t := textOf(s.SchemaToken.Tok)
		if len(t) > 0 && t[0] == '$' {
			return t[1:]
		}
		return t
	}
	return "unnamed"
}

// SchemaName derives the schema reference name, defaulting to the
// process-wide default-schema sentinel "$schema".
func (s *SectionNode) SchemaName() string {
	if s.SchemaToken != nil {
		return textOf(s.SchemaToken.Tok)
	}
	return "$schema"
}

func textOf(t Token) string {
	if t.Kind == STRING && t.Value != nil {
		if str, ok := t.Value.(string); ok {
			return str
		}
	}
	return t.Text
}

func (s *SectionNode) ToValue(defs *Definitions) any {
	if s.Child == nil {
		return nil
	}
	return s.Child.ToValue(defs)
}

// ObjectNode is a brace-delimited or brace-less set of members.
type ObjectNode struct {
	Members []*MemberNode
	Open    bool // true when written without braces
	Span    PositionRange
}

func (o *ObjectNode) Range() PositionRange { return o.Span }

func (o *ObjectNode) ToValue(defs *Definitions) any {
	out := make(map[string]any, len(o.Members))
	positional := 0
	for _, m := range o.Members {
		key := m.KeyName()
		if key == "" {
			key = positionalKey(positional)
			positional++
		}
		out[key] = m.Value.ToValue(defs)
	}
	return out
}

func positionalKey(i int) string {
	// Stable synthetic key for a member with no explicit key, used only
	// by ToValue's plain-map projection (the Processor assigns real
	// names from the Schema's member order instead).
	return "#" + itoa(i)
}

// MemberNode pairs an optional key with its value; a nil Key marks a
// positional member.
type MemberNode struct {
	Key   *TokenNode
	Value Node
	Span  PositionRange
}

func (m *MemberNode) Range() PositionRange { return m.Span }

func (m *MemberNode) ToValue(defs *Definitions) any { return m.Value.ToValue(defs) }

// KeyName returns the member's key text, or "" for a positional member.
func (m *MemberNode) KeyName() string {
	if m.Key == nil {
		return ""
	}
	return textOf(m.Key.Tok)
}

// ArrayNode is a bracket-delimited list of values; elements may be nil
// only transiently during error recovery (arrays themselves forbid empty
// elements per §4.2, raising unexpected-token instead of keeping a hole).
type ArrayNode struct {
	Elements []Node
	Span     PositionRange
}

func (a *ArrayNode) Range() PositionRange { return a.Span }

func (a *ArrayNode) ToValue(defs *Definitions) any {
	out := make([]any, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			out[i] = nil
			continue
		}
		out[i] = e.ToValue(defs)
	}
	return out
}

// CollectionNode is an ordered list of items, each introduced by a '~'
// marker; items are exclusively Objects or ErrorNodes (never raw
// scalars) per the data model invariant in §3.
type CollectionNode struct {
	Items []Node
	Span  PositionRange
}

func (c *CollectionNode) Range() PositionRange { return c.Span }

func (c *CollectionNode) ToValue(defs *Definitions) any {
	out := make([]any, len(c.Items))
	for i, it := range c.Items {
		out[i] = it.ToValue(defs)
	}
	return out
}

// TokenNode wraps a scalar Token as a Node; ToValue returns the token's
// already-parsed value.
type TokenNode struct {
	Tok Token
}

func (t *TokenNode) Range() PositionRange { return t.Tok.Range() }

func (t *TokenNode) ToValue(defs *Definitions) any {
	v := t.Tok.Value
	if s, ok := v.(string); ok {
		return defs.GetValue(s)
	}
	return v
}

// ErrorNode stands in for a subtree that failed to parse; it carries
// enough to render a serialized error placeholder via ToValue.
type ErrorNode struct {
	Err      *CodecError
	Span     PositionRange
	EndSpan  *PositionRange // optional explicit end, when it differs from Span
}

func (e *ErrorNode) Range() PositionRange {
	if e.EndSpan != nil {
		return PositionRange{Start: e.Span.Start, End: e.EndSpan.End}
	}
	return e.Span
}

// ToValue renders the §3 error placeholder shape:
// { __error: true, category, message, name, position, end_position?, error_code? }.
func (e *ErrorNode) ToValue(defs *Definitions) any {
	out := map[string]any{
		"__error":  true,
		"category": string(e.Err.Category),
		"message":  e.Err.Message,
		"name":     e.Err.Kind,
		"position": e.Span.Start,
	}
	if e.EndSpan != nil {
		out["end_position"] = e.EndSpan.End
	}
	if e.Err.Kind != "" {
		out["error_code"] = e.Err.Kind
	}
	return out
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
