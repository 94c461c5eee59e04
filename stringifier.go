package iobject

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Stringify renders a single value (typically a validated record or a
// slice of records) to canonical text, per §4.7. schema/defs may be nil.
// When schema is nil and opts.SchemaName is set, the schema is looked up
// by that name in defs; with no schema, records are emitted keyed.
func Stringify(value any, schema *Schema, defs *Definitions, opts *StringifyOptions) string {
	o := resolveStringifyOptions(opts)
	if schema == nil && o.SchemaName != "" && defs != nil {
		if entry := defs.Get(o.SchemaName); entry != nil {
			schema, _ = entry.Value.(*Schema)
		}
	}

	switch v := value.(type) {
	case []any:
		lines := make([]string, len(v))
		for i, item := range v {
			lines[i] = "~ " + renderRecordAny(item, schema, defs, &o)
		}
		return strings.Join(lines, "\n")
	case []map[string]any:
		lines := make([]string, len(v))
		for i, item := range v {
			lines[i] = "~ " + renderRecord(item, schema, &o)
		}
		return strings.Join(lines, "\n")
	default:
		return renderRecordAny(value, schema, defs, &o)
	}
}

func renderRecordAny(value any, schema *Schema, defs *Definitions, o *StringifyOptions) string {
	if rec, ok := value.(map[string]any); ok {
		return renderRecord(rec, schema, o)
	}
	return renderValue(value, o)
}

func resolveStringifyOptions(opts *StringifyOptions) StringifyOptions {
	if opts != nil {
		return *opts
	}
	return DefaultStringifyOptions()
}

// StringifyDocument renders an entire Document back to source text:
// header definitions, then each section introduced by "---" (§4.7 §6).
func StringifyDocument(doc *Document, opts *StringifyOptions) string {
	o := resolveStringifyOptions(opts)
	var b strings.Builder

	if o.IncludeHeader {
		renderHeader(&b, doc.Header, &o)
	}

	names := doc.Sections.Names()
	if len(o.SectionsFilter) > 0 {
		names = o.SectionsFilter
	}

	for _, name := range names {
		sec := doc.Sections.Get(name)
		if sec == nil {
			continue
		}
		b.WriteString("---")
		if o.IncludeSectionNames && sec.Name() != "unnamed" {
			b.WriteByte(' ')
			b.WriteString(sec.Name())
		}
		schemaName := sec.SchemaName()
		if schemaName != "$schema" {
			b.WriteString(": ")
			b.WriteString(schemaName)
		}
		b.WriteByte('\n')

		schema := resolveDocSchema(doc, schemaName)
		renderSectionBody(&b, sec, schema, doc.Header.Definitions, &o)
	}

	return strings.TrimRight(b.String(), "\n")
}

func resolveDocSchema(doc *Document, name string) *Schema {
	entry := doc.Header.Definitions.Get(name)
	if entry == nil {
		return nil
	}
	s, _ := entry.Value.(*Schema)
	return s
}

func renderHeader(b *strings.Builder, h Header, o *StringifyOptions) {
	for _, key := range h.Definitions.Keys() {
		entry := h.Definitions.Get(key)
		b.WriteString("~ ")
		b.WriteString(key)
		b.WriteString(": ")
		if s, ok := entry.Value.(*Schema); ok {
			b.WriteString(renderSchemaDecl(s, o))
		} else {
			b.WriteString(renderValue(entry.Value, o))
		}
		b.WriteByte('\n')
	}
	b.WriteString("---\n")
}

func renderSchemaDecl(s *Schema, o *StringifyOptions) string {
	parts := make([]string, 0, len(s.MemberOrder)+1)
	for _, name := range s.MemberOrder {
		def := s.Members[name]
		parts = append(parts, renderMemberDecl(name, def, o))
	}
	if s.Open {
		parts = append(parts, "*")
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func renderMemberDecl(name string, def *MemberDef, o *StringifyOptions) string {
	key := name
	if def.Optional {
		key += "?"
	}
	if def.Nullable {
		key += "*"
	}
	if !o.IncludeTypes || def.Type == "any" {
		return key
	}
	return key + ": " + def.Type
}

func renderSectionBody(b *strings.Builder, sec *SectionNode, schema *Schema, defs *Definitions, o *StringifyOptions) {
	switch child := sec.Child.(type) {
	case nil:
		return
	case *CollectionNode:
		for _, item := range child.Items {
			b.WriteString("~ ")
			b.WriteString(renderItem(item, schema, defs, o))
			b.WriteByte('\n')
		}
	default:
		b.WriteString(renderItem(child, schema, defs, o))
		b.WriteByte('\n')
	}
}

func renderItem(item Node, schema *Schema, defs *Definitions, o *StringifyOptions) string {
	if en, ok := item.(*ErrorNode); ok {
		if o.SkipErrors {
			return ""
		}
		return renderErrorPlaceholder(en.ToValue(defs).(map[string]any))
	}
	obj, ok := item.(*ObjectNode)
	if !ok {
		return renderValue(item.ToValue(defs), o)
	}
	if schema != nil {
		return renderObjectPositional(obj, schema, defs, o)
	}
	return renderValue(obj.ToValue(defs), o)
}

// renderObjectPositional emits an ObjectNode's members in schema member
// order, comma-separated and keyless, falling back to a keyed rendering
// for any member the schema doesn't know about (§4.7 "Data rows").
func renderObjectPositional(obj *ObjectNode, schema *Schema, defs *Definitions, o *StringifyOptions) string {
	keyed := make(map[string]Node, len(obj.Members))
	var positional []Node
	for _, m := range obj.Members {
		if key := m.KeyName(); key != "" {
			keyed[key] = m.Value
		} else {
			positional = append(positional, m.Value)
		}
	}

	parts := make([]string, 0, len(schema.MemberOrder))
	posIdx := 0
	for _, name := range schema.MemberOrder {
		def := schema.Members[name]
		var node Node
		if n, ok := keyed[name]; ok {
			node = n
		} else if posIdx < len(positional) {
			node = positional[posIdx]
			posIdx++
		}
		if node == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, renderValueTyped(node.ToValue(defs), def, o))
	}
	for _, m := range obj.Members {
		key := m.KeyName()
		if _, known := schema.Members[key]; key != "" && !known {
			parts = append(parts, key+": "+renderValue(m.Value.ToValue(defs), o))
		}
	}
	return strings.Join(parts, ", ")
}

// renderRecord emits a validated record (map[string]any) as produced by
// ProcessSchema/ProcessCollection: positionally in schema.MemberOrder when
// schema is non-nil (record keys the schema does not declare are not
// emitted), otherwise as a keyed object.
func renderRecord(rec map[string]any, schema *Schema, o *StringifyOptions) string {
	if schema == nil {
		return renderKeyedMap(rec, nil, o)
	}
	parts := make([]string, 0, len(schema.MemberOrder))
	for _, name := range schema.MemberOrder {
		def := schema.Members[name]
		parts = append(parts, renderValueTyped(rec[name], def, o))
	}
	return strings.Join(parts, ", ")
}

func renderKeyedMap(m map[string]any, order []string, o *StringifyOptions) string {
	keys := order
	if keys == nil {
		keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+renderValue(m[k], o))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func renderErrorPlaceholder(em map[string]any) string {
	return fmt.Sprintf("{ __error: T, category: %s, message: %s }", renderString(fmt.Sprint(em["category"])), renderString(fmt.Sprint(em["message"])))
}

// renderValueTyped picks the literal form implied by def.Type (datetime
// family, nested object/array) before falling back to the generic,
// type-agnostic renderValue.
func renderValueTyped(v any, def *MemberDef, o *StringifyOptions) string {
	if v == nil {
		return "N"
	}
	if em, ok := v.(map[string]any); ok {
		if isErr, _ := em["__error"].(bool); isErr {
			if o.SkipErrors {
				return "N"
			}
			return renderErrorPlaceholder(em)
		}
	}
	if def != nil {
		switch def.Type {
		case "datetime", "date", "time":
			if t, ok := v.(time.Time); ok {
				return renderDateTimeLiteral(t, def.Type)
			}
		case "object":
			if rec, ok := v.(map[string]any); ok {
				return renderKeyedMapSchema(rec, def.Schema, o)
			}
		case "array":
			if arr, ok := v.([]any); ok {
				return renderArrayTyped(arr, def.Of, o)
			}
		}
	}
	return renderValue(v, o)
}

func renderKeyedMapSchema(rec map[string]any, schema *Schema, o *StringifyOptions) string {
	if schema == nil {
		return renderKeyedMap(rec, nil, o)
	}
	return renderKeyedMap(rec, schema.MemberOrder, o)
}

func renderArrayTyped(arr []any, elemDef *MemberDef, o *StringifyOptions) string {
	parts := make([]string, len(arr))
	for i, el := range arr {
		parts[i] = renderValueTyped(el, elemDef, o)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// renderValue renders a plain Go value with no member-type hint: used
// for header metadata, schema-less records, and nested values whose
// MemberDef isn't available.
func renderValue(v any, o *StringifyOptions) string {
	switch val := v.(type) {
	case nil:
		return "N"
	case bool:
		if val {
			return "T"
		}
		return "F"
	case string:
		return renderString(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return renderFloat(val)
	case float32:
		return renderFloat(float64(val))
	case *BigInt:
		return val.String() + "n"
	case *Decimal:
		return val.String() + "m"
	case time.Time:
		return renderDateTimeLiteral(val, "datetime")
	case []byte:
		return "b'" + base64.StdEncoding.EncodeToString(val) + "'"
	case []any:
		parts := make([]string, len(val))
		for i, el := range val {
			parts[i] = renderValue(el, o)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		if isErr, _ := val["__error"].(bool); isErr {
			if o.SkipErrors {
				return "N"
			}
			return renderErrorPlaceholder(val)
		}
		return renderKeyedMap(val, nil, o)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func renderFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func renderDateTimeLiteral(t time.Time, kind string) string {
	switch kind {
	case "date":
		return "d'" + t.Format("2006-01-02") + "'"
	case "time":
		return "t'" + t.Format("15:04:05") + "'"
	default:
		return "dt'" + t.Format(time.RFC3339) + "'"
	}
}

// renderString emits s unquoted when it is safe to do so (§4.7): no
// terminator characters, no leading/trailing whitespace, and it doesn't
// read back as a number/boolean/null keyword. Otherwise it is
// double-quoted with \n \r \t \\ \" escaped.
func renderString(s string) string {
	if s == "" || looksLikeKeyword(s) || strings.TrimSpace(s) != s || containsTerminator(s) {
		return quoteString(s)
	}
	return s
}

func containsTerminator(s string) bool {
	for _, r := range s {
		if isTerminator(r) {
			return true
		}
	}
	return false
}

func looksLikeKeyword(s string) bool {
	switch s {
	case "true", "false", "T", "F", "null", "N", "NaN", "Inf", "+Inf", "-Inf":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
