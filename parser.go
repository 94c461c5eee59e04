package iobject

import "strings"

// ParserOptions configures the AST parser. Currently empty; reserved for
// future recovery-policy knobs.
type ParserOptions struct{}

// Parser turns a read-only token slice into a DocumentNode plus an
// accumulated error list, applying the three-tier recovery model from
// §4.2: token-level (an ERROR token becomes an ErrorNode in place),
// collection-level (a bad collection item is replaced with an ErrorNode
// and scanning resumes at the next '~' or '---'), and section-level (a
// bad token outside any collection turns the whole section body into one
// ErrorNode and parsing resumes at the next '---' or end of input; the
// section's members are not kept).
type Parser struct {
	tokens []Token
	pos    int
	errors []*CodecError
}

// NewParser wraps a token slice for parsing.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

var eofToken = Token{Kind: UNKNOWN}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return eofToken
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return eofToken
	}
	return p.tokens[idx]
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) currentPos() Position {
	return p.current().Pos()
}

func (p *Parser) lastPos() Position {
	if p.pos == 0 {
		return Position{Row: 1, Col: 1}
	}
	if p.pos <= len(p.tokens) {
		return p.tokens[p.pos-1].Range().End
	}
	return p.currentPos()
}

func (p *Parser) addError(err *CodecError) {
	if err != nil {
		p.errors = append(p.errors, err)
	}
}

// Parse runs the parser to completion and returns the DocumentNode.
func (p *Parser) Parse() *DocumentNode {
	if len(p.tokens) == 0 {
		return &DocumentNode{}
	}

	start := p.currentPos()
	leadingSep := false
	if p.current().Kind == SECTION_SEP {
		p.advance()
		leadingSep = true
	}

	var sections []*SectionNode
	sections = append(sections, p.parseSection())
	for p.current().Kind == SECTION_SEP {
		p.advance()
		sections = append(sections, p.parseSection())
	}

	var header *SectionNode
	var dataSections []*SectionNode
	if !leadingSep && len(sections) > 1 {
		header = sections[0]
		dataSections = sections[1:]
	} else {
		dataSections = sections
	}

	p.dedupeSectionNames(dataSections)

	return &DocumentNode{
		Header:   header,
		Sections: dataSections,
		Errors:   p.errors,
		Span:     PositionRange{Start: start, End: p.lastPos()},
	}
}

func (p *Parser) dedupeSectionNames(sections []*SectionNode) {
	seen := make(map[string]int, len(sections))
	for _, s := range sections {
		name := s.Name()
		if n, exists := seen[name]; exists {
			n++
			seen[name] = n
			renamed := name + "_" + itoa(n)
			p.addError(NewCodecError(KindDuplicateSection, "duplicate section name "+name, s.Range()))
			s.NameToken = &TokenNode{Tok: Token{Kind: STRING, SubKind: SubStringOpen, Text: renamed, Value: renamed, Span: s.Span}}
		} else {
			seen[name] = 1
		}
	}
}

// parseSection implements the §4.2 state machine: Start (optional
// name/schema tokens) -> Body (Collection, Object, or empty) -> End.
func (p *Parser) parseSection() *SectionNode {
	start := p.currentPos()
	nameTok, schemaTok := p.tryParseSectionHeader()

	var child Node
	switch {
	case p.current().Kind == COLLECTION_START:
		child = p.parseCollection()
	case p.current().Kind != SECTION_SEP && p.current().Kind != UNKNOWN:
		child = p.parseObjectOrValue()
	}

	return &SectionNode{Child: child, NameToken: nameTok, SchemaToken: schemaTok, Span: PositionRange{Start: start, End: p.lastPos()}}
}

func isOpenStringToken(t Token) bool {
	return t.Kind == STRING && t.SubKind == SubStringOpen
}

func isSectionBoundary(t Token) bool {
	switch t.Kind {
	case SECTION_SEP, COLLECTION_START, UNKNOWN, CURLY_OPEN:
		return true
	}
	return false
}

// tryParseSectionHeader consumes an optional "[name] [':' schemaRef]"
// prefix, rewinding if the lookahead doesn't actually look like a
// section header (i.e. it's the start of the body instead). A schema
// reference is only recognized when it is an open string starting with
// '$' (§4.1 "an open string starting with $"); a bare "key: value" whose
// value isn't $-prefixed is ordinary body data, not a header.
func (p *Parser) tryParseSectionHeader() (*TokenNode, *TokenNode) {
	if !isOpenStringToken(p.current()) {
		return nil, nil
	}
	cand := p.current()
	nxt := p.peekAt(1)

	if nxt.Kind == COLON {
		after := p.peekAt(2)
		if isOpenStringToken(after) && strings.HasPrefix(textOf(after), "$") {
			p.advance() // name
			p.advance() // colon
			schema := &TokenNode{Tok: p.current()}
			p.advance()
			return &TokenNode{Tok: cand}, schema
		}
		return nil, nil
	}

	if strings.HasPrefix(textOf(cand), "$") && isSectionBoundary(nxt) {
		p.advance()
		return nil, &TokenNode{Tok: cand}
	}

	if isSectionBoundary(nxt) {
		p.advance()
		return &TokenNode{Tok: cand}, nil
	}

	return nil, nil
}

func (p *Parser) parseCollection() *CollectionNode {
	start := p.currentPos()
	var items []Node
	for p.current().Kind == COLLECTION_START {
		p.advance()
		items = append(items, p.parseCollectionItem())
	}
	return &CollectionNode{Items: items, Span: PositionRange{Start: start, End: p.lastPos()}}
}

// parseCollectionItem applies tier-2 recovery: a syntax error inside a
// collection item becomes an ErrorNode, and scanning resumes at the next
// COLLECTION_START or SECTION_SEP (§4.2).
func (p *Parser) parseCollectionItem() Node {
	itemStart := p.currentPos()
	node, err := p.parseObjectOrValueE()
	if err != nil {
		p.addError(err)
		p.recoverTo(func(t Token) bool {
			return t.Kind == COLLECTION_START || t.Kind == SECTION_SEP || t.Kind == UNKNOWN
		})
		return &ErrorNode{Err: err, Span: PositionRange{Start: itemStart, End: p.lastPos()}}
	}
	return node
}

func (p *Parser) recoverTo(stop func(Token) bool) {
	for !stop(p.current()) && p.current().Kind != UNKNOWN {
		p.advance()
	}
}

// parseObjectOrValue parses a section body at the root: an open object
// (no braces) delimited by commas and terminated by a section boundary,
// a braced object, or a bare value. Parse errors at this level apply
// tier-3 (section-level) recovery: the whole section becomes an
// ErrorNode and scanning resumes at the next SECTION_SEP/EOF, never
// stopping short at some other terminator nested inside the section
// (a comma, a bracket) — doing so would leave the remainder of the
// section, and every section after it, unconsumed and silently dropped
// from the Document.
func (p *Parser) parseObjectOrValue() Node {
	node, err := p.parseObjectOrValueE()
	if err != nil {
		p.addError(err)
		p.recoverTo(isSectionBoundaryToken)
		return &ErrorNode{Err: err, Span: err.Range}
	}
	return node
}

func isSectionBoundaryToken(t Token) bool {
	switch t.Kind {
	case SECTION_SEP, UNKNOWN:
		return true
	}
	return false
}

func (p *Parser) parseObjectOrValueE() (Node, *CodecError) {
	if p.current().Kind == CURLY_OPEN {
		return p.parseObject(true)
	}
	return p.parseOpenObject()
}

// parseOpenObject parses Members without surrounding braces, per the
// open-object disambiguation rule: a single positional member whose
// value is itself an ObjectNode unwraps to that inner ObjectNode.
//
// A comma with no value before the next comma or a section boundary
// yields an UNDEFINED member — both the interior ("a: 1, , b: 2") and
// trailing ("a: 1,") forms.
//
// The End state requires the next token to be a section boundary
// (SECTION_SEP, EOF, or a following collection marker): two members
// with no separating comma — "a: 1 b: 2" — leaves unreconciled trailing
// tokens here rather than a boundary, which is unexpectedToken, not a
// silently truncated object.
func (p *Parser) parseOpenObject() (Node, *CodecError) {
	start := p.currentPos()
	var members []*MemberNode
	for {
		if isSectionOrSentinelEnd(p.current()) {
			break
		}
		if p.current().Kind == COMMA {
			p.advance()
			members = append(members, undefinedMember(p.lastPos()))
			continue
		}
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)

		if p.current().Kind == COMMA {
			p.advance()
			if isSectionOrSentinelEnd(p.current()) {
				members = append(members, undefinedMember(p.lastPos()))
			}
			continue
		}
		break
	}
	if !isSectionOrSentinelEnd(p.current()) {
		return nil, NewCodecError(KindUnexpectedToken, "unexpected token", p.current().Range())
	}
	span := PositionRange{Start: start, End: p.lastPos()}
	if len(members) == 1 && members[0].Key == nil {
		if obj, ok := members[0].Value.(*ObjectNode); ok {
			return obj, nil
		}
	}
	return &ObjectNode{Members: members, Open: true, Span: span}, nil
}

func isSectionOrSentinelEnd(t Token) bool {
	switch t.Kind {
	case SECTION_SEP, UNKNOWN, COLLECTION_START:
		return true
	}
	return false
}

// parseObject parses a brace-delimited object. braced is always true
// here; the unclosed-construct error (expecting-bracket) spans from the
// opening brace to the last valid token inside, per §4.2. A comma with
// no value before the next comma or the closing brace yields an
// UNDEFINED member, both interior and trailing.
func (p *Parser) parseObject(braced bool) (Node, *CodecError) {
	start := p.currentPos()
	if braced {
		p.advance() // consume '{'
	}
	var members []*MemberNode
	for {
		if p.current().Kind == CURLY_CLOSE {
			p.advance()
			return &ObjectNode{Members: members, Open: false, Span: PositionRange{Start: start, End: p.lastPos()}}, nil
		}
		if p.current().Kind == UNKNOWN || p.current().Kind == SECTION_SEP || p.current().Kind == COLLECTION_START {
			return nil, NewCodecError(KindExpectingBracket, "expecting closing }", PositionRange{Start: start, End: p.lastPos()})
		}
		if p.current().Kind == COMMA {
			p.advance()
			members = append(members, undefinedMember(p.lastPos()))
			continue
		}
		m, err := p.parseMember()
		if err != nil {
			return nil, NewCodecError(KindExpectingBracket, "expecting closing }", PositionRange{Start: start, End: p.lastPos()})
		}
		members = append(members, m)

		if p.current().Kind == COMMA {
			p.advance()
			if p.current().Kind == CURLY_CLOSE {
				members = append(members, undefinedMember(p.lastPos()))
			}
			continue
		}
		if p.current().Kind == CURLY_CLOSE {
			p.advance()
			return &ObjectNode{Members: members, Open: false, Span: PositionRange{Start: start, End: p.lastPos()}}, nil
		}
		return nil, NewCodecError(KindExpectingBracket, "expecting closing }", PositionRange{Start: start, End: p.lastPos()})
	}
}

func undefinedMember(at Position) *MemberNode {
	tok := Token{Kind: UNDEFINED, Span: PositionRange{Start: at, End: at}}
	return &MemberNode{Value: &TokenNode{Tok: tok}, Span: tok.Range()}
}

// parseMember parses "ValidKey ':' Value" or a bare positional "Value".
func (p *Parser) parseMember() (*MemberNode, *CodecError) {
	start := p.currentPos()

	if p.isValidKeyStart() && p.peekAt(1).Kind == COLON {
		keyTok := p.advance()
		p.advance() // colon
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &MemberNode{Key: &TokenNode{Tok: keyTok}, Value: value, Span: PositionRange{Start: start, End: p.lastPos()}}, nil
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &MemberNode{Value: value, Span: PositionRange{Start: start, End: p.lastPos()}}, nil
}

func (p *Parser) isValidKeyStart() bool {
	switch p.current().Kind {
	case STRING, NUMBER, BOOLEAN, NULL:
		return true
	}
	return false
}

func (p *Parser) parseValue() (Node, *CodecError) {
	tok := p.current()
	switch tok.Kind {
	case CURLY_OPEN:
		return p.parseObject(true)
	case BRACKET_OPEN:
		return p.parseArray()
	case ERROR:
		p.advance()
		cerr, _ := tok.Err.(*CodecError)
		return &ErrorNode{Err: cerr, Span: tok.Range()}, nil
	case STRING, NUMBER, BIGINT, DECIMAL, BOOLEAN, NULL, UNDEFINED, DATETIME, DATE, TIME, BINARY:
		p.advance()
		return &TokenNode{Tok: tok}, nil
	default:
		return nil, NewCodecError(KindUnexpectedToken, "unexpected token", tok.Range())
	}
}

// parseArray parses '[' (Value (',' Value)*)? ']'. Arrays forbid empty
// elements: a missing value between commas raises unexpected-token,
// unlike objects which produce an UNDEFINED member (§4.2).
func (p *Parser) parseArray() (Node, *CodecError) {
	start := p.currentPos()
	p.advance() // consume '['
	var elements []Node

	if p.current().Kind == BRACKET_CLOSE {
		p.advance()
		return &ArrayNode{Elements: elements, Span: PositionRange{Start: start, End: p.lastPos()}}, nil
	}

	for {
		if p.current().Kind == COMMA || p.current().Kind == BRACKET_CLOSE {
			return nil, NewCodecError(KindUnexpectedToken, "array elements cannot be empty", p.current().Range())
		}
		el, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)

		if p.current().Kind == COMMA {
			p.advance()
			continue
		}
		if p.current().Kind == BRACKET_CLOSE {
			p.advance()
			return &ArrayNode{Elements: elements, Span: PositionRange{Start: start, End: p.lastPos()}}, nil
		}
		return nil, NewCodecError(KindExpectingBracket, "expecting closing ]", PositionRange{Start: start, End: p.lastPos()})
	}
}
