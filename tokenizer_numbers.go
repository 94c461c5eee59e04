package iobject

import (
	"math"
	"strconv"
	"strings"
)

// scanNumber scans the numeric literal forms of §4.1: decimal integer
// (optionally BIGINT via trailing 'n' or DECIMAL via trailing 'm'),
// float (fraction and/or exponent), 0x/0o/0b prefixed integers, and the
// special spellings NaN/+Inf/-Inf.
func (t *Tokenizer) scanNumber(start Position) (Token, bool) {
	var sb strings.Builder
	neg := false
	if t.ch == '-' || t.ch == '+' {
		neg = t.ch == '-'
		sb.WriteRune(t.ch)
		t.advance()
	}

	if t.ch == 'I' && t.peekIs("nf") {
		sb.WriteString("Inf")
		t.advance()
		t.advance()
		t.advance()
		end := t.pos()
		val := math.Inf(1)
		if neg {
			val = math.Inf(-1)
		}
		return Token{Span: PositionRange{start, end}, Text: sb.String(), Kind: NUMBER, Value: val}, true
	}

	if t.ch == '0' && (t.peekByte() == 'x' || t.peekByte() == 'X') {
		return t.scanRadixInt(start, sb.String(), 16, SubNumberHex)
	}
	if t.ch == '0' && (t.peekByte() == 'o' || t.peekByte() == 'O') {
		return t.scanRadixInt(start, sb.String(), 8, SubNumberOctal)
	}
	if t.ch == '0' && (t.peekByte() == 'b' || t.peekByte() == 'B') {
		return t.scanRadixInt(start, sb.String(), 2, SubNumberBinary)
	}

	for isDigit(t.ch) {
		sb.WriteRune(t.ch)
		t.advance()
	}

	isFloat := false
	if t.ch == '.' && isDigit(rune(t.peekByte())) {
		isFloat = true
		sb.WriteRune(t.ch)
		t.advance()
		for isDigit(t.ch) {
			sb.WriteRune(t.ch)
			t.advance()
		}
	}
	if t.ch == 'e' || t.ch == 'E' {
		isFloat = true
		sb.WriteRune(t.ch)
		t.advance()
		if t.ch == '+' || t.ch == '-' {
			sb.WriteRune(t.ch)
			t.advance()
		}
		for isDigit(t.ch) {
			sb.WriteRune(t.ch)
			t.advance()
		}
	}

	text := sb.String()

	if t.ch == 'n' && !isFloat {
		t.advance()
		end := t.pos()
		bi, ok := NewBigInt(text)
		if !ok {
			err := NewCodecError(KindInvalidValue, "invalid bigint literal", PositionRange{start, end})
			return Token{Span: PositionRange{start, end}, Kind: ERROR, Err: err}, true
		}
		return Token{Span: PositionRange{start, end}, Text: text + "n", Kind: BIGINT, Value: bi}, true
	}
	if t.ch == 'm' {
		t.advance()
		end := t.pos()
		dec, err := NewDecimal(text)
		if err != nil {
			cerr := NewCodecError(KindInvalidValue, "invalid decimal literal", PositionRange{start, end})
			return Token{Span: PositionRange{start, end}, Kind: ERROR, Err: cerr}, true
		}
		return Token{Span: PositionRange{start, end}, Text: text + "m", Kind: DECIMAL, Value: dec}, true
	}

	end := t.pos()
	if isFloat {
		f, _ := strconv.ParseFloat(text, 64)
		return Token{Span: PositionRange{start, end}, Text: text, Kind: NUMBER, SubKind: SubNumberDecimal, Value: f}, true
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(text, 64)
		return Token{Span: PositionRange{start, end}, Text: text, Kind: NUMBER, SubKind: SubNumberDecimal, Value: f}, true
	}
	return Token{Span: PositionRange{start, end}, Text: text, Kind: NUMBER, SubKind: SubNumberDecimal, Value: i}, true
}

func (t *Tokenizer) scanRadixInt(start Position, prefix string, base int, sub SubKind) (Token, bool) {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteRune(t.ch) // '0'
	t.advance()
	sb.WriteRune(t.ch) // 'x'/'o'/'b'
	t.advance()

	var digits strings.Builder
	for isRadixDigit(t.ch, base) {
		digits.WriteRune(t.ch)
		sb.WriteRune(t.ch)
		t.advance()
	}
	end := t.pos()
	text := sb.String()
	i, err := strconv.ParseInt(digits.String(), base, 64)
	if err != nil {
		cerr := NewCodecError(KindInvalidValue, "invalid numeric literal "+text, PositionRange{start, end})
		return Token{Span: PositionRange{start, end}, Kind: ERROR, Err: cerr}, true
	}
	return Token{Span: PositionRange{start, end}, Text: text, Kind: NUMBER, SubKind: sub, Value: i}, true
}

func isRadixDigit(r rune, base int) bool {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'z':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return false
	}
	return v < base
}
