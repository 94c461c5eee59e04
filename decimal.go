package iobject

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/goccy/go-json"
)

// Decimal is the document format's arbitrary-precision decimal value
// primitive, backed by apd.Decimal. Precision/scale handling is the
// library's contract (§1 "its internal algorithms are not part of this
// spec"); this wrapper only adds the JSON and canonical-text convenience
// the rest of the codec needs.
type Decimal struct {
	*apd.Decimal
}

var decimalContext = apd.BaseContext.WithPrecision(34)

// NewDecimal parses s into a Decimal exactly as written, via
// apd.NewFromString; the package-wide decimalContext (34 digits) is not
// applied at parse time.
func NewDecimal(s string) (*Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &Decimal{Decimal: d}, nil
}

// Round rounds d to scale decimal places, per the Open Question in §9:
// this implementation rounds on scale overflow rather than raising (see
// DESIGN.md for the rationale).
func (d *Decimal) Round(scale int) (*Decimal, error) {
	out := new(apd.Decimal)
	ctx := decimalContext.WithPrecision(decimalContext.Precision)
	_, err := ctx.Quantize(out, d.Decimal, int32(-scale))
	if err != nil {
		return nil, err
	}
	return &Decimal{Decimal: out}, nil
}

// MarshalJSON renders the decimal as a bare JSON number token (its
// canonical text form), matching the teacher's Rat wrapper convention of
// preferring a JSON number over a quoted string whenever the value can
// be represented as one.
func (d *Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s := string(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, _, err := apd.NewFromString(s)
	if err != nil {
		return err
	}
	d.Decimal = parsed
	return nil
}
