package iobject

import (
	"errors"
	"math/big"

	"github.com/goccy/go-json"
)

// BigInt is the document format's arbitrary-precision integer value
// primitive, backed by math/big.Int — the standard library's exact
// integer type, not an ecosystem concern any pack dependency covers more
// idiomatically (see DESIGN.md).
type BigInt struct {
	*big.Int
}

// NewBigInt parses s (an integer, optionally with a trailing 'n'
// literal suffix already stripped by the tokenizer) as a BigInt.
func NewBigInt(s string) (*BigInt, bool) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return &BigInt{Int: i}, true
}

func (b *BigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Int.String())
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return errors.New("iobject: invalid bigint literal " + s)
	}
	b.Int = i
	return nil
}
