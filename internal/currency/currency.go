package currency

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Currency is a non-negative whole number of cookies with no upper bound.
// The zero value is 0 and ready to use.
type Currency struct {
	d decimal.Decimal
}

var Zero = Currency{}

func FromInt64(v int64) Currency {
	if v <= 0 {
		return Zero
	}
	return Currency{d: decimal.NewFromInt(v)}
}

func FromUint64(v uint64) Currency {
	return Currency{d: decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)}
}

func FromBigInt(v *big.Int) Currency {
	if v == nil || v.Sign() <= 0 {
		return Zero
	}
	return Currency{d: decimal.NewFromBigInt(new(big.Int).Set(v), 0)}
}

// FromDecimal truncates d toward zero. Negative values become 0.
func FromDecimal(d decimal.Decimal) Currency {
	if d.Sign() <= 0 {
		return Zero
	}
	return Currency{d: d.Truncate(0)}
}

// FromFloat truncates f toward zero. ok is false when f is NaN or infinite,
// in which case the result is 0.
func FromFloat(f float64) (c Currency, ok bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero, false
	}
	if f < 1 {
		return Zero, true
	}
	return FromDecimal(decimal.NewFromFloat(f)), true
}

// Parse accepts plain digits, underscores as digit separators and
// exponent notation ("1e11"). Fractions are truncated.
func Parse(s string) (Currency, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return Zero, fmt.Errorf("parse currency: empty value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parse currency %q: %w", s, err)
	}
	if d.Sign() < 0 {
		return Zero, fmt.Errorf("parse currency %q: negative amount", s)
	}
	return FromDecimal(d), nil
}

func MustParse(s string) Currency {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) Decimal() decimal.Decimal { return c.d }

func (c Currency) BigInt() *big.Int { return c.d.BigInt() }

func (c Currency) Add(o Currency) Currency {
	return Currency{d: c.d.Add(o.d)}
}

// Sub returns c-o. ok is false (and c is returned unchanged) when o > c.
func (c Currency) Sub(o Currency) (Currency, bool) {
	if c.d.Cmp(o.d) < 0 {
		return c, false
	}
	return Currency{d: c.d.Sub(o.d)}, true
}

func (c Currency) Mul(n uint64) Currency {
	return Currency{d: c.d.Mul(FromUint64(n).d)}
}

// MulFloat returns c*f truncated toward zero. Negative, NaN and infinite
// factors give 0.
func (c Currency) MulFloat(f float64) Currency {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return Zero
	}
	return FromDecimal(c.d.Mul(decimal.NewFromFloat(f)))
}

func (c Currency) MulCurrency(o Currency) Currency {
	return Currency{d: c.d.Mul(o.d)}
}

// Div returns floor(c / n). Division by zero returns 0.
func (c Currency) Div(n uint64) Currency {
	if n == 0 {
		return Zero
	}
	q := new(big.Int).Quo(c.d.BigInt(), new(big.Int).SetUint64(n))
	return FromBigInt(q)
}

func (c Currency) Cmp(o Currency) int { return c.d.Cmp(o.d) }

func (c Currency) GreaterOrEqual(o Currency) bool { return c.d.Cmp(o.d) >= 0 }

func (c Currency) LessThan(o Currency) bool { return c.d.Cmp(o.d) < 0 }

func (c Currency) Equal(o Currency) bool { return c.d.Equal(o.d) }

func (c Currency) IsZero() bool { return c.d.IsZero() }

// Float64 is lossy above 2^53.
func (c Currency) Float64() float64 { return c.d.InexactFloat64() }

func (c Currency) String() string { return c.d.String() }

var suffixes = [...]string{
	"", "K", "M", "B", "T",
	"Qa", "Qi", "Sx", "Sp", "Oc",
	"No", "Dc", "Ud", "Dd", "Td",
}

// Short renders large amounts with a magnitude suffix, e.g. "1.500K" or
// "12.35Qa". Amounts below 1000 are printed in full.
func (c Currency) Short() string {
	if c.d.Cmp(decimal.NewFromInt(1000)) < 0 {
		return c.String()
	}

	unit := 0
	value := c.Float64()
	for value >= 1000 && unit < len(suffixes)-1 {
		value /= 1000
		unit++
	}

	decimals := 3
	switch {
	case value >= 100:
		decimals = 1
	case value >= 10:
		decimals = 2
	}
	return fmt.Sprintf("%.*f%s", decimals, value, suffixes[unit])
}

func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Currency) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decode currency: %w", err)
	}
	if d.Sign() < 0 {
		return fmt.Errorf("decode currency: negative amount %s", d.String())
	}
	*c = FromDecimal(d)
	return nil
}

func (c *Currency) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: currency must be a scalar", value.Line)
	}
	parsed, err := Parse(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

func (c Currency) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}
