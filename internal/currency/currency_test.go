package currency

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"15", "15"},
		{"1_400_000", "1400000"},
		{"1e11", "100000000000"},
		{"3000000000000000000000000", "3000000000000000000000000"},
		{"17.99", "17"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			c, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.String())
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "-5", "abc"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestArithmetic_BeyondUint64(t *testing.T) {
	big := MustParse("18446744073709551615") // max uint64
	sum := big.Add(FromInt64(1))
	assert.Equal(t, "18446744073709551616", sum.String())

	product := big.Mul(1_000_000)
	assert.Equal(t, "18446744073709551615000000", product.String())

	assert.Equal(t, "18446744073709551615", product.Div(1_000_000).String())
}

func TestSub_NeverNegative(t *testing.T) {
	c := FromInt64(10)

	out, ok := c.Sub(FromInt64(11))
	assert.False(t, ok)
	assert.Equal(t, "10", out.String())

	out, ok = c.Sub(FromInt64(10))
	assert.True(t, ok)
	assert.True(t, out.IsZero())
}

func TestFromFloat(t *testing.T) {
	c, ok := FromFloat(17.25)
	assert.True(t, ok)
	assert.Equal(t, "17", c.String())

	c, ok = FromFloat(0.9)
	assert.True(t, ok)
	assert.True(t, c.IsZero())

	c, ok = FromFloat(-3)
	assert.True(t, ok)
	assert.True(t, c.IsZero())

	_, ok = FromFloat(math.NaN())
	assert.False(t, ok)
	_, ok = FromFloat(math.Inf(1))
	assert.False(t, ok)

	c, ok = FromFloat(1e25)
	assert.True(t, ok)
	assert.Equal(t, "10000000000000000000000000", c.String())
}

func TestShort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"999", "999"},
		{"1500", "1.500K"},
		{"12346", "12.35K"},
		{"123456", "123.5K"},
		{"1000000", "1.000M"},
		{"2500000000", "2.500B"},
		{"1000000000000000", "1.000Qa"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MustParse(tc.in).Short(), tc.in)
	}
}

func TestJSON_RoundTripAsString(t *testing.T) {
	c := MustParse("123456789012345678901234567890")
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"123456789012345678901234567890"`, string(b))

	var back Currency
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(c))

	require.NoError(t, json.Unmarshal([]byte(`42`), &back))
	assert.Equal(t, "42", back.String())

	assert.Error(t, json.Unmarshal([]byte(`"-1"`), &back))
}

func TestYAML(t *testing.T) {
	var doc struct {
		Cost Currency `yaml:"cost"`
		Big  Currency `yaml:"big"`
	}
	err := yaml.Unmarshal([]byte("cost: 1_100\nbig: \"5_000_000_000_000_000_000_000\"\n"), &doc)
	require.NoError(t, err)
	assert.Equal(t, "1100", doc.Cost.String())
	assert.Equal(t, "5000000000000000000000", doc.Big.String())
}

func TestZeroValue(t *testing.T) {
	var c Currency
	assert.True(t, c.IsZero())
	assert.Equal(t, "0", c.String())
	assert.Equal(t, "5", c.Add(FromInt64(5)).String())
}

func TestMulFloat(t *testing.T) {
	c := FromInt64(1000)
	assert.Equal(t, "1150", c.MulFloat(1.15).String())
	assert.Equal(t, "333", c.MulFloat(0.3333).String())
	assert.True(t, c.MulFloat(-2).IsZero())
	assert.True(t, c.MulFloat(math.NaN()).IsZero())
	assert.True(t, c.MulFloat(math.Inf(1)).IsZero())

	huge := MustParse("1e40")
	assert.Equal(t, "25"+strings.Repeat("0", 39), huge.MulFloat(2.5).String())
}
