package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{"1.005", "1.005", true}, // kept exactly, no rounding
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.out, got.String(), tc.in)
		} else {
			assert.ErrorIs(t, err, ErrInvalidAmount, tc.in)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Money `json:"a"`
	}{NewMoney(12.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12.5}`, string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`250`), &m))
	assert.True(t, m.Equal(NewMoney(250)))
	require.NoError(t, json.Unmarshal([]byte(`"99.9"`), &m))
	assert.True(t, m.Equal(NewMoney(99.9)))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
}

func TestMoneyArithmetic(t *testing.T) {
	sum := NewMoney(250).Add(NewMoney(50))
	assert.Equal(t, "300", sum.String())
	assert.Equal(t, "-50", NewMoney(250).Sub(NewMoney(300)).String())
	assert.True(t, Zero.Equal(NewMoney(0)))
	assert.ErrorIs(t, Zero.Validate(), ErrInvalidAmount)
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "$1,234.50", NewMoney(1234.5).Format("USD"))
	assert.Equal(t, "$0.01", NewMoney(0.005).Format("USD"))
	assert.Equal(t, "12.30 XYZ", NewMoney(12.3).Format("XYZ"))
	assert.True(t, ValidCurrency("INR"))
	assert.True(t, ValidCurrency("EUR"))
	assert.False(t, ValidCurrency("XYZ"))
	assert.False(t, ValidCurrency(""))
}
