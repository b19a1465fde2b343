package costing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "integer", input: "2", want: 2},
		{name: "decimal", input: "0.75", want: 0.75},
		{name: "simple fraction", input: "1/4", want: 0.25},
		{name: "mixed fraction", input: "1 1/2", want: 1.5},
		{name: "mixed fraction with extra spaces", input: "  2   3/4 ", want: 2.75},
		{name: "surrounding whitespace", input: "  3 ", want: 3},
		{name: "empty", input: "", want: 0},
		{name: "blank", input: "   ", want: 0},
		{name: "garbage", input: "abc", want: 0},
		{name: "zero denominator", input: "1/0", want: 0},
		{name: "non numeric fraction", input: "a/b", want: 0},
		{name: "too many parts", input: "1 2 3", want: 0},
		{name: "negative", input: "-2.5", want: -2.5},
		{name: "infinity rejected", input: "Inf", want: 0},
		{name: "nan rejected", input: "NaN", want: 0},
		{name: "spaced fraction", input: "1 / 2", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseQuantity(tt.input), 1e-12)
		})
	}
}

func TestQuantity_Float64(t *testing.T) {
	assert.Equal(t, 0.5, Quantity("1/2").Float64())
	assert.Equal(t, 0.0, Quantity("").Float64())
	assert.Equal(t, 12.0, QuantityOf(12).Float64())
	assert.Equal(t, "12", QuantityOf(12).String())
	assert.Equal(t, "0.125", QuantityOf(0.125).String())
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A Quantity `json:"a"`
		B Quantity `json:"b"`
		C Quantity `json:"c"`
	}

	err := json.Unmarshal([]byte(`{"a":"1 1/2","b":2.5,"c":null}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, Quantity("1 1/2"), payload.A)
	assert.Equal(t, Quantity("2.5"), payload.B)
	assert.Equal(t, Quantity(""), payload.C)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1 1/2","b":"2.5","c":""}`, string(out))
}
