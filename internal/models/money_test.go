package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"0", nil},
		{"12.50", nil},
		{"0.000001", nil},
		{"999999999.999999", nil},
		{"1e3", nil},
		{"1e9", ErrAmountOutOfRange},
		{"1000000000", ErrAmountOutOfRange},
		{"1e400000000", ErrAmountOutOfRange},
		{"1E-400000000", ErrAmountOutOfRange},
		{"0.0000001", ErrAmountOutOfRange},
		{"-0.01", ErrAmountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.want, CheckAmount(d))
		})
	}
}
