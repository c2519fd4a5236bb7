package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tabsplit/internal/apperr"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "12.50", want: "12.5"},
		{in: "$3", want: "3"},
		{in: " 7 ", want: "7"},
		{in: "0.125", want: "0.125"},
		{in: "999999999.999999", want: "999999999.999999"},
		{in: "1e9", wantErr: true},
		{in: "1e400000000", wantErr: true},
		{in: "1E-400000000", wantErr: true},
		{in: "1234567890", wantErr: true},
		{in: "1.1234567", wantErr: true},
		{in: strings.Repeat("9", 4096), wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1,200.00", wantErr: true},
		{in: "0x10", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		name := tt.in
		if len(name) > 20 {
			name = name[:20] + "..."
		}
		t.Run(name, func(t *testing.T) {
			d, err := parseMoney("price", tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}
