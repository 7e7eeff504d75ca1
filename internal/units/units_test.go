package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGwei(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer gwei", in: "5", want: "5000000000"},
		{name: "fractional gwei", in: "1.5", want: "1500000000"},
		{name: "sub gwei", in: "0.1", want: "100000000"},
		{name: "one wei", in: "0.000000001", want: "1"},
		{name: "truncates below one wei", in: "1.0000000005", want: "1000000000"},
		{name: "leading dot", in: ".25", want: "250000000"},
		{name: "trailing dot", in: "2.", want: "2000000000"},
		{name: "whitespace trimmed", in: " 3 ", want: "3000000000"},
		{name: "zero", in: "0", want: "0"},
		{name: "empty", in: "", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
		{name: "not a number", in: "abc", wantErr: true},
		{name: "bare dot", in: ".", wantErr: true},
		{name: "two dots", in: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGwei(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseEther(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "1", want: "1000000000000000000"},
		{in: "0.001", want: "1000000000000000"},
		{in: "12.345", want: "12345000000000000000"},
		// 19 fraction digits: the last one is below a wei and is dropped.
		{in: "0.0000000000000000019", want: "1"},
	}

	for _, tt := range tests {
		got, err := ParseEther(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "ParseEther(%q)", tt.in)
	}
}
