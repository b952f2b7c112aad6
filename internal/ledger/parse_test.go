package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

func TestParseAmount(t *testing.T) {
	type args struct {
		raw string
	}

	type testCase struct {
		name   string
		args   args
		want   int64
		wantOK bool
	}

	tests := []testCase{
		{name: "CleanInteger", args: args{raw: "100000"}, want: 100000, wantOK: true},
		{name: "SymbolAndCommaDecimal", args: args{raw: "$1.234,56"}, want: 1234, wantOK: true},
		{name: "DotDecimal", args: args{raw: "1,234.56"}, want: 1234, wantOK: true},
		{name: "DotThousands", args: args{raw: "$ 100.000"}, want: 100000, wantOK: true},
		{name: "RepeatedThousands", args: args{raw: "1.234.567"}, want: 1234567, wantOK: true},
		{name: "CommaDecimal", args: args{raw: "12,5"}, want: 12, wantOK: true},
		{name: "Negative", args: args{raw: "-500"}, want: 500, wantOK: true},
		{name: "Whitespace", args: args{raw: "  42 "}, want: 42, wantOK: true},
		{name: "Euro", args: args{raw: "€ 10,99"}, want: 10, wantOK: true},
		{name: "Empty", args: args{raw: ""}, want: 0, wantOK: false},
		{name: "Letters", args: args{raw: "abc"}, want: 0, wantOK: false},
		{name: "SignInTheMiddle", args: args{raw: "5-3"}, want: 0, wantOK: false},
		{name: "OnlySymbol", args: args{raw: "$"}, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ledger.ParseAmount(tt.args.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseDecimal_KeepsFraction(t *testing.T) {
	got, ok := ledger.ParseDecimal("US$12.50")
	assert.False(t, ok, "letters are not stripped")
	assert.True(t, got.IsZero())

	got, ok = ledger.ParseDecimal("$12.50")
	require.True(t, ok)
	assert.Equal(t, "12.5", got.String())
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CLT", -3*60*60)
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, loc)

	tests := []struct {
		name   string
		raw    string
		wantOK bool
	}{
		{name: "DayFirstSlash", raw: "05/01/2024", wantOK: true},
		{name: "DayFirstShort", raw: "5/1/2024", wantOK: true},
		{name: "DayFirstDash", raw: "05-01-2024", wantOK: true},
		{name: "ISO", raw: "2024-01-05", wantOK: true},
		{name: "Timestamp", raw: "2024-01-05 18:30:00", wantOK: true},
		{name: "Empty", raw: "", wantOK: false},
		{name: "Garbage", raw: "yesterday", wantOK: false},
		{name: "ImpossibleDay", raw: "31/02/2024", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ledger.ParseDate(tt.raw, loc)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.True(t, got.Equal(want), "got %s", got)
			}
		})
	}
}

func TestParseFlag(t *testing.T) {
	for _, raw := range []string{"true", "TRUE", "1", "si", "Sí", "yes", "Y", " y "} {
		assert.True(t, ledger.ParseFlag(raw), raw)
	}

	for _, raw := range []string{"", "false", "0", "no", "nope", "x"} {
		assert.False(t, ledger.ParseFlag(raw), raw)
	}
}

func TestParseShare(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{raw: "70", want: 70, wantOK: true},
		{raw: "", want: 0, wantOK: true},
		{raw: "-5", want: 0, wantOK: true},
		{raw: "33.6", want: 33, wantOK: true},
		{raw: "50%", want: 50, wantOK: true},
		{raw: "half", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ledger.ParseShare(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
