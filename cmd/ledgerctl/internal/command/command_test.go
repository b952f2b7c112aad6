package command

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

func TestFilterFlags(t *testing.T) {
	var ff filterFlags

	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	ff.register(fs)
	require.NoError(t, fs.Parse([]string{"-person", "Ana", "-kind", "expense", "-from", "2024-06-01", "-voided"}))

	f, err := ff.filter(time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "Ana", f.Person)
	assert.Equal(t, ledger.KindExpense, f.Kind)
	assert.True(t, f.IncludeVoided)
	require.NotNil(t, f.From)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Nil(t, f.To)
}

func TestFilterFlags_Invalid(t *testing.T) {
	type testCase struct {
		name  string
		flags filterFlags
	}

	tests := []testCase{
		{name: "Kind", flags: filterFlags{kind: "loan"}},
		{name: "From", flags: filterFlags{from: "01/06/2024"}},
		{name: "To", flags: filterFlags{to: "junio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.filter(time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestCompletionCoversCommands(t *testing.T) {
	sub := Completion().Sub

	for _, c := range Commands {
		assert.Contains(t, sub, c.Name())
	}
}
