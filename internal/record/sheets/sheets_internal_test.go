package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnName(t *testing.T) {
	tests := map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"}

	for n, want := range tests {
		assert.Equal(t, want, columnName(n), n)
	}
}

func TestRangeOf(t *testing.T) {
	assert.Equal(t, "A1", (&Store{}).rangeOf("A1"))
	assert.Equal(t, "'Gastos'!1:1", (&Store{sheet: "Gastos"}).rangeOf("1:1"))
	assert.Equal(t, "'Ana''s'!A2", (&Store{sheet: "Ana's"}).rangeOf("A2"))
}

func TestCellStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "", "12.5", "true"}, cellStrings([]any{"a", nil, 12.5, true}))
}
