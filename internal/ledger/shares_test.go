package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

func TestResolveShares(t *testing.T) {
	type args struct {
		a, b int
	}

	type testCase struct {
		name  string
		args  args
		wantA int
		wantB int
	}

	tests := []testCase{
		{name: "PassThrough", args: args{a: 70, b: 30}, wantA: 70, wantB: 30},
		{name: "BothZero", args: args{a: 0, b: 0}, wantA: 50, wantB: 50},
		{name: "Rescale", args: args{a: 3, b: 2}, wantA: 60, wantB: 40},
		{name: "RescaleRoundsDown", args: args{a: 1, b: 2}, wantA: 33, wantB: 67},
		{name: "RescaleRoundsUp", args: args{a: 2, b: 1}, wantA: 67, wantB: 33},
		{name: "OverHundred", args: args{a: 150, b: 50}, wantA: 75, wantB: 25},
		{name: "NegativeClampedToZeroSum", args: args{a: -10, b: 0}, wantA: 50, wantB: 50},
		{name: "NegativeClamped", args: args{a: -5, b: 10}, wantA: 0, wantB: 100},
		{name: "AllToB", args: args{a: 0, b: 100}, wantA: 0, wantB: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := ledger.ResolveShares(tt.args.a, tt.args.b)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
		})
	}
}

func TestResolveShares_AlwaysSumsToHundred(t *testing.T) {
	for a := -20; a <= 250; a += 7 {
		for b := -20; b <= 250; b += 11 {
			shareA, shareB := ledger.ResolveShares(a, b)

			assert.Equal(t, 100, shareA+shareB, "a=%d b=%d", a, b)
			assert.GreaterOrEqual(t, shareA, 0)
			assert.LessOrEqual(t, shareA, 100)
			assert.GreaterOrEqual(t, shareB, 0)
			assert.LessOrEqual(t, shareB, 100)
		}
	}
}

func TestResolveShares_Deterministic(t *testing.T) {
	a1, b1 := ledger.ResolveShares(17, 29)
	a2, b2 := ledger.ResolveShares(17, 29)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestSplitOwed(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		shareA int
		wantA  int64
		wantB  int64
	}{
		{name: "Even", amount: 100000, shareA: 50, wantA: 50000, wantB: 50000},
		{name: "SeventyThirty", amount: 100000, shareA: 70, wantA: 70000, wantB: 30000},
		{name: "HalfUnitRoundsUp", amount: 101, shareA: 50, wantA: 51, wantB: 50},
		{name: "Small", amount: 3, shareA: 33, wantA: 1, wantB: 2},
		{name: "Zero", amount: 0, shareA: 60, wantA: 0, wantB: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := ledger.SplitOwed(tt.amount, tt.shareA)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
		})
	}
}

func TestSplitOwed_NoRoundingLeak(t *testing.T) {
	for amount := int64(0); amount <= 2000; amount += 37 {
		for share := 0; share <= 100; share += 3 {
			a, b := ledger.SplitOwed(amount, share)
			assert.Equal(t, amount, a+b, "amount=%d share=%d", amount, share)
		}
	}
}
