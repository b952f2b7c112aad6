package ledger

import "github.com/shopspring/decimal"

// ResolveShares turns a declared split into a percentage pair summing to 100.
// Negative inputs count as 0, a 0/0 split becomes 50/50 and any other sum is
// rescaled with ShareB taking the remainder of ShareA.
func ResolveShares(a, b int) (int, int) {
	a, b = max(a, 0), max(b, 0)

	sum := a + b

	switch {
	case sum == 0:
		return 50, 50
	case sum == 100:
		return a, b
	}

	// round(a*100/sum), halves rounded up
	shareA := (200*a + sum) / (2 * sum)

	return shareA, 100 - shareA
}

// SplitOwed divides amount between the two participants. The second part is
// the complement of the first so the parts always add back to amount.
func SplitOwed(amount int64, shareA int) (int64, int64) {
	owedA := decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(int64(shareA))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return owedA, amount - owedA
}
