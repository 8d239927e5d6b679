package claims

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestNetFee(t *testing.T) {
	tests := []struct {
		name                                             string
		providerFees, coinsurance, copay, allowed, want string
	}{
		{"typical", "100.00", "16.25", "0.00", "80.00", "36.25"},
		{"round numbers", "50", "10", "5", "20", "45.00"},
		{"all zero", "0", "0", "0", "0", "0"},
		{"negative result", "10.00", "0.00", "0.00", "50.00", "-40.00"},
		{"cents exact", "0.10", "0.20", "0.30", "0.00", "0.60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetFee(d(tt.providerFees), d(tt.coinsurance), d(tt.copay), d(tt.allowed))
			if !got.Equal(d(tt.want)) {
				t.Errorf("NetFee() = %s, want %s", got, tt.want)
			}
		})
	}
}

// Random cent amounts must match exact integer arithmetic. Float math would
// drift on sums like 0.10 + 0.20.
func TestNetFeeCentExact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		pf := rng.Int63n(10_000_00)
		co := rng.Int63n(10_000_00)
		cp := rng.Int63n(10_000_00)
		al := rng.Int63n(10_000_00)

		got := NetFee(
			decimal.New(pf, -2),
			decimal.New(co, -2),
			decimal.New(cp, -2),
			decimal.New(al, -2),
		)
		want := decimal.New(pf+co+cp-al, -2)
		if !got.Equal(want) {
			t.Fatalf("NetFee(%d,%d,%d,%d cents) = %s, want %s", pf, co, cp, al, got, want)
		}
	}
}
