package currency

import (
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	conv := NewConverter(DefaultRates())

	tests := []struct {
		name          string
		amount        float64
		from, to      string
		want          float64
		wantConverted bool
	}{
		{
			name:          "known rate EUR to USD",
			amount:        100,
			from:          EUR,
			to:            USD,
			want:          109,
			wantConverted: true,
		},
		{
			name:          "known rate USD to INR",
			amount:        10,
			from:          USD,
			to:            INR,
			want:          831,
			wantConverted: true,
		},
		{
			name:          "missing rate passes amount through",
			amount:        50,
			from:          "XYZ",
			to:            USD,
			want:          50,
			wantConverted: false,
		},
		{
			name:          "missing target passes amount through",
			amount:        50,
			from:          USD,
			to:            "XYZ",
			want:          50,
			wantConverted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conv.Convert(tt.amount, tt.from, tt.to)
			if math.Abs(got.Amount-tt.want) > 0.001 {
				t.Errorf("Convert(%v, %s, %s).Amount = %v, want %v",
					tt.amount, tt.from, tt.to, got.Amount, tt.want)
			}
			if got.Converted != tt.wantConverted {
				t.Errorf("Convert(%v, %s, %s).Converted = %v, want %v",
					tt.amount, tt.from, tt.to, got.Converted, tt.wantConverted)
			}
		})
	}
}

func TestConvertIdentity(t *testing.T) {
	// Same-currency conversion must be exact, even for currencies the
	// table has never heard of.
	conv := NewConverter(DefaultRates())

	for _, code := range append([]string{"XYZ"}, Codes...) {
		for _, amount := range []float64{0, 0.01, 33.33, 1e9} {
			got := conv.Convert(amount, code, code)
			if got.Amount != amount {
				t.Errorf("Convert(%v, %s, %s) = %v, want exact %v", amount, code, code, got.Amount, amount)
			}
			if !got.Converted {
				t.Errorf("Convert(%v, %s, %s).Converted = false, want true", amount, code, code)
			}
		}
	}
}

func TestConvertSelfRates(t *testing.T) {
	rates := DefaultRates()
	for _, code := range Codes {
		if rates[code][code] != 1 {
			t.Errorf("self-rate for %s = %v, want 1", code, rates[code][code])
		}
	}
}

func TestConvertSyntheticTable(t *testing.T) {
	// An injected table can be deliberately inconsistent: a round trip
	// through a lossy pair does not restore the original amount.
	conv := NewConverter(RateTable{
		"AAA": {"BBB": 2},
		"BBB": {"AAA": 0.4},
	})

	there := conv.Convert(100, "AAA", "BBB")
	if !there.Converted || there.Amount != 200 {
		t.Fatalf("AAA->BBB = %+v, want {200 true}", there)
	}

	back := conv.Convert(there.Amount, "BBB", "AAA")
	if !back.Converted {
		t.Fatalf("BBB->AAA not converted")
	}
	if back.Amount == 100 {
		t.Errorf("round trip restored the original amount; table rates are independent and should not")
	}

	// Pair present one way only.
	missing := conv.Convert(10, "BBB", "CCC")
	if missing.Converted || missing.Amount != 10 {
		t.Errorf("BBB->CCC = %+v, want pass-through {10 false}", missing)
	}
}
