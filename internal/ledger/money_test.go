package ledger

import "testing"

func TestAmountString(t *testing.T) {
	tests := []struct {
		amount Amount
		want   string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1250, "$12.50"},
		{Dollars(130), "$130.00"},
		{-130, "-$1.30"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.amount.String(); got != tt.want {
				t.Errorf("Amount(%d).String() = %q, want %q", int64(tt.amount), got, tt.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Alice "); got != "alice" {
		t.Errorf("NormalizeName() = %q, want %q", got, "alice")
	}
}
