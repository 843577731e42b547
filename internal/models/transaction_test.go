package models

import "testing"

func TestParseTransactionKind(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionKind
		wantErr bool
	}{
		{"BUY", KindBuy, false},
		{"sell", KindSell, false},
		{" Restructure_Out ", KindRestructureOut, false},
		{"RESTRUCTURE_IN", KindRestructureIn, false},
		{"TRANSFER", KindTransfer, false},
		{"EXCLUDE", KindExclude, false},
		{"", KindBuy, false}, // legacy records predate the column
		{"SHORT", "", true},
		{"BUY ", KindBuy, false},
	}
	for _, tt := range tests {
		got, err := ParseTransactionKind(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTransactionKind(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTransactionKind(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTransactionKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSignedQuantity(t *testing.T) {
	tests := []struct {
		kind TransactionKind
		raw  float64
		want float64
	}{
		{KindBuy, 5, 5},
		{KindBuy, -5, 5},
		{KindSell, 3, -3},
		{KindSell, -3, -3},
		{KindRestructureOut, 7, -7},
		{KindRestructureIn, -7, 7},
		{KindTransfer, -2, -2},
		{KindTransfer, 2, 2},
		{KindExclude, -1, -1},
	}
	for _, tt := range tests {
		if got := tt.kind.SignedQuantity(tt.raw); got != tt.want {
			t.Errorf("%s.SignedQuantity(%v) = %v, want %v", tt.kind, tt.raw, got, tt.want)
		}
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ViewMode
		wantErr bool
	}{
		{"", ViewHoldings, false},
		{"holdings", ViewHoldings, false},
		{"HOLDINGS", ViewHoldings, false},
		{"original", ViewOriginal, false},
		{"totals", ViewTotals, false},
		{"fifo", "", true},
	}
	for _, tt := range tests {
		got, err := ParseViewMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseViewMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseViewMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIncludedByDefault(t *testing.T) {
	var rec TransactionRecord
	if !rec.IncludedByDefault() {
		t.Error("legacy record without include_in_portfolio should default to included")
	}
	excluded := false
	rec.IncludeInPortfolio = &excluded
	if rec.IncludedByDefault() {
		t.Error("explicit include_in_portfolio=false should be respected")
	}
}
