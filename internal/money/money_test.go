package money

import (
	"errors"
	"testing"

	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/shopspring/decimal"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    int64
		wantErr bool
	}{
		{name: "whole units", amount: "50", want: 5000},
		{name: "whole cents", amount: "10.50", want: 1050},
		{name: "single cent", amount: "0.01", want: 1},
		{name: "trailing zeros", amount: "20.10", want: 2010},
		{name: "fractional cent rejected", amount: "0.005", wantErr: true},
		{name: "sub-cent precision rejected", amount: "10.123", wantErr: true},
		{name: "zero rejected", amount: "0", wantErr: true},
		{name: "negative rejected", amount: "-5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCents(decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ToCents(%s) = %d, want error", tt.amount, got)
				}
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("ToCents(%s) error = %v, want ErrInvalidInput", tt.amount, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToCents(%s) unexpected error: %v", tt.amount, err)
			}
			if got != tt.want {
				t.Errorf("ToCents(%s) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFromCents(t *testing.T) {
	if got := FromCents(1050); !got.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("FromCents(1050) = %s, want 10.5", got)
	}
}
