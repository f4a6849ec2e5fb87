package validator

import "testing"

func TestNew_CustomValidations(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		value   string
		tag     string
		wantErr bool
	}{
		{"usd", "USD", "iso4217", false},
		{"eur", "EUR", "iso4217", false},
		{"unknown_currency", "XXY", "iso4217", true},
		{"buy", "buy", "order_type", false},
		{"sell_mixed_case", "SeLL", "order_type", false},
		{"hold", "hold", "order_type", true},
		{"accepted", "accepted", "order_status", false},
		{"executed", "executed", "order_status", false},
		{"status_case_sensitive", "Executed", "order_status", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if (err != nil) != tt.wantErr {
				t.Errorf("Var(%q, %q) error = %v, wantErr %v", tt.value, tt.tag, err, tt.wantErr)
			}
		})
	}
}
