package model

import (
	"encoding/json"
	"testing"
)

func TestStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   Status
		value string
		rank  int
	}{
		{"pending review", StatusPendingReview, "Pending Review", 0},
		{"quoted", StatusQuoted, "Quoted", 1},
		{"paid", StatusPaid, "Paid", 2},
		{"in production", StatusInProduction, "In Production", 3},
		{"shipped", StatusShipped, "Shipped", 4},
		{"delivered", StatusDelivered, "Delivered", 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
			if tc.got.Rank() != tc.rank {
				t.Fatalf("expected rank %d, got %d", tc.rank, tc.got.Rank())
			}
		})
	}

	if Status("Cancelled").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
	if Status("Cancelled").Rank() != -1 {
		t.Fatal("expected unknown status rank to be -1")
	}
}

func TestStatusActive(t *testing.T) {
	if !StatusPendingReview.Active() || !StatusQuoted.Active() {
		t.Fatal("expected pre-payment stages to be active")
	}
	for _, s := range []Status{StatusPaid, StatusInProduction, StatusShipped, StatusDelivered} {
		if s.Active() {
			t.Fatalf("expected %s to be past", s)
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleCustomer) {
		t.Fatal("expected admin to cover customer access")
	}
	if RoleCustomer.AtLeast(RoleAdmin) {
		t.Fatal("expected customer not to cover admin access")
	}
	if !RoleCustomer.AtLeast(RoleAnonymous) {
		t.Fatal("expected customer to cover anonymous access")
	}
	if Role("root").Valid() {
		t.Fatal("expected unknown role to be invalid")
	}
}

func TestQuoteConfigRoundTrip(t *testing.T) {
	total := 150.0
	currency := CurrencyUSD
	cfg := QuoteConfig{
		Total:    &total,
		Currency: &currency,
		Spec:     map[string]any{"layers": float64(4), "finish": "ENIG"},
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded QuoteConfig
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !decoded.Priced() {
		t.Fatal("expected decoded config to stay priced")
	}
	if *decoded.Total != total || *decoded.Currency != currency {
		t.Fatalf("unexpected pricing fields: %v %v", decoded.Total, decoded.Currency)
	}
	if decoded.Spec["finish"] != "ENIG" || decoded.Spec["layers"] != float64(4) {
		t.Fatalf("expected spec fields to survive, got %v", decoded.Spec)
	}
}

func TestQuoteConfigPartialPricingStaysUnpriced(t *testing.T) {
	cases := map[string]string{
		"missing total":     `{"currency": "USD", "layers": 2}`,
		"missing currency":  `{"total": 120.5, "layers": 2}`,
		"mistyped total":    `{"total": "oops", "currency": "USD", "layers": 2}`,
		"mistyped currency": `{"total": 120.5, "currency": 7, "layers": 2}`,
	}
	for name, payload := range cases {
		var cfg QuoteConfig
		if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", name, err)
		}
		if cfg.Total != nil || cfg.Currency != nil {
			t.Fatalf("%s: expected both pricing fields to stay unset, got %v %v", name, cfg.Total, cfg.Currency)
		}
		if cfg.Priced() {
			t.Fatalf("%s: expected config to be unpriced", name)
		}
		if cfg.Spec["layers"] != float64(2) {
			t.Fatalf("%s: expected spec fields to survive, got %v", name, cfg.Spec)
		}
	}
}

func TestQuoteConfigUnpriced(t *testing.T) {
	var cfg QuoteConfig
	if err := json.Unmarshal([]byte(`{"quantity": 10}`), &cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Priced() {
		t.Fatal("expected config without pricing fields to be unpriced")
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if _, ok := raw["total"]; ok {
		t.Fatal("expected no total key for unpriced config")
	}
	if _, ok := raw["currency"]; ok {
		t.Fatal("expected no currency key for unpriced config")
	}
}
