package model

import (
	"encoding/json"
	"time"
)

// Status describes quotation lifecycle stage. Values match what the
// storefront renders, so they are persisted verbatim.
type Status string

const (
	StatusPendingReview Status = "Pending Review"
	StatusQuoted        Status = "Quoted"
	StatusPaid          Status = "Paid"
	StatusInProduction  Status = "In Production"
	StatusShipped       Status = "Shipped"
	StatusDelivered     Status = "Delivered"
)

// statusRank fixes the forward order of the lifecycle.
var statusRank = map[Status]int{
	StatusPendingReview: 0,
	StatusQuoted:        1,
	StatusPaid:          2,
	StatusInProduction:  3,
	StatusShipped:       4,
	StatusDelivered:     5,
}

// Valid reports whether s is one of the defined lifecycle stages.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns position of s in the lifecycle, or -1 for unknown values.
func (s Status) Rank() int {
	rank, ok := statusRank[s]
	if !ok {
		return -1
	}
	return rank
}

// Active reports whether a quotation in this stage is still awaiting
// pricing or payment.
func (s Status) Active() bool {
	return s == StatusPendingReview || s == StatusQuoted
}

// QuotationType distinguishes fabrication from assembly requests.
type QuotationType string

const (
	TypePCB      QuotationType = "PCB"
	TypeAssembly QuotationType = "Assembly"
)

// Valid reports whether t is a known request type.
func (t QuotationType) Valid() bool {
	return t == TypePCB || t == TypeAssembly
}

// Currency limits the monetary units quotes may be priced in.
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether c is an accepted currency.
func (c Currency) Valid() bool {
	return c == CurrencyINR || c == CurrencyUSD
}

// QuoteConfig carries the pricing fields alongside arbitrary customer
// supplied specification fields (board size, layers, quantity...). Total and
// Currency are set together or not at all; Priced reports which.
type QuoteConfig struct {
	Total    *float64
	Currency *Currency
	Spec     map[string]any
}

// Priced reports whether both monetary fields are present.
func (c QuoteConfig) Priced() bool {
	return c.Total != nil && c.Currency != nil
}

// MarshalJSON flattens pricing fields into the spec object.
func (c QuoteConfig) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(c.Spec)+2)
	for k, v := range c.Spec {
		merged[k] = v
	}
	if c.Total != nil {
		merged["total"] = *c.Total
	}
	if c.Currency != nil {
		merged["currency"] = string(*c.Currency)
	}
	return json.Marshal(merged)
}

// UnmarshalJSON extracts pricing fields and keeps the rest as spec fields.
func (c *QuoteConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = QuoteConfig{}
	total, totalOK := raw["total"].(float64)
	currencyStr, currencyOK := raw["currency"].(string)
	delete(raw, "total")
	delete(raw, "currency")
	// Pricing fields only come as a pair, a lone or mistyped one
	// would leave the config half priced.
	if totalOK && currencyOK {
		currency := Currency(currencyStr)
		c.Total = &total
		c.Currency = &currency
	}
	if len(raw) > 0 {
		c.Spec = raw
	}
	return nil
}

// Quotation describes one priced request owned by a single customer.
type Quotation struct {
	ID                string
	Type              QuotationType
	Status            Status
	Config            QuoteConfig
	AdditionalMessage *string
	UserID            int64
	UserName          *string
	FilePath          *string
	PaymentID         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
