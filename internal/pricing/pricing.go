package pricing

import (
	"math"
	"strings"
)

// LineItem is the minimal shape the calculator needs: a unit price and a
// quantity. Quantities are taken as given; rejecting bad ones is the
// caller's job.
type LineItem struct {
	UnitPrice float64
	Quantity  int
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Policy computes shipping and tax for a given subtotal and billing state.
type Policy interface {
	Quote(subtotal float64, state string) Totals
}

// FlatPolicy is the policy live at checkout: free shipping above the
// threshold, flat fee below it, flat tax on the subtotal.
type FlatPolicy struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	TaxRate               float64
}

// NewFlatPolicy returns the flat policy with the storefront's rates:
// free shipping strictly above $50, $5.99 otherwise, 8% tax.
func NewFlatPolicy() FlatPolicy {
	return FlatPolicy{
		FreeShippingThreshold: 50.00,
		ShippingFee:           5.99,
		TaxRate:               0.08,
	}
}

func (p FlatPolicy) Quote(subtotal float64, _ string) Totals {
	shipping := p.ShippingFee
	if subtotal > p.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * p.TaxRate
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// StateTaxPolicy charges a flat shipping fee regardless of subtotal and
// taxes (subtotal + shipping) at a rate keyed by the billing state. Only
// NJ and NY carry nonzero rates.
type StateTaxPolicy struct {
	ShippingFee float64
}

func NewStateTaxPolicy() StateTaxPolicy {
	return StateTaxPolicy{ShippingFee: 15.00}
}

func (p StateTaxPolicy) Quote(subtotal float64, state string) Totals {
	shipping := p.ShippingFee
	tax := (subtotal + shipping) * StateTaxRate(state)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// StateTaxRate returns the sales tax rate for a billing state. States
// without an entry pay no tax.
func StateTaxRate(state string) float64 {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case "NJ", "NEW JERSEY":
		return 0.06625
	case "NY", "NEW YORK":
		return 0.08875
	default:
		return 0
	}
}

// Subtotal sums unit price times quantity over the line items.
func Subtotal(items []LineItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return subtotal
}

// Calculate prices an item list under the given policy.
func Calculate(items []LineItem, state string, policy Policy) Totals {
	return policy.Quote(Subtotal(items), state)
}

// PolicyByName maps a configured policy name to a Policy, defaulting to
// the flat policy for unknown names.
func PolicyByName(name string) Policy {
	if strings.EqualFold(name, "state") {
		return NewStateTaxPolicy()
	}
	return NewFlatPolicy()
}

// MinorUnits converts a dollar amount to cents for the payment processor.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
