package clv

import (
	"errors"
	"math"
)

// Customer is one dashboard customer with its computed lifetime value.
// CLV is the product of the three inputs and is recomputed whenever a
// customer is created or reloaded from disk; stored records never change.
type Customer struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	AveragePurchaseValue float64 `json:"averagePurchaseValue"`
	PurchaseFrequency    float64 `json:"purchaseFrequency"`
	CustomerLifespan     float64 `json:"customerLifespan"`
	CLV                  float64 `json:"clv"`
}

// Value computes the lifetime value from the three inputs.
func (c Customer) Value() float64 {
	return c.AveragePurchaseValue * c.PurchaseFrequency * c.CustomerLifespan
}

// valid also rejects inputs whose product is not a finite number: a
// non-finite clv cannot be encoded and would wedge the snapshot.
func (c Customer) valid() bool {
	if c.ID == "" || c.Name == "" {
		return false
	}
	if c.AveragePurchaseValue <= 0 || c.PurchaseFrequency <= 0 || c.CustomerLifespan <= 0 {
		return false
	}
	v := c.Value()
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

var (
	ErrDuplicateID     = errors.New("customer id already exists")
	ErrInvalidCustomer = errors.New("invalid customer data")
)
