package models

// Balance is one member's net position within a group, normalized to a
// single base currency. Positive means the group owes this member, negative
// means this member owes the group.
//
// Balances are a derived view: they are recomputed from scratch from the
// group's expense list on every request and never persisted.
type Balance struct {
	UserID   string  `json:"userId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Settlement is one recommended payment that reduces net debt: From owes To.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`

	// Currency is always the base currency the balances were computed in.
	Currency string `json:"currency"`

	// Settled is advisory only; the engine never sets it and recomputation
	// replaces the whole settlement list rather than merging with it.
	Settled bool `json:"settled"`
}
