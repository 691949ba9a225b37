package models

// SplitMethod identifies how an expense amount is divided among members.
type SplitMethod string

const (
	// SplitEqual divides the amount evenly across splitBetween.
	SplitEqual SplitMethod = "equal"
	// SplitPercentage divides the amount by per-member percentages of the total.
	SplitPercentage SplitMethod = "percentage"
	// SplitCustom uses explicit per-member amounts.
	SplitCustom SplitMethod = "custom"
)

// Expense represents one shared cost paid by a single member.
//
// All split methods collapse into SplitDetails when the expense is created
// or edited, so downstream balance computation never needs to know which
// method produced the shares.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to. An expense belongs to
	// exactly one group.
	GroupID string `json:"groupId"`

	// Title is a short human-readable description (e.g., "Dinner", "Fuel").
	Title string `json:"title"`

	// Amount is the total cost, expressed in Currency. Positivity is
	// enforced at the API boundary, not by the balance engine.
	Amount float64 `json:"amount"`

	// Currency is the ISO-like code the amount was paid in.
	Currency string `json:"currency"`

	// PaidBy is the ID of the member who fronted the payment.
	PaidBy string `json:"paidBy"`

	// SplitBetween is the set of member IDs sharing this cost. Order is
	// irrelevant for computation.
	SplitBetween []string `json:"splitBetween"`

	// SplitMethod records how SplitDetails was derived.
	SplitMethod SplitMethod `json:"splitMethod"`

	// SplitDetails maps member ID to that member's owed share, in Currency.
	// The shares over SplitBetween sum to Amount within 0.01.
	SplitDetails map[string]float64 `json:"splitDetails"`

	// Notes is an optional free-form note.
	Notes string `json:"notes,omitempty"`

	// Date is the Unix timestamp the expense occurred.
	Date int64 `json:"date"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}
