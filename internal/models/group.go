package models

// Group represents a set of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Goa Trip", "Flat 4B").
	Name string `json:"name"`

	// CreatedBy is the ID of the user who created the group.
	CreatedBy string `json:"createdBy"`

	// Members is the list of user IDs belonging to this group.
	Members []string `json:"members"`

	// InviteCode is a short shareable code other users join with.
	InviteCode string `json:"inviteCode"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}
