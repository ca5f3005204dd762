package models

// Group represents a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Goa Trip", "Flatmates").
	Name string `json:"name"`

	// CreatorID is the user who created the group. The creator is always a
	// member.
	CreatorID string `json:"creatorId"`

	// Currency is the display currency code for amounts in this group.
	// Purely presentational; no conversion happens anywhere.
	Currency string `json:"currency"`

	// Members is the list of group members.
	Members []Member `json:"members"`

	// CreatedAt and UpdatedAt are Unix timestamps. UpdatedAt moves whenever
	// an expense in the group is written, so group lists can sort by recency.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// DefaultCurrency is used when a group is created without one.
const DefaultCurrency = "INR"

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// MemberName returns the display name for a member ID, or "Unknown" if the
// member is no longer part of the group (deleted users keep their historical
// expenses).
func (g *Group) MemberName(userID string) string {
	for _, m := range g.Members {
		if m.ID == userID {
			return m.Name
		}
	}
	return "Unknown"
}
