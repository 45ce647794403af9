package domain

// MaxPoolOccupancy caps members plus pending invitees per pool.
const MaxPoolOccupancy = 10

// PoolStatus indicates the lifecycle state of a pool.
type PoolStatus string

const (
	PoolActive   PoolStatus = "ACTIVE"
	PoolArchived PoolStatus = "ARCHIVED"
)

// PoolCategory tags a pool with the kind of expenses it shares.
type PoolCategory string

const (
	CategoryRent      PoolCategory = "RENT"
	CategoryUtilities PoolCategory = "UTILITIES"
	CategoryGroceries PoolCategory = "GROCERIES"
	CategoryHousehold PoolCategory = "HOUSEHOLD"
	CategoryOther     PoolCategory = "OTHER"
)

// Icon resolves a pool category to its display icon identifier.
// Unknown or empty categories fall back to the generic tag icon.
func (c PoolCategory) Icon() string {
	switch c {
	case CategoryRent:
		return "home"
	case CategoryUtilities:
		return "bolt"
	case CategoryGroceries:
		return "cart"
	case CategoryHousehold:
		return "broom"
	case CategoryOther:
		return "tag"
	default:
		return "tag"
	}
}

// Pool represents a group of users sharing recurring expenses.
//
// Invariants: CreatorID is always present in MemberIDs, MemberIDs and
// PendingInvites are disjoint, and their combined size never exceeds
// MaxPoolOccupancy.
type Pool struct {
	PoolID         string       `json:"poolID"` // Primary Key (e.g., UUID)
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Category       PoolCategory `json:"category"`
	Icon           string       `json:"icon"`
	CreatorID      string       `json:"creatorID"` // Immutable after creation; only the creator may delete the pool
	MemberIDs      []string     `json:"memberIDs"`
	PendingInvites []string     `json:"pendingInvites"`
	Status         PoolStatus   `json:"status"`
	AuditFields
}

// HasMember reports whether userID is a current member of the pool.
func (p *Pool) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasPendingInvite reports whether userID has an outstanding invite.
func (p *Pool) HasPendingInvite(userID string) bool {
	for _, id := range p.PendingInvites {
		if id == userID {
			return true
		}
	}
	return false
}

// Occupancy returns the number of members plus pending invitees,
// the quantity bounded by MaxPoolOccupancy.
func (p *Pool) Occupancy() int {
	return len(p.MemberIDs) + len(p.PendingInvites)
}
