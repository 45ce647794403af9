package dto

import (
	"time"

	"github.com/trustnest/trustnest_backend/internal/core/domain"
)

// CreatePoolRequest defines the expected JSON body for pool creation.
type CreatePoolRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Category    string `json:"category" binding:"omitempty,oneof=RENT UTILITIES GROCERIES HOUSEHOLD OTHER"`
}

// UpdatePoolRequest defines the JSON body for metadata updates. Nil fields
// are left unchanged.
type UpdatePoolRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Category    *string `json:"category" binding:"omitempty,oneof=RENT UTILITIES GROCERIES HOUSEHOLD OTHER"`
}

// InviteRequest defines the JSON body for inviting users into a pool.
type InviteRequest struct {
	InviteeIDs []string `json:"inviteeIDs" binding:"required,min=1,dive,required"`
}

// PoolResponse defines the data returned for a pool.
type PoolResponse struct {
	PoolID         string    `json:"poolID"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	Icon           string    `json:"icon"`
	CreatorID      string    `json:"creatorID"`
	MemberIDs      []string  `json:"memberIDs"`
	PendingInvites []string  `json:"pendingInvites"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToPoolResponse converts a domain.Pool to PoolResponse.
func ToPoolResponse(p *domain.Pool) PoolResponse {
	return PoolResponse{
		PoolID:         p.PoolID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       string(p.Category),
		Icon:           p.Category.Icon(),
		CreatorID:      p.CreatorID,
		MemberIDs:      p.MemberIDs,
		PendingInvites: p.PendingInvites,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.LastUpdatedAt,
	}
}

// ToPoolResponses converts a slice of domain.Pool to []PoolResponse.
func ToPoolResponses(pools []domain.Pool) []PoolResponse {
	responses := make([]PoolResponse, len(pools))
	for i := range pools {
		responses[i] = ToPoolResponse(&pools[i])
	}
	return responses
}
