package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/partner"
)

// CreateClientRequest contains input for client creation
type CreateClientRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// UpdateClientRequest contains input for client updates
type UpdateClientRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// ClientListFilter contains filtering options for client listing
type ClientListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// ClientResponse is the API representation of a client
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to its API representation
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToClientResponses converts a slice of domain clients
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}
