package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// Client represents a brand/supplier whose products are sold through the POS.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(200);not null;uniqueIndex:idx_client_name"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Client name cannot exceed 200 characters")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename updates the client's name
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeValidation, "Client name cannot exceed 200 characters")
	}

	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByName(ctx context.Context, name string) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
