package repository

import (
	authdomain "mailflow-backend/internal/auth/domain"
)

// ClientRepository defines the interface for API client data access
type ClientRepository interface {
	// Create persists a new client
	Create(client *authdomain.Client) error

	// FindByID finds a client by its ID
	FindByID(id string) (*authdomain.Client, error)
}
