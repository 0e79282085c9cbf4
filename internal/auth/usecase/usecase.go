package usecase

import (
	authdto "mailflow-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for API client authentication
type AuthUsecase interface {
	// RegisterClient provisions a new client and returns its secret once
	RegisterClient(req *authdto.RegisterClientRequest) (*authdto.RegisterClientResponse, error)

	// IssueToken exchanges client credentials for an access token
	IssueToken(req *authdto.TokenRequest) (*authdto.TokenResponse, error)

	// ValidateToken verifies a token and returns the tenant scope it carries
	ValidateToken(token string) (companyID, applicationID string, err error)
}
