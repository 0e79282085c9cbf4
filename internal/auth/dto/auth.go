package dto

import (
	authdomain "mailflow-backend/internal/auth/domain"
)

type RegisterClientRequest struct {
	Name          string `json:"name" binding:"required"`
	CompanyID     string `json:"company_id" binding:"required"`
	ApplicationID string `json:"application_id" binding:"required"`
}

// RegisterClientResponse returns the generated secret exactly once
type RegisterClientResponse struct {
	Client       *authdomain.Client `json:"client"`
	ClientSecret string             `json:"client_secret"`
}

type TokenRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
