package usecase

import (
	"errors"
	"time"

	authdomain "mailflow-backend/internal/auth/domain"
	authdto "mailflow-backend/internal/auth/dto"
	"mailflow-backend/internal/auth/repository"
	"mailflow-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	clientRepo repository.ClientRepository
	config     *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(clientRepo repository.ClientRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		clientRepo: clientRepo,
		config:     cfg,
	}
}

func (u *authUsecase) RegisterClient(req *authdto.RegisterClientRequest) (*authdto.RegisterClientResponse, error) {
	secret := uuid.New().String()
	hash, err := repository.HashSecret(secret)
	if err != nil {
		return nil, err
	}

	client := &authdomain.Client{
		Name:          req.Name,
		CompanyID:     req.CompanyID,
		ApplicationID: req.ApplicationID,
		SecretHash:    hash,
	}
	if err := u.clientRepo.Create(client); err != nil {
		return nil, err
	}

	return &authdto.RegisterClientResponse{
		Client:       client,
		ClientSecret: secret,
	}, nil
}

func (u *authUsecase) IssueToken(req *authdto.TokenRequest) (*authdto.TokenResponse, error) {
	client, err := u.clientRepo.FindByID(req.ClientID)
	if err != nil {
		return nil, err
	}

	if client == nil || !repository.CheckSecretHash(req.ClientSecret, client.SecretHash) {
		return nil, errors.New("invalid client credentials")
	}

	claims := jwt.MapClaims{
		"client_id":      client.ID,
		"company_id":     client.CompanyID,
		"application_id": client.ApplicationID,
		"exp":            time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":            time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: signed,
		ExpiresIn:   int64(u.config.JWTAccessExpiry.Seconds()),
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	companyID, ok := claims["company_id"].(string)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	applicationID, ok := claims["application_id"].(string)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	return companyID, applicationID, nil
}
