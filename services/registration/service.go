package registration

import (
	"fmt"
	"time"

	verificationRepo "veriflow/database/repository/verification"
	"veriflow/models"
	"veriflow/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthResponse contains the registered user's email and session token.
type AuthResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// RegistrationService persists registration data ahead of the provider
// verification flow.
type RegistrationService interface {
	// SaveRegistration hashes the password, upserts a pending record for the
	// email, and returns a session token.
	SaveRegistration(input models.RegistrationInput) (*AuthResponse, error)
}

// DefaultRegistrationService is the production implementation.
type DefaultRegistrationService struct {
	Repo verificationRepo.VerificationRepository
}

// SaveRegistration validates required fields, hashes the password, and
// persists the registration as a pending verification record. The plain-text
// password is never stored.
func (s *DefaultRegistrationService) SaveRegistration(input models.RegistrationInput) (*AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &models.VerificationRecord{
		Email:        input.Email,
		FullName:     input.FullName,
		PhotoFrontID: input.PhotoFrontID,
		PasswordHash: string(hashedPassword),
	}
	if err := s.Repo.SaveRegistration(rec); err != nil {
		return nil, fmt.Errorf("failed to save registration: %w", err)
	}

	token, err := utils.GenerateToken(input.Email, input.Email, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}

	return &AuthResponse{Email: input.Email, Token: token}, nil
}
