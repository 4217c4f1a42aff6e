package application

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	verificationCodeTTL = 15 * time.Minute
	resetCodeTTL        = 15 * time.Minute
	sessionTTL          = 24 * time.Hour
)

// UserService handles account lifecycle: registration with email
// verification, login, password reset and Webflow token custody.
type UserService struct {
	users      ports.UserRepository
	encryption ports.EncryptionService
	mailer     ports.Mailer
	jwtSecret  []byte
	logger     zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users ports.UserRepository,
	encryption ports.EncryptionService,
	mailer ports.Mailer,
	jwtSecret string,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:      users,
		encryption: encryption,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		logger:     logger,
	}
}

// Register creates an unverified account and emails a verification code.
func (s *UserService) Register(ctx context.Context, name string, email string, password string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, domain.NewValidationError("name and email are required")
	}
	if len(password) < 8 {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expiry := now.Add(verificationCodeTTL)
	user := &domain.User{
		UserName:                   name,
		Email:                      email,
		Password:                   string(hash),
		VerificationCode:           code,
		VerificationExpiresAt:      &expiry,
		WebflowDataFetchedAndSaved: domain.SyncState{},
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.Send(ctx, email, "Verify your email",
		fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code)); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to send verification email")
	}

	return user, nil
}

// VerifyEmail marks the account verified when the code matches and has not
// expired.
func (s *UserService) VerifyEmail(ctx context.Context, email string, code string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFoundError("user not found")
	}
	if user.EmailVerified {
		return nil
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return domain.NewValidationError("invalid verification code")
	}
	if user.VerificationExpiresAt == nil || time.Now().UTC().After(*user.VerificationExpiresAt) {
		return domain.NewValidationError("verification code has expired")
	}

	user.EmailVerified = true
	user.VerificationCode = ""
	user.VerificationExpiresAt = nil
	return s.users.Update(ctx, user)
}

// Login checks credentials and returns a signed session token.
func (s *UserService) Login(ctx context.Context, email string, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.NewUnauthorizedError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, domain.NewUnauthorizedError("invalid email or password")
	}
	if !user.EmailVerified {
		return "", nil, domain.NewUnauthorizedError("email is not verified")
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, user, nil
}

// RequestPasswordReset emails a reset code. An unknown email is reported as
// success so the endpoint does not leak which addresses are registered.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expiry := time.Now().UTC().Add(resetCodeTTL)
	user.PasswordResetCode = code
	user.PasswordResetExpiresAt = &expiry
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.mailer.Send(ctx, email, "Reset your password",
		fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes.", code))
}

// ResetPassword replaces the password when the reset code matches.
func (s *UserService) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.NewValidationError("password must be at least 8 characters")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFoundError("user not found")
	}
	if user.PasswordResetCode == "" || user.PasswordResetCode != code {
		return domain.NewValidationError("invalid reset code")
	}
	if user.PasswordResetExpiresAt == nil || time.Now().UTC().After(*user.PasswordResetExpiresAt) {
		return domain.NewValidationError("reset code has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)
	user.PasswordResetCode = ""
	user.PasswordResetExpiresAt = nil
	return s.users.Update(ctx, user)
}

// GetUser returns the user by id
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}
	return user, nil
}

// SaveWebflowToken encrypts and stores the OAuth access token.
func (s *UserService) SaveWebflowToken(ctx context.Context, userID string, accessToken string) error {
	if accessToken == "" {
		return domain.NewValidationError("webflow access token is required")
	}
	encrypted, err := s.encryption.Encrypt(accessToken)
	if err != nil {
		return err
	}
	return s.users.SetWebflowAccessToken(ctx, userID, encrypted)
}

// AccessToken returns the user's decrypted Webflow access token.
func (s *UserService) AccessToken(ctx context.Context, userID string) (string, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.WebflowAccessToken == "" {
		return "", domain.NewValidationError("webflow account is not connected")
	}
	return s.encryption.Decrypt(user.WebflowAccessToken)
}

// generateCode returns a 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
