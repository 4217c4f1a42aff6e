package ports

import (
	"context"
	"time"
)

// EncryptionService encrypts secrets before they are stored at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// OAuthStateStore holds short-lived OAuth state values. Consume returns the
// user id bound to the state and invalidates it in the same operation.
type OAuthStateStore interface {
	Save(ctx context.Context, state string, userID string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (string, error)
}

// Mailer delivers transactional mail (verification and reset codes).
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}
