package usecase

import "context"

// FirebaseAuthClient abstracts the Firebase Auth operations the use cases
// need, so tests can substitute a fake.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	SignInWithEmailPassword(email, password string) (string, error)
}
