package middleware

import (
	"context"

	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/pkg/firebase"
)

// FirebaseVerifier accepts firebase ID tokens of users that have signed in before.
type FirebaseVerifier struct {
	client firebase.IDTokenVerifier
	users  repositories.UserRepository
}

func NewFirebaseVerifier(client firebase.IDTokenVerifier, users repositories.UserRepository) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, users: users}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (uint, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return 0, err
	}
	user, err := v.users.GetUserByFirebaseUID(ctx, token.UID)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
