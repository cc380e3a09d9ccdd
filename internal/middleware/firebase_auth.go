package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
	"github.com/rs/zerolog"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseResolver resolves Firebase ID tokens to local users, creating the
// local user the first time a Firebase account shows up.
type FirebaseResolver struct {
	verifier TokenVerifier
	users    repositories.UserRepository
}

// NewFirebaseResolver creates a new FirebaseResolver
func NewFirebaseResolver(verifier TokenVerifier, users repositories.UserRepository) *FirebaseResolver {
	return &FirebaseResolver{verifier: verifier, users: users}
}

func (f *FirebaseResolver) Resolve(ctx context.Context, r *http.Request) (string, bool) {
	idToken, ok := bearerToken(r)
	if !ok {
		return "", false
	}

	token, err := f.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("rejected firebase id token")
		return "", false
	}

	user, err := f.localUser(ctx, token)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("firebase_uid", token.UID).Msg("failed to resolve local user")
		return "", false
	}
	return user.ID, true
}

func (f *FirebaseResolver) localUser(ctx context.Context, token *auth.Token) (*models.User, error) {
	user, err := f.users.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	uid := token.UID
	user = &models.User{
		Username:    usernameFromToken(token),
		Name:        claimString(token, "name"),
		Image:       claimString(token, "picture"),
		FirebaseUID: &uid,
	}
	err = f.users.CreateUser(ctx, user)
	if errors.Is(err, repositories.ErrConflict) {
		// Another request created the same account first.
		return f.users.GetUserByFirebaseUID(ctx, token.UID)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func usernameFromToken(token *auth.Token) string {
	if email := claimString(token, "email"); email != "" {
		if name, _, ok := strings.Cut(email, "@"); ok && name != "" {
			return name
		}
	}
	return token.UID
}

func claimString(token *auth.Token, key string) string {
	if v, ok := token.Claims[key].(string); ok {
		return v
	}
	return ""
}
