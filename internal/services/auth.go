package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/pkg/firebase"
)

// TokenIssuer signs session tokens for a user.
type TokenIssuer interface {
	Issue(userID uint, email string) (string, error)
}

// AuthService handles local and firebase sign-in.
type AuthService struct {
	users    repositories.UserRepository
	issuer   TokenIssuer
	firebase firebase.IDTokenVerifier
}

// NewAuthService creates an AuthService. verifier may be nil when firebase is not configured.
func NewAuthService(users repositories.UserRepository, issuer TokenIssuer, verifier firebase.IDTokenVerifier) *AuthService {
	return &AuthService{users: users, issuer: issuer, firebase: verifier}
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("a user with this email already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, apperr.Conflict("this username is taken")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Upstream("hash password", err)
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		Username:     username,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.respond(user)
}

func (s *AuthService) Signin(ctx context.Context, req models.SigninRequest) (*models.AuthResponse, error) {
	invalid := apperr.Unauthorized("invalid email or password")

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalid
	}
	return s.respond(user)
}

// FirebaseLogin verifies a firebase ID token and signs in the matching user,
// linking an existing account by email or creating a new one.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	if s.firebase == nil {
		return nil, apperr.Upstream("firebase is not configured", nil)
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid firebase ID token")
	}
	uid := token.UID
	email := strings.ToLower(firebase.StringClaim(token, "email"))
	name := firebase.StringClaim(token, "name")

	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		return s.respond(user)
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}
	if email == "" {
		return nil, apperr.Validation("firebase account has no email address")
	}

	user, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		user.FirebaseUID = &uid
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
	case apperr.Is(err, apperr.KindNotFound):
		username := usernameFromEmail(email, uid)
		if name == "" {
			name = username
		}
		user = &models.User{Username: username, DisplayName: name, Email: email, FirebaseUID: &uid}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s.respond(user)
}

func (s *AuthService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Upstream("issue token", err)
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

var usernameUnsafe = regexp.MustCompile(`[^a-z0-9_]+`)

// usernameFromEmail derives a username from the mailbox name plus a uid suffix.
func usernameFromEmail(email, uid string) string {
	local, _, _ := strings.Cut(email, "@")
	base := usernameUnsafe.ReplaceAllString(strings.ToLower(local), "")
	if base == "" {
		base = "user"
	}
	suffix := strings.ToLower(uid)
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("%s_%s", base, suffix)
}
