package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/sangkips/insights/internal/domain/repository"
	"github.com/sangkips/insights/pkg/apperror"
	"github.com/sangkips/insights/pkg/oauth"
	"github.com/sangkips/insights/pkg/utils"
	"go.uber.org/zap"
)

const providerGoogle = "google"

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, log: log}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is a signed-in user, its access token and the view it routes to
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	View        enum.ViewKind
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error("user lookup failed", zap.String("email", email), zap.Error(err))
		return nil, apperror.ErrInternal
	}
	if user == nil || user.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// LoginWithGoogle signs in the owner of a verified Google account, linking
// it to an existing account with the same email or creating a new one.
func (s *AuthService) LoginWithGoogle(ctx context.Context, g *oauth.GoogleUser) (*LoginOutput, error) {
	if g == nil || g.Email == "" {
		return nil, apperror.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByProviderID(ctx, providerGoogle, g.ID)
	if err != nil {
		s.log.Error("provider lookup failed", zap.Error(err))
		return nil, apperror.ErrInternal
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(g.Email))
		if err != nil {
			s.log.Error("user lookup failed", zap.Error(err))
			return nil, apperror.ErrInternal
		}
	}

	if user == nil {
		providerID := g.ID
		user = &entity.User{
			Name:       g.Name,
			Email:      strings.ToLower(g.Email),
			Provider:   providerGoogle,
			ProviderID: &providerID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			s.log.Error("failed to create google user", zap.String("email", user.Email), zap.Error(err))
			return nil, apperror.ErrInternal
		}
	} else if user.ProviderID == nil {
		providerID := g.ID
		user.ProviderID = &providerID
	}

	return s.issue(ctx, user)
}

// Profile returns the account behind ident
func (s *AuthService) Profile(ctx context.Context, ident *entity.Identity) (*entity.User, error) {
	if !ident.IsAuthenticated() {
		return nil, apperror.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, ident.UserID)
	if err != nil {
		s.log.Error("profile lookup failed", zap.Error(err))
		return nil, apperror.ErrInternal
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

func (s *AuthService) issue(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Warn("failed to record last login", zap.String("email", user.Email), zap.Error(err))
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		s.log.Error("failed to sign access token", zap.Error(err))
		return nil, apperror.ErrInternal
	}
	return &LoginOutput{User: user, AccessToken: token, View: enum.ViewForEmail(user.Email)}, nil
}
