package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/account/repository"
	"thriven-backend/internal/infrastructure/metrics"
	"thriven-backend/internal/shared"
	"thriven-backend/pkg/logger"
)

// Service is the business contract of the account domain
type Service interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, viewer shared.Viewer, id uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, viewer shared.Viewer, req model.UpdateProfileRequest) (*model.Profile, error)
	UploadProfileImage(ctx context.Context, viewer shared.Viewer, data []byte) (*model.Profile, error)
	DeleteAccount(ctx context.Context, viewer shared.Viewer) error
}

// FollowCounter is satisfied by the follow repository
type FollowCounter interface {
	CountFollowers(ctx context.Context, accountID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, accountID uuid.UUID) (int, error)
}

// TokenIssuer is satisfied by *jwt.Manager
type TokenIssuer interface {
	GenerateAccessToken(accountID, username string, isAuthor bool) (string, time.Time, error)
}

type accountService struct {
	repo     repository.Repository
	follows  FollowCounter
	tokens   TokenIssuer
	media    shared.MediaStore
	hashCost int
	now      func() time.Time
}

func NewAccountService(
	repo repository.Repository,
	follows FollowCounter,
	tokens TokenIssuer,
	media shared.MediaStore,
) Service {
	return &accountService{
		repo:     repo,
		follows:  follows,
		tokens:   tokens,
		media:    media,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *accountService) Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dob, err := model.ParseDate(deref(req.DateOfBirth))
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &model.Account{
		ID:             uuid.New(),
		Username:       strings.TrimSpace(req.Username),
		Email:          nonEmpty(req.Email),
		Pronoun:        req.Pronoun,
		DateOfBirth:    dob,
		IsAuthor:       req.IsAuthor,
		SkillLevel:     req.SkillLevel,
		Biography:      nonEmpty(req.Biography),
		Website:        nonEmpty(req.Website),
		PublishedBooks: req.PublishedBooks,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if a.Pronoun == "" {
		a.Pronoun = model.PronounOther
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	metrics.AccountsRegistered.Inc()
	logger.Info("Account registered", map[string]interface{}{
		"account_id": a.ID.String(),
		"is_author":  a.IsAuthor,
	})

	return a.ToProfile(now, 0, 0, true), nil
}

func (s *accountService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(a.ID.String(), a.Username, a.IsAuthor)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	profile, err := s.buildProfile(ctx, a, true)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Account:     profile,
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *accountService) GetProfile(ctx context.Context, viewer shared.Viewer, id uuid.UUID) (*model.Profile, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, a, viewer.AccountID == a.ID)
}

// UpdateProfile applies a partial update and re-runs every field validation
func (s *accountService) UpdateProfile(ctx context.Context, viewer shared.Viewer, req model.UpdateProfileRequest) (*model.Profile, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, viewer.AccountID)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(a); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, a, true)
}

func (s *accountService) UploadProfileImage(ctx context.Context, viewer shared.Viewer, data []byte) (*model.Profile, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}

	a, err := s.repo.FindByID(ctx, viewer.AccountID)
	if err != nil {
		return nil, err
	}

	key, err := s.media.SaveImage(ctx, imagePrefix(a.ID), data)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfileImage(ctx, a.ID, key); err != nil {
		return nil, err
	}

	a.ProfileImage = &key
	return s.buildProfile(ctx, a, true)
}

// DeleteAccount removes the caller's account with all posts, comments, likes, saves,
// notifications and follows, then schedules removal of its media
func (s *accountService) DeleteAccount(ctx context.Context, viewer shared.Viewer) error {
	if !viewer.Authenticated() {
		return shared.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, viewer.AccountID); err != nil {
		return err
	}

	prefixes := []string{
		imagePrefix(viewer.AccountID),
		path.Join(shared.PostImagePrefix, viewer.AccountID.String()),
	}
	for _, prefix := range prefixes {
		if err := s.media.RemoveImages(ctx, prefix); err != nil {
			logger.Error("Failed to schedule image removal", err)
		}
	}

	logger.Info("Account deleted", map[string]interface{}{"account_id": viewer.AccountID.String()})
	return nil
}

func (s *accountService) buildProfile(ctx context.Context, a *model.Account, self bool) (*model.Profile, error) {
	followers, err := s.follows.CountFollowers(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.follows.CountFollowing(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	return a.ToProfile(s.now(), followers, following, self), nil
}

func imagePrefix(id uuid.UUID) string {
	return path.Join(shared.ProfileImagePrefix, id.String())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
