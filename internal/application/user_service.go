package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/onboarding"
	repo "github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

const (
	sessionTTL = 24 * time.Hour
	detailsTTL = 5 * time.Minute
)

type UserService struct {
	Repo       repo.UserRepository
	Complaints repo.ComplaintRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	Logger     *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SessionKey is the Redis hash holding the active login session of a user.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

// DetailsKey caches the GetDetails view of a user.
func DetailsKey(userID string) string {
	return "user:details:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewUserService(users repo.UserRepository, complaints repo.ComplaintRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:       users,
		Complaints: complaints,
		JWT:        jwt,
		Redis:      rdb,
		Logger:     logger,
	}
}

type LoginResponse struct {
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	OnboardingStage int    `json:"onboarding_stage"`
}

// Register creates a user at onboarding stage 0.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     name,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate refresh token failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"created_at": nowRFC3339(),
		}
		key := SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			helpers.LogWarn(s.Logger, "redis pipeline failed", rErr, logrus.Fields{"key": key})
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := &LoginResponse{UserID: u.ID, Email: u.Email, Name: u.Name, OnboardingStage: u.OnboardingStage}
	return resp, pair, nil
}

// Refresh rotates the session id and both tokens. The refresh token must
// belong to the session currently stored in Redis.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, SessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the Redis session so outstanding tokens stop working.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil || userID == "" {
		return nil
	}
	return helpers.RedisDel(ctx, s.Redis, SessionKey(userID))
}

type UserDetails struct {
	User            *entity.User `json:"user"`
	ComplaintsCount int          `json:"complaints_count"`
}

// GetDetails returns the user with their complaint count. With Redis the
// result is cached under DetailsKey until the stage changes or a complaint
// is filed.
func (s *UserService) GetDetails(ctx context.Context, userID string) (*UserDetails, error) {
	if s.Redis != nil {
		var cached UserDetails
		hit, err := helpers.RedisGetJSON(ctx, s.Redis, DetailsKey(userID), &cached)
		if err != nil {
			helpers.LogWarn(s.Logger, "read cached user details failed", err, logrus.Fields{"user_id": userID})
		}
		if hit && cached.User != nil {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	count, err := s.Complaints.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	d := &UserDetails{User: u, ComplaintsCount: count}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, DetailsKey(userID), d, detailsTTL); err != nil {
			helpers.LogWarn(s.Logger, "cache user details failed", err, logrus.Fields{"user_id": userID})
		}
	}
	return d, nil
}

// UpdateOnboardingStage sets the stage; reaching the completion stage marks
// onboarding complete. Completion is never undone.
func (s *UserService) UpdateOnboardingStage(ctx context.Context, userID string, stage int) (*entity.User, error) {
	if !onboarding.ValidStage(stage) {
		return nil, ErrInvalidStage
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	u.OnboardingStage = stage
	if stage == onboarding.CompletionStage {
		u.OnboardingComplete = true
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, DetailsKey(userID)); err != nil {
			helpers.LogWarn(s.Logger, "drop cached user details failed", err, logrus.Fields{"user_id": userID})
		}
	}
	return u, nil
}
