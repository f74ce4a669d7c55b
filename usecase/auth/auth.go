package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/repository"
	"github.com/kaamsetu/backend/usecase"
)

const phoneLength = 10

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name     string
	Phone    string
	Password string
	Role     string
	Skills   []string
}

// Credentials pairs an authenticated user with their bearer token.
type Credentials struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	recorder usecase.EventRecorder
	secret   []byte
	issuer   string
	ttl      time.Duration
	logger   *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	recorder usecase.EventRecorder,
	secret, issuer string,
	ttl time.Duration,
	logger *zap.Logger,
) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		recorder: recorder,
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		logger:   logger,
	}
}

func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*Credentials, error) {
	if in.Name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name is required")
	}
	if len(in.Phone) != phoneLength {
		return nil, domain.NewError(domain.ErrCodeInvalid, "phone must be 10 digits")
	}
	if len(in.Password) < 6 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "password must be at least 6 characters")
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
		Skills:       skills,
	})
	if err != nil {
		return nil, err
	}

	uc.recordRegistration(ctx, user)

	return uc.issueCredentials(ctx, user)
}

func (uc *UseCase) Login(ctx context.Context, phone, password string) (*Credentials, error) {
	user, err := uc.users.GetByPhone(ctx, phone)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issueCredentials(ctx, user)
}

// Logout revokes the session identified by the token's jti claim.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidPayload
	}
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) issueCredentials(ctx context.Context, user *domain.User) (*Credentials, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"jti":     session.ID,
		"iss":     uc.issuer,
		"iat":     now.Unix(),
		"exp":     session.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return &Credentials{User: user, Token: token}, nil
}

func (uc *UseCase) recordRegistration(ctx context.Context, user *domain.User) {
	if uc.recorder == nil {
		return
	}
	event := usecase.Event{
		Kind:      usecase.EventUserRegistered,
		ActorID:   user.ID,
		SubjectID: user.ID,
		Payload:   map[string]interface{}{"role": string(user.Role)},
	}
	if err := uc.recorder.Record(ctx, event); err != nil {
		uc.logger.Warn("failed to record registration event", zap.String("user_id", user.ID), zap.Error(err))
	}
}
