package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	repo "github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/internal/storage"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
	"github.com/oksasatya/hocus-focus/pkg/validation"
)

const defaultRole = "Member"

type UserService struct {
	Users        repo.UserRepository
	Activities   repo.ActivityRepository
	Participants repo.ParticipantRepository
	Sessions     repo.SessionRepository
	JWT          *helpers.JWTManager
	SessionTTL   time.Duration
	Logger       *logrus.Logger

	HashPassword func(string) (string, error)
	Now          func() time.Time
}

func NewUserService(users repo.UserRepository, activities repo.ActivityRepository, participants repo.ParticipantRepository,
	sessions repo.SessionRepository, jwt *helpers.JWTManager, sessionTTL time.Duration, logger *logrus.Logger) *UserService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &UserService{
		Users:        users,
		Activities:   activities,
		Participants: participants,
		Sessions:     sessions,
		JWT:          jwt,
		SessionTTL:   sessionTTL,
		Logger:       logger,
		HashPassword: helpers.HashPassword,
		Now:          time.Now,
	}
}

type SignupInput struct {
	Name            string `json:"name" validate:"required,max=80"`
	Surname         string `json:"surname" validate:"required,max=80"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Description     string `json:"description" validate:"max=500"`
	Picture         string `json:"picture"`
}

type LoginResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Profile is a user with what they organize and what they joined.
type Profile struct {
	User    *entity.User
	Created []entity.Activity
	Joined  []entity.Activity
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new user. The email check runs first for a friendly
// error; the unique index catches a concurrent signup that slips past it.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	existing, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		s.Logger.WithError(err).Error("hash password failed")
		return nil, err
	}
	u := &entity.User{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Surname:     strings.TrimSpace(in.Surname),
		Email:       in.Email,
		Password:    hash,
		Description: in.Description,
		Picture:     in.Picture,
		Role:        defaultRole,
	}
	if err := s.Users.Save(ctx, u); err != nil {
		if errors.Is(err, storage.ErrConstraint) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user signed up")
	return u, nil
}

// Authenticate validates email/password without creating a session. The
// caller only ever sees ErrInvalidCredentials; the reason is logged.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = normalizeEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.Logger.WithField("email", email).Debug("login rejected: unknown email")
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		s.Logger.WithField("user_id", u.ID).Debug("login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and records a server-side session. The returned token
// carries the user id and the session id it belongs to.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, err
	}
	sess := repo.Session{UserID: u.ID, SessionID: sid, Email: u.Email, Name: u.FullName(), CreatedAt: s.Now().UTC()}
	if err := s.Sessions.Create(ctx, sess, s.SessionTTL); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("create session failed")
		return nil, err
	}
	return &LoginResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.Sessions.Delete(ctx, userID)
}

// ResolveSession returns the session a token points at, or nil when the token
// is stale (logged out, replaced by a newer login, or expired server-side).
func (s *UserService) ResolveSession(ctx context.Context, token string) (*repo.Session, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, nil
	}
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.SessionID != claims.SessionID {
		return nil, nil
	}
	return sess, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Profile loads the user page. Joined activities that no longer exist are
// skipped.
func (s *UserService) Profile(ctx context.Context, id string) (*Profile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	created, err := s.Activities.GetByCreator(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.Participants.GetByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	joined := make([]entity.Activity, 0, len(rows))
	for _, p := range rows {
		a, err := s.Activities.Get(ctx, p.ActivityID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			continue
		}
		joined = append(joined, *a)
	}
	return &Profile{User: u, Created: created, Joined: joined}, nil
}
