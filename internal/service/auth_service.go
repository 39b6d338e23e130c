package service

import (
	"context"
	stderrors "errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaishnavisales/storefront/internal/auth"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/internal/session"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

// passwordCost is the bcrypt cost of stored password hashes
var passwordCost = bcrypt.DefaultCost

// AuthResult is returned by a successful signup or login
type AuthResult struct {
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
	IsAdmin bool        `json:"is_admin"`
}

type AuthService struct {
	repos     *repository.Repositories
	sessions  *session.Manager
	issuer    *auth.Issuer
	cfg       config.AuthConfig
	adminHash []byte
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service. The configured admin password is
// hashed once so it is never compared in plain text.
func NewAuthService(
	repos *repository.Repositories,
	sessions *session.Manager,
	issuer *auth.Issuer,
	cfg config.AuthConfig,
	logger *zap.Logger,
) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), passwordCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		repos:     repos,
		sessions:  sessions,
		issuer:    issuer,
		cfg:       cfg,
		adminHash: hash,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *AuthService) isAdminEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail)
}

// Signup registers a customer and signs them in
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, &errors.ErrValidation{Message: "Please fill in all fields"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &errors.ErrValidation{Message: "Please enter a valid email", Fields: map[string]string{"email": email}}
	}
	if s.isAdminEmail(email) {
		return nil, &errors.ErrConflict{Message: "Email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		CreatedAt: s.now().UnixMilli(),
	}

	if err := s.repos.User.Create(ctx, user); err != nil {
		var conflict *errors.ErrConflict
		if stderrors.As(err, &conflict) {
			return nil, &errors.ErrConflict{Message: "Email already exists"}
		}
		return nil, persistErr("signup", err)
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID))

	return s.startSession(ctx, user, auth.RoleCustomer, false)
}

// Login checks credentials. The configured admin email signs in as the
// administrator with admin mode switched on.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	invalid := &errors.ErrUnauthorized{Message: "Invalid email or password"}
	if req.Email == "" || req.Password == "" {
		return nil, invalid
	}

	if s.isAdminEmail(req.Email) {
		if bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)) != nil {
			return nil, invalid
		}
		profile, err := s.sessions.AdminProfile(ctx, s.cfg.AdminEmail)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Admin signed in")
		return s.startSession(ctx, profile, auth.RoleAdmin, true)
	}

	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		var notFound *errors.ErrNotFound
		if stderrors.As(err, &notFound) {
			return nil, invalid
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, invalid
	}
	return s.startSession(ctx, *user, auth.RoleCustomer, false)
}

func (s *AuthService) startSession(ctx context.Context, user domain.User, role string, adminMode bool) (*AuthResult, error) {
	sessionID := uuid.NewString()
	token, err := s.issuer.IssueSession(user.ID, user.Email, role, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Begin(ctx, user, adminMode, sessionID); err != nil {
		return nil, persistErr("start session", err)
	}
	return &AuthResult{Token: token, User: user.WithoutPassword(), IsAdmin: adminMode}, nil
}

// Logout ends the session of userID
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return persistErr("logout", s.sessions.End(ctx, userID))
}

// Me returns the signed-in user and the admin mode flag
func (s *AuthService) Me(ctx context.Context, claims *auth.Claims) (*domain.User, bool, error) {
	active, err := s.sessions.Active(ctx, claims.UserID(), claims.SessionID())
	if err != nil {
		return nil, false, err
	}
	if !active {
		return nil, false, &errors.ErrUnauthorized{Message: "session ended"}
	}
	user, ok, err := s.sessions.Current(ctx, claims.UserID())
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, &errors.ErrUnauthorized{Message: "session ended"}
	}
	adminMode, err := s.sessions.IsAdminMode(ctx, claims.UserID())
	if err != nil {
		return nil, false, err
	}
	return user, adminMode, nil
}

// IsAdminMode reports whether management actions are switched on for the caller
func (s *AuthService) IsAdminMode(ctx context.Context, claims *auth.Claims) (bool, error) {
	if !claims.IsAdmin() {
		return false, nil
	}
	return s.sessions.IsAdminMode(ctx, claims.UserID())
}

// ToggleAdminMode flips admin mode. Only the administrator may do this.
func (s *AuthService) ToggleAdminMode(ctx context.Context, claims *auth.Claims) (bool, error) {
	if !claims.IsAdmin() {
		return false, &errors.ErrForbidden{Message: "only the store administrator can switch admin mode"}
	}
	on, err := s.sessions.ToggleAdminMode(ctx, claims.UserID())
	if err != nil {
		return false, persistErr("toggle admin mode", err)
	}
	return on, nil
}

// ForgotPassword issues a reset token for a registered email. Delivering it is
// up to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repos.User.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		var notFound *errors.ErrNotFound
		if stderrors.As(err, &notFound) {
			return "", &errors.ErrNotFound{Resource: "email", ID: email}
		}
		return "", err
	}
	token, err := s.issuer.IssueReset(user.ID, user.Email, user.Password)
	if err != nil {
		return "", err
	}
	s.logger.Info("Password reset requested", zap.String("user_id", user.ID))
	return token, nil
}

// ResetPassword sets a new password using a token from ForgotPassword. A token
// works once: it names the password it replaces. Every open session of the
// user is ended.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.Password == "" {
		return &errors.ErrValidation{Message: "Please enter a new password"}
	}
	spent := &errors.ErrUnauthorized{Message: "invalid or expired reset link"}
	claims, err := s.issuer.Parse(req.Token, auth.TypeReset)
	if err != nil {
		return spent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return err
	}
	_, err = s.repos.User.Update(ctx, claims.UserID(), func(u *domain.User) error {
		if auth.PasswordStamp(u.Password) != claims.Stamp {
			return spent
		}
		u.Password = string(hash)
		return nil
	})
	if err != nil {
		var notFound *errors.ErrNotFound
		if stderrors.As(err, &notFound) {
			return spent
		}
		return persistErr("reset password", err)
	}

	if err := s.sessions.End(ctx, claims.UserID()); err != nil {
		return persistErr("end sessions after reset", err)
	}
	s.logger.Info("Password reset", zap.String("user_id", claims.UserID()))
	return nil
}

// UpdateProfile changes the caller's own profile
func (s *AuthService) UpdateProfile(ctx context.Context, claims *auth.Claims, req UpdateProfileRequest) (*domain.User, error) {
	if claims.IsAdmin() {
		return s.updateAdminProfile(ctx, req)
	}

	var hash []byte
	if req.Password != nil {
		if *req.Password == "" {
			return nil, &errors.ErrValidation{Message: "Password cannot be empty"}
		}
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(*req.Password), passwordCost); err != nil {
			return nil, err
		}
	}
	if req.Email != nil && s.isAdminEmail(*req.Email) {
		return nil, &errors.ErrConflict{Message: "Email already exists"}
	}

	user, err := s.repos.User.Update(ctx, claims.UserID(), func(u *domain.User) error {
		return applyProfile(u, req, hash)
	})
	if err != nil {
		return nil, persistErr("update profile", err)
	}
	if err := s.sessions.Refresh(ctx, *user); err != nil {
		s.logger.Warn("Failed to refresh session user", zap.String("user_id", user.ID), zap.Error(err))
	}
	stripped := user.WithoutPassword()
	return &stripped, nil
}

func (s *AuthService) updateAdminProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	if req.Password != nil || req.Email != nil {
		return nil, &errors.ErrValidation{Message: "The administrator email and password are set in the server configuration"}
	}
	profile, err := s.sessions.AdminProfile(ctx, s.cfg.AdminEmail)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(&profile, req, nil); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveAdminProfile(ctx, profile); err != nil {
		return nil, persistErr("update admin profile", err)
	}
	if err := s.sessions.Refresh(ctx, profile); err != nil {
		s.logger.Warn("Failed to refresh admin session", zap.Error(err))
	}
	return &profile, nil
}

func applyProfile(u *domain.User, req UpdateProfileRequest, passwordHash []byte) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return &errors.ErrValidation{Message: "Name cannot be empty"}
		}
		u.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return &errors.ErrValidation{Message: "Please enter a valid email", Fields: map[string]string{"email": email}}
		}
		u.Email = email
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}
	if passwordHash != nil {
		u.Password = string(passwordHash)
	}
	return nil
}

// ListUsers returns registered customers whose name or email contains query
func (s *AuthService) ListUsers(ctx context.Context, query string) ([]domain.User, error) {
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		out = append(out, u.WithoutPassword())
	}
	return out, nil
}

// DeleteUser removes a customer account and ends their session
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.repos.User.Delete(ctx, userID); err != nil {
		return persistErr("delete user", err)
	}
	if err := s.sessions.End(ctx, userID); err != nil {
		s.logger.Warn("Failed to end session of deleted user", zap.String("user_id", userID), zap.Error(err))
	}
	s.logger.Info("User deleted", zap.String("user_id", userID))
	return nil
}
