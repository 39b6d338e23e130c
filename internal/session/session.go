// Package session keeps the signed-in user and the admin mode flag.
// The HTTP server holds one namespace per user id, so two customers signed in
// at the same time never see each other's values.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
)

// DefaultAdminProfile is used until the administrator edits their profile
var DefaultAdminProfile = domain.User{
	ID:        "admin",
	Name:      "Admin",
	CreatedAt: 1734950400000,
}

type Manager struct {
	store  storage.Store
	logger *zap.Logger
}

// NewManager creates a session manager on store
func NewManager(store storage.Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
	}
}

func (m *Manager) scope(userID string) storage.Store {
	return storage.UserScope(m.store, userID)
}

// Begin records user as signed in under sessionID, replacing any earlier
// session. The password is never persisted here.
func (m *Manager) Begin(ctx context.Context, user domain.User, isAdmin bool, sessionID string) error {
	scope := m.scope(user.ID)
	if err := storage.SaveValue(ctx, scope, storage.KeySessionID, sessionID); err != nil {
		return err
	}
	if err := storage.SaveValue(ctx, scope, storage.KeyCurrentUser, user.WithoutPassword()); err != nil {
		return err
	}
	if err := storage.SaveValue(ctx, scope, storage.KeyIsAdmin, isAdmin); err != nil {
		return err
	}
	m.logger.Debug("Session started", zap.String("user_id", user.ID), zap.Bool("is_admin", isAdmin))
	return nil
}

// End signs the user out
func (m *Manager) End(ctx context.Context, userID string) error {
	scope := m.scope(userID)
	if err := scope.Delete(ctx, storage.KeySessionID); err != nil {
		return fmt.Errorf("failed to clear session id: %w", err)
	}
	if err := scope.Delete(ctx, storage.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	if err := scope.Delete(ctx, storage.KeyIsAdmin); err != nil {
		return fmt.Errorf("failed to clear admin flag: %w", err)
	}
	return nil
}

// Current returns the signed-in user, or false when the session was ended
func (m *Manager) Current(ctx context.Context, userID string) (*domain.User, bool, error) {
	var user domain.User
	ok, err := storage.LoadValue(ctx, m.scope(userID), storage.KeyCurrentUser, &user)
	if err != nil || !ok {
		return nil, false, err
	}
	return &user, true, nil
}

// Active reports whether sessionID is the user's current session
func (m *Manager) Active(ctx context.Context, userID, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	var current string
	ok, err := storage.LoadValue(ctx, m.scope(userID), storage.KeySessionID, &current)
	if err != nil || !ok {
		return false, err
	}
	if current != sessionID {
		return false, nil
	}
	_, ok, err = m.Current(ctx, userID)
	return ok, err
}

// Refresh replaces the stored user copy after a profile update, if a session exists
func (m *Manager) Refresh(ctx context.Context, user domain.User) error {
	if _, ok, err := m.Current(ctx, user.ID); err != nil || !ok {
		return err
	}
	return storage.SaveValue(ctx, m.scope(user.ID), storage.KeyCurrentUser, user.WithoutPassword())
}

// IsAdminMode reports the admin display flag of the session
func (m *Manager) IsAdminMode(ctx context.Context, userID string) (bool, error) {
	var on bool
	if _, err := storage.LoadValue(ctx, m.scope(userID), storage.KeyIsAdmin, &on); err != nil {
		return false, err
	}
	return on, nil
}

// SetAdminMode stores the admin display flag
func (m *Manager) SetAdminMode(ctx context.Context, userID string, on bool) error {
	return storage.SaveValue(ctx, m.scope(userID), storage.KeyIsAdmin, on)
}

// ToggleAdminMode flips the admin display flag and returns the new value
func (m *Manager) ToggleAdminMode(ctx context.Context, userID string) (bool, error) {
	on, err := m.IsAdminMode(ctx, userID)
	if err != nil {
		return false, err
	}
	if err := m.SetAdminMode(ctx, userID, !on); err != nil {
		return false, err
	}
	return !on, nil
}

// AdminProfile returns the stored administrator profile or the default one
func (m *Manager) AdminProfile(ctx context.Context, email string) (domain.User, error) {
	profile := DefaultAdminProfile
	if _, err := storage.LoadValue(ctx, m.store, storage.KeyAdminProfile, &profile); err != nil {
		return domain.User{}, err
	}
	profile.Password = ""
	if profile.Email == "" {
		profile.Email = email
	}
	return profile, nil
}

// SaveAdminProfile stores profile edits made by the administrator
func (m *Manager) SaveAdminProfile(ctx context.Context, profile domain.User) error {
	return storage.SaveValue(ctx, m.store, storage.KeyAdminProfile, profile.WithoutPassword())
}
