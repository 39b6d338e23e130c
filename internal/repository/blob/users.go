package blob

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

type userRepository struct {
	users  *storage.Collection[domain.User]
	logger *zap.Logger
}

// NewUserRepository creates a new user repository. Emails are matched case-insensitively.
func NewUserRepository(store storage.Store, logger *zap.Logger) *userRepository {
	return &userRepository{
		users:  storage.NewCollection[domain.User](store, storage.KeyUsers, logger),
		logger: logger,
	}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: id}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: email}
}

func (r *userRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.users.Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, user.Email) {
				return nil, &errors.ErrConflict{Message: "User with this email already exists"}
			}
		}
		return append(users, user), nil
	})
	return err
}

func (r *userRepository) Update(ctx context.Context, id string, fn func(*domain.User) error) (*domain.User, error) {
	var result domain.User
	_, err := r.users.Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := -1
		for i := range users {
			if users[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &errors.ErrNotFound{Resource: "user", ID: id}
		}

		user := users[idx]
		if err := fn(&user); err != nil {
			return nil, err
		}
		for i := range users {
			if i != idx && strings.EqualFold(users[i].Email, user.Email) {
				return nil, &errors.ErrConflict{Message: "User with this email already exists"}
			}
		}
		users[idx] = user
		result = user
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	_, err := r.users.Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID == id {
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, &errors.ErrNotFound{Resource: "user", ID: id}
	})
	return err
}
