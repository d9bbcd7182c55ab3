package service

import (
	"context"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/repository"
)

// UserLookup resolves an authenticated caller id to the stored user.
// The API layer uses it for role checks on operator endpoints.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type userLookup struct {
	store repository.Store
}

func NewUserLookup(store repository.Store) UserLookup {
	return &userLookup{store: store}
}

func (s *userLookup) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.Repos().Users.GetByID(ctx, id)
}
