package repositories

import (
	"context"

	"github.com/SAP-F-2025/school-service/internal/models"
)

// UserRepository owns local user records. Reads used for principal
// construction must hit the database, never a token claim.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// HasRoot reports whether the school already holds a root
	// ban_giam_hieu account, optionally excluding one user id (updates).
	HasRoot(ctx context.Context, schoolID string, excludeUserID string) (bool, error)
}

// UserDirectory is the external identity provider view of a user, used to
// backfill local records on first login.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}
