package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

// SweetFilter contains filtering and pagination parameters for list queries.
// Zero values mean "no constraint" for the filter fields.
type SweetFilter struct {
	Category string   // exact category match
	MinPrice *float64 // price >= MinPrice
	MaxPrice *float64 // price <= MaxPrice
	Search   string   // case-insensitive substring match on name
	Limit    int      // maximum number of records to return
	Offset   int      // number of records to skip
}

// SweetRepository is the persistence interface for the Sweet aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// DecrementStock and IncrementStock are the two domain operations on the
// quantity field. Implementations must make the sufficiency check and the
// write a single atomic step per record so concurrent purchases against the
// same sweet cannot both pass the check on a stale quantity.
type SweetRepository interface {
	Save(ctx context.Context, sweet *models.Sweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sweet, error)

	// Find retrieves a filtered, paginated list of sweets ordered by
	// created_at descending. Returns the slice and the total count of rows
	// matching the filter (ignoring pagination).
	Find(ctx context.Context, filter SweetFilter) ([]*models.Sweet, int, error)

	// Update persists changes to an existing Sweet's descriptive fields,
	// price, and quantity. Returns ErrSweetNotFound if no row matches.
	Update(ctx context.Context, sweet *models.Sweet) error

	// Delete removes a sweet by ID. Returns ErrSweetNotFound if no row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a sweet with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// DecrementStock atomically subtracts qty from the sweet's quantity,
	// failing with ErrInsufficientStock when qty exceeds the quantity on hand
	// and ErrSweetNotFound when the sweet does not exist. On success the
	// updated record is returned. qty must already be validated positive.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error)

	// IncrementStock atomically adds qty to the sweet's quantity, with no
	// upper bound. Returns ErrSweetNotFound when the sweet does not exist.
	// qty must already be validated positive.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error)
}
