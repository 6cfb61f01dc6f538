package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/sweetshop/pkg/cache"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
	"github.com/ghuser/sweetshop/services/sweet/domain/repositories"
	domainsvcs "github.com/ghuser/sweetshop/services/sweet/domain/services"
)

// SweetService orchestrates the inventory operations on Sweets.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from Redis cache when available.
type SweetService struct {
	repo  repositories.SweetRepository
	cache *pkgcache.SweetCache
}

// NewSweetService returns a SweetService wired with the given repository and cache.
func NewSweetService(repo repositories.SweetRepository, sweetCache *pkgcache.SweetCache) *SweetService {
	return &SweetService{repo: repo, cache: sweetCache}
}

// CreateSweetInput carries the fields for Create. Description and ImageURL
// are optional; everything else is required by the domain validator.
type CreateSweetInput struct {
	Name        string
	Category    string
	Description string
	ImageURL    string
	Price       float64
	Quantity    int
}

// Create validates and persists a Sweet. The repository publishes SweetCreatedEvent.
func (s *SweetService) Create(ctx context.Context, in CreateSweetInput) (*models.Sweet, error) {
	name, err := models.NewSweetName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweetName, err)
	}

	sweet := models.NewSweet(name, in.Category, in.Price, in.Quantity)
	sweet.Description = in.Description
	sweet.ImageURL = in.ImageURL

	if err := domainsvcs.ValidateSweetForCreation(sweet); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}

	if err := s.repo.Save(ctx, sweet); err != nil {
		return nil, fmt.Errorf("save sweet: %w", err)
	}

	return sweet, nil
}

// GetByID retrieves a Sweet using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *SweetService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sweet, error) {
	if s.cache != nil {
		// Miss and cache error both fall through to Postgres.
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return cachedToSweet(cached), nil
		}
	}

	sweet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sweet: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), sweetToCached(sweet))
		}()
	}

	return sweet, nil
}

// List returns a filtered, paginated slice of sweets plus total count.
func (s *SweetService) List(ctx context.Context, filter repositories.SweetFilter) ([]*models.Sweet, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	sweets, total, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list sweets: %w", err)
	}
	return sweets, total, nil
}

// UpdateSweetInput carries the full replacement field set for Update.
type UpdateSweetInput struct {
	Name        string
	Category    string
	Description string
	ImageURL    string
	Price       float64
	Quantity    int
}

// Update validates and persists a full field update to an existing Sweet.
// Returns ErrSweetNotFound if no matching sweet exists.
func (s *SweetService) Update(ctx context.Context, id uuid.UUID, in UpdateSweetInput) (*models.Sweet, error) {
	name, err := models.NewSweetName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweetName, err)
	}

	sweet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sweet: %w", err)
	}

	sweet.Name = name
	sweet.Category = in.Category
	sweet.Description = in.Description
	sweet.ImageURL = in.ImageURL
	sweet.Price = in.Price
	sweet.Quantity = in.Quantity

	if err := domainsvcs.ValidateSweetForCreation(sweet); err != nil {
		return nil, fmt.Errorf("%w: %w", sweetdomain.ErrInvalidSweet, err)
	}

	if err := s.repo.Update(ctx, sweet); err != nil {
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(context.Background(), sweetToCached(sweet))
	}
	return sweet, nil
}

// Delete removes a sweet by ID.
// Returns ErrSweetNotFound if no matching sweet exists.
func (s *SweetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return nil
}

// Purchase decrements the sweet's quantity by qty.
// Fails with ErrInvalidQuantity when qty <= 0 (before touching the record)
// and ErrInsufficientStock when qty exceeds the quantity on hand; in both
// cases the stored quantity is unchanged. On success the updated record
// is returned and the cache entry refreshed.
func (s *SweetService) Purchase(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	if qty <= 0 {
		return nil, sweetdomain.ErrInvalidQuantity
	}

	sweet, err := s.repo.DecrementStock(ctx, id, qty)
	if err != nil {
		return nil, fmt.Errorf("purchase sweet: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetQuantity(context.Background(), sweet.ID, sweet.Quantity)
	}
	return sweet, nil
}

// Restock increments the sweet's quantity by qty, with no upper bound.
// Fails with ErrInvalidQuantity when qty <= 0.
func (s *SweetService) Restock(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	if qty <= 0 {
		return nil, sweetdomain.ErrInvalidQuantity
	}

	sweet, err := s.repo.IncrementStock(ctx, id, qty)
	if err != nil {
		return nil, fmt.Errorf("restock sweet: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetQuantity(context.Background(), sweet.ID, sweet.Quantity)
	}
	return sweet, nil
}

func sweetToCached(sweet *models.Sweet) *pkgcache.CachedSweet {
	return &pkgcache.CachedSweet{
		ID:          sweet.ID,
		Name:        sweet.Name.String(),
		Category:    sweet.Category,
		Description: sweet.Description,
		ImageURL:    sweet.ImageURL,
		Price:       sweet.Price,
		Quantity:    sweet.Quantity,
		CreatedAt:   sweet.CreatedAt,
	}
}

func cachedToSweet(cached *pkgcache.CachedSweet) *models.Sweet {
	return &models.Sweet{
		ID:          cached.ID,
		Name:        models.SweetName(cached.Name),
		Category:    cached.Category,
		Description: cached.Description,
		ImageURL:    cached.ImageURL,
		Price:       cached.Price,
		Quantity:    cached.Quantity,
		CreatedAt:   cached.CreatedAt,
	}
}
