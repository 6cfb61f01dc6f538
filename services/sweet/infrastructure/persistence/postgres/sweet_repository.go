package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/sweetshop/pkg/database"
	"github.com/ghuser/sweetshop/pkg/events"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
	domainevents "github.com/ghuser/sweetshop/services/sweet/domain/events"
	"github.com/ghuser/sweetshop/services/sweet/domain/models"
	"github.com/ghuser/sweetshop/services/sweet/domain/repositories"
)

const sweetColumns = "id, name, category, description, image_url, price, quantity, created_at"

// SweetRepository implements repositories.SweetRepository against PostgreSQL.
//
// The stock operations are expressed as single conditional UPDATEs so the
// sufficiency check and the write happen atomically inside the database;
// no application-level locking is involved.
type SweetRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSweetRepository returns a SweetRepository backed by the given connection
// pool and event bus. The bus publishes SweetCreatedEvent and StockChangedEvent
// in the same transaction as the row mutation.
func NewSweetRepository(db *database.Database, bus *events.EventBus) *SweetRepository {
	return &SweetRepository{db: db, bus: bus}
}

// Save persists a new Sweet and publishes a SweetCreatedEvent within the same
// transaction. Returns ErrSweetAlreadyExists on unique constraint violations.
func (r *SweetRepository) Save(ctx context.Context, sweet *models.Sweet) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sweets (id, name, category, description, image_url, price, quantity, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sweet.ID, sweet.Name.String(), sweet.Category, sweet.Description,
			sweet.ImageURL, sweet.Price, sweet.Quantity, sweet.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return sweetdomain.ErrSweetAlreadyExists
			}
			return fmt.Errorf("insert sweet: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, sweet); err != nil {
				return fmt.Errorf("publish sweet created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Sweet by ID. Returns ErrSweetNotFound if not found.
func (r *SweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sweet, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+sweetColumns+` FROM sweets WHERE id = $1`, id)
	sweet, err := scanSweet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sweetdomain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("query sweet: %w", err)
	}
	return sweet, nil
}

// Find retrieves a filtered, paginated list of sweets plus the total count.
func (r *SweetRepository) Find(ctx context.Context, filter repositories.SweetFilter) ([]*models.Sweet, int, error) {
	where, args := buildFilter(filter)

	query := `SELECT ` + sweetColumns + ` FROM sweets` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	rows, err := r.db.DB().QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query sweets: %w", err)
	}
	defer rows.Close()

	var sweets []*models.Sweet
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sweet: %w", err)
		}
		sweets = append(sweets, sweet)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sweets: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx, `SELECT count(*) FROM sweets`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sweets: %w", err)
	}
	return sweets, total, nil
}

// Update persists changes to an existing Sweet's mutable fields.
func (r *SweetRepository) Update(ctx context.Context, sweet *models.Sweet) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE sweets
		SET name = $2, category = $3, description = $4, image_url = $5, price = $6, quantity = $7
		WHERE id = $1`,
		sweet.ID, sweet.Name.String(), sweet.Category, sweet.Description,
		sweet.ImageURL, sweet.Price, sweet.Quantity,
	)
	if err != nil {
		return fmt.Errorf("update sweet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sweetdomain.ErrSweetNotFound
	}
	return nil
}

// Delete removes a sweet by ID.
func (r *SweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sweetdomain.ErrSweetNotFound
	}
	return nil
}

// Exists reports whether a sweet with the given ID exists.
func (r *SweetRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sweets WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sweet exists: %w", err)
	}
	return exists, nil
}

// DecrementStock subtracts qty from the sweet's quantity in a single
// conditional UPDATE: the WHERE clause re-checks sufficiency so two
// concurrent purchases can never both pass against a stale quantity.
// Zero rows affected means either the sweet is missing or stock is short;
// Exists disambiguates. The StockChangedEvent is published in the same
// transaction as the mutation.
func (r *SweetRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	var sweet *models.Sweet
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE sweets
			SET quantity = quantity - $2
			WHERE id = $1 AND quantity >= $2
			RETURNING `+sweetColumns,
			id, qty,
		)
		var scanErr error
		sweet, scanErr = scanSweet(row)
		if scanErr != nil {
			if !errors.Is(scanErr, sql.ErrNoRows) {
				return fmt.Errorf("decrement stock: %w", scanErr)
			}
			exists, err := r.existsTx(ctx, tx, id)
			if err != nil {
				return err
			}
			if !exists {
				return sweetdomain.ErrSweetNotFound
			}
			return sweetdomain.ErrInsufficientStock
		}

		if r.bus != nil {
			return r.publishStockChanged(tx, sweet, -qty, domainevents.ReasonPurchase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sweet, nil
}

// IncrementStock adds qty to the sweet's quantity with no upper bound.
func (r *SweetRepository) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	var sweet *models.Sweet
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE sweets
			SET quantity = quantity + $2
			WHERE id = $1
			RETURNING `+sweetColumns,
			id, qty,
		)
		var scanErr error
		sweet, scanErr = scanSweet(row)
		if scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return sweetdomain.ErrSweetNotFound
			}
			return fmt.Errorf("increment stock: %w", scanErr)
		}

		if r.bus != nil {
			return r.publishStockChanged(tx, sweet, qty, domainevents.ReasonRestock)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sweet, nil
}

func (r *SweetRepository) existsTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) (bool, error) {
	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sweets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check sweet exists: %w", err)
	}
	return exists, nil
}

func (r *SweetRepository) publishCreated(tx *sql.Tx, sweet *models.Sweet) error {
	event := domainevents.SweetCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SweetID:    sweet.ID,
		Name:       sweet.Name.String(),
		Category:   sweet.Category,
		Price:      sweet.Price,
		Quantity:   sweet.Quantity,
		OccurredAt: sweet.CreatedAt,
	}
	return r.publishTx(tx, domainevents.TopicSweetCreated, event.EventID, event)
}

func (r *SweetRepository) publishStockChanged(tx *sql.Tx, sweet *models.Sweet, delta int, reason string) error {
	event := domainevents.StockChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SweetID:    sweet.ID,
		Quantity:   sweet.Quantity,
		Delta:      delta,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	if err := r.publishTx(tx, domainevents.TopicStockChanged, event.EventID, event); err != nil {
		return fmt.Errorf("publish stock changed: %w", err)
	}
	return nil
}

func (r *SweetRepository) publishTx(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// buildFilter assembles the WHERE clause and args for Find.
func buildFilter(filter repositories.SweetFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.Search != "" {
		add("name ILIKE $%d", "%"+filter.Search+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSweet(row rowScanner) (*models.Sweet, error) {
	var (
		sweet models.Sweet
		name  string
	)
	if err := row.Scan(&sweet.ID, &name, &sweet.Category, &sweet.Description,
		&sweet.ImageURL, &sweet.Price, &sweet.Quantity, &sweet.CreatedAt); err != nil {
		return nil, err
	}
	sweet.Name = models.SweetName(name)
	return &sweet, nil
}
