package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"rattan-bot/internal/order"
)

// Archive keeps a copy of every confirmed order in Postgres.
type Archive struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

var _ order.Submitter = (*Archive)(nil)

type orderRow struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	Phone      string    `db:"phone"`
	Delivery   string    `db:"delivery"`
	City       string    `db:"city"`
	Postcode   string    `db:"postcode"`
	Comment    string    `db:"comment"`
	Colors     []byte    `db:"colors"`
	TotalCoils int       `db:"total_coils"`
	CreatedAt  time.Time `db:"created_at"`
}

func NewArchive(ctx context.Context, dsn string, logger *zap.Logger) (*Archive, error) {
	const operation = "postgres.NewArchive"

	var db *sqlx.DB

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err := backoff.RetryNotify(
		func() error {
			conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			db = conn
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := RunMigrations(ctx, db.DB, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Successfully connected to PostgreSQL")
	return &Archive{db: db, logger: logger, now: time.Now}, nil
}

// Submit inserts the order. It is one of the sinks behind order.Submitters.
func (a *Archive) Submit(ctx context.Context, p order.Payload) error {
	const query = `
        INSERT INTO orders (
            id, name, phone, delivery, city, postcode, comment, colors, total_coils, created_at
        ) VALUES (
            :id, :name, :phone, :delivery, :city, :postcode, :comment, :colors, :total_coils, :created_at
        )
    `

	row, err := newOrderRow(p, uuid.New(), a.now())
	if err != nil {
		return err
	}

	if _, err := a.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to archive order: %w", err)
	}

	a.logger.Debug("Order archived", zap.String("order_id", row.ID.String()))
	return nil
}

// Stats counts archived orders for today, the last 7 and 30 days and overall.
func (a *Archive) Stats(ctx context.Context) (order.Stats, error) {
	const query = `
        SELECT
            COUNT(*)                                   AS total,
            COUNT(*) FILTER (WHERE created_at >= $1)   AS today,
            COUNT(*) FILTER (WHERE created_at >= $2)   AS week,
            COUNT(*) FILTER (WHERE created_at >= $3)   AS month,
            COALESCE(SUM(total_coils), 0)              AS coils
        FROM orders
    `

	day, week, month := statsWindows(a.now())

	var stats order.Stats
	if err := a.db.GetContext(ctx, &stats, query, day, week, month); err != nil {
		return order.Stats{}, fmt.Errorf("failed to get order statistics: %w", err)
	}
	return stats, nil
}

func statsWindows(now time.Time) (day, week, month time.Time) {
	day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day, now.AddDate(0, 0, -7), now.AddDate(0, 0, -30)
}

func (a *Archive) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newOrderRow(p order.Payload, id uuid.UUID, createdAt time.Time) (orderRow, error) {
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return orderRow{}, fmt.Errorf("marshal colors: %w", err)
	}

	total := 0
	for _, c := range p.Colors {
		total += c.Quantity
	}

	return orderRow{
		ID:         id,
		Name:       p.Name,
		Phone:      p.Phone,
		Delivery:   p.Delivery,
		City:       p.City,
		Postcode:   p.Postcode,
		Comment:    p.Comment,
		Colors:     colors,
		TotalCoils: total,
		CreatedAt:  createdAt,
	}, nil
}
