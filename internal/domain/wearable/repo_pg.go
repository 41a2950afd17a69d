package wearable

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed wearable device repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const deviceCols = `id, user_id, manufacturer, model, last_sync_at, created_at, updated_at`

func scanDevice(row pgx.Row) (*Device, error) {
	var d Device
	err := row.Scan(&d.ID, &d.UserID, &d.Manufacturer, &d.Model, &d.LastSyncAt, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (p *repoPG) Create(ctx context.Context, d *Device) error {
	d.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO wearable_device (id, user_id, manufacturer, model)
		VALUES ($1,$2,$3,$4)`,
		d.ID, d.UserID, d.Manufacturer, d.Model)
	return err
}

func (p *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Device, error) {
	return scanDevice(p.pool.QueryRow(ctx,
		`SELECT `+deviceCols+` FROM wearable_device WHERE id = $1`, id))
}

func (p *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM wearable_device WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Device, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+deviceCols+` FROM wearable_device
		WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (p *repoPG) TouchLastSync(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE wearable_device SET last_sync_at = $2, updated_at = NOW() WHERE id = $1`, id, at)
	return err
}
