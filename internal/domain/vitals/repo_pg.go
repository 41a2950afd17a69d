package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed vital signs repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const vitalCols = `id, user_id, type, value, unit, measured_at, device_id, note, created_at, updated_at`

func scanVital(row pgx.Row) (*VitalSign, error) {
	var v VitalSign
	err := row.Scan(&v.ID, &v.UserID, &v.Type, &v.Value, &v.Unit, &v.MeasuredAt,
		&v.DeviceID, &v.Note, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *VitalSign) error {
	v.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vital_sign (id, user_id, type, value, unit, measured_at, device_id, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		v.ID, v.UserID, v.Type, v.Value, v.Unit, v.MeasuredAt, v.DeviceID, v.Note)
	return err
}

func (r *repoPG) CreateBatch(ctx context.Context, batch []*VitalSign) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, v := range batch {
		v.ID = uuid.New()
		if _, err := tx.Exec(ctx, `
			INSERT INTO vital_sign (id, user_id, type, value, unit, measured_at, device_id, note)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			v.ID, v.UserID, v.Type, v.Value, v.Unit, v.MeasuredAt, v.DeviceID, v.Note); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*VitalSign, error) {
	return scanVital(r.pool.QueryRow(ctx, `SELECT `+vitalCols+` FROM vital_sign WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *VitalSign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE vital_sign SET type=$2, value=$3, unit=$4, measured_at=$5, note=$6, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.Type, v.Value, v.Unit, v.MeasuredAt, v.Note)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vital_sign WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, vitalType string, limit, offset int) ([]*VitalSign, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if vitalType != "" {
		where += ` AND type = $2`
		args = append(args, vitalType)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vital_sign `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM vital_sign %s ORDER BY measured_at DESC LIMIT $%d OFFSET $%d`,
		vitalCols, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*VitalSign
	for rows.Next() {
		v, err := scanVital(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *repoPG) LatestByType(ctx context.Context, userID uuid.UUID) ([]*VitalSign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (type) `+vitalCols+`
		FROM vital_sign WHERE user_id = $1
		ORDER BY type, measured_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*VitalSign
	for rows.Next() {
		v, err := scanVital(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *repoPG) DailyAverages(ctx context.Context, userID uuid.UUID, vitalType string, since time.Time) ([]*DailyAverage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('day', measured_at) AS day, AVG(value), COUNT(*)
		FROM vital_sign
		WHERE user_id = $1 AND type = $2 AND measured_at >= $3
		GROUP BY day ORDER BY day`, userID, vitalType, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DailyAverage
	for rows.Next() {
		var d DailyAverage
		if err := rows.Scan(&d.Day, &d.Average, &d.Count); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}
