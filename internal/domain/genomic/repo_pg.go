package genomic

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed genomic report repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const reportCols = `id, user_id, provider, report_date, snps, created_at, updated_at`

func scanReport(row pgx.Row) (*Report, error) {
	var r Report
	err := row.Scan(&r.ID, &r.UserID, &r.Provider, &r.ReportDate, &r.SNPs, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *repoPG) Create(ctx context.Context, r *Report) error {
	r.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO genomic_report (id, user_id, provider, report_date, snps)
		VALUES ($1,$2,$3,$4,$5)`,
		r.ID, r.UserID, r.Provider, r.ReportDate, r.SNPs)
	return err
}

func (p *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return scanReport(p.pool.QueryRow(ctx,
		`SELECT `+reportCols+` FROM genomic_report WHERE id = $1`, id))
}

func (p *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM genomic_report WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Report, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM genomic_report WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := p.pool.Query(ctx, `
		SELECT `+reportCols+` FROM genomic_report
		WHERE user_id = $1 ORDER BY report_date DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	return items, total, rows.Err()
}
