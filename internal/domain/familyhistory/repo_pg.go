package familyhistory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed family history repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const familyCols = `id, user_id, relation, condition, condition_code, birth_year, death_year, notes, created_at, updated_at`

func scanFamilyMember(row pgx.Row) (*FamilyMember, error) {
	var f FamilyMember
	err := row.Scan(&f.ID, &f.UserID, &f.Relation, &f.Condition, &f.ConditionCode,
		&f.BirthYear, &f.DeathYear, &f.Notes, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (p *repoPG) Create(ctx context.Context, f *FamilyMember) error {
	f.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO family_member_history (id, user_id, relation, condition, condition_code, birth_year, death_year, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		f.ID, f.UserID, f.Relation, f.Condition, f.ConditionCode, f.BirthYear, f.DeathYear, f.Notes)
	return err
}

func (p *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*FamilyMember, error) {
	return scanFamilyMember(p.pool.QueryRow(ctx,
		`SELECT `+familyCols+` FROM family_member_history WHERE id = $1`, id))
}

func (p *repoPG) Update(ctx context.Context, f *FamilyMember) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE family_member_history
		SET relation=$2, condition=$3, condition_code=$4, birth_year=$5, death_year=$6, notes=$7, updated_at=NOW()
		WHERE id = $1`,
		f.ID, f.Relation, f.Condition, f.ConditionCode, f.BirthYear, f.DeathYear, f.Notes)
	return err
}

func (p *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM family_member_history WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*FamilyMember, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM family_member_history WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := p.pool.Query(ctx, `
		SELECT `+familyCols+` FROM family_member_history
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*FamilyMember
	for rows.Next() {
		f, err := scanFamilyMember(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, rows.Err()
}
