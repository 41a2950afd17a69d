package anonymization

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pulsevault/pulsevault/internal/platform/privacy"
)

type logRepoPG struct{ pool *pgxpool.Pool }

// NewLogRepoPG creates a PostgreSQL-backed audit log repository.
func NewLogRepoPG(pool *pgxpool.Pool) LogRepository {
	return &logRepoPG{pool: pool}
}

const logCols = `id, subject_id, subject_pseudonym, method, purpose, data_types, record_count, utility_score, data_hash, created_at`

func scanLog(row pgx.Row) (*Log, error) {
	var l Log
	err := row.Scan(&l.ID, &l.SubjectID, &l.SubjectPseudonym, &l.Method, &l.Purpose, &l.DataTypes,
		&l.RecordCount, &l.UtilityScore, &l.DataHash, &l.CreatedAt)
	return &l, err
}

func (p *logRepoPG) Append(ctx context.Context, l *Log) error {
	l.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO anonymization_log (id, subject_id, subject_pseudonym, method, purpose, data_types, record_count, utility_score, data_hash, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		l.ID, l.SubjectID, l.SubjectPseudonym, l.Method, l.Purpose, l.DataTypes, l.RecordCount, l.UtilityScore, l.DataHash, l.CreatedAt)
	return err
}

func (p *logRepoPG) List(ctx context.Context, filter LogFilter, limit int) ([]*Log, error) {
	var clauses []string
	args := []interface{}{}
	if filter.SubjectID != uuid.Nil {
		args = append(args, filter.SubjectID)
		clauses = append(clauses, fmt.Sprintf(`subject_id = $%d`, len(args)))
	}
	if filter.SubjectPseudonym != "" {
		args = append(args, filter.SubjectPseudonym)
		clauses = append(clauses, fmt.Sprintf(`subject_pseudonym = $%d`, len(args)))
	}
	if filter.Purpose != "" {
		args = append(args, filter.Purpose)
		clauses = append(clauses, fmt.Sprintf(`purpose = $%d`, len(args)))
	}
	where := ``
	if len(clauses) > 0 {
		where = `WHERE ` + strings.Join(clauses, ` AND `)
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s FROM anonymization_log %s ORDER BY created_at DESC LIMIT $%d`,
		logCols, where, len(args))

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

func (p *logRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM anonymization_log`).Scan(&total)
	return total, err
}

func (p *logRepoPG) CountByDataType(ctx context.Context) (map[string]int, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT dt, COUNT(*) FROM anonymization_log, unnest(data_types) AS dt GROUP BY dt`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCounts(rows)
}

func (p *logRepoPG) CountByPurpose(ctx context.Context) (map[string]int, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT purpose, COUNT(*) FROM anonymization_log GROUP BY purpose`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCounts(rows)
}

func scanCounts(rows pgx.Rows) (map[string]int, error) {
	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// recordSourcePG reads originals for the engine straight from the domain
// tables, shaped as the field maps the generalization rules expect.
type recordSourcePG struct{ pool *pgxpool.Pool }

// NewRecordSourcePG creates a PostgreSQL-backed record source.
func NewRecordSourcePG(pool *pgxpool.Pool) RecordSource {
	return &recordSourcePG{pool: pool}
}

func (p *recordSourcePG) FetchOriginals(ctx context.Context, userID uuid.UUID, dataType privacy.DataType) ([]privacy.Record, error) {
	query, ok := sourceQueries[dataType]
	if !ok {
		return []privacy.Record{}, nil
	}
	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := []privacy.Record{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(privacy.Record, len(fields))
		for i, fd := range fields {
			rec[string(fd.Name)] = values[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var sourceQueries = map[privacy.DataType]string{
	privacy.DataTypeVitalSigns: `
		SELECT id, user_id, type, value, unit, measured_at, created_at, updated_at
		FROM vital_sign WHERE user_id = $1`,
	privacy.DataTypeHealthRecords: `
		SELECT id, user_id, record_type, title, description, recorded_at, created_at, updated_at
		FROM health_record WHERE user_id = $1`,
	privacy.DataTypeMedicalRecords: `
		SELECT id, user_id, hospital, diagnosis_code, diagnosis_name, visit_date, created_at, updated_at
		FROM medical_record WHERE user_id = $1`,
	privacy.DataTypeMedications: `
		SELECT id, user_id, name, dosage, frequency, start_date, end_date, created_at, updated_at
		FROM medication WHERE user_id = $1`,
	privacy.DataTypeTestResults: `
		SELECT id, user_id, test_name, result_value, unit, tested_at, created_at, updated_at
		FROM test_result WHERE user_id = $1`,
	privacy.DataTypeGenomicData: `
		SELECT id, user_id, provider, report_date, snps, created_at, updated_at
		FROM genomic_report WHERE user_id = $1`,
	privacy.DataTypeFamilyHistory: `
		SELECT id, user_id, relation, condition, birth_year, death_year, created_at, updated_at
		FROM family_member_history WHERE user_id = $1`,
}
