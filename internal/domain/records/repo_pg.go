package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed records repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func listQuery(cols, table, where, order string, argc int) string {
	return fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		cols, table, where, order, argc+1, argc+2)
}

// -- Health records --

const healthRecordCols = `id, user_id, record_type, title, description, recorded_at, created_at, updated_at`

func scanHealthRecord(row pgx.Row) (*HealthRecord, error) {
	var r HealthRecord
	err := row.Scan(&r.ID, &r.UserID, &r.RecordType, &r.Title, &r.Description,
		&r.RecordedAt, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *repoPG) CreateHealthRecord(ctx context.Context, r *HealthRecord) error {
	r.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO health_record (id, user_id, record_type, title, description, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		r.ID, r.UserID, r.RecordType, r.Title, r.Description, r.RecordedAt)
	return err
}

func (p *repoPG) GetHealthRecord(ctx context.Context, id uuid.UUID) (*HealthRecord, error) {
	return scanHealthRecord(p.pool.QueryRow(ctx,
		`SELECT `+healthRecordCols+` FROM health_record WHERE id = $1`, id))
}

func (p *repoPG) UpdateHealthRecord(ctx context.Context, r *HealthRecord) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE health_record SET record_type=$2, title=$3, description=$4, recorded_at=$5, updated_at=NOW()
		WHERE id = $1`,
		r.ID, r.RecordType, r.Title, r.Description, r.RecordedAt)
	return err
}

func (p *repoPG) DeleteHealthRecord(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM health_record WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListHealthRecords(ctx context.Context, userID uuid.UUID, recordType string, limit, offset int) ([]*HealthRecord, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if recordType != "" {
		where += ` AND record_type = $2`
		args = append(args, recordType)
	}

	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM health_record `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := listQuery(healthRecordCols, "health_record", where, "recorded_at DESC", len(args))
	args = append(args, limit, offset)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*HealthRecord
	for rows.Next() {
		r, err := scanHealthRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	return items, total, rows.Err()
}

// -- Medical records --

const medicalRecordCols = `id, user_id, hospital, diagnosis_code, diagnosis_name, visit_date, notes, created_at, updated_at`

func scanMedicalRecord(row pgx.Row) (*MedicalRecord, error) {
	var r MedicalRecord
	err := row.Scan(&r.ID, &r.UserID, &r.Hospital, &r.DiagnosisCode, &r.DiagnosisName,
		&r.VisitDate, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *repoPG) CreateMedicalRecord(ctx context.Context, r *MedicalRecord) error {
	r.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO medical_record (id, user_id, hospital, diagnosis_code, diagnosis_name, visit_date, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.UserID, r.Hospital, r.DiagnosisCode, r.DiagnosisName, r.VisitDate, r.Notes)
	return err
}

func (p *repoPG) GetMedicalRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return scanMedicalRecord(p.pool.QueryRow(ctx,
		`SELECT `+medicalRecordCols+` FROM medical_record WHERE id = $1`, id))
}

func (p *repoPG) UpdateMedicalRecord(ctx context.Context, r *MedicalRecord) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE medical_record SET hospital=$2, diagnosis_code=$3, diagnosis_name=$4, visit_date=$5, notes=$6, updated_at=NOW()
		WHERE id = $1`,
		r.ID, r.Hospital, r.DiagnosisCode, r.DiagnosisName, r.VisitDate, r.Notes)
	return err
}

func (p *repoPG) DeleteMedicalRecord(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM medical_record WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListMedicalRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medical_record WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := p.pool.Query(ctx, `
		SELECT `+medicalRecordCols+` FROM medical_record
		WHERE user_id = $1 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		r, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	return items, total, rows.Err()
}

// -- Medications --

const medicationCols = `id, user_id, name, dosage, frequency, start_date, end_date, created_at, updated_at`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency,
		&m.StartDate, &m.EndDate, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (p *repoPG) CreateMedication(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO medication (id, user_id, name, dosage, frequency, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.UserID, m.Name, m.Dosage, m.Frequency, m.StartDate, m.EndDate)
	return err
}

func (p *repoPG) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return scanMedication(p.pool.QueryRow(ctx,
		`SELECT `+medicationCols+` FROM medication WHERE id = $1`, id))
}

func (p *repoPG) UpdateMedication(ctx context.Context, m *Medication) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE medication SET name=$2, dosage=$3, frequency=$4, start_date=$5, end_date=$6, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Dosage, m.Frequency, m.StartDate, m.EndDate)
	return err
}

func (p *repoPG) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListMedications(ctx context.Context, userID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error) {
	where := `WHERE user_id = $1`
	if activeOnly {
		where += ` AND (end_date IS NULL OR end_date >= NOW())`
	}
	args := []interface{}{userID}

	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medication `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := listQuery(medicationCols, "medication", where, "start_date DESC", len(args))
	args = append(args, limit, offset)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

// -- Test results --

const testResultCols = `id, user_id, test_name, result_value, unit, reference_range, tested_at, created_at, updated_at`

func scanTestResult(row pgx.Row) (*TestResult, error) {
	var r TestResult
	err := row.Scan(&r.ID, &r.UserID, &r.TestName, &r.ResultValue, &r.Unit,
		&r.ReferenceRange, &r.TestedAt, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (p *repoPG) CreateTestResult(ctx context.Context, r *TestResult) error {
	r.ID = uuid.New()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO test_result (id, user_id, test_name, result_value, unit, reference_range, tested_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.UserID, r.TestName, r.ResultValue, r.Unit, r.ReferenceRange, r.TestedAt)
	return err
}

func (p *repoPG) GetTestResult(ctx context.Context, id uuid.UUID) (*TestResult, error) {
	return scanTestResult(p.pool.QueryRow(ctx,
		`SELECT `+testResultCols+` FROM test_result WHERE id = $1`, id))
}

func (p *repoPG) UpdateTestResult(ctx context.Context, r *TestResult) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE test_result SET test_name=$2, result_value=$3, unit=$4, reference_range=$5, tested_at=$6, updated_at=NOW()
		WHERE id = $1`,
		r.ID, r.TestName, r.ResultValue, r.Unit, r.ReferenceRange, r.TestedAt)
	return err
}

func (p *repoPG) DeleteTestResult(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM test_result WHERE id = $1`, id)
	return err
}

func (p *repoPG) ListTestResults(ctx context.Context, userID uuid.UUID, testName string, limit, offset int) ([]*TestResult, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if testName != "" {
		where += ` AND test_name = $2`
		args = append(args, testName)
	}

	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM test_result `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := listQuery(testResultCols, "test_result", where, "tested_at DESC", len(args))
	args = append(args, limit, offset)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*TestResult
	for rows.Next() {
		r, err := scanTestResult(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	return items, total, rows.Err()
}
