package genomic

import (
	"time"

	"github.com/google/uuid"
)

// Report is one genomic test report. SNPs maps rsID to observed genotype,
// for example "rs429358" -> "CT", and is stored as JSONB.
type Report struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	UserID     uuid.UUID         `db:"user_id" json:"user_id"`
	Provider   string            `db:"provider" json:"provider"`
	ReportDate time.Time         `db:"report_date" json:"report_date"`
	SNPs       map[string]string `db:"snps" json:"snps"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updated_at"`
}
