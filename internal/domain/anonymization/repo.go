package anonymization

import (
	"context"

	"github.com/google/uuid"

	"github.com/pulsevault/pulsevault/internal/platform/privacy"
)

// LogRepository is the append-only audit trail. Entries are never updated or
// deleted.
type LogRepository interface {
	Append(ctx context.Context, l *Log) error
	List(ctx context.Context, filter LogFilter, limit int) ([]*Log, error)
	Count(ctx context.Context) (int, error)
	CountByDataType(ctx context.Context) (map[string]int, error)
	CountByPurpose(ctx context.Context) (map[string]int, error)
}

// RecordSource fetches the original records of one data type for one user as
// engine-ready field maps. No data yields an empty slice, not an error.
type RecordSource interface {
	FetchOriginals(ctx context.Context, userID uuid.UUID, dataType privacy.DataType) ([]privacy.Record, error)
}
