package dal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

var (
	indexesCreated bool
	indexMutex     sync.Mutex
)

// Store provides the generic document operations shared by the typed
// repositories.
type Store struct {
	conn *Connection
}

// NewStore creates a store on an open connection.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

// EnsureIndexes creates the secondary indexes needed for filter queries. Safe
// to call repeatedly; only the first call does work.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexMutex.Lock()
	defer indexMutex.Unlock()

	if indexesCreated {
		return nil
	}

	log.Info().Msg("Creating secondary indexes for directory queries")

	bucket := s.conn.BucketName()
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_docType ON `" + bucket + "`(docType)",
		"CREATE INDEX IF NOT EXISTS idx_docType_active ON `" + bucket + "`(docType, isActive)",
		"CREATE INDEX IF NOT EXISTS idx_hospital_location ON `" + bucket + "`(location.coordinates[1], location.coordinates[0]) WHERE docType = 'hospital'",
		"CREATE INDEX IF NOT EXISTS idx_hospital_specialties ON `" + bucket + "`(DISTINCT ARRAY s FOR s IN specialties END) WHERE docType = 'hospital'",
		"CREATE INDEX IF NOT EXISTS idx_doctor_hospital ON `" + bucket + "`(hospitalId) WHERE docType = 'doctor'",
		"CREATE INDEX IF NOT EXISTS idx_doctor_specializations ON `" + bucket + "`(DISTINCT ARRAY s FOR s IN specializations END) WHERE docType = 'doctor'",
	}

	for _, indexQuery := range indexes {
		_, err := s.conn.Cluster().Query(indexQuery, &gocb.QueryOptions{Context: ctx})
		if err != nil {
			log.Warn().Err(err).Str("query", indexQuery).Msg("Failed to create index (may already exist)")
		}
	}

	indexesCreated = true
	log.Info().Msg("Secondary index creation completed")
	return nil
}

// Upsert writes a document under the given key.
func (s *Store) Upsert(ctx context.Context, docID string, data interface{}) error {
	start := time.Now()
	_, err := s.conn.Bucket().DefaultCollection().Upsert(docID, data, &gocb.UpsertOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordStoreOperation("upsert", "error", duration)
		return apperrors.Internal(fmt.Sprintf("failed to upsert document %s", docID), err)
	}

	metrics.RecordStoreOperation("upsert", "success", duration)
	log.Debug().Str("doc_id", docID).Msg("Upserted document")
	return nil
}

// Get reads a document into out. A missing document maps to a not-found
// application error.
func (s *Store) Get(ctx context.Context, docID string, out interface{}) error {
	start := time.Now()
	result, err := s.conn.Bucket().DefaultCollection().Get(docID, &gocb.GetOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			metrics.RecordStoreOperation("get", "miss", duration)
			return apperrors.NotFound(fmt.Sprintf("document %s not found", docID))
		}
		metrics.RecordStoreOperation("get", "error", duration)
		return apperrors.Internal(fmt.Sprintf("failed to get document %s", docID), err)
	}

	if err := result.Content(out); err != nil {
		metrics.RecordStoreOperation("get", "error", duration)
		return apperrors.Internal(fmt.Sprintf("failed to decode document %s", docID), err)
	}

	metrics.RecordStoreOperation("get", "success", duration)
	return nil
}

// Exists checks whether a document exists.
func (s *Store) Exists(ctx context.Context, docID string) (bool, error) {
	start := time.Now()
	result, err := s.conn.Bucket().DefaultCollection().Exists(docID, &gocb.ExistsOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordStoreOperation("exists", "error", duration)
		return false, apperrors.Internal(fmt.Sprintf("failed to check document %s", docID), err)
	}

	metrics.RecordStoreOperation("exists", "success", duration)
	return result.Exists(), nil
}

// Query runs a N1QL statement with positional parameters and scans every row
// into rowFactory-produced values via the scan callback.
func (s *Store) Query(ctx context.Context, statement string, params []interface{}, scan func(row *gocb.QueryResult) error) error {
	start := time.Now()
	rows, err := s.conn.Cluster().Query(statement, &gocb.QueryOptions{
		Context:              ctx,
		PositionalParameters: params,
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordStoreOperation("query", "error", duration)
		return apperrors.Internal("query failed", err)
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		metrics.RecordStoreOperation("query", "error", duration)
		return err
	}

	metrics.RecordStoreOperation("query", "success", duration)
	return nil
}

// BucketName exposes the bucket name for query construction.
func (s *Store) BucketName() string {
	return s.conn.BucketName()
}
