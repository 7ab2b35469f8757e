package dal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/medatlas/medatlas/internal/config"
	"github.com/medatlas/medatlas/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

// Connection wraps the Couchbase cluster and bucket handles.
type Connection struct {
	cluster    *gocb.Cluster
	bucket     *gocb.Bucket
	bucketName string
}

// NewConnection connects to Couchbase using the supplied configuration and
// waits for the bucket to be ready.
func NewConnection(cfg *config.Config) (*Connection, error) {
	cluster, err := gocb.Connect(cfg.CouchbaseURL, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.CouchbaseUser,
			Password: cfg.CouchbasePassword,
		},
		TimeoutsConfig: gocb.TimeoutsConfig{
			ConnectTimeout:    60 * time.Second,
			KVTimeout:         5 * time.Second,
			QueryTimeout:      30 * time.Second,
			ManagementTimeout: 30 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Couchbase: %w", err)
	}

	bucket := cluster.Bucket(cfg.CouchbaseBucket)

	err = bucket.WaitUntilReady(90*time.Second, &gocb.WaitUntilReadyOptions{
		Context:      context.Background(),
		ServiceTypes: []gocb.ServiceType{gocb.ServiceTypeKeyValue, gocb.ServiceTypeQuery},
	})
	if err != nil {
		return nil, fmt.Errorf("couchbase bucket not ready: %w", err)
	}

	log.Info().
		Str("couchbase_url", cfg.CouchbaseURL).
		Str("bucket", cfg.CouchbaseBucket).
		Msg("Couchbase connection initialized")

	return &Connection{
		cluster:    cluster,
		bucket:     bucket,
		bucketName: cfg.CouchbaseBucket,
	}, nil
}

// Close closes the Couchbase connection.
func (c *Connection) Close() error {
	if c.cluster != nil {
		return c.cluster.Close(nil)
	}
	return nil
}

// Cluster returns the cluster handle.
func (c *Connection) Cluster() *gocb.Cluster {
	return c.cluster
}

// Bucket returns the bucket handle.
func (c *Connection) Bucket() *gocb.Bucket {
	return c.bucket
}

// BucketName returns the configured bucket name.
func (c *Connection) BucketName() string {
	return c.bucketName
}

// IsNotFound reports whether err is a document-not-found condition, either
// from the SDK or already mapped to an application error.
func IsNotFound(err error) bool {
	return errors.Is(err, gocb.ErrDocumentNotFound) ||
		apperrors.KindOf(err) == apperrors.KindNotFound
}
