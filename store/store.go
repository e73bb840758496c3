//go:generate mockgen -destination=../api/mocks/store.go -package=mocks github.com/bitmark-inc/health-metrics-api/store SessionStore

package store

import (
	"context"
	"errors"
	"time"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

const (
	storeLogPrefix = "store"
	defaultTimeout = 5 * time.Second
)

var ErrDatasetNotFound = errors.New("dataset not found")

// SessionStore - keeps uploaded datasets for the length of a session
type SessionStore interface {
	DatasetStore
	Closer
	Pinger
}

// DatasetStore - save and load datasets by id
type DatasetStore interface {
	Save(ctx context.Context, d *schema.Dataset) (string, error)
	Get(ctx context.Context, id string) (*schema.Dataset, error)
	Delete(ctx context.Context, id string) error
}

// Closer - release store connections
type Closer interface {
	Close()
}

// Pinger - check the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}
