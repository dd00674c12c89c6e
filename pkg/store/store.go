// Package store provides persistence for determinized machines.
//
// This package defines the storage interface used by the HTTP API, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// A stored record pairs the original description with the machine computed
// from it, so consumers can re-render or inspect either side.
//
// # Usage
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "powerset",
//	})
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lbehrens/powerset/pkg/machine"
)

// ErrNotFound is returned when a machine does not exist.
var ErrNotFound = errors.New("machine not found")

// Record is a stored determinization result.
type Record struct {
	ID          string              `json:"id" bson:"_id"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	Description machine.Description `json:"description" bson:"description"`
	Machine     machine.Machine     `json:"machine" bson:"machine"`
}

// Store persists determinization records.
//
// Get returns [ErrNotFound] for unknown ids; Delete of an unknown id is a
// no-op. List returns records in unspecified order.
type Store interface {
	Put(ctx context.Context, r Record) error
	Get(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Record, error)
	Close(ctx context.Context) error
}
