// Package store provides named storage for graph documents.
//
// This package defines a small Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: Directory of JSON files for CLI workflows
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage for durable deployments
//
// Documents hold raw, unvalidated graph payloads; validation happens at
// load time so a store can round-trip exactly what the user put in.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	fferrors "github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/graph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
)

// Document is a named graph payload with bookkeeping timestamps.
type Document struct {
	Name      string         `json:"name" bson:"name"`
	Graph     graph.Document `json:"graph" bson:"graph"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for graph document backends.
type Store interface {
	// Get retrieves a document by name. Returns ErrNotFound when absent.
	Get(ctx context.Context, name string) (*Document, error)

	// Put stores a document, overwriting any previous version. An empty
	// name is replaced with a generated one; the stored name is written
	// back into the document.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored document names in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Config selects and locates a store backend.
type Config struct {
	// Backend is one of "memory", "file", "redis", or "mongo".
	Backend string

	// Dir is the root directory of the file store.
	Dir string

	// RedisAddr is the host:port of the Redis store.
	RedisAddr string

	// MongoURI and MongoDatabase locate the MongoDB store.
	MongoURI      string
	MongoDatabase string
}

// Open creates the store named by the config. An empty backend defaults
// to memory.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Dir)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr)
	case "mongo":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fferrors.New(fferrors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
}

// prepare fills in generated names and timestamps before a write.
func prepare(doc *Document) {
	if doc.Name == "" {
		doc.Name = uuid.NewString()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
}
