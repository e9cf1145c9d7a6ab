// Package db is the record store: three typed document collections behind a
// small interface, with MongoDB, PostgreSQL, DynamoDB and bbolt backends.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/sports-management/models"
)

var (
	ErrNoDocuments  = errors.New("no documents in result")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Filter selects documents by equality on top-level fields. Keys are the
// stored field names (the json tags of the models).
type Filter map[string]any

// Fields is a partial document merged into a stored one on update.
type Fields map[string]any

type Sort struct {
	Field string
	Desc  bool
}

// Collection is a typed document collection.
type Collection[T any] interface {
	// FindOne returns the first document matching filter or ErrNoDocuments.
	FindOne(ctx context.Context, filter Filter) (*T, error)
	// Find returns every document matching filter, ordered by sort when it
	// is not nil.
	Find(ctx context.Context, filter Filter, sort *Sort) ([]T, error)
	// Insert stores doc. ErrDuplicateKey is returned when a document with the
	// same unique key exists.
	Insert(ctx context.Context, doc *T) error
	// Update merges fields into the first document matching filter and
	// returns the result.
	Update(ctx context.Context, filter Filter, fields Fields) (*T, error)
	// Delete removes the first document matching filter and returns it.
	Delete(ctx context.Context, filter Filter) (*T, error)
}

// Schema describes how a collection is laid out in a backend.
type Schema struct {
	Name string
	// Key is the unique application key.
	Key        string
	NumericKey bool
	Indexes    []string
}

var (
	PersonsSchema = Schema{Name: "persons", Key: "emailid", Indexes: []string{"role"}}
	MatchesSchema = Schema{Name: "matches", Key: "matchId", NumericKey: true, Indexes: []string{"matchDate"}}
	ReviewsSchema = Schema{Name: "reviews", Key: "vodId", NumericKey: true, Indexes: []string{"assignedToPlayerEmail"}}
)

// Store bundles the collections of one backend and owns its connection.
type Store struct {
	People  Collection[models.Person]
	Matches Collection[models.Match]
	Reviews Collection[models.VideoReview]

	close func(ctx context.Context) error
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

type Driver string

const (
	DriverMongo    Driver = "mongo"
	DriverPostgres Driver = "postgres"
	DriverDynamo   Driver = "dynamodb"
	DriverBolt     Driver = "bolt"
)

type Options struct {
	Driver Driver

	MongoURI      string
	MongoDatabase string

	PostgresDSN string

	BoltPath string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoEndpoint     string
	DynamoTablePrefix  string

	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

// Open connects the configured backend and prepares its collections.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	logger.Info("opening record store", slog.String("driver", string(opts.Driver)))

	switch opts.Driver {
	case DriverMongo:
		return OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.ConnectTimeout, opts.ServerSelectionTimeout)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN, opts.ConnectTimeout, logger)
	case DriverDynamo:
		client, err := NewDynamoClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		return OpenDynamo(ctx, client, opts.DynamoTablePrefix)
	case DriverBolt:
		return OpenBolt(opts.BoltPath, opts.ConnectTimeout)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", opts.Driver)
	}
}
