package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Dosada05/sports-management/models"
)

// MongoURI builds a connection string for host and port.
func MongoURI(host, port string) string {
	return fmt.Sprintf("mongodb://%s:%s", host, port)
}

// OpenMongo connects to MongoDB, verifies the primary is reachable and
// ensures the unique and secondary indexes of every collection.
func OpenMongo(ctx context.Context, uri, database string, connectTimeout, selectionTimeout time.Duration) (*Store, error) {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	if selectionTimeout <= 0 {
		selectionTimeout = 5 * time.Second
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(selectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo within %v: %w", connectTimeout, err)
	}

	mdb := client.Database(database)
	for _, s := range []Schema{PersonsSchema, MatchesSchema, ReviewsSchema} {
		if err := ensureMongoIndexes(ctx, mdb.Collection(s.Name), s); err != nil {
			client.Disconnect(context.Background())
			return nil, err
		}
	}

	return &Store{
		People:  &mongoCollection[models.Person]{coll: mdb.Collection(PersonsSchema.Name)},
		Matches: &mongoCollection[models.Match]{coll: mdb.Collection(MatchesSchema.Name)},
		Reviews: &mongoCollection[models.VideoReview]{coll: mdb.Collection(ReviewsSchema.Name)},
		close:   client.Disconnect,
	}, nil
}

func ensureMongoIndexes(ctx context.Context, coll *mongo.Collection, s Schema) error {
	idx := []mongo.IndexModel{{
		Keys:    bson.D{{Key: s.Key, Value: 1}},
		Options: options.Index().SetUnique(true),
	}}
	for _, field := range s.Indexes {
		idx = append(idx, mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}})
	}

	if _, err := coll.Indexes().CreateMany(ctx, idx); err != nil {
		return fmt.Errorf("creating %s indexes: %w", s.Name, err)
	}
	return nil
}

type mongoCollection[T any] struct {
	coll *mongo.Collection
}

func toBSON(filter Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		m[k] = v
	}
	return m
}

func mongoError(op, name string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNoDocuments
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	default:
		return fmt.Errorf("%s %s: %w", op, name, err)
	}
}

func (c *mongoCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var out T
	err := c.coll.FindOne(ctx, toBSON(filter)).Decode(&out)
	if err != nil {
		return nil, mongoError("finding in", c.coll.Name(), err)
	}
	return &out, nil
}

func (c *mongoCollection[T]) Find(ctx context.Context, filter Filter, sort *Sort) ([]T, error) {
	opts := options.Find()
	if sort != nil && sort.Field != "" {
		dir := 1
		if sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}})
	}

	cur, err := c.coll.Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, mongoError("finding in", c.coll.Name(), err)
	}

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *mongoCollection[T]) Insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return mongoError("inserting into", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection[T]) Update(ctx context.Context, filter Filter, fields Fields) (*T, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	err := c.coll.FindOneAndUpdate(ctx, toBSON(filter), bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return nil, mongoError("updating", c.coll.Name(), err)
	}
	return &out, nil
}

func (c *mongoCollection[T]) Delete(ctx context.Context, filter Filter) (*T, error) {
	var out T
	err := c.coll.FindOneAndDelete(ctx, toBSON(filter)).Decode(&out)
	if err != nil {
		return nil, mongoError("deleting from", c.coll.Name(), err)
	}
	return &out, nil
}
