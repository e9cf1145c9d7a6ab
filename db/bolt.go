package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Dosada05/sports-management/models"
)

// OpenBolt opens a single-file store with one bucket per collection.
func OpenBolt(path string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = time.Second
	}
	bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	schemas := []Schema{PersonsSchema, MatchesSchema, ReviewsSchema}
	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, s := range schemas {
			if _, err := tx.CreateBucketIfNotExists([]byte(s.Name)); err != nil {
				return fmt.Errorf("creating %s bucket: %w", s.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}

	return &Store{
		People:  &boltCollection[models.Person]{db: bdb, schema: PersonsSchema},
		Matches: &boltCollection[models.Match]{db: bdb, schema: MatchesSchema},
		Reviews: &boltCollection[models.VideoReview]{db: bdb, schema: ReviewsSchema},
		close: func(context.Context) error {
			return bdb.Close()
		},
	}, nil
}

// boltCollection keeps JSON documents keyed by the text of their unique key.
// Filtering and sorting happen in memory.
type boltCollection[T any] struct {
	db     *bolt.DB
	schema Schema
}

type boltEntry struct {
	key []byte
	doc document
}

func (c *boltCollection[T]) bucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(c.schema.Name))
	if b == nil {
		return nil, fmt.Errorf("bucket %s does not exist", c.schema.Name)
	}
	return b, nil
}

// scan walks the bucket in key order and returns entries matching filter.
// With first set it stops at the first match.
func (c *boltCollection[T]) scan(b *bolt.Bucket, filter Filter, first bool) ([]boltEntry, error) {
	var out []boltEntry

	cur := b.Cursor()
	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		var doc document
		if err := json.Unmarshal(v, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s/%s: %w", c.schema.Name, k, err)
		}
		ok, err := doc.matches(filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, boltEntry{key: append([]byte(nil), k...), doc: doc})
		if first {
			break
		}
	}
	return out, nil
}

func (c *boltCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var found document
	err := c.db.View(func(tx *bolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		entries, err := c.scan(b, filter, true)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNoDocuments
		}
		found = entries[0].doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromDocument[T](found)
}

func (c *boltCollection[T]) Find(ctx context.Context, filter Filter, sort *Sort) ([]T, error) {
	var docs []document
	err := c.db.View(func(tx *bolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		entries, err := c.scan(b, filter, false)
		if err != nil {
			return err
		}
		for _, e := range entries {
			docs = append(docs, e.doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortDocuments(docs, sort)

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := fromDocument[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (c *boltCollection[T]) Insert(ctx context.Context, doc *T) error {
	d, err := toDocument(doc)
	if err != nil {
		return err
	}
	key, err := keyText(d, c.schema)
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling %s document: %w", c.schema.Name, err)
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		if b.Get([]byte(key)) != nil {
			return ErrDuplicateKey
		}
		return b.Put([]byte(key), data)
	})
}

func (c *boltCollection[T]) Update(ctx context.Context, filter Filter, fields Fields) (*T, error) {
	var updated document
	err := c.db.Update(func(tx *bolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		entries, err := c.scan(b, filter, true)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNoDocuments
		}

		merged, err := entries[0].doc.merge(fields)
		if err != nil {
			return err
		}
		key, err := keyText(merged, c.schema)
		if err != nil {
			return err
		}
		if key != string(entries[0].key) {
			if b.Get([]byte(key)) != nil {
				return ErrDuplicateKey
			}
			if err := b.Delete(entries[0].key); err != nil {
				return err
			}
		}

		data, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("marshaling %s document: %w", c.schema.Name, err)
		}
		updated = merged
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return nil, err
	}
	return fromDocument[T](updated)
}

func (c *boltCollection[T]) Delete(ctx context.Context, filter Filter) (*T, error) {
	var deleted document
	err := c.db.Update(func(tx *bolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		entries, err := c.scan(b, filter, true)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNoDocuments
		}
		deleted = entries[0].doc
		return b.Delete(entries[0].key)
	})
	if err != nil {
		return nil, err
	}
	return fromDocument[T](deleted)
}
