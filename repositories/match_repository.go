package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/models"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchIDConflict = errors.New("match id already in use")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, matchID int) (*models.Match, error)
	ListByDate(ctx context.Context) ([]models.Match, error)
	Update(ctx context.Context, matchID int, fields db.Fields) (*models.Match, error)
	Delete(ctx context.Context, matchID int) (*models.Match, error)
}

type storeMatchRepository struct {
	matches db.Collection[models.Match]
}

func NewMatchRepository(matches db.Collection[models.Match]) MatchRepository {
	return &storeMatchRepository{matches: matches}
}

func (r *storeMatchRepository) Create(ctx context.Context, match *models.Match) error {
	err := r.matches.Insert(ctx, match)
	return translateStoreError(err, "insert match", ErrMatchNotFound, ErrMatchIDConflict)
}

func (r *storeMatchRepository) GetByID(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := r.matches.FindOne(ctx, db.Filter{"matchId": matchID})
	if err != nil {
		return nil, translateStoreError(err, "get match", ErrMatchNotFound, ErrMatchIDConflict)
	}
	return match, nil
}

// ListByDate returns every match, earliest first.
func (r *storeMatchRepository) ListByDate(ctx context.Context) ([]models.Match, error) {
	matches, err := r.matches.Find(ctx, nil, &db.Sort{Field: "matchDate"})
	if err != nil {
		return nil, translateStoreError(err, "list matches", ErrMatchNotFound, ErrMatchIDConflict)
	}
	return matches, nil
}

func (r *storeMatchRepository) Update(ctx context.Context, matchID int, fields db.Fields) (*models.Match, error) {
	match, err := r.matches.Update(ctx, db.Filter{"matchId": matchID}, fields)
	if err != nil {
		return nil, translateStoreError(err, "update match", ErrMatchNotFound, ErrMatchIDConflict)
	}
	return match, nil
}

func (r *storeMatchRepository) Delete(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := r.matches.Delete(ctx, db.Filter{"matchId": matchID})
	if err != nil {
		return nil, translateStoreError(err, "delete match", ErrMatchNotFound, ErrMatchIDConflict)
	}
	return match, nil
}
