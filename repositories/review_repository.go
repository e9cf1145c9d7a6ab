package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/models"
)

var (
	ErrReviewNotFound   = errors.New("video review not found")
	ErrReviewIDConflict = errors.New("video review id already in use")
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.VideoReview) error
	ListPending(ctx context.Context, playerEmail string) ([]models.VideoReview, error)
	UpdateAssigned(ctx context.Context, vodID int, playerEmail string, fields db.Fields) (*models.VideoReview, error)
}

type storeReviewRepository struct {
	reviews db.Collection[models.VideoReview]
}

func NewReviewRepository(reviews db.Collection[models.VideoReview]) ReviewRepository {
	return &storeReviewRepository{reviews: reviews}
}

func (r *storeReviewRepository) Create(ctx context.Context, review *models.VideoReview) error {
	err := r.reviews.Insert(ctx, review)
	return translateStoreError(err, "insert video review", ErrReviewNotFound, ErrReviewIDConflict)
}

// ListPending returns the unreviewed VODs assigned to playerEmail, oldest
// assignment first.
func (r *storeReviewRepository) ListPending(ctx context.Context, playerEmail string) ([]models.VideoReview, error) {
	filter := db.Filter{"assignedToPlayerEmail": playerEmail, "isReviewed": false}
	reviews, err := r.reviews.Find(ctx, filter, &db.Sort{Field: "createdAt"})
	if err != nil {
		return nil, translateStoreError(err, "list video reviews", ErrReviewNotFound, ErrReviewIDConflict)
	}
	return reviews, nil
}

// UpdateAssigned only touches the VOD when it is assigned to playerEmail.
func (r *storeReviewRepository) UpdateAssigned(ctx context.Context, vodID int, playerEmail string, fields db.Fields) (*models.VideoReview, error) {
	filter := db.Filter{"vodId": vodID, "assignedToPlayerEmail": playerEmail}
	review, err := r.reviews.Update(ctx, filter, fields)
	if err != nil {
		return nil, translateStoreError(err, "update video review", ErrReviewNotFound, ErrReviewIDConflict)
	}
	return review, nil
}
