package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/itbasis/go-clock"

	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/models"
	"github.com/Dosada05/sports-management/repositories"
)

type ReviewService interface {
	AssignReview(ctx context.Context, input AssignReviewInput) (*models.VideoReview, error)
	ListPendingReviews(ctx context.Context, playerEmail string) ([]models.VideoReview, error)
	SubmitReview(ctx context.Context, vodID int, input SubmitReviewInput) (*models.VideoReview, error)
}

type AssignReviewInput struct {
	MatchID     int    `json:"matchId"`
	PlayerEmail string `json:"playerEmail"`
}

type SubmitReviewInput struct {
	EmailID string `json:"emailid"`
	Notes   string `json:"notes"`
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	clock      clock.Clock
	nextID     IDGenerator
}

func NewReviewService(reviewRepo repositories.ReviewRepository, clk clock.Clock, ids IDGenerator) ReviewService {
	if ids == nil {
		ids = RandomID
	}
	return &reviewService{
		reviewRepo: reviewRepo,
		clock:      clk,
		nextID:     ids,
	}
}

// AssignReview does not check that the match or the player exist.
func (s *reviewService) AssignReview(ctx context.Context, input AssignReviewInput) (*models.VideoReview, error) {
	var missing []string
	if input.MatchID == 0 {
		missing = append(missing, "matchId")
	}
	if strings.TrimSpace(input.PlayerEmail) == "" {
		missing = append(missing, "playerEmail")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	now := s.clock.Now().UTC()
	review := &models.VideoReview{
		VodID:                 s.nextID(),
		MatchID:               input.MatchID,
		AssignedToPlayerEmail: strings.TrimSpace(input.PlayerEmail),
		ReviewNotes:           models.DefaultReviewNotes,
		IsReviewed:            false,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repositories.ErrReviewIDConflict) {
			return nil, ErrReviewIDConflict
		}
		return nil, fmt.Errorf("failed to assign video review: %w", err)
	}
	return review, nil
}

func (s *reviewService) ListPendingReviews(ctx context.Context, playerEmail string) ([]models.VideoReview, error) {
	if err := required("emailid", playerEmail); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListPending(ctx, strings.TrimSpace(playerEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to list video reviews for %s: %w", playerEmail, err)
	}
	if reviews == nil {
		return []models.VideoReview{}, nil
	}
	return reviews, nil
}

// SubmitReview marks the VOD reviewed. A VOD assigned to someone else is
// reported as not found. Empty notes keep the stored ones.
func (s *reviewService) SubmitReview(ctx context.Context, vodID int, input SubmitReviewInput) (*models.VideoReview, error) {
	if err := required("emailid", input.EmailID); err != nil {
		return nil, err
	}

	fields := db.Fields{
		"isReviewed": true,
		"updatedAt":  s.clock.Now().UTC(),
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		fields["reviewNotes"] = notes
	}

	review, err := s.reviewRepo.UpdateAssigned(ctx, vodID, strings.TrimSpace(input.EmailID), fields)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to submit video review %d: %w", vodID, err)
	}
	return review, nil
}
