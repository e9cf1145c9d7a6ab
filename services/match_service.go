package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/models"
	"github.com/Dosada05/sports-management/repositories"
)

// IDGenerator hands out application-level identifiers.
type IDGenerator func() int

// RandomID draws uniformly from [1000, 9999].
func RandomID() int {
	return 1000 + rand.IntN(9000)
}

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	UpdateMatch(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, matchID int) (*models.Match, error)
}

type CreateMatchInput struct {
	Opponent  string `json:"opponent"`
	MatchDate string `json:"matchDate"`
	Game      string `json:"game"`
	Status    string `json:"status"`
}

// UpdateMatchInput carries only the fields to change.
type UpdateMatchInput struct {
	Opponent  *string `json:"opponent"`
	MatchDate *string `json:"matchDate"`
	Game      *string `json:"game"`
	Status    *string `json:"status"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	clock     clock.Clock
	nextID    IDGenerator
}

func NewMatchService(matchRepo repositories.MatchRepository, clk clock.Clock, ids IDGenerator) MatchService {
	if ids == nil {
		ids = RandomID
	}
	return &matchService{
		matchRepo: matchRepo,
		clock:     clk,
		nextID:    ids,
	}
}

// ParseMatchDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseMatchDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidMatchDate
}

func parseStatus(s string) (models.MatchStatus, error) {
	status := models.MatchStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", ErrInvalidMatchStatus
	}
	return status, nil
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if err := required("opponent", input.Opponent, "matchDate", input.MatchDate, "game", input.Game); err != nil {
		return nil, err
	}

	date, err := ParseMatchDate(input.MatchDate)
	if err != nil {
		return nil, err
	}

	status := models.MatchStatusScheduled
	if input.Status != "" {
		if status, err = parseStatus(input.Status); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now().UTC()
	match := &models.Match{
		MatchID:   s.nextID(),
		Opponent:  strings.TrimSpace(input.Opponent),
		MatchDate: date,
		Game:      strings.TrimSpace(input.Game),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchIDConflict) {
			return nil, ErrMatchIDConflict
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		return []models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	return match, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error) {
	fields := db.Fields{"updatedAt": s.clock.Now().UTC()}
	if input.Opponent != nil {
		fields["opponent"] = strings.TrimSpace(*input.Opponent)
	}
	if input.Game != nil {
		fields["game"] = strings.TrimSpace(*input.Game)
	}
	if input.MatchDate != nil {
		date, err := ParseMatchDate(*input.MatchDate)
		if err != nil {
			return nil, err
		}
		fields["matchDate"] = date
	}
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		fields["status"] = status
	}

	match, err := s.matchRepo.Update(ctx, matchID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", matchID, err)
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.Delete(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to delete match %d: %w", matchID, err)
	}
	return match, nil
}
