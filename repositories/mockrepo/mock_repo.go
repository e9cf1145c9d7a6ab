package mockrepo

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/models"
)

type MatchRepository struct {
	mock.Mock
}

func (m *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MatchRepository) GetByID(ctx context.Context, matchID int) (*models.Match, error) {
	args := m.Called(ctx, matchID)
	return matchArg(args, 0), args.Error(1)
}

func (m *MatchRepository) ListByDate(ctx context.Context) ([]models.Match, error) {
	args := m.Called(ctx)

	var res []models.Match
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Match)
	}

	return res, args.Error(1)
}

func (m *MatchRepository) Update(ctx context.Context, matchID int, fields db.Fields) (*models.Match, error) {
	args := m.Called(ctx, matchID, fields)
	return matchArg(args, 0), args.Error(1)
}

func (m *MatchRepository) Delete(ctx context.Context, matchID int) (*models.Match, error) {
	args := m.Called(ctx, matchID)
	return matchArg(args, 0), args.Error(1)
}

func matchArg(args mock.Arguments, i int) *models.Match {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*models.Match)
}

type PersonRepository struct {
	mock.Mock
}

func (m *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *PersonRepository) ListByRole(ctx context.Context, role string) ([]models.Person, error) {
	args := m.Called(ctx, role)

	var res []models.Person
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Person)
	}

	return res, args.Error(1)
}

func (m *PersonRepository) GetByID(ctx context.Context, role string, id int) (*models.Person, error) {
	args := m.Called(ctx, role, id)
	return personArg(args, 0), args.Error(1)
}

func (m *PersonRepository) GetByEmail(ctx context.Context, role, email string) (*models.Person, error) {
	args := m.Called(ctx, role, email)
	return personArg(args, 0), args.Error(1)
}

func (m *PersonRepository) GetByEmailAndMobile(ctx context.Context, role, email, mobile string) (*models.Person, error) {
	args := m.Called(ctx, role, email, mobile)
	return personArg(args, 0), args.Error(1)
}

func (m *PersonRepository) UpdateByID(ctx context.Context, id int, fields db.Fields) (*models.Person, error) {
	args := m.Called(ctx, id, fields)
	return personArg(args, 0), args.Error(1)
}

func (m *PersonRepository) UpdateByEmail(ctx context.Context, role, email string, fields db.Fields) (*models.Person, error) {
	args := m.Called(ctx, role, email, fields)
	return personArg(args, 0), args.Error(1)
}

func (m *PersonRepository) DeleteByID(ctx context.Context, id int) (*models.Person, error) {
	args := m.Called(ctx, id)
	return personArg(args, 0), args.Error(1)
}

func (m *PersonRepository) DeleteByEmail(ctx context.Context, email string) (*models.Person, error) {
	args := m.Called(ctx, email)
	return personArg(args, 0), args.Error(1)
}

func personArg(args mock.Arguments, i int) *models.Person {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*models.Person)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, review *models.VideoReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) ListPending(ctx context.Context, playerEmail string) ([]models.VideoReview, error) {
	args := m.Called(ctx, playerEmail)

	var res []models.VideoReview
	if args.Get(0) != nil {
		res = args.Get(0).([]models.VideoReview)
	}

	return res, args.Error(1)
}

func (m *ReviewRepository) UpdateAssigned(ctx context.Context, vodID int, playerEmail string, fields db.Fields) (*models.VideoReview, error) {
	args := m.Called(ctx, vodID, playerEmail, fields)

	var res *models.VideoReview
	if args.Get(0) != nil {
		res = args.Get(0).(*models.VideoReview)
	}

	return res, args.Error(1)
}
