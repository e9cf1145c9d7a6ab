package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/models"
)

var (
	ErrPersonNotFound      = errors.New("person not found")
	ErrPersonEmailConflict = errors.New("person email conflict")
)

type PersonRepository interface {
	Create(ctx context.Context, person *models.Person) error
	ListByRole(ctx context.Context, role string) ([]models.Person, error)
	GetByID(ctx context.Context, role string, id int) (*models.Person, error)
	GetByEmail(ctx context.Context, role, email string) (*models.Person, error)
	GetByEmailAndMobile(ctx context.Context, role, email, mobile string) (*models.Person, error)
	UpdateByID(ctx context.Context, id int, fields db.Fields) (*models.Person, error)
	UpdateByEmail(ctx context.Context, role, email string, fields db.Fields) (*models.Person, error)
	DeleteByID(ctx context.Context, id int) (*models.Person, error)
	DeleteByEmail(ctx context.Context, email string) (*models.Person, error)
}

type storePersonRepository struct {
	people db.Collection[models.Person]
}

func NewPersonRepository(people db.Collection[models.Person]) PersonRepository {
	return &storePersonRepository{people: people}
}

// roleFilter adds the role constraint unless role is empty.
func roleFilter(role string, filter db.Filter) db.Filter {
	if role != "" {
		filter["role"] = role
	}
	return filter
}

func (r *storePersonRepository) Create(ctx context.Context, person *models.Person) error {
	err := r.people.Insert(ctx, person)
	return translateStoreError(err, "insert person", ErrPersonNotFound, ErrPersonEmailConflict)
}

// ListByRole returns the people holding role ordered by id.
func (r *storePersonRepository) ListByRole(ctx context.Context, role string) ([]models.Person, error) {
	people, err := r.people.Find(ctx, db.Filter{"role": role}, &db.Sort{Field: "id"})
	if err != nil {
		return nil, translateStoreError(err, "list people", ErrPersonNotFound, ErrPersonEmailConflict)
	}
	return people, nil
}

func (r *storePersonRepository) GetByID(ctx context.Context, role string, id int) (*models.Person, error) {
	return r.findOne(ctx, roleFilter(role, db.Filter{"id": id}))
}

func (r *storePersonRepository) GetByEmail(ctx context.Context, role, email string) (*models.Person, error) {
	return r.findOne(ctx, roleFilter(role, db.Filter{"emailid": email}))
}

func (r *storePersonRepository) GetByEmailAndMobile(ctx context.Context, role, email, mobile string) (*models.Person, error) {
	return r.findOne(ctx, roleFilter(role, db.Filter{"emailid": email, "mobile": mobile}))
}

func (r *storePersonRepository) findOne(ctx context.Context, filter db.Filter) (*models.Person, error) {
	person, err := r.people.FindOne(ctx, filter)
	if err != nil {
		return nil, translateStoreError(err, "get person", ErrPersonNotFound, ErrPersonEmailConflict)
	}
	return person, nil
}

func (r *storePersonRepository) UpdateByID(ctx context.Context, id int, fields db.Fields) (*models.Person, error) {
	return r.update(ctx, db.Filter{"id": id}, fields)
}

func (r *storePersonRepository) UpdateByEmail(ctx context.Context, role, email string, fields db.Fields) (*models.Person, error) {
	return r.update(ctx, roleFilter(role, db.Filter{"emailid": email}), fields)
}

func (r *storePersonRepository) update(ctx context.Context, filter db.Filter, fields db.Fields) (*models.Person, error) {
	person, err := r.people.Update(ctx, filter, fields)
	if err != nil {
		return nil, translateStoreError(err, "update person", ErrPersonNotFound, ErrPersonEmailConflict)
	}
	return person, nil
}

func (r *storePersonRepository) DeleteByID(ctx context.Context, id int) (*models.Person, error) {
	return r.delete(ctx, db.Filter{"id": id})
}

func (r *storePersonRepository) DeleteByEmail(ctx context.Context, email string) (*models.Person, error) {
	return r.delete(ctx, db.Filter{"emailid": email})
}

func (r *storePersonRepository) delete(ctx context.Context, filter db.Filter) (*models.Person, error) {
	person, err := r.people.Delete(ctx, filter)
	if err != nil {
		return nil, translateStoreError(err, "delete person", ErrPersonNotFound, ErrPersonEmailConflict)
	}
	return person, nil
}
