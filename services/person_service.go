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
	"github.com/Dosada05/sports-management/utils"
)

type PersonService interface {
	ListByRole(ctx context.Context, role string) ([]models.Person, error)
	Search(ctx context.Context, role string, input SearchPersonInput) (*models.Person, error)
	DeleteByEmail(ctx context.Context, email string) (*models.Person, error)
	DeleteByID(ctx context.Context, id int) (*models.Person, error)
	UpdateByID(ctx context.Context, id int, input UpdatePersonInput) (*models.Person, error)
	UpdatePassword(ctx context.Context, input UpdatePasswordInput) (*models.Person, error)
	ResetPassword(ctx context.Context, input ResetPasswordInput) (*models.Person, error)
}

// SearchPersonInput looks a person up by ID, by email, or by both.
type SearchPersonInput struct {
	ID    *int
	Email string
}

type UpdatePersonInput struct {
	Name    *string `json:"name"`
	EmailID *string `json:"emailid"`
	Pass    *string `json:"pass"`
	Mobile  *string `json:"mobile"`
	Role    *string `json:"role"`
}

type UpdatePasswordInput struct {
	EmailID     string `json:"emailid"`
	Role        string `json:"role"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordInput struct {
	EmailID     string `json:"emailid"`
	Role        string `json:"role"`
	Mobile      string `json:"mobile"`
	NewPassword string `json:"newPassword"`
}

type personService struct {
	personRepo repositories.PersonRepository
	clock      clock.Clock
}

func NewPersonService(personRepo repositories.PersonRepository, clk clock.Clock) PersonService {
	return &personService{
		personRepo: personRepo,
		clock:      clk,
	}
}

func mapPersonError(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, repositories.ErrPersonNotFound):
		return ErrPersonNotFound
	case errors.Is(err, repositories.ErrPersonEmailConflict):
		return ErrEmailConflict
	default:
		return fmt.Errorf(format+": %w", append(args, err)...)
	}
}

func (s *personService) ListByRole(ctx context.Context, role string) ([]models.Person, error) {
	people, err := s.personRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s people: %w", role, err)
	}
	if people == nil {
		return []models.Person{}, nil
	}
	return people, nil
}

func (s *personService) Search(ctx context.Context, role string, input SearchPersonInput) (*models.Person, error) {
	var (
		person *models.Person
		err    error
	)
	switch {
	case input.ID != nil:
		person, err = s.personRepo.GetByID(ctx, role, *input.ID)
	case strings.TrimSpace(input.Email) != "":
		person, err = s.personRepo.GetByEmail(ctx, role, strings.TrimSpace(input.Email))
	default:
		return nil, &ValidationError{Fields: []string{"id", "email"}}
	}
	if err != nil {
		return nil, mapPersonError(err, "failed to search %s", role)
	}
	if email := strings.TrimSpace(input.Email); input.ID != nil && email != "" && person.EmailID != email {
		return nil, ErrPersonNotFound
	}
	return person, nil
}

func (s *personService) DeleteByEmail(ctx context.Context, email string) (*models.Person, error) {
	if err := required("email", email); err != nil {
		return nil, err
	}
	person, err := s.personRepo.DeleteByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, mapPersonError(err, "failed to delete person %s", email)
	}
	return person, nil
}

func (s *personService) DeleteByID(ctx context.Context, id int) (*models.Person, error) {
	person, err := s.personRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, mapPersonError(err, "failed to delete person %d", id)
	}
	return person, nil
}

// UpdateByID merges the given fields. A new password is hashed.
func (s *personService) UpdateByID(ctx context.Context, id int, input UpdatePersonInput) (*models.Person, error) {
	fields := db.Fields{"updatedAt": s.clock.Now().UTC()}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.EmailID != nil {
		if err := required("emailid", *input.EmailID); err != nil {
			return nil, err
		}
		fields["emailid"] = strings.TrimSpace(*input.EmailID)
	}
	if input.Mobile != nil {
		fields["mobile"] = strings.TrimSpace(*input.Mobile)
	}
	if input.Role != nil {
		if err := required("role", *input.Role); err != nil {
			return nil, err
		}
		fields["role"] = strings.TrimSpace(*input.Role)
	}
	if input.Pass != nil {
		hash, err := hashNewPassword(*input.Pass)
		if err != nil {
			return nil, err
		}
		fields["pass"] = hash
	}

	person, err := s.personRepo.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, mapPersonError(err, "failed to update person %d", id)
	}
	return person, nil
}

func hashNewPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// UpdatePassword replaces the password after checking the old one.
func (s *personService) UpdatePassword(ctx context.Context, input UpdatePasswordInput) (*models.Person, error) {
	err := required(
		"emailid", input.EmailID,
		"role", input.Role,
		"oldPassword", input.OldPassword,
		"newPassword", input.NewPassword,
	)
	if err != nil {
		return nil, err
	}
	hash, err := hashNewPassword(input.NewPassword)
	if err != nil {
		return nil, err
	}

	person, err := s.personRepo.GetByEmail(ctx, input.Role, strings.TrimSpace(input.EmailID))
	if err != nil {
		return nil, mapPersonError(err, "failed to load %s %s", input.Role, input.EmailID)
	}
	if !utils.CheckPassword(input.OldPassword, person.Pass) {
		return nil, ErrPasswordMismatch
	}

	return s.setPassword(ctx, person, hash)
}

// ResetPassword replaces the password of the person whose email and mobile
// number both match.
func (s *personService) ResetPassword(ctx context.Context, input ResetPasswordInput) (*models.Person, error) {
	err := required(
		"emailid", input.EmailID,
		"role", input.Role,
		"mobile", input.Mobile,
		"newPassword", input.NewPassword,
	)
	if err != nil {
		return nil, err
	}
	hash, err := hashNewPassword(input.NewPassword)
	if err != nil {
		return nil, err
	}

	person, err := s.personRepo.GetByEmailAndMobile(ctx, input.Role, strings.TrimSpace(input.EmailID), strings.TrimSpace(input.Mobile))
	if err != nil {
		return nil, mapPersonError(err, "failed to load %s %s", input.Role, input.EmailID)
	}

	return s.setPassword(ctx, person, hash)
}

func (s *personService) setPassword(ctx context.Context, person *models.Person, hash string) (*models.Person, error) {
	fields := db.Fields{"pass": hash, "updatedAt": s.clock.Now().UTC()}
	updated, err := s.personRepo.UpdateByEmail(ctx, person.Role, person.EmailID, fields)
	if err != nil {
		return nil, mapPersonError(err, "failed to store password for %s", person.EmailID)
	}
	return updated, nil
}
