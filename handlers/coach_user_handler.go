package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/sports-management/models"
	"github.com/Dosada05/sports-management/services"
	"github.com/Dosada05/sports-management/view"
)

const (
	passwordTooShort = "New password must be at least 6 characters."
	passwordTooLong  = "New password must be at most 72 bytes."
)

// Roster godoc
// @Summary Team roster
// @Tags people
// @Produce html
// @Success 200 {string} string "Roster table"
// @Failure 500 {string} string "Store error"
// @Router /roster [get]
func (h *CoachHandler) Roster(w http.ResponseWriter, r *http.Request) {
	h.renderPeople(w, r, models.RolePlayer, "TEAM ROSTER", "Here are your legends, Coach. Ready for their next command.", "Error fetching roster")
}

// ListPlayers godoc
// @Summary List all players (admin)
// @Tags admin
// @Produce html
// @Success 200 {string} string "Roster table"
// @Failure 500 {string} string "Store error"
// @Router /players [get]
func (h *CoachHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	h.renderPeople(w, r, models.RolePlayer, "ALL PLAYERS", "Here is the list of all players (Admin view).", "Error fetching players")
}

// ListCoaches godoc
// @Summary List all coaches (admin)
// @Tags admin
// @Produce html
// @Success 200 {string} string "Roster table"
// @Failure 500 {string} string "Store error"
// @Router /coaches [get]
func (h *CoachHandler) ListCoaches(w http.ResponseWriter, r *http.Request) {
	h.renderPeople(w, r, models.RoleCoach, "ALL COACHES", "Here is the list of all coaches (Admin view).", "Error fetching coaches")
}

func (h *CoachHandler) renderPeople(w http.ResponseWriter, r *http.Request, role, title, message, fallback string) {
	people, err := h.personService.ListByRole(r.Context(), role)
	if err != nil {
		h.fail(w, r, title, err, nil, fallback)
		return
	}

	h.pages.Table(w, http.StatusOK, title, message, view.Records(people), models.RosterColumns, "No "+role+"s found.")
}

// SearchPlayer godoc
// @Summary Find a player
// @Tags people
// @Description Looks a player up by id, email or both.
// @Produce html
// @Param id query int false "Player ID"
// @Param email query string false "Player email"
// @Success 200 {string} string "Rendered player"
// @Failure 400 {string} string "Neither id nor email given"
// @Failure 404 {string} string "Player not found"
// @Failure 500 {string} string "Store error"
// @Router /player-search [get]
func (h *CoachHandler) SearchPlayer(w http.ResponseWriter, r *http.Request) {
	h.searchPerson(w, r, models.RolePlayer)
}

// SearchCoach godoc
// @Summary Find a coach
// @Tags people
// @Description Looks a coach up by id, email or both.
// @Produce html
// @Param id query int false "Coach ID"
// @Param email query string false "Coach email"
// @Success 200 {string} string "Rendered coach"
// @Failure 400 {string} string "Neither id nor email given"
// @Failure 404 {string} string "Coach not found"
// @Failure 500 {string} string "Store error"
// @Router /coach-search [get]
func (h *CoachHandler) SearchCoach(w http.ResponseWriter, r *http.Request) {
	h.searchPerson(w, r, models.RoleCoach)
}

func (h *CoachHandler) searchPerson(w http.ResponseWriter, r *http.Request, role string) {
	noun := view.Label(role)
	title := strings.ToUpper(role) + " SEARCH"

	var input services.SearchPersonInput
	input.Email = r.URL.Query().Get("email")
	if raw := r.URL.Query().Get("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.pages.Message(w, http.StatusBadRequest, title, noun+" ID must be a number.")
			return
		}
		input.ID = &id
	}

	person, err := h.personService.Search(r.Context(), role, input)
	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrValidationFailed: "Provide either " + role + " ID or email.",
			services.ErrPersonNotFound:   noun + " not found.",
		}, "Error fetching "+role)
		return
	}

	h.pages.Record(w, http.StatusOK, title, noun+" found.", person)
}

type deleteUserInput struct {
	Email string `json:"email"`
}

// DeleteUserByEmail godoc
// @Summary Delete a person by email
// @Tags admin
// @Accept json
// @Produce html
// @Param body body deleteUserInput true "Email of the person to delete"
// @Success 200 {string} string "Rendered deleted person"
// @Failure 400 {string} string "Email missing"
// @Failure 404 {string} string "User not found"
// @Failure 500 {string} string "Store error"
// @Router /user [delete]
func (h *CoachHandler) DeleteUserByEmail(w http.ResponseWriter, r *http.Request) {
	const title = "DELETE USER"

	var input deleteUserInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	person, err := h.personService.DeleteByEmail(r.Context(), input.Email)
	h.deletedUser(w, r, person, err)
}

// DeleteUserByID godoc
// @Summary Delete a person by id
// @Tags admin
// @Produce html
// @Param id path int true "Person ID"
// @Success 200 {string} string "Rendered deleted person"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "User not found"
// @Failure 500 {string} string "Store error"
// @Router /user/{id} [delete]
func (h *CoachHandler) DeleteUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		h.pages.Message(w, http.StatusBadRequest, "DELETE USER", err.Error())
		return
	}

	person, err := h.personService.DeleteByID(r.Context(), id)
	h.deletedUser(w, r, person, err)
}

func (h *CoachHandler) deletedUser(w http.ResponseWriter, r *http.Request, person *models.Person, err error) {
	const title = "DELETE USER"

	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrValidationFailed: "User email is required.",
			services.ErrPersonNotFound:   "User not found.",
		}, "Error deleting user")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "Successfully deleted user: "+person.Name, person)
}

// UpdateUser godoc
// @Summary Update a person
// @Tags admin
// @Description Merges the supplied fields into the person. A new pass is stored hashed.
// @Accept json
// @Produce html
// @Param id path int true "Person ID"
// @Param body body services.UpdatePersonInput true "Fields to change"
// @Success 200 {string} string "Rendered person"
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "User not found"
// @Failure 409 {string} string "Email already in use"
// @Failure 500 {string} string "Store error"
// @Router /user/{id} [put]
func (h *CoachHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	const title = "UPDATE USER"

	id, err := getIDFromURL(r, "id")
	if err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	var input services.UpdatePersonInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	person, err := h.personService.UpdateByID(r.Context(), id, input)
	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrValidationFailed: "User email and role must not be empty.",
			services.ErrPasswordTooShort: passwordTooShort,
			services.ErrPasswordTooLong:  passwordTooLong,
			services.ErrPersonNotFound:   "User not found.",
			services.ErrEmailConflict:    "Email address is already in use.",
		}, "Error updating user")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "User updated successfully", person)
}

// UpdatePassword godoc
// @Summary Change a password
// @Tags passwords
// @Description Replaces the password of a player or coach after checking the old one.
// @Accept json
// @Produce html
// @Param body body services.UpdatePasswordInput true "emailid, role, oldPassword and newPassword"
// @Success 200 {string} string "Password updated"
// @Failure 400 {string} string "Missing fields or short password"
// @Failure 401 {string} string "Old password is incorrect"
// @Failure 404 {string} string "Person not found"
// @Failure 500 {string} string "Store error"
// @Router /update-password [put]
func (h *CoachHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	const title = "UPDATE PASSWORD"

	var input services.UpdatePasswordInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	person, err := h.personService.UpdatePassword(r.Context(), input)
	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrValidationFailed: "Email, role, old and new password are required.",
			services.ErrPasswordTooShort: passwordTooShort,
			services.ErrPasswordTooLong:  passwordTooLong,
			services.ErrPersonNotFound:   view.Label(input.Role) + " not found.",
			services.ErrPasswordMismatch: "Old password is incorrect.",
		}, "Error updating password")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "Password updated successfully.", person.Summary(true))
}

// ResetPassword godoc
// @Summary Reset a forgotten password
// @Tags passwords
// @Description Replaces the password of the person whose email, role and mobile number match.
// @Accept json
// @Produce html
// @Param body body services.ResetPasswordInput true "emailid, role, mobile and newPassword"
// @Success 200 {string} string "Password reset"
// @Failure 400 {string} string "Missing fields or short password"
// @Failure 404 {string} string "No matching person"
// @Failure 500 {string} string "Store error"
// @Router /reset-password [put]
func (h *CoachHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	const title = "RESET PASSWORD"

	var input services.ResetPasswordInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	person, err := h.personService.ResetPassword(r.Context(), input)
	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrValidationFailed: "Email, role, mobile number and new password are required.",
			services.ErrPasswordTooShort: passwordTooShort,
			services.ErrPasswordTooLong:  passwordTooLong,
			services.ErrPersonNotFound:   view.Label(input.Role) + " not found or mobile number does not match.",
		}, "Error resetting password")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "Password reset successfully.", person.Summary(true))
}
