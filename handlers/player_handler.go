package handlers

import (
	"net/http"

	"github.com/Dosada05/sports-management/models"
	"github.com/Dosada05/sports-management/services"
	"github.com/Dosada05/sports-management/view"
)

// PlayerHandler serves the player service. Failures render the standalone
// error page unless noted otherwise.
type PlayerHandler struct {
	pages         *Pages
	matchService  services.MatchService
	reviewService services.ReviewService
	personService services.PersonService
}

func NewPlayerHandler(pages *Pages, ms services.MatchService, rs services.ReviewService, ps services.PersonService) *PlayerHandler {
	return &PlayerHandler{
		pages:         pages,
		matchService:  ms,
		reviewService: rs,
		personService: ps,
	}
}

func (h *PlayerHandler) fail(w http.ResponseWriter, r *http.Request, err error, msgs messages, fallback string) {
	status := mapServiceErrorToHTTP(err)
	h.pages.logFailure(r, status, err)
	h.pages.Error(w, status, msgs.messageFor(err, fallback))
}

// Schedules godoc
// @Summary Upcoming matches
// @Tags schedule
// @Produce html
// @Success 200 {string} string "Schedule table"
// @Failure 500 {string} string "Store error"
// @Router /schedules [get]
func (h *PlayerHandler) Schedules(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		h.fail(w, r, err, nil, "Error fetching schedule")
		return
	}

	h.pages.Collection(w, http.StatusOK, "Upcoming Matches", "Here's the battle schedule. Time to prep.", view.Records(matches))
}

// MyVODs godoc
// @Summary Pending VOD reviews
// @Tags vods
// @Description Lists the unreviewed VODs assigned to a player.
// @Produce html
// @Param emailid query string true "Player email"
// @Success 200 {string} string "VOD table or the all-done page"
// @Failure 400 {string} string "emailid missing"
// @Failure 500 {string} string "Store error"
// @Router /myvods [get]
func (h *PlayerHandler) MyVODs(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListPendingReviews(r.Context(), r.URL.Query().Get("emailid"))
	if err != nil {
		h.fail(w, r, err, messages{
			services.ErrValidationFailed: "Player emailid is required as query parameter.",
		}, "Error fetching VODs")
		return
	}

	if len(reviews) == 0 {
		h.pages.Message(w, http.StatusOK, "No VODs Pending",
			"Your homework is all done, Legend. No VODs to review right now. Go get some reps in!")
		return
	}

	h.pages.Collection(w, http.StatusOK, "Your VOD Assignments",
		"Time to study the tape. Find our weaknesses, exploit theirs.", view.Records(reviews))
}

// ReviewVOD godoc
// @Summary Submit a VOD review
// @Tags vods
// @Description Marks a VOD reviewed. A VOD assigned to another player is reported as not found.
// @Accept json
// @Produce html
// @Param vodId path int true "VOD ID"
// @Param body body services.SubmitReviewInput true "emailid is required"
// @Success 200 {string} string "Rendered review"
// @Failure 400 {string} string "emailid missing"
// @Failure 404 {string} string "VOD not found or not assigned to you"
// @Failure 500 {string} string "Store error"
// @Router /reviewvod/{vodId} [put]
func (h *PlayerHandler) ReviewVOD(w http.ResponseWriter, r *http.Request) {
	vodID, err := getIDFromURL(r, "vodId")
	if err != nil {
		h.pages.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.SubmitReviewInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.reviewService.SubmitReview(r.Context(), vodID, input)
	if err != nil {
		h.fail(w, r, err, messages{
			services.ErrValidationFailed: "Player emailid is required in body.",
			services.ErrReviewNotFound:   "VOD not found or not assigned to you.",
		}, "Error updating VOD")
		return
	}

	h.pages.Record(w, http.StatusOK, "Review Submitted!", "Good work. Your insights have been logged for the coach.", review)
}

type playerResetInput struct {
	EmailID     string `json:"emailid"`
	Mobile      string `json:"mobile"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword godoc
// @Summary Reset a forgotten player password
// @Tags passwords
// @Accept json
// @Produce html
// @Param body body playerResetInput true "emailid, mobile and newPassword"
// @Success 200 {string} string "Password reset"
// @Failure 400 {string} string "Missing fields or short password"
// @Failure 404 {string} string "No matching player"
// @Failure 500 {string} string "Store error"
// @Router /reset-password [put]
func (h *PlayerHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input playerResetInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	person, err := h.personService.ResetPassword(r.Context(), services.ResetPasswordInput{
		EmailID:     input.EmailID,
		Role:        models.RolePlayer,
		Mobile:      input.Mobile,
		NewPassword: input.NewPassword,
	})
	if err != nil {
		h.fail(w, r, err, messages{
			services.ErrValidationFailed: "Email, mobile number and new password are required.",
			services.ErrPasswordTooShort: passwordTooShort,
			services.ErrPasswordTooLong:  passwordTooLong,
			services.ErrPersonNotFound:   "Player not found or mobile number does not match.",
		}, "Error resetting password.")
		return
	}

	h.pages.Record(w, http.StatusOK, "Password Reset", "Your password has been reset successfully.", person.Summary(false))
}

type playerPasswordInput struct {
	EmailID     string `json:"emailid"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdatePassword godoc
// @Summary Change a player password
// @Tags passwords
// @Description Failures render the themed page rather than the error page.
// @Accept json
// @Produce html
// @Param body body playerPasswordInput true "emailid, oldPassword and newPassword"
// @Success 200 {string} string "Password updated"
// @Failure 400 {string} string "Missing fields or short password"
// @Failure 401 {string} string "Old password is incorrect"
// @Failure 404 {string} string "Player not found"
// @Failure 500 {string} string "Store error"
// @Router /update-password [put]
func (h *PlayerHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	const title = "Update Password"

	var input playerPasswordInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	person, err := h.personService.UpdatePassword(r.Context(), services.UpdatePasswordInput{
		EmailID:     input.EmailID,
		Role:        models.RolePlayer,
		OldPassword: input.OldPassword,
		NewPassword: input.NewPassword,
	})
	if err != nil {
		status := mapServiceErrorToHTTP(err)
		h.pages.logFailure(r, status, err)
		h.pages.Message(w, status, title, messages{
			services.ErrValidationFailed: "Email, old and new password are required.",
			services.ErrPasswordTooShort: passwordTooShort,
			services.ErrPasswordTooLong:  passwordTooLong,
			services.ErrPersonNotFound:   "Player not found.",
			services.ErrPasswordMismatch: "Old password is incorrect.",
		}.messageFor(err, "Error updating password."))
		return
	}

	h.pages.Record(w, http.StatusOK, "Password Updated", "Your password has been updated successfully.", person.Summary(false))
}

// MatchSearch godoc
// @Summary Find a match
// @Tags schedule
// @Produce html
// @Param matchId path int true "Match ID"
// @Success 200 {string} string "Rendered match"
// @Failure 400 {string} string "Match ID is required"
// @Failure 404 {string} string "Match not found"
// @Failure 500 {string} string "Store error"
// @Router /{matchId} [get]
func (h *PlayerHandler) MatchSearch(w http.ResponseWriter, r *http.Request) {
	const title = "MATCH SEARCH"

	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, "Match ID is required.")
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		status := mapServiceErrorToHTTP(err)
		if status == http.StatusNotFound {
			h.pages.Message(w, status, title, "Match not found.")
			return
		}
		h.fail(w, r, err, nil, "Error fetching match")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "Match found.", match)
}
