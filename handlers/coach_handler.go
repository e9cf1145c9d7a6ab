package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dosada05/sports-management/models"
	"github.com/Dosada05/sports-management/services"
	"github.com/Dosada05/sports-management/view"
)

const noScheduledMatches = "No scheduled matches found."

// CoachHandler serves the coach service: schedule management, VOD
// assignment and people administration.
type CoachHandler struct {
	pages         *Pages
	matchService  services.MatchService
	reviewService services.ReviewService
	personService services.PersonService
}

func NewCoachHandler(pages *Pages, ms services.MatchService, rs services.ReviewService, ps services.PersonService) *CoachHandler {
	return &CoachHandler{
		pages:         pages,
		matchService:  ms,
		reviewService: rs,
		personService: ps,
	}
}

// fail renders a failed coach operation on a themed page titled after the
// operation. Unexpected errors get the generic "Error" page.
func (h *CoachHandler) fail(w http.ResponseWriter, r *http.Request, title string, err error, msgs messages, fallback string) {
	status := mapServiceErrorToHTTP(err)
	h.pages.logFailure(r, status, err)

	if status == http.StatusInternalServerError {
		h.pages.Message(w, status, "Error", messages{}.messageFor(err, fallback))
		return
	}
	h.pages.Message(w, status, title, msgs.messageFor(err, fallback))
}

// CreateMatch godoc
// @Summary Schedule a match
// @Tags schedule
// @Description Creates a match with a generated matchId and status Scheduled.
// @Accept json
// @Produce html
// @Param body body services.CreateMatchInput true "opponent, matchDate (YYYY-MM-DD) and game are required"
// @Success 201 {string} string "Rendered match"
// @Failure 400 {object} map[string]string "Missing or malformed match info"
// @Failure 500 {object} map[string]string "Store error"
// @Router /schedule [post]
func (h *CoachHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		messageResponse(w, h.pages.logger, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		status := mapServiceErrorToHTTP(err)
		h.pages.logFailure(r, status, err)

		message := err.Error()
		if errors.As(err, &verr) {
			message = "Missing required match info: " + strings.Join(verr.Fields, ", ")
		}
		messageResponse(w, h.pages.logger, status, message)
		return
	}

	h.pages.Record(w, http.StatusCreated, "MATCH SCHEDULED!",
		"Good call, Coach. The new match is on the books and the team is ready.", match)
}

// ListSchedule godoc
// @Summary List scheduled matches
// @Tags schedule
// @Description Renders every match ordered by date.
// @Produce html
// @Success 200 {string} string "Schedule table"
// @Failure 500 {string} string "Store error"
// @Router /schedule [get]
// @Router /schedules [get]
func (h *CoachHandler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	h.renderSchedule(w, r, "Scheduled Matches", "Here are the upcoming battles, Coach. Let's get ready to rumble!")
}

// ListAdminSchedule godoc
// @Summary List scheduled matches (admin)
// @Tags admin
// @Produce html
// @Success 200 {string} string "Schedule table"
// @Failure 500 {string} string "Store error"
// @Router /admin/schedule [get]
func (h *CoachHandler) ListAdminSchedule(w http.ResponseWriter, r *http.Request) {
	h.renderSchedule(w, r, "All Scheduled Matches", "Admin view: Here are all scheduled matches.")
}

func (h *CoachHandler) renderSchedule(w http.ResponseWriter, r *http.Request, title, message string) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		h.fail(w, r, title, err, nil, "Error fetching schedule")
		return
	}

	h.pages.Table(w, http.StatusOK, title, message, view.Records(matches), models.ScheduleColumns, noScheduledMatches)
}

// GetMatch godoc
// @Summary Get match details
// @Tags schedule
// @Produce html
// @Param matchId path int true "Match ID"
// @Success 200 {string} string "Rendered match"
// @Failure 400 {string} string "Invalid match ID"
// @Failure 404 {string} string "Match not found"
// @Failure 500 {string} string "Store error"
// @Router /schedule/{matchId} [get]
func (h *CoachHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		h.pages.Message(w, http.StatusBadRequest, "MATCH DETAILS", err.Error())
		return
	}

	title := fmt.Sprintf("MATCH DETAILS FOR ID %d", matchID)
	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrMatchNotFound: fmt.Sprintf("Match with ID %d not found.", matchID),
		}, "Error fetching match details")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "Here are the details for your match, Coach. Let's strategize!", match)
}

// UpdateMatch godoc
// @Summary Update a match
// @Tags admin
// @Description Merges the supplied fields into the match.
// @Accept json
// @Produce html
// @Param matchId path int true "Match ID"
// @Param body body services.UpdateMatchInput true "Fields to change"
// @Success 200 {string} string "Rendered match"
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Schedule not found"
// @Failure 500 {string} string "Store error"
// @Router /schedule/{matchId} [put]
func (h *CoachHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	const title = "UPDATE SCHEDULE"

	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), matchID, input)
	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrMatchNotFound: "Schedule not found.",
		}, "Error updating schedule")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "Schedule updated successfully", match)
}

// DeleteMatch godoc
// @Summary Delete a match
// @Tags admin
// @Produce html
// @Param matchId path int true "Match ID"
// @Success 200 {string} string "Rendered deleted match"
// @Failure 400 {string} string "Invalid match ID"
// @Failure 404 {string} string "Schedule not found"
// @Failure 500 {string} string "Store error"
// @Router /schedule/{matchId} [delete]
func (h *CoachHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	const title = "DELETE SCHEDULE"

	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	match, err := h.matchService.DeleteMatch(r.Context(), matchID)
	if err != nil {
		h.fail(w, r, title, err, messages{
			services.ErrMatchNotFound: "Schedule not found.",
		}, "Error deleting schedule")
		return
	}

	h.pages.Record(w, http.StatusOK, title, "Successfully deleted schedule vs "+match.Opponent, match)
}

// AssignVOD godoc
// @Summary Assign a VOD review
// @Tags vods
// @Description Assigns a match recording to a player. The match and the player are not checked.
// @Accept json
// @Produce html
// @Param body body services.AssignReviewInput true "matchId and playerEmail are required"
// @Success 201 {string} string "Rendered review"
// @Failure 400 {string} string "Missing VOD info"
// @Failure 500 {string} string "Store error"
// @Router /assignvod [post]
func (h *CoachHandler) AssignVOD(w http.ResponseWriter, r *http.Request) {
	const title = "ASSIGN VOD"

	var input services.AssignReviewInput
	if err := readJSON(w, r, &input); err != nil {
		h.pages.Message(w, http.StatusBadRequest, title, err.Error())
		return
	}

	review, err := h.reviewService.AssignReview(r.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			h.pages.Message(w, http.StatusBadRequest, title, "Missing required VOD info: "+strings.Join(verr.Fields, ", "))
			return
		}
		h.fail(w, r, title, err, nil, "Error assigning VOD")
		return
	}

	h.pages.Record(w, http.StatusCreated, "VOD ASSIGNED!",
		"Time for some homework. This VOD review will give us the edge.", review)
}
