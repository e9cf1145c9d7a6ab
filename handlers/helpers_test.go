package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/sports-management/services"
	"github.com/Dosada05/sports-management/view"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Opponent string `json:"opponent"`
		MatchID  int    `json:"matchId"`
	}

	tests := map[string]struct {
		body    string
		wantErr string
	}{
		"valid":         {body: `{"opponent":"Falcons","matchId":4821}`},
		"empty":         {body: ``, wantErr: "body must not be empty"},
		"malformed":     {body: `{"opponent":`, wantErr: "badly-formed JSON"},
		"wrong type":    {body: `{"matchId":"4821"}`, wantErr: `incorrect JSON type for field "matchId"`},
		"unknown key":   {body: `{"venue":"Home"}`, wantErr: `body contains unknown key "venue"`},
		"two values":    {body: `{"opponent":"A"}{"opponent":"B"}`, wantErr: "single JSON value"},
		"syntax offset": {body: `{"opponent" "A"}`, wantErr: "at character"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/schedule", strings.NewReader(tc.body))
			var dst payload

			err := readJSON(httptest.NewRecorder(), r, &dst)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, payload{Opponent: "Falcons", MatchID: 4821}, dst)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGetIDFromURL(t *testing.T) {
	tests := map[string]struct {
		value   string
		want    int
		wantErr bool
	}{
		"valid":    {value: "4821", want: 4821},
		"missing":  {value: "", wantErr: true},
		"text":     {value: "abc", wantErr: true},
		"zero":     {value: "0", wantErr: true},
		"negative": {value: "-5", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("matchId", tc.value)
			r := httptest.NewRequest(http.MethodGet, "/schedule/"+tc.value, nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			got, err := getIDFromURL(r, "matchId")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&services.ValidationError{Fields: []string{"game"}}, http.StatusBadRequest},
		{services.ErrPasswordTooShort, http.StatusBadRequest},
		{services.ErrPasswordTooLong, http.StatusBadRequest},
		{fmt.Errorf("parsing: %w", services.ErrInvalidMatchDate), http.StatusBadRequest},
		{services.ErrInvalidMatchStatus, http.StatusBadRequest},
		{services.ErrMatchNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", services.ErrPersonNotFound), http.StatusNotFound},
		{services.ErrReviewNotFound, http.StatusNotFound},
		{services.ErrPasswordMismatch, http.StatusUnauthorized},
		{services.ErrEmailConflict, http.StatusConflict},
		{services.ErrMatchIDConflict, http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, mapServiceErrorToHTTP(tc.err))
		})
	}
}

func TestMessagesMessageFor(t *testing.T) {
	msgs := messages{
		services.ErrMatchNotFound:    "Schedule not found.",
		services.ErrValidationFailed: "Fill everything in.",
	}

	assert.Equal(t, "Schedule not found.", msgs.messageFor(fmt.Errorf("get: %w", services.ErrMatchNotFound), "fallback"))
	assert.Equal(t, "Fill everything in.", msgs.messageFor(&services.ValidationError{Fields: []string{"game"}}, "fallback"))
	assert.Equal(t, "disk full", msgs.messageFor(errors.New("disk full"), "fallback"))
	assert.Equal(t, "fallback", messages(nil).messageFor(errors.New(""), "fallback"))
}

func newTestPages(logOut io.Writer) *Pages {
	return NewPages(view.New(view.CoachTheme), slog.New(slog.NewJSONHandler(logOut, nil)))
}

func TestPages_WritesHTML(t *testing.T) {
	pages := newTestPages(io.Discard)

	rr := httptest.NewRecorder()
	pages.Message(rr, http.StatusNotFound, "MATCH DETAILS FOR ID 9999", "Match with ID 9999 not found.")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "MATCH DETAILS FOR ID 9999")
	assert.Contains(t, rr.Body.String(), "Match with ID 9999 not found.")
	assert.NotContains(t, rr.Body.String(), "<table")

	rr = httptest.NewRecorder()
	pages.Error(rr, http.StatusInternalServerError, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error 500")
	assert.Contains(t, rr.Body.String(), "An unexpected error occurred.")
}

func TestPages_LogFailureOnlyForServerErrors(t *testing.T) {
	var buf strings.Builder
	pages := newTestPages(&buf)
	r := httptest.NewRequest(http.MethodGet, "/schedule/9999", nil)

	pages.logFailure(r, http.StatusNotFound, services.ErrMatchNotFound)
	assert.Empty(t, buf.String())

	pages.logFailure(r, http.StatusInternalServerError, errors.New("connection reset"))
	assert.Contains(t, buf.String(), `"msg":"request failed"`)
	assert.Contains(t, buf.String(), "connection reset")
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}
