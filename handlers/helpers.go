package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/sports-management/services"
	"github.com/Dosada05/sports-management/view"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// messageResponse writes the raw {"message": ...} body used by the few
// early-validation paths that skip rendering.
func messageResponse(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	if err := writeJSON(w, status, jsonResponse{"message": message}, nil); err != nil {
		logger.Error("writing JSON response", slog.Any("error", err))
	}
}

func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", paramName)
	}

	return id, nil
}

// mapServiceErrorToHTTP picks the status code for a service error.
func mapServiceErrorToHTTP(err error) int {
	switch {
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrPasswordTooLong),
		errors.Is(err, services.ErrInvalidMatchDate),
		errors.Is(err, services.ErrInvalidMatchStatus):
		return http.StatusBadRequest

	case errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPersonNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		return http.StatusNotFound

	case errors.Is(err, services.ErrPasswordMismatch):
		return http.StatusUnauthorized

	case errors.Is(err, services.ErrEmailConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// messages holds the user-facing text for the service errors one handler
// can meet.
type messages map[error]string

// messageFor returns the text registered for err, the error itself, or
// fallback when the error carries no text.
func (m messages) messageFor(err error, fallback string) string {
	for target, msg := range m {
		if errors.Is(err, target) {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// Pages writes rendered documents for one service.
type Pages struct {
	renderer *view.Renderer
	logger   *slog.Logger
}

func NewPages(renderer *view.Renderer, logger *slog.Logger) *Pages {
	return &Pages{renderer: renderer, logger: logger}
}

func (p *Pages) write(w http.ResponseWriter, status int, html string, err error) {
	if err != nil {
		p.logger.Error("rendering page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, html); err != nil {
		p.logger.Warn("writing page", slog.Any("error", err))
	}
}

// Message renders a titled page without data.
func (p *Pages) Message(w http.ResponseWriter, status int, title, message string) {
	html, err := p.renderer.Record(title, message, nil)
	p.write(w, status, html, err)
}

func (p *Pages) Record(w http.ResponseWriter, status int, title, message string, rec view.Recordable) {
	html, err := p.renderer.Record(title, message, rec)
	p.write(w, status, html, err)
}

func (p *Pages) Collection(w http.ResponseWriter, status int, title, message string, recs []view.Recordable) {
	html, err := p.renderer.Collection(title, message, recs)
	p.write(w, status, html, err)
}

func (p *Pages) Table(w http.ResponseWriter, status int, title, message string, recs []view.Recordable, cols []view.Column, empty string) {
	html, err := p.renderer.Table(title, message, recs, cols, empty)
	p.write(w, status, html, err)
}

// Error renders the standalone error page.
func (p *Pages) Error(w http.ResponseWriter, status int, message string) {
	html, err := p.renderer.Error(status, message)
	p.write(w, status, html, err)
}

// logFailure records unexpected errors; client faults stay quiet.
func (p *Pages) logFailure(r *http.Request, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	p.logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
}
