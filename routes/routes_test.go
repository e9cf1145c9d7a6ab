package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/sports-management/db"
	"github.com/Dosada05/sports-management/handlers"
	"github.com/Dosada05/sports-management/models"
	"github.com/Dosada05/sports-management/repositories"
	"github.com/Dosada05/sports-management/services"
	"github.com/Dosada05/sports-management/utils"
	"github.com/Dosada05/sports-management/view"
)

func TestMain(m *testing.M) {
	utils.BcryptCost = bcrypt.MinCost
	m.Run()
}

type app struct {
	coach  http.Handler
	player http.Handler
	store  *db.Store
}

// sequence hands out ids in order and then keeps repeating the last one.
func sequence(ids ...int) services.IDGenerator {
	i := 0
	return func() int {
		id := ids[min(i, len(ids)-1)]
		i++
		return id
	}
}

func newApp(t *testing.T) *app {
	t.Helper()

	store, err := db.OpenBolt(filepath.Join(t.TempDir(), "routes.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })

	clk := clock.NewMock()
	clk.Set(time.Date(2025, time.October, 2, 9, 30, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	matchService := services.NewMatchService(repositories.NewMatchRepository(store.Matches), clk, sequence(4821, 1500))
	reviewService := services.NewReviewService(repositories.NewReviewRepository(store.Reviews), clk, sequence(1234))
	personService := services.NewPersonService(repositories.NewPersonRepository(store.People), clk)

	opts := Options{Logger: logger, AllowedOrigins: []string{"*"}}
	coach := handlers.NewCoachHandler(handlers.NewPages(view.New(view.CoachTheme), logger), matchService, reviewService, personService)
	player := handlers.NewPlayerHandler(handlers.NewPages(view.New(view.PlayerTheme), logger), matchService, reviewService, personService)

	return &app{
		coach:  CoachRoutes(coach, opts),
		player: PlayerRoutes(player, opts),
		store:  store,
	}
}

func (a *app) seedPerson(t *testing.T, p models.Person, password string) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	p.Pass = hash
	require.NoError(t, a.store.People.Insert(context.Background(), &p))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndDocs(t *testing.T) {
	a := newApp(t)

	for name, h := range map[string]http.Handler{"coach": a.coach, "player": a.player} {
		t.Run(name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, "/health", "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())

			rr = do(t, h, http.MethodGet, "/swagger/doc.json", "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"swagger": "2.0"`)
		})
	}
}

func TestCORS(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/schedule", nil)
	req.Header.Set("Origin", "https://team.gg")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	a.coach.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCoachSchedule(t *testing.T) {
	a := newApp(t)

	t.Run("empty schedule", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodGet, "/schedule", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No scheduled matches found.")
		assert.NotContains(t, rr.Body.String(), "<table")
	})

	t.Run("create", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodPost, "/schedule", `{"opponent":"Falcons","matchDate":"2025-11-03","game":"Soccer"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

		body := rr.Body.String()
		assert.Contains(t, body, "MATCH SCHEDULED!")
		assert.Contains(t, body, "Match Date")
		assert.Contains(t, body, "November 3, 2025")
		assert.Contains(t, body, "4821")
		assert.Contains(t, body, "Scheduled")
		assert.Contains(t, body, "Coach Command Center")
	})

	t.Run("create missing fields", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodPost, "/schedule", `{"opponent":"Falcons"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Missing required match info: matchDate, game", resp["message"])
	})

	t.Run("create with bad date", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodPost, "/schedule", `{"opponent":"Falcons","matchDate":"next week","game":"Soccer"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		for _, path := range []string{"/schedule", "/schedules", "/admin/schedule"} {
			rr := do(t, a.coach, http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, rr.Code, path)
			assert.Contains(t, rr.Body.String(), "<table", path)
			assert.Contains(t, rr.Body.String(), "Falcons", path)
			assert.Contains(t, rr.Body.String(), "November 3, 2025", path)
		}
	})

	t.Run("get", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodGet, "/schedule/4821", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "MATCH DETAILS FOR ID 4821")
	})

	t.Run("get missing", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodGet, "/schedule/9999", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Match with ID 9999 not found.")
		assert.NotContains(t, rr.Body.String(), "<table")
	})

	t.Run("get bad id", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodGet, "/schedule/abc", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("update", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodPut, "/schedule/4821", `{"status":"Completed"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Schedule updated successfully")
		assert.Contains(t, rr.Body.String(), "Completed")

		rr = do(t, a.coach, http.MethodPut, "/schedule/9999", `{"status":"Completed"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Schedule not found.")

		rr = do(t, a.coach, http.MethodPut, "/schedule/4821", `{"status":"Postponed"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodDelete, "/schedule/4821", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Successfully deleted schedule vs Falcons")

		rr = do(t, a.coach, http.MethodDelete, "/schedule/4821", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestVODFlow(t *testing.T) {
	a := newApp(t)

	rr := do(t, a.coach, http.MethodPost, "/assignvod", `{"playerEmail":"ace@team.gg"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Missing required VOD info: matchId")

	rr = do(t, a.coach, http.MethodPost, "/assignvod", `{"matchId":4821,"playerEmail":"ace@team.gg"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "VOD ASSIGNED!")
	assert.Contains(t, rr.Body.String(), models.DefaultReviewNotes)

	rr = do(t, a.player, http.MethodGet, "/myvods", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error 400")

	rr = do(t, a.player, http.MethodGet, "/myvods?emailid=ace@team.gg", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Your VOD Assignments")
	assert.Contains(t, rr.Body.String(), "1234")
	assert.Contains(t, rr.Body.String(), "Player Dashboard")

	rr = do(t, a.player, http.MethodPut, "/reviewvod/1234", `{"emailid":"blitz@team.gg","notes":"Not mine."}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "VOD not found or not assigned to you.")

	rr = do(t, a.player, http.MethodPut, "/reviewvod/1234", `{"notes":"No email."}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, a.player, http.MethodPut, "/reviewvod/1234", `{"emailid":"ace@team.gg","notes":"Watch the left flank."}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Review Submitted!")
	assert.Contains(t, rr.Body.String(), "Watch the left flank.")

	rr = do(t, a.player, http.MethodGet, "/myvods?emailid=ace@team.gg", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No VODs Pending")
	assert.NotContains(t, rr.Body.String(), "<table")
}

func TestPlayerSchedule(t *testing.T) {
	a := newApp(t)

	rr := do(t, a.coach, http.MethodPost, "/schedule", `{"opponent":"Falcons","matchDate":"2025-11-03","game":"Soccer"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, a.player, http.MethodGet, "/schedules", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Upcoming Matches")
	assert.Contains(t, rr.Body.String(), "Falcons")

	rr = do(t, a.player, http.MethodGet, "/4821", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Match found.")

	rr = do(t, a.player, http.MethodGet, "/9999", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Match not found.")

	rr = do(t, a.player, http.MethodGet, "/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Match ID is required.")
}

func TestCoachPeople(t *testing.T) {
	a := newApp(t)
	a.seedPerson(t, models.Person{ID: 1001, Name: "Ace", EmailID: "ace@team.gg", Mobile: "555-0101", Role: models.RolePlayer}, "secret1")
	a.seedPerson(t, models.Person{ID: 1002, Name: "Blitz", EmailID: "blitz@team.gg", Mobile: "555-0102", Role: models.RolePlayer}, "secret2")
	a.seedPerson(t, models.Person{ID: 2001, Name: "Sam", EmailID: "sam@team.gg", Mobile: "555-0201", Role: models.RoleCoach}, "coachpw")

	t.Run("rosters", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodGet, "/players", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Ace")
		assert.Contains(t, rr.Body.String(), "Blitz")
		assert.NotContains(t, rr.Body.String(), "sam@team.gg")
		assert.NotContains(t, rr.Body.String(), "$2a$")

		rr = do(t, a.coach, http.MethodGet, "/coaches", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Sam")
	})

	t.Run("search", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodGet, "/player-search?email=ace@team.gg", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Player found.")

		rr = do(t, a.coach, http.MethodGet, "/player-search?id=1002", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "blitz@team.gg")

		rr = do(t, a.coach, http.MethodGet, "/player-search?id=2001", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Player not found.")

		rr = do(t, a.coach, http.MethodGet, "/player-search?id=abc", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Player ID must be a number.")

		rr = do(t, a.coach, http.MethodGet, "/coach-search", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Provide either coach ID or email.")
	})

	t.Run("update password", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodPut, "/update-password",
			`{"emailid":"sam@team.gg","role":"coach","oldPassword":"wrong","newPassword":"newcoachpw"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Old password is incorrect.")

		rr = do(t, a.coach, http.MethodPut, "/update-password",
			`{"emailid":"sam@team.gg","role":"coach","oldPassword":"coachpw","newPassword":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = do(t, a.coach, http.MethodPut, "/update-password",
			`{"emailid":"sam@team.gg","role":"coach","oldPassword":"coachpw","newPassword":"newcoachpw"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Password updated successfully.")
	})

	t.Run("player passwords", func(t *testing.T) {
		rr := do(t, a.player, http.MethodPut, "/update-password",
			`{"emailid":"ace@team.gg","oldPassword":"nope","newPassword":"secret9"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Update Password")

		rr = do(t, a.player, http.MethodPut, "/reset-password",
			`{"emailid":"ace@team.gg","mobile":"555-9999","newPassword":"secret9"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = do(t, a.player, http.MethodPut, "/reset-password",
			`{"emailid":"ace@team.gg","mobile":"555-0101","newPassword":"secret9"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Password Reset")

		rr = do(t, a.player, http.MethodPut, "/update-password",
			`{"emailid":"ace@team.gg","oldPassword":"secret9","newPassword":"secret10"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("passwords over the bcrypt limit", func(t *testing.T) {
		long := strings.Repeat("p", 80)

		rr := do(t, a.player, http.MethodPut, "/reset-password",
			`{"emailid":"ace@team.gg","mobile":"555-0101","newPassword":"`+long+`"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "New password must be at most 72 bytes.")
		assert.NotContains(t, rr.Body.String(), "bcrypt")

		rr = do(t, a.coach, http.MethodPut, "/update-password",
			`{"emailid":"sam@team.gg","role":"coach","oldPassword":"newcoachpw","newPassword":"`+long+`"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "UPDATE PASSWORD")
		assert.Contains(t, rr.Body.String(), "New password must be at most 72 bytes.")

		rr = do(t, a.coach, http.MethodPut, "/user/1002", `{"pass":"`+long+`"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("blank role", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodPut, "/user/1002", `{"role":""}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "User email and role must not be empty.")
	})

	t.Run("update user", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodPut, "/user/1002", `{"emailid":"ace@team.gg"}`)
		assert.Equal(t, http.StatusConflict, rr.Code)

		rr = do(t, a.coach, http.MethodPut, "/user/1002", `{"mobile":"555-0199"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "555-0199")

		rr = do(t, a.coach, http.MethodPut, "/user/7777", `{"mobile":"555-0199"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := do(t, a.coach, http.MethodDelete, "/user", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "User email is required.")

		rr = do(t, a.coach, http.MethodDelete, "/user", `{"email":"blitz@team.gg"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Successfully deleted user: Blitz")

		rr = do(t, a.coach, http.MethodDelete, "/user/1001", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Successfully deleted user: Ace")

		rr = do(t, a.coach, http.MethodDelete, "/user/1001", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "User not found.")
	})
}
