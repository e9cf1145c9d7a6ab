package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/sports-management/models"
)

func matchDay(day int) time.Time {
	return time.Date(2025, time.November, day, 0, 0, 0, 0, time.UTC)
}

// runStoreContract exercises the Collection semantics every backend must
// honour. The store is expected to be empty.
func runStoreContract(t *testing.T, store *Store) {
	ctx := context.Background()

	t.Run("insert and find one by key", func(t *testing.T) {
		m := &models.Match{MatchID: 4821, Opponent: "Falcons", MatchDate: matchDay(3), Game: "Soccer", Status: models.MatchStatusScheduled}
		require.NoError(t, store.Matches.Insert(ctx, m))

		got, err := store.Matches.FindOne(ctx, Filter{"matchId": 4821})
		require.NoError(t, err)
		assert.Equal(t, "Falcons", got.Opponent)
		assert.True(t, got.MatchDate.Equal(matchDay(3)))
		assert.Equal(t, models.MatchStatusScheduled, got.Status)
	})

	t.Run("duplicate key", func(t *testing.T) {
		err := store.Matches.Insert(ctx, &models.Match{MatchID: 4821, Opponent: "Owls", MatchDate: matchDay(4), Game: "Soccer"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("find one miss", func(t *testing.T) {
		_, err := store.Matches.FindOne(ctx, Filter{"matchId": 9999})
		assert.ErrorIs(t, err, ErrNoDocuments)
	})

	t.Run("find sorted by date", func(t *testing.T) {
		require.NoError(t, store.Matches.Insert(ctx, &models.Match{MatchID: 1500, Opponent: "Hawks", MatchDate: matchDay(20), Game: "Soccer"}))
		require.NoError(t, store.Matches.Insert(ctx, &models.Match{MatchID: 9000, Opponent: "Bears", MatchDate: matchDay(1), Game: "Soccer"}))

		asc, err := store.Matches.Find(ctx, nil, &Sort{Field: "matchDate"})
		require.NoError(t, err)
		require.Len(t, asc, 3)
		assert.Equal(t, []int{9000, 4821, 1500}, []int{asc[0].MatchID, asc[1].MatchID, asc[2].MatchID})

		desc, err := store.Matches.Find(ctx, Filter{}, &Sort{Field: "matchDate", Desc: true})
		require.NoError(t, err)
		require.Len(t, desc, 3)
		assert.Equal(t, 1500, desc[0].MatchID)
	})

	t.Run("find with filter", func(t *testing.T) {
		people := []models.Person{
			{ID: 1001, Name: "Ace", EmailID: "ace@team.gg", Pass: "secret1", Mobile: "555-0101", Role: models.RolePlayer},
			{ID: 1002, Name: "Blitz", EmailID: "blitz@team.gg", Pass: "secret2", Mobile: "555-0102", Role: models.RolePlayer},
			{ID: 2001, Name: "Sam", EmailID: "sam@team.gg", Pass: "secret3", Mobile: "555-0201", Role: models.RoleCoach},
		}
		for i := range people {
			require.NoError(t, store.People.Insert(ctx, &people[i]))
		}

		players, err := store.People.Find(ctx, Filter{"role": models.RolePlayer}, &Sort{Field: "id"})
		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, "Ace", players[0].Name)
		assert.Equal(t, "Blitz", players[1].Name)

		coach, err := store.People.FindOne(ctx, Filter{"role": models.RoleCoach, "id": 2001})
		require.NoError(t, err)
		assert.Equal(t, "sam@team.gg", coach.EmailID)

		none, err := store.People.Find(ctx, Filter{"role": "referee"}, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update merges fields", func(t *testing.T) {
		now := time.Date(2025, time.October, 2, 9, 30, 0, 0, time.UTC)
		got, err := store.Matches.Update(ctx, Filter{"matchId": 4821}, Fields{"status": models.MatchStatusCompleted, "updatedAt": now})
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusCompleted, got.Status)
		assert.Equal(t, "Falcons", got.Opponent)
		assert.True(t, got.UpdatedAt.Equal(now))
	})

	t.Run("update on compound filter", func(t *testing.T) {
		r := &models.VideoReview{VodID: 3333, MatchID: 4821, AssignedToPlayerEmail: "ace@team.gg", ReviewNotes: models.DefaultReviewNotes}
		require.NoError(t, store.Reviews.Insert(ctx, r))

		_, err := store.Reviews.Update(ctx, Filter{"vodId": 3333, "assignedToPlayerEmail": "blitz@team.gg"}, Fields{"isReviewed": true})
		assert.ErrorIs(t, err, ErrNoDocuments)

		got, err := store.Reviews.Update(ctx, Filter{"vodId": 3333, "assignedToPlayerEmail": "ace@team.gg"}, Fields{"isReviewed": true, "reviewNotes": "Watch the left flank."})
		require.NoError(t, err)
		assert.True(t, got.IsReviewed)
		assert.Equal(t, "Watch the left flank.", got.ReviewNotes)

		pending, err := store.Reviews.Find(ctx, Filter{"assignedToPlayerEmail": "ace@team.gg", "isReviewed": false}, nil)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("update changing the unique key", func(t *testing.T) {
		got, err := store.People.Update(ctx, Filter{"id": 1002}, Fields{"emailid": "blitz@club.gg"})
		require.NoError(t, err)
		assert.Equal(t, "blitz@club.gg", got.EmailID)

		_, err = store.People.FindOne(ctx, Filter{"emailid": "blitz@team.gg"})
		assert.ErrorIs(t, err, ErrNoDocuments)

		moved, err := store.People.FindOne(ctx, Filter{"emailid": "blitz@club.gg"})
		require.NoError(t, err)
		assert.Equal(t, 1002, moved.ID)
		assert.Equal(t, "secret2", moved.Pass)

		_, err = store.People.Update(ctx, Filter{"id": 1002}, Fields{"emailid": "ace@team.gg"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("update miss", func(t *testing.T) {
		_, err := store.Matches.Update(ctx, Filter{"matchId": 1234}, Fields{"game": "Chess"})
		assert.ErrorIs(t, err, ErrNoDocuments)
	})

	t.Run("sort by sub-second timestamps", func(t *testing.T) {
		base := time.Date(2025, time.October, 2, 9, 30, 5, 0, time.UTC)
		for vodID, offset := range map[int]time.Duration{
			5001: 100 * time.Millisecond,
			5002: 120 * time.Millisecond,
			5003: 50 * time.Millisecond,
		} {
			r := &models.VideoReview{VodID: vodID, MatchID: 4821, AssignedToPlayerEmail: "order@team.gg", CreatedAt: base.Add(offset)}
			require.NoError(t, store.Reviews.Insert(ctx, r))
		}

		got, err := store.Reviews.Find(ctx, Filter{"assignedToPlayerEmail": "order@team.gg"}, &Sort{Field: "createdAt"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int{5003, 5001, 5002}, []int{got[0].VodID, got[1].VodID, got[2].VodID})
	})

	t.Run("delete returns the document", func(t *testing.T) {
		got, err := store.Matches.Delete(ctx, Filter{"matchId": 1500})
		require.NoError(t, err)
		assert.Equal(t, "Hawks", got.Opponent)

		_, err = store.Matches.FindOne(ctx, Filter{"matchId": 1500})
		assert.ErrorIs(t, err, ErrNoDocuments)

		_, err = store.Matches.Delete(ctx, Filter{"matchId": 1500})
		assert.ErrorIs(t, err, ErrNoDocuments)
	})
}
