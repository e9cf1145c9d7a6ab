package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	id       int
	opponent string
}

func (f fixture) ToRecord() Record {
	return Record{
		{Key: "matchId", Value: f.id},
		{Key: "opponent", Value: f.opponent},
	}
}

func TestRenderer_Record(t *testing.T) {
	r := New(CoachTheme)

	rec := Record{
		{Key: "_id", Value: "64f0c2"},
		{Key: "matchId", Value: 4821},
		{Key: "opponent", Value: "Falcons"},
		{Key: "matchDate", Value: time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)},
		{Key: "__v", Value: 0},
	}

	html, err := r.Record("MATCH SCHEDULED!", "Good call, Coach.", rec)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(html, `<span class="label">`))
	assert.Contains(t, html, `<span class="label">Match Id:</span> 4821`)
	assert.Contains(t, html, `<span class="label">Match Date:</span> November 3, 2025`)
	assert.Contains(t, html, "<h1>MATCH SCHEDULED!</h1>")
	assert.Contains(t, html, "<title>Coach Command Center</title>")
	assert.NotContains(t, html, "64f0c2")
	assert.NotContains(t, html, "<table")
}

func TestRenderer_RecordNil(t *testing.T) {
	r := New(PlayerTheme)

	html, err := r.Record("MATCH SEARCH", "Match not found.", nil)
	require.NoError(t, err)

	assert.Contains(t, html, "Match not found.")
	assert.NotContains(t, html, `class="data-list"`)
	assert.NotContains(t, html, "<table")
	assert.Contains(t, html, "<title>Player Dashboard</title>")
}

func TestRenderer_RecordEmptyStrings(t *testing.T) {
	r := New(CoachTheme)

	html, err := r.Record("", "", nil)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1></h1>")
	assert.Contains(t, html, `<p class="coach-msg"></p>`)
}

func TestRenderer_RecordAcceptsConvertibleValues(t *testing.T) {
	r := New(CoachTheme)

	plain, err := r.Record("t", "m", Record{{Key: "matchId", Value: 7}, {Key: "opponent", Value: "Owls"}})
	require.NoError(t, err)
	converted, err := r.Record("t", "m", fixture{id: 7, opponent: "Owls"})
	require.NoError(t, err)

	assert.Equal(t, plain, converted)
}

func TestRenderer_CollectionEmpty(t *testing.T) {
	r := New(PlayerTheme)

	html, err := r.Collection("Upcoming Matches", "Nothing yet.", nil)
	require.NoError(t, err)

	assert.NotContains(t, html, "<table")
	assert.Contains(t, html, DefaultPlaceholder)
}

func TestRenderer_TableEmptyPlaceholder(t *testing.T) {
	r := New(CoachTheme)

	html, err := r.Table("Scheduled Matches", "msg", []Recordable{}, []Column{NewColumn("matchId")}, "No scheduled matches found.")
	require.NoError(t, err)

	assert.NotContains(t, html, "<table")
	assert.Contains(t, html, "No scheduled matches found.")
}

func TestRenderer_CollectionIntrospectsFirstRecord(t *testing.T) {
	r := New(PlayerTheme)

	recs := []Recordable{
		Record{
			{Key: "vodId", Value: 1111},
			{Key: "matchId", Value: 4821},
			{Key: "assignedToPlayerEmail", Value: "ace@team.gg"},
			{Key: "reviewNotes", Value: "Pending player review."},
			{Key: "isReviewed", Value: false},
		},
		// Missing matchId, extra field that the first record does not have.
		Record{
			{Key: "vodId", Value: 2222},
			{Key: "assignedToPlayerEmail", Value: "ace@team.gg"},
			{Key: "extra", Value: "ignored"},
		},
	}

	html, err := r.Collection("Your VOD Assignments", "Study the tape.", recs)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(html, "</th>"))
	assert.Equal(t, 6, strings.Count(html, "</td>"), "column count is constant across rows")
	assert.Contains(t, html, "<th>Assigned To Player Email</th>")
	assert.NotContains(t, html, "Review Notes")
	assert.NotContains(t, html, "ignored")
	assert.Contains(t, html, "<td></td>")

	first := strings.Index(html, "1111")
	second := strings.Index(html, "2222")
	assert.True(t, first >= 0 && second > first, "rows keep input order")
}

func TestRenderer_TableFixedColumns(t *testing.T) {
	r := New(CoachTheme)

	cols := []Column{
		NewColumn("matchId").WithLabel("Match ID"),
		NewColumn("matchDate").WithLabel("Date").WithWidth("30%"),
	}
	recs := Records([]fixture{{id: 1, opponent: "A"}, {id: 2, opponent: "B"}})

	html, err := r.Table("Scheduled Matches", "msg", recs, cols, "none")
	require.NoError(t, err)

	assert.Contains(t, html, "<th>Match ID</th>")
	assert.Contains(t, html, `<th style="width: 30%;">Date</th>`)
	assert.Equal(t, 2, strings.Count(html, "</th>"))
	assert.Equal(t, 4, strings.Count(html, "</td>"))
}

func TestRenderer_IsDeterministic(t *testing.T) {
	r := New(CoachTheme)
	recs := []Recordable{fixture{id: 1, opponent: "A"}}

	a, err := r.Collection("t", "m", recs)
	require.NoError(t, err)
	b, err := r.Collection("t", "m", recs)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRenderer_DoesNotMutateInput(t *testing.T) {
	r := New(CoachTheme)
	rec := Record{{Key: "_id", Value: "x"}, {Key: "opponent", Value: "Owls"}}

	_, err := r.Record("t", "m", rec)
	require.NoError(t, err)

	assert.Equal(t, Record{{Key: "_id", Value: "x"}, {Key: "opponent", Value: "Owls"}}, rec)
}

func TestRenderer_EscapesText(t *testing.T) {
	r := New(CoachTheme)

	html, err := r.Record("<b>", "a & b", Record{{Key: "name", Value: "<script>"}})
	require.NoError(t, err)

	assert.Contains(t, html, "&lt;b&gt;")
	assert.Contains(t, html, "a &amp; b")
	assert.NotContains(t, html, "<script>")
}

func TestRenderer_Error(t *testing.T) {
	r := New(PlayerTheme)

	html, err := r.Error(404, "VOD not found or not assigned to you.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Error 404</h1>")
	assert.Contains(t, html, "VOD not found or not assigned to you.")

	html, err = r.Error(500, "")
	require.NoError(t, err)
	assert.Contains(t, html, "An unexpected error occurred.")
}

func TestFromMap(t *testing.T) {
	rec := FromMap(map[string]any{"role": "coach", "emailid": "c@x.io", "name": "Sam"})

	assert.Equal(t, []string{"emailid", "name", "role"}, rec.Keys())
	v, ok := rec.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Sam", v)
}
