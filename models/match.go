package models

import (
	"slices"
	"time"

	"github.com/Dosada05/sports-management/view"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "Scheduled"
	MatchStatusCompleted MatchStatus = "Completed"
	MatchStatusCancelled MatchStatus = "Cancelled"
)

var matchStatuses = []MatchStatus{MatchStatusScheduled, MatchStatusCompleted, MatchStatusCancelled}

func (s MatchStatus) Valid() bool {
	return slices.Contains(matchStatuses, s)
}

type Match struct {
	MatchID   int         `json:"matchId" bson:"matchId" dynamodbav:"matchId"`
	Opponent  string      `json:"opponent" bson:"opponent" dynamodbav:"opponent"`
	MatchDate time.Time   `json:"matchDate" bson:"matchDate" dynamodbav:"matchDate"`
	Game      string      `json:"game" bson:"game" dynamodbav:"game"`
	Status    MatchStatus `json:"status" bson:"status" dynamodbav:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt" dynamodbav:"updatedAt"`
}

func (m Match) ToRecord() view.Record {
	rec := view.Record{
		{Key: "matchId", Value: m.MatchID},
		{Key: "opponent", Value: m.Opponent},
		{Key: "matchDate", Value: m.MatchDate},
		{Key: "game", Value: m.Game},
		{Key: "status", Value: string(m.Status)},
	}
	return withTimestamps(rec, m.CreatedAt, m.UpdatedAt)
}

// ScheduleColumns is the fixed column set of the coach schedule table.
var ScheduleColumns = []view.Column{
	view.NewColumn("matchId").WithLabel("Match ID"),
	view.NewColumn("opponent").WithLabel("Opponent"),
	view.NewColumn("game").WithLabel("Game"),
	view.NewColumn("matchDate").WithLabel("Date"),
	view.NewColumn("status").WithLabel("Status"),
}
