package models

import (
	"time"

	"github.com/Dosada05/sports-management/view"
)

const DefaultReviewNotes = "Pending player review."

// VideoReview is a match recording assigned to one player for review.
type VideoReview struct {
	VodID                 int       `json:"vodId" bson:"vodId" dynamodbav:"vodId"`
	MatchID               int       `json:"matchId" bson:"matchId" dynamodbav:"matchId"`
	AssignedToPlayerEmail string    `json:"assignedToPlayerEmail" bson:"assignedToPlayerEmail" dynamodbav:"assignedToPlayerEmail"`
	ReviewNotes           string    `json:"reviewNotes" bson:"reviewNotes" dynamodbav:"reviewNotes"`
	IsReviewed            bool      `json:"isReviewed" bson:"isReviewed" dynamodbav:"isReviewed"`
	CreatedAt             time.Time `json:"createdAt" bson:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt" bson:"updatedAt" dynamodbav:"updatedAt"`
}

func (v VideoReview) ToRecord() view.Record {
	rec := view.Record{
		{Key: "vodId", Value: v.VodID},
		{Key: "matchId", Value: v.MatchID},
		{Key: "assignedToPlayerEmail", Value: v.AssignedToPlayerEmail},
		{Key: "reviewNotes", Value: v.ReviewNotes},
		{Key: "isReviewed", Value: v.IsReviewed},
	}
	return withTimestamps(rec, v.CreatedAt, v.UpdatedAt)
}
