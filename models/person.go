package models

import (
	"time"

	"github.com/Dosada05/sports-management/view"
)

const (
	RolePlayer = "player"
	RoleCoach  = "coach"
)

// Person is anyone registered with the team. Role is free text; the services
// only query for players and coaches.
type Person struct {
	ID        int       `json:"id" bson:"id" dynamodbav:"id"`
	Name      string    `json:"name" bson:"name" dynamodbav:"name"`
	EmailID   string    `json:"emailid" bson:"emailid" dynamodbav:"emailid"`
	Pass      string    `json:"pass" bson:"pass" dynamodbav:"pass"`
	Mobile    string    `json:"mobile" bson:"mobile" dynamodbav:"mobile"`
	Role      string    `json:"role" bson:"role" dynamodbav:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" dynamodbav:"updatedAt"`
}

// ToRecord never exposes the password.
func (p Person) ToRecord() view.Record {
	rec := view.Record{
		{Key: "id", Value: p.ID},
		{Key: "name", Value: p.Name},
		{Key: "emailid", Value: p.EmailID},
		{Key: "mobile", Value: p.Mobile},
		{Key: "role", Value: p.Role},
	}
	return withTimestamps(rec, p.CreatedAt, p.UpdatedAt)
}

// Summary is the short form shown after a password change.
func (p Person) Summary(withRole bool) view.Record {
	rec := view.Record{
		{Key: "name", Value: p.Name},
		{Key: "emailid", Value: p.EmailID},
	}
	if withRole {
		rec = append(rec, view.Field{Key: "role", Value: p.Role})
	}
	return rec
}

// RosterColumns is the fixed column set of person tables.
var RosterColumns = []view.Column{
	view.NewColumn("name").WithLabel("Name").WithWidth("25%"),
	view.NewColumn("emailid").WithLabel("Email").WithWidth("35%"),
	view.NewColumn("mobile").WithLabel("Mobile").WithWidth("20%"),
	view.NewColumn("role").WithLabel("Role").WithWidth("20%"),
}
