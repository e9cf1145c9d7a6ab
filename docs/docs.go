// Package docs registers the OpenAPI documents of the coach and player
// services with swag. Regenerate the templates with swag init when the
// handler annotations change.
package docs

import "github.com/swaggo/swag"

const (
	CoachInstance  = "coach"
	PlayerInstance = "player"
)

const coachTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/schedule": {
            "get": {
                "produces": ["text/html"],
                "tags": ["schedule"],
                "summary": "List scheduled matches",
                "responses": {"200": {"description": "Schedule table"}, "500": {"description": "Store error"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/html", "application/json"],
                "tags": ["schedule"],
                "summary": "Schedule a match",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateMatchInput"}}],
                "responses": {"201": {"description": "Rendered match"}, "400": {"description": "Missing or malformed match info"}, "500": {"description": "Store error"}}
            }
        },
        "/schedules": {
            "get": {
                "produces": ["text/html"],
                "tags": ["schedule"],
                "summary": "List scheduled matches",
                "responses": {"200": {"description": "Schedule table"}, "500": {"description": "Store error"}}
            }
        },
        "/admin/schedule": {
            "get": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "List scheduled matches (admin)",
                "responses": {"200": {"description": "Schedule table"}, "500": {"description": "Store error"}}
            }
        },
        "/schedule/{matchId}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["schedule"],
                "summary": "Get match details",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "matchId", "in": "path", "required": true}],
                "responses": {"200": {"description": "Rendered match"}, "400": {"description": "Invalid match ID"}, "404": {"description": "Match not found"}, "500": {"description": "Store error"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Update a match",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateMatchInput"}}
                ],
                "responses": {"200": {"description": "Rendered match"}, "400": {"description": "Invalid input"}, "404": {"description": "Schedule not found"}, "500": {"description": "Store error"}}
            },
            "delete": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Delete a match",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "matchId", "in": "path", "required": true}],
                "responses": {"200": {"description": "Rendered deleted match"}, "404": {"description": "Schedule not found"}, "500": {"description": "Store error"}}
            }
        },
        "/assignvod": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["vods"],
                "summary": "Assign a VOD review",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.AssignReviewInput"}}],
                "responses": {"201": {"description": "Rendered review"}, "400": {"description": "Missing VOD info"}, "500": {"description": "Store error"}}
            }
        },
        "/roster": {
            "get": {
                "produces": ["text/html"],
                "tags": ["people"],
                "summary": "Team roster",
                "responses": {"200": {"description": "Roster table"}, "500": {"description": "Store error"}}
            }
        },
        "/players": {
            "get": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "List all players (admin)",
                "responses": {"200": {"description": "Roster table"}, "500": {"description": "Store error"}}
            }
        },
        "/coaches": {
            "get": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "List all coaches (admin)",
                "responses": {"200": {"description": "Roster table"}, "500": {"description": "Store error"}}
            }
        },
        "/player-search": {
            "get": {
                "produces": ["text/html"],
                "tags": ["people"],
                "summary": "Find a player",
                "parameters": [
                    {"type": "integer", "description": "Player ID", "name": "id", "in": "query"},
                    {"type": "string", "description": "Player email", "name": "email", "in": "query"}
                ],
                "responses": {"200": {"description": "Rendered player"}, "400": {"description": "Neither id nor email given"}, "404": {"description": "Player not found"}}
            }
        },
        "/coach-search": {
            "get": {
                "produces": ["text/html"],
                "tags": ["people"],
                "summary": "Find a coach",
                "parameters": [
                    {"type": "integer", "description": "Coach ID", "name": "id", "in": "query"},
                    {"type": "string", "description": "Coach email", "name": "email", "in": "query"}
                ],
                "responses": {"200": {"description": "Rendered coach"}, "400": {"description": "Neither id nor email given"}, "404": {"description": "Coach not found"}}
            }
        },
        "/user": {
            "delete": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Delete a person by email",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.deleteUserInput"}}],
                "responses": {"200": {"description": "Rendered deleted person"}, "400": {"description": "Email missing"}, "404": {"description": "User not found"}}
            }
        },
        "/user/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Update a person",
                "parameters": [
                    {"type": "integer", "description": "Person ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdatePersonInput"}}
                ],
                "responses": {"200": {"description": "Rendered person"}, "400": {"description": "Invalid input"}, "404": {"description": "User not found"}, "409": {"description": "Email already in use"}}
            },
            "delete": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Delete a person by id",
                "parameters": [{"type": "integer", "description": "Person ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Rendered deleted person"}, "404": {"description": "User not found"}}
            }
        },
        "/update-password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["passwords"],
                "summary": "Change a password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdatePasswordInput"}}],
                "responses": {"200": {"description": "Password updated"}, "400": {"description": "Missing fields or short password"}, "401": {"description": "Old password is incorrect"}, "404": {"description": "Person not found"}}
            }
        },
        "/reset-password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["passwords"],
                "summary": "Reset a forgotten password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.ResetPasswordInput"}}],
                "responses": {"200": {"description": "Password reset"}, "400": {"description": "Missing fields or short password"}, "404": {"description": "No matching person"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "services.CreateMatchInput": {
            "type": "object",
            "properties": {
                "opponent": {"type": "string"},
                "matchDate": {"type": "string", "example": "2025-11-03"},
                "game": {"type": "string"},
                "status": {"type": "string", "enum": ["Scheduled", "Completed", "Cancelled"]}
            }
        },
        "services.UpdateMatchInput": {
            "type": "object",
            "properties": {
                "opponent": {"type": "string"},
                "matchDate": {"type": "string"},
                "game": {"type": "string"},
                "status": {"type": "string", "enum": ["Scheduled", "Completed", "Cancelled"]}
            }
        },
        "services.AssignReviewInput": {
            "type": "object",
            "properties": {
                "matchId": {"type": "integer"},
                "playerEmail": {"type": "string"}
            }
        },
        "services.UpdatePersonInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "emailid": {"type": "string"},
                "pass": {"type": "string"},
                "mobile": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "services.UpdatePasswordInput": {
            "type": "object",
            "properties": {
                "emailid": {"type": "string"},
                "role": {"type": "string"},
                "oldPassword": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        },
        "services.ResetPasswordInput": {
            "type": "object",
            "properties": {
                "emailid": {"type": "string"},
                "role": {"type": "string"},
                "mobile": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        },
        "handlers.deleteUserInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        }
    }
}`

const playerTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/schedules": {
            "get": {
                "produces": ["text/html"],
                "tags": ["schedule"],
                "summary": "Upcoming matches",
                "responses": {"200": {"description": "Schedule table"}, "500": {"description": "Store error"}}
            }
        },
        "/myvods": {
            "get": {
                "produces": ["text/html"],
                "tags": ["vods"],
                "summary": "Pending VOD reviews",
                "parameters": [{"type": "string", "description": "Player email", "name": "emailid", "in": "query", "required": true}],
                "responses": {"200": {"description": "VOD table or the all-done page"}, "400": {"description": "emailid missing"}, "500": {"description": "Store error"}}
            }
        },
        "/reviewvod/{vodId}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["vods"],
                "summary": "Submit a VOD review",
                "parameters": [
                    {"type": "integer", "description": "VOD ID", "name": "vodId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.SubmitReviewInput"}}
                ],
                "responses": {"200": {"description": "Rendered review"}, "400": {"description": "emailid missing"}, "404": {"description": "VOD not found or not assigned to you"}}
            }
        },
        "/update-password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["passwords"],
                "summary": "Change a player password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.playerPasswordInput"}}],
                "responses": {"200": {"description": "Password updated"}, "400": {"description": "Missing fields or short password"}, "401": {"description": "Old password is incorrect"}, "404": {"description": "Player not found"}}
            }
        },
        "/reset-password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["text/html"],
                "tags": ["passwords"],
                "summary": "Reset a forgotten player password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.playerResetInput"}}],
                "responses": {"200": {"description": "Password reset"}, "400": {"description": "Missing fields or short password"}, "404": {"description": "No matching player"}}
            }
        },
        "/{matchId}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["schedule"],
                "summary": "Find a match",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "matchId", "in": "path", "required": true}],
                "responses": {"200": {"description": "Rendered match"}, "400": {"description": "Match ID is required"}, "404": {"description": "Match not found"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "services.SubmitReviewInput": {
            "type": "object",
            "properties": {
                "emailid": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "handlers.playerPasswordInput": {
            "type": "object",
            "properties": {
                "emailid": {"type": "string"},
                "oldPassword": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        },
        "handlers.playerResetInput": {
            "type": "object",
            "properties": {
                "emailid": {"type": "string"},
                "mobile": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        }
    }
}`

// CoachSwaggerInfo holds exported Swagger Info so clients can modify it
var CoachSwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Coach Service API",
	Description:      "Schedule, VOD assignment and people administration for coaches.",
	InfoInstanceName: CoachInstance,
	SwaggerTemplate:  coachTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// PlayerSwaggerInfo holds exported Swagger Info so clients can modify it
var PlayerSwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Player Service API",
	Description:      "Schedule, VOD reviews and password management for players.",
	InfoInstanceName: PlayerInstance,
	SwaggerTemplate:  playerTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(CoachSwaggerInfo.InstanceName(), CoachSwaggerInfo)
	swag.Register(PlayerSwaggerInfo.InstanceName(), PlayerSwaggerInfo)
}
