package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "IJW Calander Room Plan API",
        "description": "Daily room assignment engine for academy timetables",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "RoomPlan", "description": "Room assignment previews, applies and exports"},
        {"name": "Rooms", "description": "Room catalog management"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/assignments/preview": {
            "post": {
                "tags": ["RoomPlan"],
                "summary": "Compute a room plan proposal for one date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignPreviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Empty timetable or room catalog", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/apply": {
            "post": {
                "tags": ["RoomPlan"],
                "summary": "Persist a previewed room plan",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyAssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/revalidate": {
            "post": {
                "tags": ["RoomPlan"],
                "summary": "Re-check a proposal after manual room edits",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RevalidateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/proposals/{id}": {
            "get": {
                "tags": ["RoomPlan"],
                "summary": "Fetch a stored room plan proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/proposals/{id}/export": {
            "get": {
                "tags": ["RoomPlan"],
                "summary": "Download a room plan proposal as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "404": {"description": "Proposal not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "parameters": [
                    {"name": "floor", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"},
                    {"name": "sortBy", "in": "query", "type": "string"},
                    {"name": "sortOrder", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Register a room",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get one room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room attributes",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRoomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete a room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        }
    },
    "definitions": {
        "Weights": {
            "type": "object",
            "properties": {
                "subjectAffinity": {"type": "integer", "minimum": 0, "maximum": 100},
                "capacityFit": {"type": "integer", "minimum": 0, "maximum": 100},
                "teacherProximity": {"type": "integer", "minimum": 0, "maximum": 100},
                "distribution": {"type": "integer", "minimum": 0, "maximum": 100},
                "gradeGrouping": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "Constraints": {
            "type": "object",
            "properties": {
                "enforceCapacity": {"type": "boolean"},
                "enforceLab": {"type": "boolean"},
                "preferConsecutive": {"type": "boolean"}
            }
        },
        "AssignPreviewRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string", "example": "2026-03-02"},
                "weights": {"$ref": "#/definitions/Weights"},
                "constraints": {"$ref": "#/definitions/Constraints"}
            }
        },
        "ApplyAssignmentRequest": {
            "type": "object",
            "required": ["proposalId"],
            "properties": {
                "proposalId": {"type": "string"}
            }
        },
        "ManualOverride": {
            "type": "object",
            "required": ["sessionId", "room"],
            "properties": {
                "sessionId": {"type": "string"},
                "room": {"type": "string"}
            }
        },
        "RevalidateRequest": {
            "type": "object",
            "required": ["proposalId", "overrides"],
            "properties": {
                "proposalId": {"type": "string"},
                "overrides": {"type": "array", "items": {"$ref": "#/definitions/ManualOverride"}}
            }
        },
        "CreateRoomRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "floor": {"type": "string"},
                "capacity": {"type": "integer", "minimum": 0},
                "preferredSubjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UpdateRoomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "floor": {"type": "string"},
                "capacity": {"type": "integer", "minimum": 0},
                "preferredSubjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
