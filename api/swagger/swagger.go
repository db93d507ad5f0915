package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Funeral Admin API",
        "description": "Back-office API for funeral cover members, burial events, staff and claims",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Sign-in and onboarding"},
        {"name": "Members", "description": "Funeral cover members"},
        {"name": "Events", "description": "Burial events and staff assignment"},
        {"name": "Checklist", "description": "Burial preparation checklist"},
        {"name": "Staff", "description": "Staff roster"},
        {"name": "Claims", "description": "Cover claims"},
        {"name": "Contacts", "description": "Family and next-of-kin contacts"},
        {"name": "Dashboard", "description": "Whole-system statistics"},
        {"name": "Tabs", "description": "Paged admin tabs, export, selection and bulk actions"},
        {"name": "Documents", "description": "Uploaded documents"},
        {"name": "Audit", "description": "Audit trail"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in with email and password",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user and application role",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/onboarding": {
            "post": {
                "tags": ["Auth"],
                "summary": "Link a staff profile to the current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already onboarded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/members": {
            "get": {
                "tags": ["Members"],
                "summary": "List members",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["all", "active", "suspended", "cancelled"]},
                    {"name": "tier", "in": "query", "type": "string", "enum": ["all", "bronze", "silver", "gold"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Members"],
                "summary": "Create member",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/members/{id}": {
            "get": {"tags": ["Members"], "summary": "Get member", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Members"], "summary": "Update member", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Members"], "summary": "Delete member", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/admin/members/{id}/status": {
            "patch": {"tags": ["Members"], "summary": "Change member status", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/admin/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List burial events",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["all", "scheduled", "in_progress", "completed", "cancelled"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {"tags": ["Events"], "summary": "Create burial event, optionally generating its checklist", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/admin/events/{id}/checklist": {
            "get": {"tags": ["Checklist"], "summary": "List checklist items of an event", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Checklist"], "summary": "Generate the checklist of an event", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}, "409": {"description": "Already generated"}}}
        },
        "/admin/staff": {
            "get": {"tags": ["Staff"], "summary": "List staff", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Staff"], "summary": "Create staff member", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/admin/claims": {
            "get": {"tags": ["Claims"], "summary": "List claims", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Claims"], "summary": "Lodge claim", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/admin/claims/{id}/reject": {
            "post": {"tags": ["Claims"], "summary": "Reject claim with a note", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid transition"}}}
        },
        "/admin/contacts": {
            "get": {"tags": ["Contacts"], "summary": "List contacts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Contacts"], "summary": "Create contact", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/admin/dashboard": {
            "get": {"tags": ["Dashboard"], "summary": "Dashboard statistics", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/admin/tabs/{tab}": {
            "get": {
                "tags": ["Tabs"],
                "summary": "Paged tab listing driven by the stored view state",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "tab", "in": "path", "required": true, "type": "string", "enum": ["members", "events", "staff", "claims", "contacts", "audit_logs"]},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/tabs/{tab}/export": {
            "get": {
                "tags": ["Tabs"],
                "summary": "Export the filtered tab rows",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "tab", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/admin/tabs/{tab}/bulk": {
            "post": {"tags": ["Tabs"], "summary": "Apply one action to the selected rows", "security": [{"BearerAuth": []}], "parameters": [{"name": "tab", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "No items selected"}}}
        },
        "/admin/tabs/{tab}/selection": {
            "put": {"tags": ["Tabs"], "summary": "Change the stored selection", "security": [{"BearerAuth": []}], "parameters": [{"name": "tab", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/view-state": {
            "get": {"tags": ["Tabs"], "summary": "Stored view state", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Tabs"], "summary": "Reset view state", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/admin/documents": {
            "get": {"tags": ["Documents"], "summary": "List documents of an entity", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Documents"], "summary": "Upload document", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}}}
        },
        "/admin/audit-logs": {
            "get": {"tags": ["Audit"], "summary": "List audit entries", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/audit-logs/search": {
            "get": {"tags": ["Audit"], "summary": "Search audit entries by action or entity type", "security": [{"BearerAuth": []}], "parameters": [{"name": "q", "in": "query", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
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
