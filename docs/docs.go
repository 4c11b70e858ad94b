// Package docs holds the OpenAPI document served at /swagger, kept in sync with the handler annotations by hand
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/qr": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "Get access link",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "sessionId", "in": "query", "required": true},
                    {"type": "string", "description": "flashcards or quiz", "name": "contentKind", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "Create session",
                "parameters": [
                    {"description": "CreateSession", "name": "CreateSession", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CreateSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "Join session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "sessionId", "in": "query", "required": true},
                    {"type": "string", "description": "flashcards or quiz", "name": "contentKind", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/sessions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "List sessions",
                "parameters": [
                    {"type": "boolean", "description": "only active sessions", "name": "active", "in": "query"},
                    {"type": "string", "description": "search by session id, content kind or deck name", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/session-groups": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "Group sessions",
                "parameters": [
                    {"type": "boolean", "description": "only active sessions", "name": "active", "in": "query"},
                    {"type": "string", "description": "search by session id, content kind or deck name", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/sessions/{sessionId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "Get session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "Reactivate session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "Deactivate session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "sessionId", "in": "path", "required": true},
                    {"type": "boolean", "description": "delete instead of deactivate", "name": "permanent", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/sessions/{sessionId}/participants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SESSION"],
                "summary": "List participants",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "http.CreateSessionRequest": {
            "type": "object",
            "required": ["contentKind", "sessionId"],
            "properties": {
                "contentKind": {"type": "string"},
                "ifAbsent": {"type": "boolean"},
                "payload": {"type": "array", "items": {"type": "object"}},
                "sessionId": {"type": "string", "maxLength": 255},
                "sourceDeckName": {"type": "string", "maxLength": 255},
                "sourceDeckSessionId": {"type": "string", "maxLength": 255}
            }
        },
        "http.ResponseBody": {
            "type": "object",
            "properties": {
                "data": {},
                "status": {"$ref": "#/definitions/http.Status"},
                "total_item": {"type": "integer"}
            }
        },
        "http.Status": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9089",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Ideation Lab Session APIs",
	Description:      "Shareable flashcards and quiz sessions for the classroom.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
