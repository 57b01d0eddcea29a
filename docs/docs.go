// Package docs registers the generated OpenAPI description with the swag
// runtime so gin-swagger can serve it. Regenerate with `swag init -g
// cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/observations/zone-config": {
            "get": {
                "produces": ["application/json"],
                "tags": ["observations"],
                "summary": "Get the zone duration table",
                "responses": {
                    "200": {"description": "Current zone duration table"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["observations"],
                "summary": "Replace the zone duration table",
                "responses": {
                    "200": {"description": "Saved zone duration table"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/observations/code-matrix": {
            "get": {
                "produces": ["application/json"],
                "tags": ["observations"],
                "summary": "Get the observation code matrix",
                "responses": {
                    "200": {"description": "Current code matrix"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["observations"],
                "summary": "Replace the observation code matrix",
                "responses": {
                    "200": {"description": "Saved code matrix"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/observations/changes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["observations"],
                "summary": "Register an observation code change",
                "responses": {
                    "201": {"description": "Change recorded"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/observations/stats/{operation}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["observations"],
                "summary": "Get the audit stats of an operation",
                "parameters": [
                    {"type": "string", "name": "operation", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Operation stats"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/executives": {
            "get": {
                "produces": ["application/json"],
                "tags": ["executives"],
                "summary": "List executive assignments",
                "responses": {
                    "200": {"description": "Current assignments"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["executives"],
                "summary": "Replace the executive mapping",
                "responses": {
                    "200": {"description": "Saved assignments"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/executives/{salesperson}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["executives"],
                "summary": "Remove one executive assignment",
                "parameters": [
                    {"type": "string", "name": "salesperson", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Assignment removed"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/process": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Process the two spreadsheet exports",
                "responses": {
                    "201": {"description": "Run created"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/runs/{run_id}/records": {
            "get": {
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get the enriched records of a run",
                "parameters": [
                    {"type": "string", "name": "run_id", "in": "path", "required": true},
                    {"type": "string", "name": "executive", "in": "query"},
                    {"type": "string", "name": "class", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Enriched records"},
                    "404": {"description": "Run not found"}
                }
            }
        },
        "/runs/{run_id}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get run statistics",
                "parameters": [
                    {"type": "string", "name": "run_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Run statistics"},
                    "404": {"description": "Run not found"}
                }
            }
        },
        "/runs/{run_id}/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["runs"],
                "summary": "Export a run as CSV",
                "parameters": [
                    {"type": "string", "name": "run_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV content"},
                    "404": {"description": "Run not found"}
                }
            }
        },
        "/runs/{run_id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Delete a run",
                "parameters": [
                    {"type": "string", "name": "run_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Run deleted"},
                    "404": {"description": "Run not found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "DealerTrack API",
	Description:      "Status-classification and zone-validation service for dealership back-office order tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
