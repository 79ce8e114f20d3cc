// Package docs holds the OpenAPI description served under /swagger.
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
                "description": "Returns the health status of the service (RFC Health Check Draft)",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check endpoint",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {"$ref": "#/definitions/stats.HealthResponse"}
                    },
                    "503": {
                        "description": "Service is unhealthy",
                        "schema": {"$ref": "#/definitions/stats.HealthResponse"}
                    }
                }
            }
        },
        "/{name}/versions": {
            "get": {
                "description": "Lists the versions of name that contain file, newest first",
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "List versions of a file",
                "parameters": [
                    {"type": "string", "description": "Asset name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "File path inside the version", "name": "file", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resource.VersionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.Error"}}
                }
            }
        },
        "/{name}/{version}/{file}": {
            "get": {
                "description": "Returns the file in full, or as a delta against the base version named in X-Differential-Base-Version when Accept lists application/delta+json",
                "produces": ["application/delta+json", "application/octet-stream"],
                "tags": ["Resources"],
                "summary": "Get a versioned resource",
                "parameters": [
                    {"type": "string", "description": "Asset name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Asset version", "name": "version", "in": "path", "required": true},
                    {"type": "string", "description": "File path inside the version", "name": "file", "in": "path", "required": true},
                    {"type": "string", "description": "Version the client already holds", "name": "X-Differential-Base-Version", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "File content or delta", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Error"}},
                    "417": {"description": "Expectation Failed", "schema": {"$ref": "#/definitions/errors.Error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.Error"}}
                }
            }
        }
    },
    "definitions": {
        "errors.Error": {
            "description": "Standardized API error response",
            "type": "object",
            "properties": {
                "error": {"type": "integer", "example": 417},
                "message": {"type": "string", "example": "Specified base version not known"}
            }
        },
        "resource.VersionsResponse": {
            "type": "object",
            "properties": {
                "file": {"type": "string", "example": "umd/react.production.min.js"},
                "name": {"type": "string", "example": "react"},
                "versions": {"type": "array", "items": {"type": "string"}, "example": ["16.8.1", "16.8.0"]}
            }
        },
        "stats.Check": {
            "type": "object",
            "properties": {
                "component": {"type": "string"},
                "observedAt": {"type": "string"},
                "observedValue": {},
                "output": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "stats.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/stats.Check"}}
                },
                "releaseId": {"type": "string"},
                "serviceId": {"type": "string"},
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "etherdelta API",
	Description:      "Versioned static assets, delivered in full or as deltas against a version the client holds.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
