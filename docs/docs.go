// Package docs holds the OpenAPI document served at /swagger. Regenerate
// with `swag init -g cmd/web/main.go` after changing handler annotations.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OKResponse"}}
                }
            }
        },
        "/api/portfolio": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "List published portfolio items",
                "parameters": [
                    {"type": "integer", "description": "Page, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, 1..200", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Category filter", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PortfolioListResponse"}}
                }
            }
        },
        "/api/portfolio/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "Get a published portfolio item",
                "parameters": [
                    {"type": "string", "description": "Portfolio ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PortfolioItemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Submit an order",
                "parameters": [
                    {"description": "Order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreateOrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/admin/portfolio/{id}/media": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Uploads every file or none. Files are appended in submission order.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Attach media to a portfolio item",
                "parameters": [
                    {"type": "string", "description": "Portfolio ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "Image or video, repeatable", "name": "files", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PortfolioItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes entries by publicId, or by url for media without one. Unknown references are a no-op.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Detach media from a portfolio item",
                "parameters": [
                    {"type": "string", "description": "Portfolio ID", "name": "id", "in": "path", "required": true},
                    {"description": "Exactly one of publicId or url", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DetachMediaRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PortfolioItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperrors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "domain": {"type": "string"},
                "message": {"type": "string"},
                "details": {}
            }
        },
        "apperrors.ErrorResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "error": {"$ref": "#/definitions/apperrors.AppError"}
            }
        },
        "dto.OKResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}}
        },
        "dto.CreateOrderRequest": {
            "type": "object",
            "required": ["name", "packageType", "requirements"],
            "properties": {
                "name": {"type": "string"},
                "businessName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "packageType": {"type": "string", "enum": ["Starter", "Business", "Enterprise"]},
                "budget": {"type": "string"},
                "requirements": {"type": "string"}
            }
        },
        "dto.CreateOrderResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}, "orderId": {"type": "string"}}
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}, "token": {"type": "string"}}
        },
        "dto.DetachMediaRequest": {
            "type": "object",
            "properties": {"publicId": {"type": "string"}, "url": {"type": "string"}}
        },
        "models.Media": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["image", "video"]},
                "url": {"type": "string"},
                "publicId": {"type": "string"}
            }
        },
        "models.Portfolio": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "industry": {"type": "string"},
                "summary": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "features": {"type": "array", "items": {"type": "string"}},
                "results": {"type": "array", "items": {"type": "string"}},
                "published": {"type": "boolean"},
                "media": {"type": "array", "items": {"$ref": "#/definitions/models.Media"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.PortfolioItemResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}, "item": {"$ref": "#/definitions/models.Portfolio"}}
        },
        "dto.PortfolioListResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "pages": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.Portfolio"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Studio API",
	Description:      "Website backend: portfolio with media uploads, orders, reviews and the admin panel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
