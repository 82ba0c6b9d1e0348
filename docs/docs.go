// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/main.go
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
            "get": {"tags": ["health"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/token/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Obtain an access token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}}}
            }
        },
        "/api/users": {
            "get": {"tags": ["users"], "summary": "List users", "parameters": [{"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.UserView"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}}}
            }
        },
        "/api/users/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserView"}}, "401": {"description": "Unauthorized"}}}
        },
        "/api/users/subscriptions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Authors the current user follows", "parameters": [{"type": "integer", "name": "recipes_limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/subscribe": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Subscribe to an author", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "recipes_limit", "in": "query"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Unsubscribe from an author", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/tags": {
            "get": {"tags": ["tags"], "summary": "List tags", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tags"], "summary": "Create a tag", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/api/ingredients": {
            "get": {"tags": ["ingredients"], "summary": "Search ingredients", "parameters": [{"type": "string", "name": "name", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/recipes": {
            "get": {"tags": ["recipes"], "summary": "List recipes", "parameters": [{"type": "integer", "name": "author", "in": "query"}, {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "tags", "in": "query"}, {"type": "integer", "name": "is_favorited", "in": "query"}, {"type": "integer", "name": "is_in_shopping_cart", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Create a recipe", "parameters": [{"in": "body", "name": "recipe", "required": true, "schema": {"$ref": "#/definitions/services.RecipeInput"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/recipes/{id}": {
            "get": {"tags": ["recipes"], "summary": "Get a recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Update a recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Delete a recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/api/recipes/{id}/favorite": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Add to favorites", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Remove from favorites", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}}}
        },
        "/api/recipes/{id}/shopping_cart": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Add to shopping cart", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Remove from shopping cart", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}}}
        },
        "/api/recipes/download_shopping_cart": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["recipes"], "summary": "Download the aggregated shopping list", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/recipes/{id}/get-link": {
            "get": {"tags": ["recipes"], "summary": "Get the short link of a recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/s/{token}": {
            "get": {"tags": ["shortlinks"], "summary": "Follow a short link", "parameters": [{"type": "string", "name": "token", "in": "path", "required": true}], "responses": {"302": {"description": "Found"}, "404": {"description": "Not Found"}}}
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "details": {"type": "object", "additionalProperties": true}}
        },
        "models.UserView": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "email": {"type": "string"}, "username": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "avatar": {"type": "string"}, "is_subscribed": {"type": "boolean"}}
        },
        "controllers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.RegisterRequest": {
            "type": "object",
            "required": ["email", "username", "first_name", "last_name", "password"],
            "properties": {"email": {"type": "string"}, "username": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "password": {"type": "string"}}
        },
        "services.RecipeInput": {
            "type": "object",
            "properties": {
                "ingredients": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "integer"}, "amount": {"type": "integer"}}}},
                "tags": {"type": "array", "items": {"type": "integer"}},
                "image": {"type": "string"},
                "name": {"type": "string"},
                "text": {"type": "string"},
                "cooking_time": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Foodgram API",
	Description:      "Recipe sharing API: recipes, favorites, shopping lists and subscriptions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
