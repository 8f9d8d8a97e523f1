// Package docs は開発モードで /swagger に出す API ドキュメント。
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "schemes": {{ marshal .Schemes }},
  "swagger": "2.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "host": "{{.Host}}",
  "basePath": "{{.BasePath}}",
  "securityDefinitions": {
    "SharerUser": {"type": "apiKey", "in": "header", "name": "X-Sharer-User-Id"},
    "Bearer": {"type": "apiKey", "in": "header", "name": "Authorization"}
  },
  "paths": {
    "/users": {
      "get": {"tags": ["users"], "summary": "list users", "responses": {"200": {"description": "OK"}}},
      "post": {"tags": ["users"], "summary": "create user",
        "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUser"}}],
        "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid"}, "409": {"description": "Email already exists"}}}
    },
    "/users/{id}": {
      "get": {"tags": ["users"], "summary": "get user", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
      "patch": {"tags": ["users"], "summary": "partially update user", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Email already exists"}}},
      "delete": {"tags": ["users"], "summary": "delete user and everything it owns", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
    },
    "/items": {
      "get": {"tags": ["items"], "summary": "own items with last/next booking", "security": [{"SharerUser": []}], "responses": {"200": {"description": "OK"}}},
      "post": {"tags": ["items"], "summary": "create item", "security": [{"SharerUser": []}],
        "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateItem"}}],
        "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid"}, "404": {"description": "Owner or request not found"}}}
    },
    "/items/search": {
      "get": {"tags": ["items"], "summary": "search available items", "security": [{"SharerUser": []}],
        "parameters": [{"in": "query", "name": "text", "type": "string"}, {"$ref": "#/parameters/from"}, {"$ref": "#/parameters/size"}],
        "responses": {"200": {"description": "OK"}}}
    },
    "/items/{id}": {
      "get": {"tags": ["items"], "summary": "get item", "security": [{"SharerUser": []}], "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
      "patch": {"tags": ["items"], "summary": "update item (owner only)", "security": [{"SharerUser": []}], "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Not the owner"}}}
    },
    "/items/{id}/comment": {
      "post": {"tags": ["items"], "summary": "comment after a finished booking", "security": [{"SharerUser": []}],
        "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateComment"}}],
        "responses": {"201": {"description": "Created"}, "400": {"description": "No finished booking"}}}
    },
    "/bookings": {
      "get": {"tags": ["bookings"], "summary": "bookings made by the caller", "security": [{"SharerUser": []}],
        "parameters": [{"$ref": "#/parameters/state"}, {"$ref": "#/parameters/from"}, {"$ref": "#/parameters/size"}],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown state"}}},
      "post": {"tags": ["bookings"], "summary": "request a booking", "security": [{"SharerUser": []}],
        "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBooking"}}],
        "responses": {"201": {"description": "Created"}, "400": {"description": "Unavailable, invalid dates or overlap"}, "404": {"description": "Not found"}}}
    },
    "/bookings/owner": {
      "get": {"tags": ["bookings"], "summary": "bookings of the caller's items", "security": [{"SharerUser": []}],
        "parameters": [{"$ref": "#/parameters/state"}, {"$ref": "#/parameters/from"}, {"$ref": "#/parameters/size"}],
        "responses": {"200": {"description": "OK"}}}
    },
    "/bookings/{id}": {
      "get": {"tags": ["bookings"], "summary": "get booking (booker or owner)", "security": [{"SharerUser": []}], "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
      "patch": {"tags": ["bookings"], "summary": "approve or reject", "security": [{"SharerUser": []}],
        "parameters": [{"$ref": "#/parameters/id"}, {"in": "query", "name": "approved", "type": "boolean", "required": true}],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Already decided"}, "403": {"description": "Not the owner"}}}
    },
    "/requests": {
      "get": {"tags": ["requests"], "summary": "own item requests", "security": [{"SharerUser": []}], "responses": {"200": {"description": "OK"}}},
      "post": {"tags": ["requests"], "summary": "create item request", "security": [{"SharerUser": []}],
        "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRequest"}}],
        "responses": {"201": {"description": "Created"}}}
    },
    "/requests/all": {
      "get": {"tags": ["requests"], "summary": "other users' item requests", "security": [{"SharerUser": []}],
        "parameters": [{"$ref": "#/parameters/from"}, {"$ref": "#/parameters/size"}], "responses": {"200": {"description": "OK"}}}
    },
    "/requests/{id}": {
      "get": {"tags": ["requests"], "summary": "get item request", "security": [{"SharerUser": []}], "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
    }
  },
  "parameters": {
    "id": {"in": "path", "name": "id", "type": "integer", "required": true},
    "from": {"in": "query", "name": "from", "type": "integer", "default": 0},
    "size": {"in": "query", "name": "size", "type": "integer"},
    "state": {"in": "query", "name": "state", "type": "string", "enum": ["ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"], "default": "ALL"}
  },
  "definitions": {
    "CreateUser": {"type": "object", "required": ["name", "email"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}}},
    "CreateItem": {"type": "object", "required": ["name", "description", "available"],
      "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "available": {"type": "boolean"}, "requestId": {"type": "integer"}}},
    "CreateComment": {"type": "object", "required": ["text"], "properties": {"text": {"type": "string", "maxLength": 2000}}},
    "CreateBooking": {"type": "object", "required": ["itemId", "start", "end"],
      "properties": {"itemId": {"type": "integer"}, "start": {"type": "string", "format": "date-time"}, "end": {"type": "string", "format": "date-time"}}},
    "CreateRequest": {"type": "object", "required": ["description"], "properties": {"description": {"type": "string", "maxLength": 1000}}}
  }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "shareit API",
	Description:      "Item sharing: users, items, bookings, item requests and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
