// Package docs registers the OpenAPI description served under /swagger/.
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
        "/meals": {
            "get": {
                "produces": ["application/json"],
                "summary": "List meals",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/menu.Meal"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.messageResponse"}}
                }
            }
        },
        "/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Create order",
                "parameters": [
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.createOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.createOrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.messageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.messageResponse"}}
                }
            }
        },
        "/debug/orders": {
            "get": {
                "produces": ["application/json"],
                "summary": "List orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.messageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.createOrderRequest": {
            "type": "object",
            "properties": {"order": {"$ref": "#/definitions/order.Payload"}}
        },
        "api.createOrderResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "message": {"type": "string"}}
        },
        "api.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "menu.Meal": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "string"},
                "image": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "order.Customer": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "postal-code": {"type": "string"},
                "street": {"type": "string"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "customer": {"$ref": "#/definitions/order.Customer"},
                "id": {"type": "string"},
                "items": {"type": "array", "items": {"type": "object"}}
            }
        },
        "order.Payload": {
            "type": "object",
            "properties": {
                "customer": {"$ref": "#/definitions/order.Customer"},
                "items": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Food Order API",
	Description:      "Menu and order intake for the food ordering app",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
