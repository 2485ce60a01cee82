// Package docs registers the OpenAPI description of the wallet service.
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
        "/wallet/keys": {
            "get": {
                "description": "Decrypts the wallet file and returns the public spend and view keys. Secret keys are never returned.",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Get wallet public keys",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.KeysResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/keys/qr": {
            "get": {
                "description": "Returns a PNG QR code encoding the public spend and view keys",
                "produces": ["image/png"],
                "tags": ["wallet"],
                "summary": "Get QR code of the public keys",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/save": {
            "post": {
                "description": "Re-encrypts the wallet file in the current format with a fresh IV. Legacy files are upgraded.",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Rewrite wallet file",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SaveResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/transactions": {
            "get": {
                "description": "Gets the transaction history stored in the wallet file with filtering capability",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Get wallet transactions",
                "parameters": [
                    {"type": "string", "description": "Transaction type: DEBIT or CREDIT", "name": "type", "in": "query"},
                    {"type": "string", "description": "Transaction hash (hex)", "name": "txHash", "in": "query"},
                    {"type": "string", "description": "Start date (YYYY-MM-DD)", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "to", "in": "query"},
                    {"type": "string", "description": "Minimum amount", "name": "minAmount", "in": "query"},
                    {"type": "string", "description": "Maximum amount", "name": "maxAmount", "in": "query"},
                    {"type": "string", "description": "ACTIVE, DELETED, SENDING, CANCELLED or FAILED", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.KeysResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "fileVersion": {"type": "integer"},
                "spendPublicKey": {"type": "string"},
                "spendPublicKeyBase58": {"type": "string"},
                "viewPublicKey": {"type": "string"},
                "viewPublicKeyBase58": {"type": "string"},
                "watchOnly": {"type": "boolean"}
            }
        },
        "model.LogResponse": {
            "type": "object",
            "properties": {
                "hasDetails": {"type": "boolean"},
                "totalIncome": {"type": "string"},
                "totalSpent": {"type": "string"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/model.Transaction"}},
                "unconfirmed": {"type": "array", "items": {"$ref": "#/definitions/model.UnconfirmedTransfer"}}
            }
        },
        "model.SaveResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "version": {"type": "integer"}
            }
        },
        "model.Transaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "blockNumber": {"type": "integer"},
                "fee": {"type": "string"},
                "id": {"type": "integer"},
                "isCoinbase": {"type": "boolean"},
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "transfers": {"type": "array", "items": {"$ref": "#/definitions/model.Transfer"}},
                "txHash": {"type": "string"},
                "type": {"type": "string"},
                "unlockTime": {"type": "integer"}
            }
        },
        "model.Transfer": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "amount": {"type": "string"}
            }
        },
        "model.UnconfirmedTransfer": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "sentTime": {"type": "string"},
                "transactionId": {"type": "integer"},
                "txHash": {"type": "string"},
                "usedOutputs": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Legacy Wallet API",
	Description:      "Local read-only service over an encrypted wallet file.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
