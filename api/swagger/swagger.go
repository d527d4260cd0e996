package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Data Migration Workflow API",
        "description": "Approval workflow for data migration items",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Data Migration", "description": "Migration item lifecycle"},
        {"name": "Dashboard", "description": "Workload overview"},
        {"name": "Reports", "description": "PDF reports for approved items"}
    ],
    "paths": {
        "/health-check": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/data-migration": {
            "get": {
                "tags": ["Data Migration"],
                "summary": "List migration items",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["under_review", "approved", "in_production"]},
                    {"name": "data_type", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Data Migration"],
                "summary": "Create migration item",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/data-migration/{id}": {
            "get": {
                "tags": ["Data Migration"],
                "summary": "Get migration item",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Data Migration"],
                "summary": "Update migration item (under_review only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Data Migration"],
                "summary": "Delete migration item (under_review only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/data-migration/{id}/approve": {
            "post": {
                "tags": ["Data Migration"],
                "summary": "Approve migration item",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ApproveItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/data-migration/{id}/pdf": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download approval report PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/data-migration/mark-production": {
            "post": {
                "tags": ["Data Migration"],
                "summary": "Mark approved items as in production",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/MarkProductionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard statistics and recent items",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "MigrationItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "data_type": {"type": "string"},
                "data_payload": {"type": "object"},
                "source_file": {"type": "string"},
                "status": {"type": "string", "enum": ["under_review", "approved", "in_production"]},
                "created_by": {"type": "string"},
                "reviewed_by": {"type": "string"},
                "approved_by": {"type": "string"},
                "approval_notes": {"type": "string"},
                "reviewed_at": {"type": "string"},
                "approved_at": {"type": "string"},
                "production_at": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "CreateItemRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "data_type": {"type": "string", "enum": ["customer_records", "product_catalogs", "service_accounts", "billing_accounts", "sales_orders"]},
                "data_payload": {"type": "object"},
                "source_file": {"type": "string"}
            },
            "required": ["title", "data_type"]
        },
        "UpdateItemRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "data_type": {"type": "string"},
                "data_payload": {"type": "object"},
                "source_file": {"type": "string"}
            },
            "required": ["title", "data_type"]
        },
        "ApproveItemRequest": {
            "type": "object",
            "properties": {
                "approval_notes": {"type": "string"}
            }
        },
        "MarkProductionRequest": {
            "type": "object",
            "properties": {
                "item_ids": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "ItemStatistics": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "under_review": {"type": "integer"},
                "approved": {"type": "integer"},
                "in_production": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
