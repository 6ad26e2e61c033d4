package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Roster Availability API",
        "description": "Weekly trader availability and daily resource reports",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Weekly Patterns", "description": "Recurring per-trader availability grid"},
        {"name": "Trader Requests", "description": "Dated overrides and their approval"},
        {"name": "Preferences", "description": "Days-off grouping preference"},
        {"name": "Availability", "description": "Resolved weekly availability"},
        {"name": "Reports", "description": "Daily resources report and exports"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"summary": "Readiness check", "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}}
        },
        "/metrics": {
            "get": {"summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/traders/{id}/weekly-pattern": {
            "get": {
                "tags": ["Weekly Patterns"],
                "summary": "Get weekly pattern, initialising missing cells",
                "parameters": [{"$ref": "#/parameters/TraderID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Trader not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Weekly Patterns"],
                "summary": "Save weekly pattern cells",
                "parameters": [
                    {"$ref": "#/parameters/TraderID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveWeeklyPatternRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid cell", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Trader not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/traders/{id}/requests": {
            "get": {
                "tags": ["Trader Requests"],
                "summary": "List a trader's requests",
                "parameters": [{"$ref": "#/parameters/TraderID"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Trader Requests"],
                "summary": "File a request",
                "parameters": [
                    {"$ref": "#/parameters/TraderID"},
                    {"$ref": "#/parameters/Actor"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTraderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid kind, shift or range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/traders/{id}/requests/approved": {
            "get": {
                "tags": ["Trader Requests"],
                "summary": "Approved requests overlapping a window",
                "parameters": [
                    {"$ref": "#/parameters/TraderID"},
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/requests": {
            "get": {
                "tags": ["Trader Requests"],
                "summary": "List all requests with trader details",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/requests/{id}": {
            "get": {
                "tags": ["Trader Requests"],
                "summary": "Get a request",
                "parameters": [{"$ref": "#/parameters/RequestID"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "patch": {
                "tags": ["Trader Requests"],
                "summary": "Update a request",
                "parameters": [
                    {"$ref": "#/parameters/RequestID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTraderRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Trader Requests"],
                "summary": "Delete a request",
                "parameters": [{"$ref": "#/parameters/RequestID"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/requests/{id}/approve": {
            "post": {
                "tags": ["Trader Requests"],
                "summary": "Approve a request",
                "parameters": [
                    {"$ref": "#/parameters/RequestID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewTraderRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/requests/{id}/reject": {
            "post": {
                "tags": ["Trader Requests"],
                "summary": "Reject a request",
                "parameters": [
                    {"$ref": "#/parameters/RequestID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewTraderRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/traders/{id}/preferences/days-off": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Get days-off grouping weight",
                "parameters": [{"$ref": "#/parameters/TraderID"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Set days-off grouping weight",
                "parameters": [
                    {"$ref": "#/parameters/TraderID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetDaysOffPreferenceRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Weight missing"}}
            }
        },
        "/api/v1/preferences/days-off": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Days-off grouping for every active trader",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/traders/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Resolve one trader's week",
                "parameters": [
                    {"$ref": "#/parameters/TraderID"},
                    {"$ref": "#/parameters/WeekStart"},
                    {"$ref": "#/parameters/ShiftTypes"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WeekAvailabilityResponse"}},
                    "400": {"description": "Unknown shift type"},
                    "404": {"description": "Trader not found"}
                }
            }
        },
        "/api/v1/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Resolve the week of every active trader",
                "parameters": [
                    {"$ref": "#/parameters/WeekStart"},
                    {"$ref": "#/parameters/ShiftTypes"}
                ],
                "responses": {"200": {"description": "Map of trader id to resolved week", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/reports/daily-resources": {
            "get": {
                "tags": ["Reports"],
                "summary": "Daily resources report",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "location", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/reports/daily-resources/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export the daily resources report",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "location", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"]}
                ],
                "responses": {"200": {"description": "Attachment"}, "404": {"description": "Exports disabled"}}
            }
        }
    },
    "parameters": {
        "TraderID": {"name": "id", "in": "path", "required": true, "type": "integer"},
        "RequestID": {"name": "id", "in": "path", "required": true, "type": "integer"},
        "Actor": {"name": "X-Actor", "in": "header", "type": "string"},
        "WeekStart": {"name": "week_start", "in": "query", "type": "string", "format": "date"},
        "ShiftTypes": {"name": "shift_types", "in": "query", "type": "string", "description": "Comma separated FULL,EARLY,MID,LATE"}
    },
    "definitions": {
        "WeeklyPatternCellInput": {
            "type": "object",
            "required": ["day_of_week", "shift_type"],
            "properties": {
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "shift_type": {"type": "string"},
                "hard_block": {"type": "boolean"},
                "weight": {"type": "integer", "minimum": -1, "maximum": 1}
            }
        },
        "SaveWeeklyPatternRequest": {
            "type": "object",
            "properties": {
                "cells": {"type": "array", "items": {"$ref": "#/definitions/WeeklyPatternCellInput"}}
            }
        },
        "CreateTraderRequest": {
            "type": "object",
            "required": ["request_kind", "date_from"],
            "properties": {
                "request_kind": {"type": "string"},
                "date_from": {"type": "string", "format": "date"},
                "date_to": {"type": "string", "format": "date"},
                "shift_type": {"type": "string"},
                "sport_code": {"type": "string"},
                "destination": {"type": "string"},
                "leave_type": {"type": "string", "enum": ["ANNUAL", "SICK", "OTHER"]},
                "reason": {"type": "string"}
            }
        },
        "UpdateTraderRequest": {
            "type": "object",
            "properties": {
                "request_kind": {"type": "string"},
                "date_from": {"type": "string", "format": "date"},
                "date_to": {"type": "string", "format": "date"},
                "shift_type": {"type": "string"},
                "sport_code": {"type": "string"},
                "destination": {"type": "string"},
                "leave_type": {"type": "string", "enum": ["ANNUAL", "SICK", "OTHER"]},
                "reason": {"type": "string"}
            }
        },
        "ReviewTraderRequest": {
            "type": "object",
            "required": ["actor"],
            "properties": {"actor": {"type": "string"}}
        },
        "SetDaysOffPreferenceRequest": {
            "type": "object",
            "required": ["weight"],
            "properties": {"weight": {"type": "integer", "description": ">0 back-to-back, <0 split, 0 no preference"}}
        },
        "AvailabilityCell": {
            "type": "object",
            "properties": {
                "shift_type": {"type": "string"},
                "status": {"type": "string", "enum": ["MANDATORY", "UNAVAILABLE", "AVAILABLE"]},
                "weight": {"type": "integer"}
            }
        },
        "AvailabilityDay": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "day_of_week": {"type": "integer"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/AvailabilityCell"}}
            }
        },
        "WeekAvailabilityResponse": {
            "type": "object",
            "properties": {
                "trader_id": {"type": "integer"},
                "week_start": {"type": "string", "format": "date"},
                "shift_types": {"type": "array", "items": {"type": "string"}},
                "days": {"type": "array", "items": {"$ref": "#/definitions/AvailabilityDay"}}
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
