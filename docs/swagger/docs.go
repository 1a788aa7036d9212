// Package swagger registers the console API document with swag.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "Platform Team",
			"email": "platform@venue-master.io"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/auth/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Sign in",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Credentials"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SessionStatus"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Register",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Registration",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/Registration"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/SessionStatus"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Sign out",
				"responses": {
					"204": {
						"description": "No Content"
					}
				}
			}
		},
		"/auth/session": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Session status",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SessionStatus"
						}
					}
				}
			}
		},
		"/dashboard": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"dashboard"
				],
				"summary": "Dashboard summary",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/DashboardSummary"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/venues": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"venues"
				],
				"summary": "List venues",
				"parameters": [
					{
						"type": "integer",
						"description": "Page size",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page offset",
						"name": "offset",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/Venue"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"venues"
				],
				"summary": "Create venue",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "VenueInput",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/VenueInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/Venue"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/venues/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"venues"
				],
				"summary": "Get venue",
				"parameters": [
					{
						"type": "string",
						"description": "Venue ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Venue"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"venues"
				],
				"summary": "Update venue",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Venue ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "VenueInput",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/VenueInput"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Venue"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"venues"
				],
				"summary": "Delete venue",
				"parameters": [
					{
						"type": "string",
						"description": "Venue ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/facilities": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"facilities"
				],
				"summary": "List facilities",
				"parameters": [
					{
						"type": "string",
						"description": "Venue ID",
						"name": "venueId",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Only bookable facilities",
						"name": "available",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page offset",
						"name": "offset",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/Facility"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"facilities"
				],
				"summary": "Create facility",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "FacilityInput",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/FacilityInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/Facility"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/facilities/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"facilities"
				],
				"summary": "Get facility",
				"parameters": [
					{
						"type": "string",
						"description": "Facility ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Facility"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"facilities"
				],
				"summary": "Update facility",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Facility ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "FacilityInput",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/FacilityInput"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Facility"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"facilities"
				],
				"summary": "Delete facility",
				"parameters": [
					{
						"type": "string",
						"description": "Facility ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/facilities/{id}/schedule": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"facilities"
				],
				"summary": "Facility schedule",
				"parameters": [
					{
						"type": "string",
						"description": "Facility ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "First day (YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Last day (YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/ScheduleDay"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"bookings"
				],
				"summary": "List bookings",
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "userId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Facility ID",
						"name": "facilityId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status",
						"name": "status",
						"in": "query",
						"enum": [
							"PENDING_PAYMENT",
							"CONFIRMED",
							"CANCELLED",
							"COMPLETED",
							"PAYMENT_RETRY"
						]
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page offset",
						"name": "offset",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/Booking"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"bookings"
				],
				"summary": "Create booking",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "BookingInput",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/BookingInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/Booking"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/stats": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"bookings"
				],
				"summary": "Booking statistics",
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "userId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Facility ID",
						"name": "facilityId",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/BookingStats"
						}
					}
				}
			}
		},
		"/bookings/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"bookings"
				],
				"summary": "Get booking",
				"parameters": [
					{
						"type": "string",
						"description": "Booking ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Booking"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{id}/status": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"bookings"
				],
				"summary": "Update booking status",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Booking ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "StatusUpdate",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/StatusUpdate"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Booking"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{id}/cancel": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"bookings"
				],
				"summary": "Cancel booking",
				"parameters": [
					{
						"type": "string",
						"description": "Booking ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Booking"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/bookings/{id}/confirm": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"bookings"
				],
				"summary": "Confirm booking",
				"parameters": [
					{
						"type": "string",
						"description": "Booking ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Booking"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/users": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "List users",
				"parameters": [
					{
						"type": "string",
						"description": "Name or email fragment",
						"name": "search",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Role",
						"name": "role",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Account state",
						"name": "active",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page offset",
						"name": "offset",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/User"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/users/me": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Current user",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					}
				}
			}
		},
		"/users/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Get user",
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Update user",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "UserUpdate",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/UserUpdate"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/users/{id}/roles": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Update user roles",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "RolesUpdate",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/RolesUpdate"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				}
			}
		},
		"/users/{id}/activate": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Activate user",
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					}
				}
			}
		},
		"/users/{id}/deactivate": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Deactivate user",
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string",
					"example": "session expired, sign in again"
				}
			}
		},
		"Credentials": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string",
					"example": "ops@venue-master.io"
				},
				"password": {
					"type": "string",
					"example": "s3cret-pass"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"Registration": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string",
					"minLength": 8
				},
				"firstName": {
					"type": "string",
					"maxLength": 100
				},
				"lastName": {
					"type": "string",
					"maxLength": 100
				},
				"phone": {
					"type": "string",
					"maxLength": 32
				}
			},
			"required": [
				"email",
				"firstName",
				"lastName",
				"password"
			]
		},
		"UserProfile": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"roles": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"SessionStatus": {
			"type": "object",
			"properties": {
				"authenticated": {
					"type": "boolean"
				},
				"admin": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/UserProfile"
				},
				"accessTokenExpiresAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"DashboardSummary": {
			"type": "object",
			"properties": {
				"venues": {
					"type": "integer",
					"example": 4
				},
				"facilities": {
					"type": "integer",
					"example": 23
				},
				"bookings": {
					"type": "integer",
					"example": 100
				},
				"users": {
					"type": "integer",
					"example": 57
				},
				"window": {
					"type": "integer",
					"example": 100
				}
			}
		},
		"Venue": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"address": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"state": {
					"type": "string"
				},
				"zipCode": {
					"type": "string"
				},
				"country": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"website": {
					"type": "string"
				},
				"timezone": {
					"type": "string"
				}
			}
		},
		"VenueInput": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"address": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"state": {
					"type": "string"
				},
				"zipCode": {
					"type": "string"
				},
				"country": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"website": {
					"type": "string"
				},
				"timezone": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"Facility": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"venueId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"surface": {
					"type": "string"
				},
				"openAt": {
					"type": "string",
					"example": "07:00"
				},
				"closeAt": {
					"type": "string",
					"example": "22:00"
				},
				"available": {
					"type": "boolean"
				},
				"weekdayRateCents": {
					"type": "integer",
					"example": 2500
				},
				"weekendRateCents": {
					"type": "integer",
					"example": 3500
				},
				"currency": {
					"type": "string",
					"example": "USD"
				}
			}
		},
		"FacilityInput": {
			"type": "object",
			"properties": {
				"venueId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"surface": {
					"type": "string"
				},
				"openAt": {
					"type": "string"
				},
				"closeAt": {
					"type": "string"
				},
				"available": {
					"type": "boolean"
				},
				"weekdayRateCents": {
					"type": "integer",
					"minimum": 0
				},
				"weekendRateCents": {
					"type": "integer",
					"minimum": 0
				},
				"currency": {
					"type": "string"
				}
			},
			"required": [
				"closeAt",
				"currency",
				"name",
				"openAt",
				"venueId"
			]
		},
		"Slot": {
			"type": "object",
			"properties": {
				"openAt": {
					"type": "string"
				},
				"closeAt": {
					"type": "string"
				}
			}
		},
		"ScheduleDay": {
			"type": "object",
			"properties": {
				"date": {
					"type": "string",
					"example": "2026-10-24"
				},
				"closed": {
					"type": "boolean"
				},
				"reason": {
					"type": "string"
				},
				"slots": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/Slot"
					}
				}
			}
		},
		"FacilitySummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"venueId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"Booking": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"facilityId": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"startsAt": {
					"type": "string",
					"format": "date-time"
				},
				"endsAt": {
					"type": "string",
					"format": "date-time"
				},
				"status": {
					"type": "string",
					"enum": [
						"PENDING_PAYMENT",
						"CONFIRMED",
						"CANCELLED",
						"COMPLETED",
						"PAYMENT_RETRY"
					]
				},
				"amountCents": {
					"type": "integer"
				},
				"currency": {
					"type": "string"
				},
				"paymentIntent": {
					"type": "string"
				},
				"facility": {
					"$ref": "#/definitions/FacilitySummary"
				}
			}
		},
		"BookingInput": {
			"type": "object",
			"properties": {
				"facilityId": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"startsAt": {
					"type": "string",
					"format": "date-time"
				},
				"endsAt": {
					"type": "string",
					"format": "date-time"
				}
			},
			"required": [
				"endsAt",
				"facilityId",
				"startsAt",
				"userId"
			]
		},
		"StatusUpdate": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"PENDING_PAYMENT",
						"CONFIRMED",
						"CANCELLED",
						"COMPLETED",
						"PAYMENT_RETRY"
					]
				}
			},
			"required": [
				"status"
			]
		},
		"BookingStats": {
			"type": "object",
			"properties": {
				"total": {
					"type": "integer"
				},
				"byStatus": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"revenueCents": {
					"type": "integer"
				},
				"currency": {
					"type": "string"
				}
			}
		},
		"User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"roles": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"active": {
					"type": "boolean"
				}
			}
		},
		"UserUpdate": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"firstName",
				"lastName"
			]
		},
		"RolesUpdate": {
			"type": "object",
			"properties": {
				"roles": {
					"type": "array",
					"minItems": 1,
					"items": {
						"type": "string",
						"enum": [
							"USER",
							"STAFF",
							"ADMIN",
							"SUPER_ADMIN"
						]
					}
				}
			},
			"required": [
				"roles"
			]
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Venue Admin Console API",
	Description:      "Backend for the venue booking admin console. Every call is made on behalf of the signed-in operator of the console session cookie.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
