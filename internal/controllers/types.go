// Package controllers implements the HTTP handlers for the API.
package controllers

import (
	ez_uuid "github.com/pocketledger/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Pagination describes the position of a list response within the full
// filtered result set.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // Number of resources in this response
	Total  int64 `json:"total" example:"827"` // Number of resources matching the filter
	Offset uint  `json:"offset" example:"50"` // Offset of the first resource returned
	Limit  int   `json:"limit" example:"25"`  // Requested maximum number of resources
}
