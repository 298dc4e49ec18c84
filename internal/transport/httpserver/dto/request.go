// Package dto defines the request and response shapes of the HTTP API.
package dto

// SearchRequest holds the query parameters for GET /api/v1/movies/search.
type SearchRequest struct {
	Query string `query:"q" validate:"required,min=3"`
}

// GenreRequest holds the query parameters for GET /api/v1/movies/genres/:genre.
type GenreRequest struct {
	Page int `query:"page" validate:"omitempty,min=1"`
}

// DetailsRequest holds the query parameters for GET /api/v1/details/:id.
type DetailsRequest struct {
	Type string `query:"type" validate:"required,oneof=movie show anime"`
}
