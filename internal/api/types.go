package api

import (
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/recommender"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse reports catalog size
type HealthResponse struct {
	Status string `json:"status"`
	Books  int    `json:"books"`
	Users  int    `json:"users"`
}

// ModelsResponse lists the models a server offers, default first
type ModelsResponse struct {
	Models []recommender.ModelType `json:"models"`
}

// BooksResponse lists the catalog
type BooksResponse struct {
	Books []catalog.Book `json:"books"`
}

// UsersResponse lists users that have a reading history
type UsersResponse struct {
	Users []int64 `json:"users"`
}

// PopularResponse holds the non-personalized ranking
type PopularResponse struct {
	Items []recommender.ScoredBook `json:"items"`
}
