package models

import "strings"

type WebResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    T      `json:"data"`
}

type PaginationRequest struct {
	Page       int    `json:"page" query:"page" validate:"omitempty,min=1"`
	Limit      int    `json:"limit" query:"limit" validate:"omitempty,min=1,max=100"`
	Order      string `json:"order" query:"order" validate:"omitempty,oneof=asc desc"`
	OrderField string `json:"order_field" query:"order_field" validate:"omitempty"`
}

type Pagination[T any] struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	Items      T    `json:"items"`
}

// NewPagination fills the page metadata from a total count.
func NewPagination[T any](req *PaginationRequest, totalItems int64, items T) *Pagination[T] {
	totalPages := int((totalItems + int64(req.Limit) - 1) / int64(req.Limit))
	return &Pagination[T]{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
		Items:      items,
	}
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Normalize applies the default page and clamps the limit to MaxPageLimit.
func (p *PaginationRequest) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
}

// OrderClause builds the ORDER BY for a list query. OrderField must be a key of
// allowed, which maps public names to columns; anything else falls back to
// defaultColumn. Order defaults to descending.
func (p *PaginationRequest) OrderClause(allowed map[string]string, defaultColumn string) string {
	column, ok := allowed[p.OrderField]
	if !ok {
		column = defaultColumn
	}
	if strings.EqualFold(p.Order, "asc") {
		return column + " ASC"
	}
	return column + " DESC"
}

func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
