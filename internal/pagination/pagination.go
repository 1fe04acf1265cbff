// Package pagination parses list-query parameters and builds the response
// meta block shared by every paginated endpoint.
package pagination

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the normalized pagination inputs.
type Params struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"` // asc | desc
}

// Meta is the pagination block attached to list responses.
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Parse normalizes raw query values: page >= 1, limit in [1, MaxLimit],
// sortBy defaults to createdAt, sortOrder to desc. Garbage falls back to
// the defaults rather than erroring.
func Parse(page, limit, sortBy, sortOrder string) Params {
	p := Params{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if sortBy != "" {
		p.SortBy = sortBy
	}
	if sortOrder == "asc" {
		p.SortOrder = "asc"
	}
	return p
}

// Offset is the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Scope applies offset, limit and ordering to a GORM query. The sort field
// is passed through clause.Column so it is quoted, never interpolated.
func (p Params) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Order(clause.OrderByColumn{
				Column: clause.Column{Name: toSnake(p.SortBy)},
				Desc:   p.SortOrder == "desc",
			}).
			Offset(p.Offset()).
			Limit(p.Limit)
	}
}

// NewMeta computes the meta block for a total row count.
func NewMeta(p Params, total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1,
	}
}

// toSnake converts a camelCase sort field to the column name GORM derives
// from it (createdAt -> created_at).
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
