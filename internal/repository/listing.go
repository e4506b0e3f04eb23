// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultPage is the first page served when none is requested.
	DefaultPage = 1
	// DefaultLimit is deliberately small so pagination is exercised early.
	DefaultLimit = 3
	// MaxLimit caps the requestable page size.
	MaxLimit = 100
)

// ErrPageOutOfRange is returned when the requested page lies beyond the
// last page of the filtered collection. Callers translate it into an
// explicit "no results for this page" failure rather than an empty success.
var ErrPageOutOfRange = errors.New("requested page is out of range")

// ListQuery carries the recognized listing parameters parsed from a request.
// Search wins over field filters: when both are supplied only the search
// is applied. Unrecognized parameters never reach this struct.
type ListQuery struct {
	Search   string
	Filters  map[string]string
	Ordering string
	Page     int
	Limit    int
}

// Normalized returns a copy with page and limit clamped to sane values.
func (q ListQuery) Normalized() ListQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// PageMeta describes the slice of the filtered collection a page covers.
type PageMeta struct {
	Total      int64
	TotalPages int
	Page       int
	Limit      int
}

// Offset returns the row offset of the page start.
func (m PageMeta) Offset() int {
	return (m.Page - 1) * m.Limit
}

// paginate counts the rows matched by the composed query and validates the
// requested page against the result. The count is a separate aggregate
// query over the same predicate; only the page itself is ever materialized
// by the caller. An empty collection still has one valid (empty) first page.
func paginate(tx *gorm.DB, q ListQuery) (PageMeta, error) {
	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return PageMeta{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(q.Limit)))
	if totalPages == 0 {
		totalPages = 1
	}
	if q.Page > totalPages {
		return PageMeta{}, ErrPageOutOfRange
	}

	return PageMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       q.Page,
		Limit:      q.Limit,
	}, nil
}

// applyOrdering appends the ORDER BY clause for a request-supplied ordering
// parameter. The field name may be prefixed with "-" for descending order
// and must appear in the whitelist; anything else falls back to the default
// newest-first ordering.
func applyOrdering(tx *gorm.DB, ordering string, allowed map[string]bool, fallback string) *gorm.DB {
	field := strings.TrimSpace(ordering)
	desc := false
	if strings.HasPrefix(field, "-") {
		desc = true
		field = field[1:]
	}

	if field == "" || !allowed[field] {
		return tx.Order(fallback)
	}

	if desc {
		return tx.Order(field + " DESC")
	}
	return tx.Order(field + " ASC")
}
