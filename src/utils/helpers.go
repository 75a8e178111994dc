package utils

import (
	"etb/src/types"

	"gorm.io/gorm"
)

type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type Page struct {
	Items any      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

func Paginate(items any, page, limit int, total int64) *Page {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &Page{
		Items: items,
		Meta: PageMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// PageScope applies offset/limit for a pagination query.
func PageScope(q *types.PaginationQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset((q.Page - 1) * q.Limit).Limit(q.Limit)
	}
}
