package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		total      int64
		totalPages int64
	}{
		{"exact fit", 10, 30, 3},
		{"partial last page", 10, 31, 4},
		{"empty", 10, 0, 0},
		{"single item", 10, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate([]int{}, 1, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, page.Meta.TotalPages)
			assert.Equal(t, tt.total, page.Meta.Total)
		})
	}
}
