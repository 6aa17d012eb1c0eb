package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		total      int64
		size       int
		requested  int
		wantPage   int
		wantOffset int
	}{
		{"First Page", 25, 10, 1, 1, 0},
		{"Middle Page", 25, 10, 2, 2, 10},
		{"Last Partial Page", 25, 10, 3, 3, 20},
		{"Beyond Last Clamps To Last", 25, 10, 99, 3, 20},
		{"Zero Clamps To First", 25, 10, 0, 1, 0},
		{"Negative Clamps To First", 25, 10, -5, 1, 0},
		{"Empty Set Has One Page", 0, 10, 7, 1, 0},
		{"Exact Multiple", 20, 10, 2, 2, 10},
		{"Exact Multiple Beyond", 20, 10, 3, 2, 10},
		{"Small Page Size", 11, 5, 4, 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, offset := paginate(tt.total, tt.size, tt.requested)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestNewPostPage(t *testing.T) {
	t.Parallel()

	t.Run("Nil Posts Become Empty Slice", func(t *testing.T) {
		page := newPostPage(nil, 0, 10, 1)
		assert.NotNil(t, page.Posts)
		assert.Empty(t, page.Posts)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrevious)
	})

	t.Run("Middle Page Flags", func(t *testing.T) {
		page := newPostPage(nil, 25, 10, 2)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasNext)
		assert.True(t, page.HasPrevious)
	})
}
