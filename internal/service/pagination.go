// Package service implements the business rules on top of the repositories.
package service

import "plume/internal/models"

// Page sizes per feed context.
const (
	GlobalPageSize    = 10
	GroupPageSize     = 5
	ProfilePageSize   = 10
	FollowingPageSize = 10
)

// PostPage is one page of a feed plus the metadata the template layer needs
// to render pagination controls.
type PostPage struct {
	Posts       []*models.Post `json:"posts"`
	Number      int            `json:"number"`
	Size        int            `json:"size"`
	TotalCount  int64          `json:"total_count"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// paginate clamps the requested 1-based page number into the valid range
// and returns the page number plus the row offset. Out-of-range requests
// fail over to the nearest valid page instead of erroring; an empty result
// set still has one (empty) page.
func paginate(totalCount int64, size, requested int) (page, offset int) {
	totalPages := int((totalCount + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	page = requested
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, (page - 1) * size
}

func newPostPage(posts []*models.Post, totalCount int64, size, page int) *PostPage {
	totalPages := int((totalCount + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return &PostPage{
		Posts:       posts,
		Number:      page,
		Size:        size,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
