package utils

import (
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const DefaultPostsPerPage = 10

// Page is the windowing metadata returned alongside every paginated
// listing.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PostsPerPage is the fixed page size for all listings, overridable per
// deployment through POSTS_PER_PAGE.
func PostsPerPage() int {
	if v, err := strconv.Atoi(os.Getenv("POSTS_PER_PAGE")); err == nil && v > 0 {
		return v
	}
	return DefaultPostsPerPage
}

// Paginate runs the given query windowed to the requested page and scans
// the page's rows into out. The query must already carry its filter and
// order clauses.
//
// rawPage comes straight from the URL and is untrusted: anything that is
// not a positive integer selects page 1, and a page past the end clamps
// to the last available page instead of erroring. An empty result set
// still reports one (empty) page so that page numbers stay 1-based.
func Paginate(query *gorm.DB, rawPage string, size int, out interface{}) (Page, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page{}, errors.Wrap(err, "fail to count paginated query")
	}

	totalPages := int(math.Ceil(float64(total) / float64(size)))
	if totalPages == 0 {
		totalPages = 1
	}

	number, err := strconv.Atoi(rawPage)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	err = query.Session(&gorm.Session{}).
		Offset((number - 1) * size).
		Limit(size).
		Find(out).Error
	if err != nil {
		return Page{}, errors.Wrap(err, "fail to fetch page")
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
