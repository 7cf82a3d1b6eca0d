// Package pagination implements page-number pagination for list endpoints:
// ?page=N selects the page, ?page_size=M overrides the default size of 2 up
// to a maximum of 1000.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 2
	MaxPageSize     = 1000
)

type Params struct {
	Page     int
	PageSize int
}

func (p Params) Offset() int { return (p.Page - 1) * p.PageSize }
func (p Params) Limit() int  { return p.PageSize }

// FromQuery reads page and page_size, clamping both to sane values. Bad or
// missing input falls back to the defaults rather than erroring.
func FromQuery(c *gin.Context) Params {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Params{Page: page, PageSize: size}
}

type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewPage assembles the paginated envelope, deriving next/previous links from
// the request URL.
func NewPage(c *gin.Context, p Params, count int64, results any) Page {
	page := Page{Count: count, Results: results}

	last := (count + int64(p.PageSize) - 1) / int64(p.PageSize)
	if int64(p.Page) < last {
		u := pageURL(c, p.Page+1)
		page.Next = &u
	}
	if p.Page > 1 {
		u := pageURL(c, p.Page-1)
		page.Previous = &u
	}
	return page
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	q, _ := url.ParseQuery(u.RawQuery)
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
