package params

import (
	"fmt"
	"strconv"

	"meetmatch/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams holds common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
}

// Parse reads paging parameters from the request, clamping out-of-range
// values to the defaults.
func Parse(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
	}

	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.PageNumber = n
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			if n > constants.MaxPageSize {
				n = constants.MaxPageSize
			}
			p.PageSize = n
		}
	}
	return p
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func (p QueryParams) String() string {
	return fmt.Sprintf("page=%d page_size=%d", p.PageNumber, p.PageSize)
}
