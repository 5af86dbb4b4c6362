package api

import (
	"net/http"
	"strconv"

	"github.com/recipebox/backend/errs"
)

const defaultPageSize = 10

// parsePage reads ?page= and ?limit= into a limit/offset pair. Values are
// parsed strictly; anything non-numeric or non-positive is a 400.
func parsePage(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageSize
	page := 1

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, errs.NewValidationError("limit", "must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, errs.NewValidationError("page", "must be a positive integer")
		}
	}

	return limit, (page - 1) * limit, nil
}
