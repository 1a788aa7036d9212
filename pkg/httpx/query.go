package httpx

import (
	"fmt"
	"net/http"
	"strconv"
)

// QueryInt parses the named query parameter as a non-negative int. A missing
// parameter yields 0.
func QueryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("query parameter %q must be a non-negative integer", key)
	}
	return n, nil
}

// QueryBool parses the named query parameter as a bool. A missing parameter
// yields nil.
func QueryBool(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be a boolean", key)
	}
	return &b, nil
}

// Page reads the limit and offset query parameters.
func Page(r *http.Request) (limit, offset int, err error) {
	if limit, err = QueryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = QueryInt(r, "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

// JSONList writes items as a JSON array; a nil slice is written as [].
func JSONList[T any](w http.ResponseWriter, status int, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(w, status, items)
}
