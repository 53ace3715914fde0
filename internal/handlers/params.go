package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// getParam returns a route parameter. pat stores captured segments in the
// query string under ":name"; the plain name and PathValue cover requests
// routed by a standard ServeMux in tests.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	q := r.URL.Query()
	if val := q.Get(":" + name); val != "" {
		return val
	}
	if val := q.Get(name); val != "" {
		return val
	}
	return r.PathValue(name)
}

// queryInt reads an integer query parameter, returning def when it is absent
// or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
