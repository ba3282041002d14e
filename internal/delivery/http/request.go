package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mutugading/goapps-backend/services/catalog/pkg/response"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the body into dst. On failure it writes a 400 and returns false.
// Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		message := "request body must be valid JSON"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			message = "request body is too large"
		}
		response.Write(w, response.WithData(response.BadRequest(message), nil))
		return false
	}
	return true
}

// boolQuery parses an optional boolean query parameter. On failure it writes a 400 and returns false.
func boolQuery(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		writeValidation(w, name, name+" must be a boolean")
		return false, false
	}
	return value, true
}
