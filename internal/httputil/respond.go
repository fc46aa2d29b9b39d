// Package httputil holds the small response helpers shared by all handlers.
package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("httputil: failed to encode response: %v", err)
	}
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: message})
}

// NotFound writes a 404 with the given message.
func NotFound(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusNotFound, errorBody{Error: message})
}

// InternalError writes a 500 and logs the underlying error; the body never
// leaks internals.
func InternalError(w http.ResponseWriter, err error) {
	log.Printf("httputil: internal error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// UnprocessableEntity writes a 422 carrying the validation message and the
// page data with the submitted values echoed back.
func UnprocessableEntity(w http.ResponseWriter, message string, pageData any) {
	WriteJSON(w, http.StatusUnprocessableEntity, struct {
		Error    string `json:"error"`
		PageData any    `json:"pageData"`
	}{Error: message, PageData: pageData})
}

// SeeOther redirects with 303 so the browser re-requests with GET.
func SeeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
