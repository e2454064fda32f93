package api

import (
	"encoding/json"
	"net/http"
)

// messageResponse is the body of every non-data response.
type messageResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusNotFound, "Not found")
}
