package http

import (
	"encoding/json"
	"net/http"
)

type H map[string]any

// Ack is the body every gateway webhook answer carries.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(body)
}

func Error(w http.ResponseWriter, status int, message string) error {
	return JSON(w, status, H{"error": message})
}
