package response

import (
	"FragFS/internal/domain"
	"errors"
	"log"
	"net/http"

	json "github.com/json-iterator/go"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps a store error to the HTTP status the API answers with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSize):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoBackup):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientSpace):
		return http.StatusInsufficientStorage
	case errors.Is(err, domain.ErrCorruptSnapshot):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	output, err := json.Marshal(body)
	if err != nil {
		log.Println("Error marshalling response:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(output)
}

func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), ErrorResponse{Error: err.Error()})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}
