package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-card-keeper/internal/adapter"
	"github.com/MKhiriev/go-card-keeper/internal/service"
	"github.com/MKhiriev/go-card-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrBadAccessToken:      http.StatusUnauthorized,

	adapter.ErrEmptyPrompt:         http.StatusBadRequest,
	adapter.ErrNoTextContent:       http.StatusBadRequest,
	adapter.ErrUpstreamUnavailable: http.StatusBadGateway,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrDeckAlreadyExists:     http.StatusConflict,
	store.ErrIdentifierCollision:   http.StatusConflict,
	store.ErrUserNotFound:          http.StatusNotFound,
	store.ErrDeckNotFound:          http.StatusNotFound,
	store.ErrCardNotFound:          http.StatusNotFound,
	store.ErrSessionNotFound:       http.StatusUnauthorized,

	store.ErrCorruptRecord:         http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommitingTransaction:  http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to its HTTP status. Bodies carry the generic status
// text only; storage and upstream detail stays in the server logs.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	http.Error(w, http.StatusText(status), status)
}
