package handlers

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	app_error "github.com/xenn00/room-chat/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON writes a JSON body with the given status. All success
// responses in this API are flat objects ({message, redirect, ...}),
// matching what the polling clients parse.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type HandlerFunc func(w http.ResponseWriter, r *http.Request) *app_error.AppError

// WrapHandler is the error boundary: every *AppError surfaces as a
// `{message}` JSON body with its HTTP status, nothing propagates as a
// crash.
func WrapHandler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			log.Error().Err(err).Msg(fmt.Sprintf("error occur, request id: %s", r.Header.Get("X-Request-ID")))
			WriteJSON(w, err.Code, err)
		}
	}
}
