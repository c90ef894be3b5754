package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SergeyKozhin/jtx-board/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	contextKeySubject  = contextKey("subject")
	contextKeyObjectID = contextKey("object_id")
)

var errCantRetrieveID = errors.New("can't retrieve id")

func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			a.unauthorizedResponse(w, r, errors.New("no token provided"))
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		subject, err := a.tokens.GetSubject(token)
		if err != nil {
			invalidTokenErr := &jwt.InvalidTokenError{}
			switch {
			case errors.As(err, &invalidTokenErr):
				a.unauthorizedResponse(w, r, invalidTokenErr)
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		subjectCtx := context.WithValue(r.Context(), contextKeySubject, subject)
		next.ServeHTTP(w, r.WithContext(subjectCtx))
	})
}

func (a *Api) objectID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			a.notFoundResponse(w, r)
			return
		}

		idCtx := context.WithValue(r.Context(), contextKeyObjectID, id)
		next.ServeHTTP(w, r.WithContext(idCtx))
	})
}

func objectIDFromContext(r *http.Request) (int64, error) {
	id, ok := r.Context().Value(contextKeyObjectID).(int64)
	if !ok {
		return 0, errCantRetrieveID
	}
	return id, nil
}
