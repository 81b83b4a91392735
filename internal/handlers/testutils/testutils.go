package testutils

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// WithChiURLParams injecte des paramètres de chemin chi dans la requête,
// pour appeler un handler directement, sans routeur.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// WithID renseigne le paramètre {id} des routes de ressource.
func WithID(req *http.Request, id int) *http.Request {
	return WithChiURLParams(req, map[string]string{"id": strconv.Itoa(id)})
}
