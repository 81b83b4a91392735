package handlers

import (
	"context"
	"net/http"
)

// Les référentiels (agents, produits, services, fournisseurs) partagent les
// mêmes handlers CRUD.

func listHandler[T any](h *Handler, list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func createHandler[T any](h *Handler, create func(context.Context, *T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := readJSON(w, r, &item); err != nil {
			h.badRequest(w, err)
			return
		}
		if err := h.validate.Struct(&item); err != nil {
			h.respondError(w, r, err)
			return
		}
		if err := create(r.Context(), &item); err != nil {
			h.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func updateHandler[T any](h *Handler, setID func(*T, int), update func(context.Context, *T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			h.badRequest(w, err)
			return
		}
		var item T
		if err := readJSON(w, r, &item); err != nil {
			h.badRequest(w, err)
			return
		}
		setID(&item, id)
		if err := h.validate.Struct(&item); err != nil {
			h.respondError(w, r, err)
			return
		}
		if err := update(r.Context(), &item); err != nil {
			h.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func deleteHandler(h *Handler, del func(context.Context, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			h.badRequest(w, err)
			return
		}
		if err := del(r.Context(), id); err != nil {
			h.respondError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
