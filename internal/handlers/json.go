package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1_048_576

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// readJSON décode un unique objet JSON en refusant les champs inconnus.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("corps de requête vide")
		case errors.As(err, &maxErr):
			return fmt.Errorf("corps de requête trop volumineux (max %d octets)", maxErr.Limit)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("champ inconnu %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		}
		return fmt.Errorf("JSON invalide: %w", err)
	}
	if dec.More() {
		return errors.New("le corps doit contenir un seul objet JSON")
	}
	return nil
}

// urlID lit le paramètre de chemin {id}.
func urlID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("identifiant invalide %q", raw)
	}
	return id, nil
}

// queryID lit un identifiant facultatif dans la query; absent vaut 0.
func queryID(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("paramètre %s invalide %q", name, raw)
	}
	return id, nil
}
