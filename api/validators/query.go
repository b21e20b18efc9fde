package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// RequireQueryID parses a mandatory positive id from the query string.
func RequireQueryID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return parseID(raw, key)
}

// ParsePathID parses a positive id from a chi route parameter.
func ParsePathID(r *http.Request, key string) (int64, error) {
	return parseID(strings.TrimSpace(chi.URLParam(r, key)), key)
}

func parseID(raw, key string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "id must be a positive integer").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
