package controllers

import (
	"net/http"

	"github.com/angelmondragon/catalog-pricing/api/responses"
	"github.com/angelmondragon/catalog-pricing/internal/quotes"
	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
)

// RegionList returns every region the catalog prices in.
func RegionList(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		regions, err := svc.Regions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, regions)
	}
}
