package controllers

import (
	"math"
	"net/http"

	"github.com/angelmondragon/catalog-pricing/api/responses"
	"github.com/angelmondragon/catalog-pricing/api/validators"
	"github.com/angelmondragon/catalog-pricing/internal/quotes"
	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
)

// ItemPrice renders the display price of one item in a region at a quantity.
// Quantity defaults to one.
func ItemPrice(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		itemID, err := validators.ParsePathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		regionID, err := validators.RequireQueryID(r, "region_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := svc.ItemPrice(r.Context(), itemID, regionID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, price)
	}
}
