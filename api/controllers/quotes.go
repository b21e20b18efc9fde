package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/catalog-pricing/api/responses"
	"github.com/angelmondragon/catalog-pricing/api/validators"
	"github.com/angelmondragon/catalog-pricing/internal/quotes"
	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
)

// CartQuote prices a whole cart in one region.
func CartQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload cartQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteCart(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// ShippingQuote resolves the surcharge for a subtotal without a cart.
func ShippingQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload shippingQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.ShippingQuote(r.Context(), payload.ShippingTypeID, payload.RegionID, *payload.Subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type cartQuoteRequest struct {
	RegionID       int64             `json:"region_id" validate:"required,min=1"`
	ShippingTypeID *int64            `json:"shipping_type_id,omitempty" validate:"omitempty,min=1"`
	Lines          []cartLinePayload `json:"lines" validate:"required,min=1,dive"`
}

type cartLinePayload struct {
	ItemID      int64            `json:"item_id" validate:"required,min=1"`
	Quantity    int              `json:"quantity" validate:"min=0"`
	CustomPrice *decimal.Decimal `json:"custom_price,omitempty"`
}

func (p cartQuoteRequest) toInput() quotes.CartQuoteInput {
	lines := make([]quotes.LineInput, 0, len(p.Lines))
	for _, line := range p.Lines {
		lines = append(lines, quotes.LineInput{
			ItemID:      line.ItemID,
			Quantity:    line.Quantity,
			CustomPrice: line.CustomPrice,
		})
	}
	return quotes.CartQuoteInput{
		RegionID:       p.RegionID,
		ShippingTypeID: p.ShippingTypeID,
		Lines:          lines,
	}
}

type shippingQuoteRequest struct {
	ShippingTypeID int64            `json:"shipping_type_id" validate:"required,min=1"`
	RegionID       int64            `json:"region_id" validate:"required,min=1"`
	Subtotal       *decimal.Decimal `json:"subtotal" validate:"required"`
}
