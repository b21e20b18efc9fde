package quotes

import (
	"errors"

	"github.com/angelmondragon/catalog-pricing/internal/catalog"
	"github.com/angelmondragon/catalog-pricing/internal/pricing"
	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
)

// severity orders codes when several lines fail differently; the most severe
// code decides the response.
var severity = map[pkgerrors.Code]int{
	pkgerrors.CodeValidation:    1,
	pkgerrors.CodePriceNotFound: 2,
	pkgerrors.CodeNotFound:      3,
	pkgerrors.CodeDependency:    4,
	pkgerrors.CodeDataIntegrity: 5,
	pkgerrors.CodeInternal:      6,
}

// classify maps engine and catalog failures onto coded errors.
func classify(err error, message string) *pkgerrors.Error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	switch {
	case errors.Is(err, pricing.ErrPriceNotFound):
		return pkgerrors.Wrap(pkgerrors.CodePriceNotFound, err, message)
	case errors.Is(err, pricing.ErrInvalidTierData):
		return pkgerrors.Wrap(pkgerrors.CodeDataIntegrity, err, message)
	case errors.Is(err, catalog.ErrItemNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
	case errors.Is(err, pricing.ErrNegativeQuantity),
		errors.Is(err, pricing.ErrNegativeCustomPrice),
		errors.Is(err, pricing.ErrNegativeSubtotal):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable")
	}
}

func worst(codes []pkgerrors.Code) pkgerrors.Code {
	selected := pkgerrors.CodeValidation
	for _, code := range codes {
		if severity[code] > severity[selected] {
			selected = code
		}
	}
	return selected
}
