package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/catalog-pricing/pkg/config"
	"github.com/angelmondragon/catalog-pricing/pkg/db"
	"github.com/angelmondragon/catalog-pricing/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	regionUS int64 = 1
	regionEU int64 = 2
)

func newTestClient(t *testing.T) *db.Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	client, err := db.New(context.Background(), config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.DB().AutoMigrate(models.All()...))
	return client
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func nullDec(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(value))
}

func day(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

// seedCatalog writes two regions, one product with one item priced in both,
// two quantity breaks bound to the US only, two sales and a shipping type.
func seedCatalog(t *testing.T, client *db.Client) {
	t.Helper()
	tx := client.DB()

	rows := []any{
		&models.Region{ID: regionEU, Title: "Europe"},
		&models.Region{ID: regionUS, Title: "United States"},
		&models.Product{ID: 10, Title: "Widgets"},
		&models.Item{ID: 100, ProductID: 10, Title: "Blue widget", DisplayOrder: 2},
		&models.ItemRegionPrice{ItemID: 100, RegionID: regionUS, Price: dec("10.00"), OriginalPrice: dec("12.00"), Enabled: true},
		&models.ItemRegionPrice{ItemID: 100, RegionID: regionEU, Price: dec("11.00"), OriginalPrice: dec("11.00"), Enabled: false},
		&models.QuantityDiscount{ID: 2, ItemID: 100, Quantity: 10},
		&models.QuantityDiscount{ID: 1, ItemID: 100, Quantity: 5},
		&models.QuantityDiscountRegion{QuantityDiscountID: 2, RegionID: regionUS, Price: dec("8.00")},
		&models.QuantityDiscountRegion{QuantityDiscountID: 1, RegionID: regionUS, Price: dec("9.00")},
		&models.Sale{ID: 1, ItemID: 100, EndDate: day("2020-01-01"), DiscountPercentage: dec("0.5")},
		&models.Sale{ID: 2, ItemID: 100, StartDate: day("2024-01-01"), DiscountPercentage: dec("0.25")},
		&models.Sale{ID: 3, ItemID: 100, DiscountPercentage: dec("0.10")},
		&models.ShippingType{ID: 1, Title: "Ground"},
		&models.ShippingRate{ID: 2, ShippingTypeID: 1, RegionID: regionUS, Threshold: dec("50"), Percentage: nullDec("0.05")},
		&models.ShippingRate{ID: 1, ShippingTypeID: 1, RegionID: regionUS, Threshold: dec("0"), Amount: nullDec("10")},
	}
	for _, row := range rows {
		require.NoError(t, tx.Create(row).Error)
	}
}
