package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"app/internal/domain/model"
)

func seedOrder(t *testing.T, db *gorm.DB, shopID int64, total int64, key string, createdAt time.Time) {
	t.Helper()

	o := model.Order{
		CustomerID:     7,
		ShopID:         shopID,
		Status:         model.OrderStatusPaid,
		Total:          total,
		PaymentMethod:  model.PaymentMethodMobileMoney,
		IdempotencyKey: key,
		CreatedAt:      createdAt,
	}
	if err := db.Create(&o).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
}

func TestStatsScopesToMerchantAndPeriod(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	shops := NewShopGormRepository(db)

	mine := model.Shop{MerchantID: 5, Name: "Chez Awa"}
	assert.NoError(t, db.Create(&mine).Error)
	other := model.Shop{MerchantID: 6, Name: "Maquis du Coin"}
	assert.NoError(t, db.Create(&other).Error)

	assert.NoError(t, db.Create(&model.Product{ShopID: mine.ID, Name: "Bissap", Price: 500, Stock: 10}).Error)
	assert.NoError(t, db.Create(&model.Product{ShopID: mine.ID, Name: "Attiéké poisson", Price: 1000, Stock: 5}).Error)
	assert.NoError(t, db.Create(&model.Product{ShopID: other.ID, Name: "Garba", Price: 700, Stock: 3}).Error)

	now := time.Now()
	// ten days back is always both last week and another day
	seedOrder(t, db, mine.ID, 3000, "stats-today", now)
	seedOrder(t, db, mine.ID, 2000, "stats-old", now.AddDate(0, 0, -10))
	seedOrder(t, db, other.ID, 9000, "stats-foreign", now)

	out, err := shops.Stats(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(3000), out.SalesToday)
	assert.Equal(t, int64(3000), out.SalesThisWeek)
	assert.Equal(t, int64(2), out.OrderCount)
	assert.Equal(t, int64(2), out.ProductCount)
}
