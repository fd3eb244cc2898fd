package repository_test

import (
	"context"
	"regexp"
	"testing"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	order := &models.Order{
		ID:                uuid.New(),
		OrderNumber:       "DRH-AB12CD34",
		Status:            models.StatusConfirmed,
		Subtotal:          60,
		TotalAmount:       60,
		AmountPaid:        60,
		PaymentMethod:     "stripe",
		CheckoutSessionID: "cs_test_1",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(order.ID))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), order)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCheckoutSessionID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	order, err := repo.FindByCheckoutSessionID(context.Background(), "cs_missing")
	assert.Error(t, err)
	assert.Nil(t, order)
}

func TestFindByRef_ByOrderNumber(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "order_number", "status", "subtotal", "total_amount", "amount_paid", "checkout_session_id"}).
		AddRow(id, "DRH-AB12CD34", models.StatusDepositPaid, 260.0, 260.0, 100.0, "cs_test_2")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity", "price_at_purchase"}).
			AddRow(uuid.New(), id, "p2", "Custom Wedding Cake", 1, 200.0))

	order, err := repo.FindByRef(context.Background(), "DRH-AB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, id, order.ID)
	assert.Equal(t, models.StatusDepositPaid, order.Status)
	assert.Len(t, order.OrderItems, 1)
	assert.Equal(t, "Custom Wedding Cake", order.OrderItems[0].ProductName)
}

func TestFindByRef_ByInternalID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "order_number", "status"}).
		AddRow(id, "DRH-AB12CD34", models.StatusConfirmed)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := repo.FindByRef(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, "DRH-AB12CD34", order.OrderNumber)
}
