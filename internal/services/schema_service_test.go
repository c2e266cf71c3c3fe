package services_test

import (
	"context"
	"fmt"
	"testing"

	"ecommerce-analytics/internal/models"
	"ecommerce-analytics/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var allTables = []string{
	"usuarios",
	"categorias",
	"productos",
	"ordenes",
	"detalle_ordenes",
	"direcciones_envio",
	"carrito",
	"metodos_pago",
	"ordenes_metodos_pago",
	"reseñas_productos",
	"historial_pagos",
}

// openTestDB opens a private in-memory SQLite database with foreign keys enforced.
// A single connection keeps every statement on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestSchemaService_CreateTables(t *testing.T) {
	db := openTestDB(t)
	service := services.NewSchemaService(db)

	created, err := service.CreateTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, allTables, created)

	for _, table := range allTables {
		assert.True(t, db.Migrator().HasTable(table), "table %s should exist", table)
	}
}

func TestSchemaService_CreateTablesIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	service := services.NewSchemaService(db)

	_, err := service.CreateTables(context.Background())
	require.NoError(t, err)

	created, err := service.CreateTables(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, created)
}

func TestSchemaService_CreatesOnlyMissingTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrator().CreateTable(&models.User{}, &models.Category{}))

	created, err := services.NewSchemaService(db).CreateTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, allTables[2:], created)
}

func TestSchemaService_Constraints(t *testing.T) {
	db := openTestDB(t)
	_, err := services.NewSchemaService(db).CreateTables(context.Background())
	require.NoError(t, err)

	user := models.User{FirstName: "Ana", LastName: "Pérez", DNI: "12345678", Email: "ana@example.com", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, user.ID).Error)
	assert.False(t, storedUser.RegistrationDate.IsZero(), "registration date should default to now")

	duplicateDNI := models.User{FirstName: "Eva", LastName: "Ruiz", DNI: "12345678", Email: "eva@example.com", Password: "hash"}
	assert.Error(t, db.Create(&duplicateDNI).Error, "dni must be unique")

	duplicateEmail := models.User{FirstName: "Eva", LastName: "Ruiz", DNI: "87654321", Email: "ana@example.com", Password: "hash"}
	assert.Error(t, db.Create(&duplicateEmail).Error, "email must be unique")

	category := models.Category{Name: "Electronics"}
	require.NoError(t, db.Create(&category).Error)
	assert.Error(t, db.Create(&models.Category{Name: "Electronics"}).Error, "category name must be unique")

	product := models.Product{Name: "Laptop", Price: decimal.RequireFromString("1200.50"), Stock: 3, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)

	order := models.Order{UserID: user.ID, Total: decimal.RequireFromString("1200.50")}
	require.NoError(t, db.Create(&order).Error)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("1200.50")))

	orphan := models.OrderDetail{OrderID: order.ID, ProductID: product.ID + 100, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}
	assert.Error(t, db.Create(&orphan).Error, "order detail must reference an existing product")

	method := models.PaymentMethod{Name: "Card"}
	require.NoError(t, db.Create(&method).Error)
	payment := models.PaymentHistory{OrderID: order.ID, PaymentMethodID: method.ID, Amount: decimal.RequireFromString("1200.50")}
	require.NoError(t, db.Create(&payment).Error)

	var storedPayment models.PaymentHistory
	require.NoError(t, db.First(&storedPayment, payment.ID).Error)
	assert.Equal(t, models.PaymentStatusProcessing, storedPayment.Status)
}

func TestSchemaService_PreloadsRelationships(t *testing.T) {
	db := openTestDB(t)
	_, err := services.NewSchemaService(db).CreateTables(context.Background())
	require.NoError(t, err)

	user := models.User{FirstName: "Ana", LastName: "Pérez", DNI: "1", Email: "ana@example.com", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)
	category := models.Category{Name: "Books"}
	require.NoError(t, db.Create(&category).Error)
	for i := 0; i < 2; i++ {
		product := models.Product{Name: fmt.Sprintf("Novel %d", i), Price: decimal.NewFromInt(10), Stock: 1, CategoryID: category.ID}
		require.NoError(t, db.Create(&product).Error)
		require.NoError(t, db.Create(&models.ProductReview{UserID: user.ID, ProductID: product.ID, Rating: 5}).Error)
	}

	var loaded models.User
	require.NoError(t, db.Preload("Reviews").First(&loaded, user.ID).Error)
	assert.Len(t, loaded.Reviews, 2)

	var loadedCategory models.Category
	require.NoError(t, db.Preload("Products").First(&loadedCategory, category.ID).Error)
	assert.Len(t, loadedCategory.Products, 2)
}
