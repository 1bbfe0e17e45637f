// Package storage implements the durable order store on SQLite.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nutslove/otel-instrumentation-demo/internal/orders"
)

// OrderStore persists orders in a SQLite database.
type OrderStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrderStore opens (or creates) the database at path and migrates the
// orders table.
func NewOrderStore(path string, logger *zap.Logger) (*OrderStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	// SQLite serializes writes; a single connection keeps concurrent inserts
	// from surfacing as SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&orders.Order{}); err != nil {
		return nil, fmt.Errorf("migrate orders table: %w", err)
	}

	logger.Info("Order store ready", zap.String("db_path", path))
	return &OrderStore{db: db, logger: logger}, nil
}

// Insert appends a new order row and returns the assigned id.
func (s *OrderStore) Insert(ctx context.Context, userID int64, productName string, quantity int, status string) (int64, error) {
	order := orders.Order{
		UserID:      userID,
		ProductName: productName,
		Quantity:    quantity,
		Status:      status,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

// ListAll returns every order, newest first.
func (s *OrderStore) ListAll(ctx context.Context) ([]orders.Order, error) {
	var list []orders.Order
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Close releases the underlying database handle.
func (s *OrderStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
