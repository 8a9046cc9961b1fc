package infra

import (
	"fmt"

	"hostalpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes, conditional constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the SQL-only schema patches.
// Shared with integration test setup.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Room{},
		&model.RoomStatusLog{},
		&model.RateType{},
		&model.Customer{},
		&model.Producto{},
		&model.PaymentMethod{},
		&model.CashRegister{},
		&model.CashRegisterSession{},
		&model.CashRegisterSessionPaymentMethod{},
		&model.Booking{},
		&model.BookingConsumption{},
		&model.BookingEvent{},
		&model.Payment{},
		&model.Receipt{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// fully handle on its own. Each statement uses IF NOT EXISTS / existence-guarded
// DO blocks so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// One active booking per room, enforced at the storage layer too.
		// The service checks under a row lock, this index is the backstop.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_bookings_room_activa') THEN
		    CREATE UNIQUE INDEX uq_bookings_room_activa
		        ON bookings (room_id)
		        WHERE estado IN ('confirmed', 'checked_in') AND deleted_at IS NULL;
		  END IF;
		END $$`,
		// One open cash session per user across all registers. The service
		// checks before opening, this index is the backstop.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_sesiones_usuario_abierta') THEN
		    CREATE UNIQUE INDEX uq_sesiones_usuario_abierta
		        ON cash_register_sessions (opened_by)
		        WHERE estado = 'abierta';
		  END IF;
		END $$`,
		// Partial index for the receipt retry cron query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_receipts_pending_retry') THEN
		    CREATE INDEX idx_receipts_pending_retry
		        ON receipts (next_retry_at)
		        WHERE estado = 'pendiente' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
		// Close reconciliation scans completed payments per register and window.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_payments_register_completed') THEN
		    CREATE INDEX idx_payments_register_completed
		        ON payments (cash_register_id, created_at)
		        WHERE estado = 'completed';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
