package infra

import (
	"fmt"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches
// that GORM cannot express (partial unique indexes).
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

// RunMigrations applies the schema. Also used by integration tests against
// a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Trabajador{},
		&model.Producto{},
		&model.Compra{},
		&model.AvisoPendiente{},
		&model.TicketCompra{},
		&model.Usuario{},
		&model.ResetToken{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Uniqueness constraints scoped to active rows: soft-deleted workers
		// may keep their old email / orden without blocking reuse.
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_trabajadores_email_activo
		     ON trabajadores (email)
		     WHERE activo = true AND email IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_trabajadores_orden_activo
		     ON trabajadores (orden_rotacion)
		     WHERE activo = true`,
		// The duplicate-suppression invariant: at most one pending aviso per
		// product. The service checks before inserting; this index closes the
		// race between two concurrent batches that both saw "no pendiente".
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_avisos_pendiente_producto
		     ON avisos_pendientes (producto_id)
		     WHERE estado = 'pendiente'`,
		// Covering index for the due-date baseline query (max fecha per producto).
		`CREATE INDEX IF NOT EXISTS idx_compras_producto_fecha
		     ON compras (producto_id, fecha_compra DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_compras_trabajador_fecha
		     ON compras (trabajador_id, fecha_compra DESC)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
