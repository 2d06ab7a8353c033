package infrastructure

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	"github.com/Wisofer/billing-system-sub001/internal/domain/equipment"
	"github.com/Wisofer/billing-system-sub001/internal/domain/expense"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	"github.com/Wisofer/billing-system-sub001/internal/domain/landing"
	"github.com/Wisofer/billing-system-sub001/internal/domain/payment"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	"github.com/Wisofer/billing-system-sub001/internal/logger"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Error().
			Err(err).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("Fallo al conectar a la base de datos")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Fallo al obtener la conexión subyacente")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.DBName).
		Msg("Conexión a la base de datos establecida")

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	logger.Info().Msg("Ejecutando migraciones...")

	entities := []interface{}{
		&user.User{},
		&client.Client{},
		&catalog.ServicePlan{},
		&catalog.Subscription{},
		&invoice.Invoice{},
		&invoice.Line{},
		&payment.Payment{},
		&payment.InvoiceLink{},
		&expense.Expense{},
		&equipment.Equipment{},
		&landing.Lead{},
	}

	if err := db.AutoMigrate(entities...); err != nil {
		logger.Error().Err(err).Msg("Fallo al ejecutar migraciones")
		return err
	}

	logger.Info().Msg("Migraciones ejecutadas correctamente")
	return nil
}
