package migration

import (
	authdomain "github.com/finvo/finvo/internal/auth/domain"
	"github.com/finvo/finvo/internal/config"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// SQLite and MySQL development setups migrate through the ORM.
			return conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
