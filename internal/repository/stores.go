package repository

import "gorm.io/gorm"

// NewGormStores builds the Postgres-backed stores over one connection pool.
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Users:     NewUserStore(db),
		Relatives: NewRelativeStore(db),
		Reports:   NewReportStore(db),
	}
}
