package storage

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type FactoryResult struct {
	Driver string
	Store  Store
}

// FromDriver builds the snapshot store named by driver ("memory" or "mysql").
func FromDriver(driver, dsn string) (FactoryResult, error) {
	switch driver {
	case "", "memory":
		return FactoryResult{Driver: "memory", Store: NewMemory()}, nil

	case "mysql":
		if dsn == "" {
			return FactoryResult{}, fmt.Errorf("mysql storage requires a DSN")
		}
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			return FactoryResult{}, fmt.Errorf("open mysql: %w", err)
		}
		s, err := NewGorm(db)
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "mysql", Store: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", driver)
	}
}
