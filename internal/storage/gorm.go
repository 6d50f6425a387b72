package storage

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is the database row backing one namespace.
type Snapshot struct {
	Namespace string         `gorm:"primaryKey;size:191"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
}

func (Snapshot) TableName() string { return "tracking_snapshots" }

// Gorm persists namespaces as rows of tracking_snapshots.
type Gorm struct{ db *gorm.DB }

func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, namespace string) ([]byte, error) {
	var row Snapshot
	err := g.db.WithContext(ctx).First(&row, "namespace = ?", namespace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Payload), nil
}

func (g *Gorm) Put(ctx context.Context, namespace string, data []byte) error {
	row := Snapshot{Namespace: namespace, Payload: datatypes.JSON(data)}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (g *Gorm) Delete(ctx context.Context, namespace string) error {
	return g.db.WithContext(ctx).Delete(&Snapshot{}, "namespace = ?", namespace).Error
}
