package models

import (
	"context"
	"errors"
	"time"

	"github.com/rengganislabs/ledger_backend/config"
	"github.com/rengganislabs/ledger_backend/utils"
	"gorm.io/gorm"
)

// LedgerSnapshot persists one successfully fetched raw CSV body per ledger
// kind. Snapshots are the fallback when the upstream sheet is unreachable;
// computed reports are never persisted.
type LedgerSnapshot struct {
	ID        uint       `gorm:"primary_key" json:"id"`
	Kind      LedgerKind `gorm:"size:20;index:idx_ledger_snapshots_kind_fetched_at" json:"kind"`
	SourceURL string     `gorm:"size:1024" json:"source_url"`
	RowCount  int        `json:"row_count"`
	Checksum  string     `gorm:"size:64" json:"checksum"`
	RawCSV    string     `gorm:"type:longtext" json:"-"`
	FetchedAt time.Time  `gorm:"index:idx_ledger_snapshots_kind_fetched_at" json:"fetched_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func SaveLedgerSnapshot(ctx context.Context, snap *LedgerSnapshot) error {
	db := config.GetDB()
	if db == nil {
		return nil
	}
	return db.WithContext(ctx).Create(snap).Error
}

// LatestLedgerSnapshot returns the most recently fetched snapshot for a
// ledger kind, or utils.ErrorRecordNotFound when none has been stored.
func LatestLedgerSnapshot(ctx context.Context, kind LedgerKind) (*LedgerSnapshot, error) {
	db := config.GetDB()
	if db == nil {
		return nil, utils.ErrorRecordNotFound
	}
	var snap LedgerSnapshot
	err := db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("fetched_at DESC").
		Take(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &snap, nil
}

// PruneLedgerSnapshots keeps the newest `keep` snapshots per kind.
func PruneLedgerSnapshots(ctx context.Context, kind LedgerKind, keep int) error {
	db := config.GetDB()
	if db == nil || keep <= 0 {
		return nil
	}
	var ids []uint
	err := db.WithContext(ctx).
		Model(&LedgerSnapshot{}).
		Where("kind = ?", kind).
		Order("fetched_at DESC").
		Offset(keep).
		Limit(1000).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return err
	}
	return db.WithContext(ctx).Delete(&LedgerSnapshot{}, ids).Error
}

func MigrateTable() {
	db := config.GetDB()
	if db == nil {
		return
	}
	if err := db.AutoMigrate(&LedgerSnapshot{}); err != nil {
		config.LogError(config.GetLogger(), "snapshot.go", "MigrateTable", "AutoMigrate", nil, err)
	}
}
