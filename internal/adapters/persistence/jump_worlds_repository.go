package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// GormJumpWorldsRepository implements world.JumpWorldsRepository using GORM.
// Payloads are compressed with zstd; a jump-4 neighbourhood is a few hundred
// worlds of highly repetitive JSON.
type GormJumpWorldsRepository struct {
	db  *gorm.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewGormJumpWorldsRepository creates a new GORM-based jump worlds repository
func NewGormJumpWorldsRepository(db *gorm.DB) (*GormJumpWorldsRepository, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &GormJumpWorldsRepository{db: db, enc: enc, dec: dec}, nil
}

// Get retrieves the cached neighbourhood of origin
func (r *GormJumpWorldsRepository) Get(ctx context.Context, origin shared.SectorHex, jump int) (*world.CachedJumpWorlds, error) {
	var model JumpWorldsModel

	err := r.db.WithContext(ctx).
		Where("sector = ? AND hex = ? AND jump = ?", origin.Sector(), origin.Hex(), jump).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get jump worlds for %s: %w", origin, err)
	}

	raw, err := r.dec.DecodeAll(model.Payload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress jump worlds for %s: %w", origin, err)
	}

	var records []worldRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal jump worlds for %s: %w", origin, err)
	}

	worlds := make([]*world.World, 0, len(records))
	for _, rec := range records {
		w, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("corrupt cache entry for %s: %w", origin, err)
		}
		worlds = append(worlds, w)
	}

	return &world.CachedJumpWorlds{
		Origin:    origin,
		Jump:      jump,
		Worlds:    worlds,
		FetchedAt: model.FetchedAt,
	}, nil
}

// Save persists a neighbourhood (upsert)
func (r *GormJumpWorldsRepository) Save(ctx context.Context, entry *world.CachedJumpWorlds) error {
	records := make([]worldRecord, 0, len(entry.Worlds))
	for _, w := range entry.Worlds {
		records = append(records, recordFromDomain(w))
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal jump worlds: %w", err)
	}

	model := JumpWorldsModel{
		Sector:     entry.Origin.Sector(),
		Hex:        entry.Origin.Hex(),
		Jump:       entry.Jump,
		Payload:    r.enc.EncodeAll(raw, nil),
		WorldCount: len(records),
		FetchedAt:  entry.FetchedAt,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sector"}, {Name: "hex"}, {Name: "jump"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "world_count", "fetched_at", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save jump worlds for %s: %w", entry.Origin, err)
	}

	return nil
}

// Clear deletes every cached neighbourhood
func (r *GormJumpWorldsRepository) Clear(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&JumpWorldsModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear jump worlds: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func recordFromDomain(w *world.World) worldRecord {
	return worldRecord{
		Name:       w.Name,
		Sector:     w.Location.Sector(),
		Hex:        w.Location.Hex(),
		X:          w.X,
		Y:          w.Y,
		UWP:        w.UWP.String(),
		Zone:       string(w.Zone),
		Allegiance: w.Allegiance,
		Remarks:    strings.Join(w.Remarks, " "),
	}
}

func (rec worldRecord) toDomain() (*world.World, error) {
	loc, err := shared.NewSectorHex(rec.Sector, rec.Hex)
	if err != nil {
		return nil, err
	}
	return world.NewWorld(rec.Name, loc, rec.X, rec.Y, rec.UWP, rec.Zone, rec.Allegiance, rec.Remarks)
}
