package persistence

import (
	"time"
)

// JumpWorldsModel represents the jump_worlds table: one row per map
// service query, keyed by origin hex and jump radius
type JumpWorldsModel struct {
	Sector string `gorm:"column:sector;primaryKey;size:100"`
	Hex    string `gorm:"column:hex;primaryKey;size:4"`
	Jump   int    `gorm:"column:jump;primaryKey"`

	// Payload is the zstd-compressed JSON list of world records
	Payload    []byte    `gorm:"column:payload;not null"`
	WorldCount int       `gorm:"column:world_count;not null"`
	FetchedAt  time.Time `gorm:"column:fetched_at;index;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (JumpWorldsModel) TableName() string {
	return "jump_worlds"
}

// worldRecord is the stored form of a world
type worldRecord struct {
	Name       string `json:"name"`
	Sector     string `json:"sector"`
	Hex        string `json:"hex"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	UWP        string `json:"uwp"`
	Zone       string `json:"zone,omitempty"`
	Allegiance string `json:"allegiance,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
}
