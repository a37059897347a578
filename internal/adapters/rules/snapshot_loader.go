package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

type snapshotFile struct {
	Snapshots []snapshotRecord `json:"snapshots"`
}

type snapshotRecord struct {
	World      string                    `json:"world"`
	ObservedAt string                    `json:"observed_at"`
	Available  []snapshotLine            `json:"available"`
	Desired    []snapshotLine            `json:"desired"`
	Freight    map[string][]freightLot   `json:"freight"`
	Passengers map[string]map[string]int `json:"passengers"`
}

type snapshotLine struct {
	Name  string  `json:"name"`
	Tons  float64 `json:"tons"`
	Price float64 `json:"price"`
}

type freightLot struct {
	Label string `json:"label"`
	Tons  int    `json:"tons"`
}

// SnapshotLoader implements world.SnapshotSource over a JSON file of
// observed market snapshots, keyed by world
type SnapshotLoader struct {
	path string

	once      sync.Once
	snapshots map[shared.SectorHex]*world.TradeSnapshot
	err       error
}

var _ world.SnapshotSource = (*SnapshotLoader)(nil)

func NewSnapshotLoader(path string) *SnapshotLoader {
	return &SnapshotLoader{path: path}
}

// LoadSnapshot returns the snapshot for key, or world.ErrSnapshotNotFound
func (l *SnapshotLoader) LoadSnapshot(_ context.Context, key shared.SectorHex) (*world.TradeSnapshot, error) {
	if l.path == "" {
		return nil, fmt.Errorf("%w: no snapshot file configured", world.ErrSnapshotNotFound)
	}

	l.once.Do(func() {
		raw, source, err := readSource(l.path, "")
		if err != nil {
			l.err = err
			return
		}
		l.snapshots, l.err = ParseSnapshots(raw, source)
	})
	if l.err != nil {
		return nil, l.err
	}

	snap, ok := l.snapshots[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", world.ErrSnapshotNotFound, key)
	}
	return snap, nil
}

// ParseSnapshots validates raw against the snapshot schema and indexes the
// snapshots by world
func ParseSnapshots(raw []byte, source string) (map[shared.SectorHex]*world.TradeSnapshot, error) {
	if err := validateJSON("snapshot.schema.json", source, raw); err != nil {
		return nil, err
	}

	var file snapshotFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, source, err)
	}

	out := make(map[shared.SectorHex]*world.TradeSnapshot, len(file.Snapshots))
	for _, rec := range file.Snapshots {
		snap, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: snapshot for %q: %v", ErrInvalidRules, source, rec.World, err)
		}
		out[snap.World] = snap
	}
	return out, nil
}

func (rec snapshotRecord) toDomain() (*world.TradeSnapshot, error) {
	key, err := shared.ParseSectorHex(rec.World)
	if err != nil {
		return nil, err
	}

	snap := &world.TradeSnapshot{
		World:      key,
		Available:  make(map[string]world.SnapshotGood, len(rec.Available)),
		Desired:    make(map[string]world.SnapshotGood, len(rec.Desired)),
		Freight:    make(map[shared.SectorHex][]world.FreightLot, len(rec.Freight)),
		Passengers: make(map[shared.SectorHex]map[shared.PassageKind]int, len(rec.Passengers)),
	}

	if rec.ObservedAt != "" {
		observed, err := time.Parse(time.RFC3339, rec.ObservedAt)
		if err != nil {
			return nil, fmt.Errorf("observed_at: %w", err)
		}
		snap.ObservedAt = observed
	}

	for _, line := range rec.Available {
		snap.Available[line.Name] = world.SnapshotGood(line)
	}
	for _, line := range rec.Desired {
		snap.Desired[line.Name] = world.SnapshotGood(line)
	}

	for dest, lots := range rec.Freight {
		destKey, err := shared.ParseSectorHex(dest)
		if err != nil {
			return nil, fmt.Errorf("freight destination: %w", err)
		}
		for i, lot := range lots {
			label := lot.Label
			if label == "" {
				label = fmt.Sprintf("lot %d", i+1)
			}
			snap.Freight[destKey] = append(snap.Freight[destKey], world.FreightLot{Label: label, Tons: lot.Tons})
		}
	}

	for dest, demand := range rec.Passengers {
		destKey, err := shared.ParseSectorHex(dest)
		if err != nil {
			return nil, fmt.Errorf("passenger destination: %w", err)
		}
		byKind := make(map[shared.PassageKind]int, len(demand))
		for name, count := range demand {
			kind, err := shared.ParsePassageKind(name)
			if err != nil {
				return nil, err
			}
			byKind[kind] = count
		}
		snap.Passengers[destKey] = byKind
	}

	return snap, nil
}
