// Package store persists the storefront state on a kv medium: the durable
// snapshot under one key and the session flags under three independent keys.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"storefront/internal/kv"
	"storefront/internal/logging"
	"storefront/internal/seed"
	"storefront/pkg/domain"
)

// DefaultSnapshotKey is the medium key holding the durable snapshot.
const DefaultSnapshotKey = "storefront-data"

var _ domain.DurableStore = (*Durable)(nil)

// Durable reads and writes the full snapshot as one JSON document.
type Durable struct {
	medium kv.Medium
	key    string
	logger logging.Logger
	seedFn func() domain.Snapshot
}

// DurableOption customizes a Durable.
type DurableOption func(*Durable)

// WithSeed replaces the packaged seed for both the load fallback and Seed.
func WithSeed(fn func() domain.Snapshot) DurableOption {
	return func(d *Durable) {
		if fn != nil {
			d.seedFn = fn
		}
	}
}

// NewDurable returns a durable store on medium. An empty key selects
// DefaultSnapshotKey; a nil logger discards.
func NewDurable(medium kv.Medium, key string, logger logging.Logger, opts ...DurableOption) *Durable {
	if key == "" {
		key = DefaultSnapshotKey
	}
	if logger == nil {
		logger = logging.Nop()
	}
	d := &Durable{medium: medium, key: key, logger: logger, seedFn: seed.Snapshot}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Seed returns a fresh copy of the default snapshot.
func (d *Durable) Seed() domain.Snapshot {
	return d.seedFn().Clone()
}

// Load returns the stored snapshot, or the seed when nothing usable is stored.
func (d *Durable) Load(ctx context.Context) (domain.Snapshot, domain.SnapshotOrigin) {
	raw, err := d.medium.Get(ctx, d.key)
	if errors.Is(err, kv.ErrNotFound) {
		d.logger.Info("no stored snapshot, using seed", "key", d.key)
		return d.Seed(), domain.OriginSeed
	}
	if err != nil {
		d.logger.Warn("read snapshot failed, using seed", "key", d.key, "error", err)
		return d.Seed(), domain.OriginSeed
	}
	snap, err := DecodeSnapshot(raw)
	if err != nil {
		d.logger.Warn("stored snapshot is corrupt, using seed", "key", d.key, "error", err)
		return d.Seed(), domain.OriginSeed
	}
	return snap, domain.OriginStored
}

// Save serializes and writes the snapshot. Failures are logged only; the
// in-memory state stays authoritative.
func (d *Durable) Save(ctx context.Context, snapshot domain.Snapshot) {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		d.logger.Error("encode snapshot failed", "error", err)
		return
	}
	if err := d.medium.Set(ctx, d.key, data); err != nil {
		d.logger.Error("persist snapshot failed", "key", d.key, "driver", d.medium.Driver(), "error", err)
		return
	}
	d.logger.Debug("snapshot persisted", "key", d.key, "bytes", len(data))
}

// EncodeSnapshot renders the wire form of the durable record.
func EncodeSnapshot(snapshot domain.Snapshot) ([]byte, error) {
	return json.Marshal(snapshot.Clone())
}

// DecodeSnapshot parses the wire form; a literal null is rejected.
func DecodeSnapshot(raw []byte) (domain.Snapshot, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.Snapshot{}, errors.New("empty snapshot payload")
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, err
	}
	// Clone normalizes nil collections to empty ones.
	return snap.Clone(), nil
}
