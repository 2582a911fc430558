package domain

import "context"

// Snapshot is the durable record: everything except session flags, the cart
// and the administrator list. It is written as one unit.
type Snapshot struct {
	Products      []Product       `json:"products" yaml:"products"`
	Accounts      []Account       `json:"accounts" yaml:"accounts"`
	Orders        []Order         `json:"orders" yaml:"orders"`
	Configuration SiteSettings    `json:"configuration" yaml:"configuration"`
	Carousel      []CarouselSlide `json:"carousel" yaml:"carousel"`
}

// Clone returns a deep copy of the snapshot with non-nil collections.
func (s Snapshot) Clone() Snapshot {
	cp := Snapshot{
		Products:      make([]Product, 0, len(s.Products)),
		Accounts:      make([]Account, 0, len(s.Accounts)),
		Orders:        make([]Order, 0, len(s.Orders)),
		Configuration: s.Configuration,
		Carousel:      append(make([]CarouselSlide, 0, len(s.Carousel)), s.Carousel...),
	}
	for _, p := range s.Products {
		cp.Products = append(cp.Products, p.Clone())
	}
	for _, a := range s.Accounts {
		cp.Accounts = append(cp.Accounts, a.Clone())
	}
	for _, o := range s.Orders {
		cp.Orders = append(cp.Orders, o.Clone())
	}
	return cp
}

// SnapshotOrigin records where a loaded snapshot came from.
type SnapshotOrigin string

const (
	// OriginStored means the snapshot was decoded from the medium.
	OriginStored SnapshotOrigin = "stored"
	// OriginSeed means the packaged seed was used because nothing usable was stored.
	OriginSeed SnapshotOrigin = "seed"
)

// DurableStore loads and saves the snapshot. Save never reports failures to
// the caller; implementations log them. Seed returns the snapshot Load falls
// back to, which is also what a data reset restores.
type DurableStore interface {
	Load(ctx context.Context) (Snapshot, SnapshotOrigin)
	Save(ctx context.Context, snapshot Snapshot)
	Seed() Snapshot
}

// SessionStore loads and saves the per-device session flags.
type SessionStore interface {
	Load(ctx context.Context) Session
	Save(ctx context.Context, session Session)
}
