// Package workflow holds the per-session workflow state and the orchestrator
// that drives generation calls through it.
package workflow

import (
	"sync"

	"github.com/01moynul/taptosell-creatives/internal/models"
)

// Snapshot is an immutable view of one session's workflow state.
type Snapshot struct {
	Step      models.Step
	Language  models.Language
	Margin    float64
	Product   *models.Product
	Creatives *models.AdCreative
	SalesPage *models.SalesPage
	Loading   models.LoadingState
}

// NewSnapshot returns the state of a fresh session.
func NewSnapshot() Snapshot {
	return Snapshot{
		Step:     models.StepImport,
		Language: models.DefaultLanguage,
		Margin:   models.DefaultMargin,
	}
}

// SellingPrice is recomputed from the current product and margin on every read.
func (s Snapshot) SellingPrice() float64 {
	if s.Product == nil {
		return 0
	}
	return models.SellingPrice(s.Product.SupplierPrice, s.Margin)
}

// CreativePatch sets individual creative fields; nil fields are left alone.
type CreativePatch struct {
	VideoScript     *string
	LifestyleImages []string
	AdCopy          *models.AdCopy
}

// Patch describes which fields an action sets. Nil fields are untouched.
type Patch struct {
	Step      *models.Step
	Language  *models.Language
	Margin    *float64
	Product   *models.Product
	Creative  *CreativePatch
	SalesPage *models.SalesPage
	Loading   map[models.Kind]bool
}

// Apply merges p into s and returns the new snapshot. s is never modified.
// The step only moves forward: a patch naming an earlier step is ignored.
func Apply(s Snapshot, p Patch) Snapshot {
	out := s.clone()

	if p.Step != nil && out.Step.Before(*p.Step) {
		out.Step = *p.Step
	}
	if p.Language != nil {
		out.Language = *p.Language
	}
	if p.Margin != nil {
		out.Margin = *p.Margin
	}
	if p.Product != nil {
		prod := p.Product.Clone()
		out.Product = &prod
	}
	if p.Creative != nil {
		c := models.AdCreative{}
		if out.Creatives != nil {
			c = *out.Creatives
		}
		if p.Creative.VideoScript != nil {
			v := *p.Creative.VideoScript
			c.VideoScript = &v
		}
		if p.Creative.LifestyleImages != nil {
			c.LifestyleImages = append([]string(nil), p.Creative.LifestyleImages...)
		}
		if p.Creative.AdCopy != nil {
			ac := *p.Creative.AdCopy
			c.AdCopy = &ac
		}
		out.Creatives = &c
	}
	if p.SalesPage != nil {
		page := p.SalesPage.Clone()
		out.SalesPage = &page
	}
	for kind, busy := range p.Loading {
		out.Loading = out.Loading.With(kind, busy)
	}
	return out
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.Product != nil {
		p := s.Product.Clone()
		out.Product = &p
	}
	if s.Creatives != nil {
		c := s.Creatives.Clone()
		out.Creatives = &c
	}
	if s.SalesPage != nil {
		page := s.SalesPage.Clone()
		out.SalesPage = &page
	}
	return out
}

// Store serialises patches against the latest snapshot so concurrent actions
// touching different fields never clobber each other.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewStore() *Store {
	return &Store{snap: NewSnapshot()}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Update applies p to the latest snapshot and returns the result.
func (s *Store) Update(p Patch) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Apply(s.snap, p)
	return s.snap.clone()
}

// Begin marks kind as busy and returns the function that clears it. The
// returned function is safe to call more than once; only the first call
// has an effect.
func (s *Store) Begin(kind models.Kind) (release func()) {
	s.Update(Patch{Loading: map[models.Kind]bool{kind: true}})
	var once sync.Once
	return func() {
		once.Do(func() {
			s.Update(Patch{Loading: map[models.Kind]bool{kind: false}})
		})
	}
}
