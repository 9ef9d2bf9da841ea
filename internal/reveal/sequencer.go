package reveal

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
)

var (
	ErrNotLoaded       = errors.New("no gift loaded")
	ErrNotOpened       = errors.New("gift box is not open")
	ErrEntrancePending = errors.New("current step is still entering")
	ErrCompleted       = errors.New("reveal already completed")
)

// Loader is the read side of a gift store plus the opened marker.
type Loader interface {
	GetGift(ctx context.Context, id string) (*gift.Gift, error)
	MarkOpened(ctx context.Context, id string) error
}

// RefChecker reports whether a photo ref can still be displayed.
type RefChecker interface {
	Fetchable(ctx context.Context, ref string) bool
}

// View is a snapshot for renderers.
type View struct {
	Phase    Phase
	Ref      gift.Reference
	Gift     *gift.Gift
	Plan     []Step
	Index    int
	Step     Step
	Entering bool
	Err      error

	CanOpen    bool
	CanAdvance bool
	CanRetreat bool
}

type Sequencer struct {
	store   Loader
	checker RefChecker
	log     logging.Logger

	mu       sync.Mutex
	loadSeq  int
	phase    Phase
	ref      gift.Reference
	gift     *gift.Gift
	plan     []Step
	index    int
	entering bool
	marked   bool
	err      error
}

// New returns a sequencer in the loading phase. checker may be nil.
func New(store Loader, checker RefChecker, log logging.Logger) *Sequencer {
	return &Sequencer{
		store:   store,
		checker: checker,
		log:     log.With("module", "reveal"),
		phase:   PhaseLoading,
	}
}

// LoadGift resolves ref and starts a new session in the closed phase. Any
// failure leaves the session in the terminal not_found phase and returns a
// *gift.NotFoundError.
func (s *Sequencer) LoadGift(ctx context.Context, ref gift.Reference) (*gift.Gift, error) {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.phase = PhaseLoading
	s.ref = ref
	s.gift, s.plan, s.err = nil, nil, nil
	s.index, s.entering, s.marked = 0, false, false
	s.mu.Unlock()

	g, err := s.fetch(ctx, ref)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		// superseded by a newer load
		return g.Clone(), err
	}

	if err != nil {
		s.phase = PhaseNotFound
		s.err = err
		s.log.Warn(ctx, "gift not available", "ref", ref.String(), "error", err)
		return nil, err
	}

	s.gift = g
	s.plan = BuildStepPlan(g)
	s.phase = PhaseClosed
	s.log.Debug(ctx, "gift loaded", "ref", ref.String(), "plan", s.plan)
	return g.Clone(), nil
}

func (s *Sequencer) fetch(ctx context.Context, ref gift.Reference) (*gift.Gift, error) {
	switch {
	case ref.ID != "":
	case ref.Preview:
		return gift.SampleGift(), nil
	default:
		return nil, &gift.NotFoundError{Ref: ref, Err: gift.ErrNoReference}
	}

	g, err := s.store.GetGift(ctx, ref.ID)
	if err != nil {
		return nil, &gift.NotFoundError{Ref: ref, Err: err}
	}
	if g == nil {
		return nil, &gift.NotFoundError{Ref: ref, Err: gift.ErrNotFound}
	}

	g = g.Clone()
	if s.checker != nil && len(g.PhotoRefs) > 0 {
		kept := g.PhotoRefs[:0]
		for _, p := range g.PhotoRefs {
			if s.checker.Fetchable(ctx, p) {
				kept = append(kept, p)
				continue
			}
			s.log.Warn(ctx, "dropping unfetchable photo", "id", g.ID, "ref", p)
		}
		g.PhotoRefs = kept
	}
	return g, nil
}

// OpenBox moves closed → opened at step 0 and reports whether it did. Calls
// in any other phase are no-ops. The first open of a stored gift marks it
// opened; that write is best effort.
func (s *Sequencer) OpenBox(ctx context.Context) bool {
	s.mu.Lock()
	if s.phase != PhaseClosed {
		s.mu.Unlock()
		return false
	}
	s.phase = PhaseOpened
	s.index = 0
	s.entering = true
	mark := !s.marked && !s.ref.Preview
	s.marked = true
	id := s.gift.ID
	s.mu.Unlock()

	s.log.Debug(ctx, "box opened", "id", id)

	if mark {
		if err := s.store.MarkOpened(ctx, id); err != nil {
			s.log.Warn(ctx, "mark opened failed", "id", id, "error", err)
		}
	}
	return true
}

// EntranceComplete signals that the visible step has finished entering.
func (s *Sequencer) EntranceComplete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseOpened || s.phase == PhaseCompleted {
		s.entering = false
	}
}

// AdvanceStep shows the next step. Reaching the completion step completes
// the reveal.
func (s *Sequencer) AdvanceStep() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.movable(); err != nil {
		return err
	}

	s.index++
	s.entering = true
	if s.plan[s.index] == StepCompletion {
		s.phase = PhaseCompleted
	}
	return nil
}

// RetreatStep shows the previous step. It is a no-op at the first step.
func (s *Sequencer) RetreatStep() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.movable(); err != nil {
		return err
	}
	if s.index == 0 {
		return nil
	}

	s.index--
	s.entering = true
	return nil
}

func (s *Sequencer) movable() error {
	switch s.phase {
	case PhaseOpened:
	case PhaseCompleted:
		return ErrCompleted
	case PhaseClosed:
		return ErrNotOpened
	default:
		return ErrNotLoaded
	}
	if s.entering {
		return ErrEntrancePending
	}
	return nil
}

// Replay closes the box again at step 0. The gift and plan are reused.
func (s *Sequencer) Replay() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseOpened, PhaseCompleted, PhaseClosed:
	default:
		return ErrNotLoaded
	}
	s.phase = PhaseClosed
	s.index = 0
	s.entering = false
	return nil
}

func (s *Sequencer) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Phase:    s.phase,
		Ref:      s.ref,
		Gift:     s.gift.Clone(),
		Plan:     slices.Clone(s.plan),
		Index:    s.index,
		Entering: s.entering,
		Err:      s.err,
		CanOpen:  s.phase == PhaseClosed,
	}
	if s.phase == PhaseOpened || s.phase == PhaseCompleted {
		v.Step = s.plan[s.index]
		v.CanAdvance = s.phase == PhaseOpened && !s.entering
		v.CanRetreat = v.CanAdvance && s.index > 0
	}
	return v
}
