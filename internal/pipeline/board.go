// Package pipeline models the deal board: six stage columns built from a
// snapshot of every deal, drag-and-drop and explicit stage moves, and a
// per-column quick-add form. The board never edits its snapshot; every
// change goes through the Mutator, which reloads the board on success.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/shared"
)

// ErrUnknownStage is returned for a move to a stage outside the pipeline.
var ErrUnknownStage = errors.New("unknown stage")

// Mutator performs board-initiated changes. Implementations surface
// failures to the user themselves.
type Mutator interface {
	UpdateDeal(ctx context.Context, id int64, req deal.UpdateDealRequest) (*deal.Deal, error)
	AddDeal(ctx context.Context, req deal.CreateDealRequest) (*deal.Deal, error)
	ReportError(err error)
}

// Loader fetches every deal, oldest first.
type Loader func(ctx context.Context) ([]deal.Deal, error)

// Column is one stage bucket.
type Column struct {
	Stage      deal.Stage
	Label      string
	Deals      []deal.Deal
	Count      int
	TotalValue float64
}

// AddForm is a column's in-place "new deal" form. Value is kept as typed.
type AddForm struct {
	Name  string
	Value string
}

type Board struct {
	load    Loader
	mutator Mutator

	mu       sync.Mutex
	deals    []deal.Deal
	loaded   bool
	issued   uint64
	dragging int64
	forms    map[deal.Stage]*AddForm
}

func NewBoard(load Loader, mutator Mutator) *Board {
	return &Board{
		load:    load,
		mutator: mutator,
		forms:   make(map[deal.Stage]*AddForm),
	}
}

// Load replaces the snapshot. A load overtaken by a newer one is dropped;
// on error the previous snapshot stays.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	b.issued++
	token := b.issued
	b.mu.Unlock()

	deals, err := b.load(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.issued {
		return nil
	}
	if err != nil {
		return err
	}
	b.deals = deals
	b.loaded = true
	return nil
}

// Loaded reports whether a snapshot has been fetched.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Deals copies the snapshot in load order.
func (b *Board) Deals() []deal.Deal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]deal.Deal(nil), b.deals...)
}

// Columns buckets the snapshot by stage. Deals whose stage is outside the
// pipeline appear in no column.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols := make([]Column, len(deal.Stages))
	for i, s := range deal.Stages {
		cols[i] = Column{Stage: s, Label: s.Label(), Deals: []deal.Deal{}}
	}
	for _, d := range b.deals {
		i := d.Stage.Index()
		if i < 0 {
			continue
		}
		cols[i].Deals = append(cols[i].Deals, d)
		cols[i].Count++
		cols[i].TotalValue += d.Value
	}
	return cols
}

func (b *Board) find(id int64) (deal.Deal, bool) {
	for _, d := range b.deals {
		if d.ID == id {
			return d, true
		}
	}
	return deal.Deal{}, false
}

// PickUp starts dragging the deal with the given id. It returns false when
// the deal is not on the board.
func (b *Board) PickUp(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.find(id); !ok {
		return false
	}
	b.dragging = id
	return true
}

// Dragging returns the id being dragged, if any.
func (b *Board) Dragging() (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dragging, b.dragging != 0
}

// CancelDrag drops the payload without a move.
func (b *Board) CancelDrag() {
	b.mu.Lock()
	b.dragging = 0
	b.mu.Unlock()
}

// DropOn ends a drag over the given column and issues the stage change.
// Without a payload it does nothing.
func (b *Board) DropOn(ctx context.Context, stage deal.Stage) error {
	b.mu.Lock()
	id := b.dragging
	b.dragging = 0
	b.mu.Unlock()

	if id == 0 {
		return nil
	}
	return b.move(ctx, id, stage)
}

// MoveOptions lists the stages a deal can be moved to: every stage except
// its current one.
func (b *Board) MoveOptions(d deal.Deal) []deal.Stage {
	opts := make([]deal.Stage, 0, len(deal.Stages))
	for _, s := range deal.Stages {
		if s != d.Stage {
			opts = append(opts, s)
		}
	}
	return opts
}

// MoveTo changes a deal's stage without dragging.
func (b *Board) MoveTo(ctx context.Context, id int64, stage deal.Stage) error {
	return b.move(ctx, id, stage)
}

func (b *Board) move(ctx context.Context, id int64, stage deal.Stage) error {
	if !stage.Known() {
		err := fmt.Errorf("%w: %s", ErrUnknownStage, stage)
		b.mutator.ReportError(err)
		return err
	}
	_, err := b.mutator.UpdateDeal(ctx, id, deal.StageChange(stage))
	return err
}

// OpenAdd shows the quick-add form on a column, keeping any text already
// typed there.
func (b *Board) OpenAdd(stage deal.Stage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.forms[stage]; !ok {
		b.forms[stage] = &AddForm{}
	}
}

// CloseAdd hides and clears a column's form.
func (b *Board) CloseAdd(stage deal.Stage) {
	b.mu.Lock()
	delete(b.forms, stage)
	b.mu.Unlock()
}

// AddFormFor returns the column's form and whether it is open.
func (b *Board) AddFormFor(stage deal.Stage) (AddForm, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.forms[stage]
	if !ok {
		return AddForm{}, false
	}
	return *f, true
}

// SetAddForm records the typed values, opening the form if needed.
func (b *Board) SetAddForm(stage deal.Stage, form AddForm) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forms[stage] = &form
}

// SubmitAdd creates a deal in the column's stage. A blank name is ignored
// and an unparsable value becomes 0. On success the form is cleared and
// closed; on failure it stays as typed.
func (b *Board) SubmitAdd(ctx context.Context, stage deal.Stage) error {
	b.mu.Lock()
	f, ok := b.forms[stage]
	var form AddForm
	if ok {
		form = *f
	}
	b.mu.Unlock()

	name := strings.TrimSpace(form.Name)
	if !ok || name == "" {
		return nil
	}
	if !stage.Known() {
		err := fmt.Errorf("%w: %s", ErrUnknownStage, stage)
		b.mutator.ReportError(err)
		return err
	}

	req := deal.CreateDealRequest{
		Name:  name,
		Value: shared.Amount(shared.ParseAmount(form.Value)),
		Stage: string(stage),
	}
	if _, err := b.mutator.AddDeal(ctx, req); err != nil {
		return err
	}

	b.CloseAdd(stage)
	return nil
}
