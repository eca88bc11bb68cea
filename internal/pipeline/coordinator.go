package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"go-import-pipeline/internal/model"
)

// Storage is the external engine rows are committed to. It is only touched
// from the committing state.
type Storage interface {
	BulkInsert(ctx context.Context, entityKey string, rows []model.TargetRow) error
	Clear(ctx context.Context, entityKey string) error
}

// MappingStore persists confirmed mappings and duplicate-key overrides,
// keyed by mapping signature.
type MappingStore interface {
	GetMapping(signature string) (model.MappingSet, bool, error)
	SetMapping(signature string, set model.MappingSet) error
	GetKeyFields(signature string) ([]string, bool, error)
	SetKeyFields(signature string, fields []string) error
}

// Coordinator drives one import run through the mapping, enrichment,
// validation and commit stages. It exposes a pull surface (State,
// PendingAction) and resumes from its two suspension points via
// ConfirmMapping and ConfirmKeyFields; both resume the in-memory batch,
// never re-reading source data. All methods are safe for concurrent use so
// an API poller can observe a run while another caller resumes it.
type Coordinator struct {
	mu sync.Mutex

	entity   model.Entity
	storage  Storage
	mappings MappingStore
	catalog  *Catalog

	state   model.ImportState
	pending model.PendingAction
	err     error

	sheet     *model.Sheet
	batch     *model.ImportBatch
	suggested model.MappingSet
	rowErrors []string
	keyFields []string

	observers []func(model.Event)
}

// NewCoordinator returns an idle coordinator for one import run.
func NewCoordinator(entity model.Entity, storage Storage, mappings MappingStore, catalog *Catalog) *Coordinator {
	return &Coordinator{
		entity:   entity,
		storage:  storage,
		mappings: mappings,
		catalog:  catalog,
		state:    model.StateIdle,
	}
}

// Notify registers an observer for commit events. Each successful commit
// emits exactly one insert event (with the row count) followed by one
// payload-free change event.
func (c *Coordinator) Notify(fn func(model.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// ------------------- State machine -------------------

// Begin enters the mapping state with decoded source data. A previously
// persisted mapping for this signature is offered as the suggestion,
// otherwise one is derived from the column names. An empty sheet is fatal.
func (c *Coordinator) Begin(sheet *model.Sheet, mode model.ImportMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != model.StateIdle {
		return fmt.Errorf("import already started (state %s)", c.state)
	}
	if sheet == nil || len(sheet.Rows) == 0 {
		name := ""
		if sheet != nil {
			name = sheet.Name
		}
		return c.fail(&model.NoDataError{Sheet: name})
	}

	c.sheet = sheet
	c.batch = &model.ImportBatch{
		ID:        uuid.NewString(),
		EntityKey: c.entity.Key,
		Mode:      mode,
		Signature: model.Signature(c.entity.Key, sheet.Columns),
	}

	if persisted, ok, err := c.mappings.GetMapping(c.batch.Signature); err == nil && ok {
		c.suggested = persisted
	} else {
		c.suggested = Suggest(sheet.Columns, c.entity.Schema)
	}

	c.state = model.StateMappingSuggested
	c.pending = model.ActionConfirmMapping
	fmt.Printf("📋 Import %s: %d rows, %d columns, awaiting mapping confirmation\n",
		c.batch.ID, len(sheet.Rows), len(sheet.Columns))
	return nil
}

// ConfirmMapping resumes the run with a user-confirmed mapping (nil
// accepts the suggestion). An incomplete mapping keeps the run suspended
// and returns IncompleteMappingError; a mapping referencing an unknown
// transform id is fatal. On success the confirmed mapping is persisted and
// the run proceeds through enrichment and validation, stopping again only
// if duplicate keys need disambiguation.
func (c *Coordinator) ConfirmMapping(ctx context.Context, set model.MappingSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != model.StateMappingSuggested {
		return fmt.Errorf("no mapping confirmation pending (state %s)", c.state)
	}
	if set == nil {
		set = c.suggested
	}
	if err := ValidateTransforms(set, c.catalog); err != nil {
		return c.fail(err)
	}
	if missing := MissingRequired(set, c.entity.Schema); missing > 0 {
		return &model.IncompleteMappingError{Missing: missing}
	}

	if err := c.mappings.SetMapping(c.batch.Signature, set); err != nil {
		return c.fail(fmt.Errorf("persist mapping: %w", err))
	}
	c.suggested = set
	c.state = model.StateMappingConfirmed
	c.pending = model.ActionNone

	return c.process(ctx, set)
}

// process runs enrichment and validation, then either suspends on a key
// conflict or commits. Caller holds the mutex.
func (c *Coordinator) process(ctx context.Context, set model.MappingSet) error {
	c.state = model.StateEnriching
	rows := make([]model.TargetRow, 0, len(c.sheet.Rows))
	for _, src := range c.sheet.Rows {
		row, err := ApplyMapping(src, set, c.entity.Schema, c.catalog)
		if err != nil {
			return c.fail(err)
		}
		rows = append(rows, row)
	}
	if err := EnrichRows(c.entity.EnricherKey, rows); err != nil {
		return c.fail(fmt.Errorf("enrich rows: %w", err))
	}

	c.state = model.StateValidating
	valid, rowErrs, err := Validate(rows, c.entity.Schema)
	if err != nil {
		return c.fail(err)
	}
	c.batch.Rows = valid
	c.rowErrors = rowErrs
	if len(rowErrs) > 0 {
		// all-or-nothing: any failing row blocks the commit
		return c.fail(&model.ValidationError{RowErrors: rowErrs})
	}

	c.keyFields = c.entity.DefaultKeyFields
	if persisted, ok, err := c.mappings.GetKeyFields(c.batch.Signature); err == nil && ok {
		c.keyFields = persisted
	} else if HasDuplicates(c.batch.Rows, c.keyFields) {
		c.state = model.StateKeyResolutionPending
		c.pending = model.ActionConfirmKeyField
		fmt.Printf("🔑 Import %s: duplicate keys under %v, awaiting key confirmation\n",
			c.batch.ID, c.keyFields)
		return nil
	}

	return c.commit(ctx)
}

// ConfirmKeyFields resumes a run suspended on duplicate keys. The
// confirmed field set (nil keeps the entity default) is persisted under
// the mapping signature so future runs skip the suspension, and the same
// in-memory row set proceeds to commit.
func (c *Coordinator) ConfirmKeyFields(ctx context.Context, fields []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != model.StateKeyResolutionPending {
		return fmt.Errorf("no key confirmation pending (state %s)", c.state)
	}
	if len(fields) > 0 {
		c.keyFields = fields
	}
	if err := c.mappings.SetKeyFields(c.batch.Signature, c.keyFields); err != nil {
		return c.fail(fmt.Errorf("persist key fields: %w", err))
	}
	c.pending = model.ActionNone
	return c.commit(ctx)
}

// commit writes the batch to storage. Overwrite mode clears the entity
// first. Caller holds the mutex.
func (c *Coordinator) commit(ctx context.Context) error {
	c.state = model.StateCommitting

	if c.batch.Mode == model.ModeOverwrite {
		if err := c.storage.Clear(ctx, c.entity.Key); err != nil {
			return c.fail(&model.StorageCommitError{Err: err})
		}
	}
	if err := c.storage.BulkInsert(ctx, c.entity.Key, c.batch.Rows); err != nil {
		return c.fail(&model.StorageCommitError{Err: err})
	}

	c.state = model.StateDone
	count := len(c.batch.Rows)
	fmt.Printf("✅ Import %s: committed %d rows (%s)\n", c.batch.ID, count, c.batch.Mode)

	for _, fn := range c.observers {
		fn(model.Event{Type: model.EventInsert, Count: count})
		fn(model.Event{Type: model.EventChange})
	}
	return nil
}

// Cancel discards the in-flight batch. Only the two suspension points can
// be cancelled; nothing has touched storage by then.
func (c *Coordinator) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != model.StateMappingSuggested && c.state != model.StateKeyResolutionPending {
		return fmt.Errorf("cannot cancel in state %s", c.state)
	}
	c.state = model.StateCancelled
	c.pending = model.ActionNone
	c.batch = nil
	c.sheet = nil
	return nil
}

// fail moves to the error state. Caller holds the mutex.
func (c *Coordinator) fail(err error) error {
	c.state = model.StateError
	c.pending = model.ActionNone
	c.err = err
	return err
}

// ------------------- Pull surface -------------------

// State returns the coordinator's current position in the import flow.
func (c *Coordinator) State() model.ImportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PendingAction names the confirmation the run is suspended on, if any.
func (c *Coordinator) PendingAction() model.PendingAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Err returns the fatal error that moved the run to the error state.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// RowErrors returns the per-row validation messages of the last run.
func (c *Coordinator) RowErrors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rowErrors
}

// SuggestedMapping returns the mapping offered for confirmation.
func (c *Coordinator) SuggestedMapping() model.MappingSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggested
}

// MissingRequired counts required fields the suggested mapping leaves
// unsatisfied.
func (c *Coordinator) MissingRequired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return MissingRequired(c.suggested, c.entity.Schema)
}

// Batch returns the current import batch, nil once cancelled.
func (c *Coordinator) Batch() *model.ImportBatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batch
}

// KeyFields returns the duplicate-key spec in effect for this run.
func (c *Coordinator) KeyFields() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyFields
}
