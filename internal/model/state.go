package model

// ImportState is the coordinator's position in the import flow.
type ImportState string

const (
	StateIdle                 ImportState = "idle"
	StateMappingSuggested     ImportState = "mapping_suggested"
	StateMappingConfirmed     ImportState = "mapping_confirmed"
	StateEnriching            ImportState = "enriching"
	StateValidating           ImportState = "validating"
	StateKeyResolutionPending ImportState = "key_resolution_pending"
	StateCommitting           ImportState = "committing"
	StateDone                 ImportState = "done"
	StateError                ImportState = "error"
	StateCancelled            ImportState = "cancelled"
)

// Terminal reports whether no further transition can leave the state.
func (s ImportState) Terminal() bool {
	return s == StateDone || s == StateCancelled
}

// PendingAction names the confirmation the coordinator is suspended on.
type PendingAction string

const (
	ActionNone            PendingAction = ""
	ActionConfirmMapping  PendingAction = "confirm_mapping"
	ActionConfirmKeyField PendingAction = "confirm_key_fields"
)
