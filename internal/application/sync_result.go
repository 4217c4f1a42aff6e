package application

// SyncResult is the uniform result of one synchronizer run.
type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OutcomeKind classifies one fan-out sub-task so the caller can continue
// past isolated failures instead of catching errors across goroutines.
type OutcomeKind string

const (
	OutcomeOK            OutcomeKind = "ok"
	OutcomeNotApplicable OutcomeKind = "not_applicable"
	OutcomeFailed        OutcomeKind = "failed"
)

// CollectionSyncOutcome is the per-collection result of the item sync
// fan-out. Failed outcomes carry the offending collection id and detail.
type CollectionSyncOutcome struct {
	Kind         OutcomeKind `json:"kind"`
	CollectionID string      `json:"collectionId"`
	ItemCount    int         `json:"itemCount"`
	Detail       string      `json:"detail,omitempty"`
}
