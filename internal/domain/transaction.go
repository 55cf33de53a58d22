package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Transaction is one immutable entry in an entity's append-only log.
// Transactions for one entity are totally ordered by (CreatedAt, Seq);
// Seq is a monotonically increasing insertion id assigned by the store and
// breaks CreatedAt ties.
type Transaction struct {
	ID           uuid.UUID
	EntityID     uuid.UUID
	Kind         EntityKind
	Type         TransactionType
	Data         json.RawMessage
	CreatedAt    time.Time
	AutomationID *uuid.UUID
	Seq          int64
}

// Event is a generic JSON-Patch mutation layered over projected base state.
// The patch is an RFC-6902 operation list. Enabled is the only mutable field:
// disabling an event makes projection behave as if it never existed while the
// row itself is preserved for audit.
type Event struct {
	ID           uuid.UUID
	EntityID     uuid.UUID
	Type         string
	Patch        json.RawMessage
	Enabled      bool
	CreatedAt    time.Time
	AutomationID *uuid.UUID
	Seq          int64
}
