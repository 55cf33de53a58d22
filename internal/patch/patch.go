// Package patch applies JSON-Patch event overlays on top of projected base
// state. Events are generic RFC-6902 operation lists over a JSON tree, so
// application is total: an event whose patch fails to decode or apply (failing
// test op, remove/replace on a missing path, type mismatch) is skipped with a
// per-event error and the remaining events still apply. A single bad event
// never corrupts the whole view.
package patch

import (
	"encoding/json"
	"fmt"
	"sort"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Result is the outcome of an event overlay pass.
type Result struct {
	// Doc is the final JSON document after all applicable events.
	Doc json.RawMessage
	// Applied lists ids of events whose patch applied cleanly, in order.
	Applied []uuid.UUID
	// Skipped collects the per-event failures; the corresponding events were
	// treated as inert.
	Skipped []*domain.PatchApplicationError
}

// Probe validates an intermediate document between events. A non-nil error
// skips the event that produced the document and keeps the previous one.
type Probe func(doc json.RawMessage) error

// ApplyEvents overlays the enabled events onto base, ordered by
// (CreatedAt, Seq) ascending. Disabled events are ignored entirely, so the
// output is identical to a run where they are absent. probe may be nil.
//
// The only hard error is a base state that cannot be marshalled; everything
// event-related is reported through Result.Skipped.
func ApplyEvents(base any, events []domain.Event, probe Probe) (*Result, error) {
	doc, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("marshal base state: %w", err)
	}

	enabled := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if ev.Enabled {
			enabled = append(enabled, ev)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		if !enabled[i].CreatedAt.Equal(enabled[j].CreatedAt) {
			return enabled[i].CreatedAt.Before(enabled[j].CreatedAt)
		}
		return enabled[i].Seq < enabled[j].Seq
	})

	res := &Result{Doc: doc}
	for _, ev := range enabled {
		next, perr := applyOne(doc, ev)
		if perr == nil && probe != nil {
			if err := probe(next); err != nil {
				perr = &domain.PatchApplicationError{
					EventID: ev.ID,
					Reason:  fmt.Sprintf("patched document rejected: %v", err),
				}
			}
		}
		if perr != nil {
			res.Skipped = append(res.Skipped, perr)
			continue
		}
		doc = next
		res.Applied = append(res.Applied, ev.ID)
	}

	res.Doc = doc
	return res, nil
}

func applyOne(doc []byte, ev domain.Event) (json.RawMessage, *domain.PatchApplicationError) {
	p, err := jsonpatch.DecodePatch(ev.Patch)
	if err != nil {
		return nil, &domain.PatchApplicationError{
			EventID: ev.ID,
			Reason:  fmt.Sprintf("decode patch: %v", err),
		}
	}

	next, err := p.Apply(doc)
	if err != nil {
		return nil, &domain.PatchApplicationError{
			EventID: ev.ID,
			Reason:  fmt.Sprintf("apply patch: %v", err),
		}
	}
	return next, nil
}
