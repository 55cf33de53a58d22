package patch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

type doc struct {
	Content    string   `json:"content"`
	Categories []string `json:"categories"`
}

func event(patch string, enabled bool, at time.Time, seq int64) domain.Event {
	return domain.Event{
		ID:        uuid.New(),
		EntityID:  uuid.New(),
		Type:      "set_category",
		Patch:     json.RawMessage(patch),
		Enabled:   enabled,
		CreatedAt: at,
		Seq:       seq,
	}
}

func TestApplyEvents_InOrder(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	base := doc{Content: "draft", Categories: []string{}}

	events := []domain.Event{
		// Deliberately out of order; the engine sorts by (CreatedAt, Seq).
		event(`[{"op":"replace","path":"/content","value":"final"}]`, true, t0.Add(time.Minute), 2),
		event(`[{"op":"add","path":"/categories/-","value":"inbox"}]`, true, t0, 1),
	}

	res, err := ApplyEvents(base, events, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Applied) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("applied=%d skipped=%d", len(res.Applied), len(res.Skipped))
	}

	var got doc
	if err := json.Unmarshal(res.Doc, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got.Content != "final" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "inbox" {
		t.Errorf("Categories = %v", got.Categories)
	}
}

func TestApplyEvents_DisabledEqualsAbsent(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	base := doc{Content: "draft"}

	kept := event(`[{"op":"replace","path":"/content","value":"kept"}]`, true, t0, 1)
	disabled := event(`[{"op":"replace","path":"/content","value":"retracted"}]`, false, t0.Add(time.Second), 2)

	withDisabled, err := ApplyEvents(base, []domain.Event{kept, disabled}, nil)
	if err != nil {
		t.Fatalf("with disabled: %v", err)
	}
	withoutDisabled, err := ApplyEvents(base, []domain.Event{kept}, nil)
	if err != nil {
		t.Fatalf("without disabled: %v", err)
	}

	if string(withDisabled.Doc) != string(withoutDisabled.Doc) {
		t.Errorf("outputs differ:\n%s\n%s", withDisabled.Doc, withoutDisabled.Doc)
	}
}

func TestApplyEvents_BadEventIsIsolated(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	base := doc{Content: "draft", Categories: []string{"a"}}

	good1 := event(`[{"op":"replace","path":"/content","value":"good"}]`, true, t0, 1)
	// remove on a non-existent path must fail and be skipped
	bad := event(`[{"op":"remove","path":"/no/such/path"}]`, true, t0.Add(time.Second), 2)
	good2 := event(`[{"op":"add","path":"/categories/-","value":"b"}]`, true, t0.Add(2*time.Second), 3)

	res, err := ApplyEvents(base, []domain.Event{good1, bad, good2}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Applied) != 2 {
		t.Errorf("applied = %v, want 2 events", res.Applied)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].EventID != bad.ID {
		t.Fatalf("skipped = %+v, want the bad event only", res.Skipped)
	}

	var got doc
	if err := json.Unmarshal(res.Doc, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got.Content != "good" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.Categories) != 2 {
		t.Errorf("Categories = %v", got.Categories)
	}
}

func TestApplyEvents_FailingTestOpSkipsEvent(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	base := doc{Content: "draft"}

	guarded := event(
		`[{"op":"test","path":"/content","value":"something else"},`+
			`{"op":"replace","path":"/content","value":"should not land"}]`,
		true, t0, 1)

	res, err := ApplyEvents(base, []domain.Event{guarded}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %+v, want 1", res.Skipped)
	}

	var got doc
	if err := json.Unmarshal(res.Doc, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got.Content != "draft" {
		t.Errorf("Content = %q, want unchanged", got.Content)
	}
}

func TestApplyEvents_MalformedPatchDocument(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	broken := event(`{"op":"not-a-list"}`, true, t0, 1)

	res, err := ApplyEvents(doc{Content: "x"}, []domain.Event{broken}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %+v, want 1", res.Skipped)
	}
}

func TestApplyEvents_ProbeRejectsEvent(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	base := doc{Content: "draft"}

	// Replaces content with a number; the probe requires it to stay a string.
	corrupting := event(`[{"op":"replace","path":"/content","value":42}]`, true, t0, 1)

	probe := func(raw json.RawMessage) error {
		var d doc
		return json.Unmarshal(raw, &d)
	}

	res, err := ApplyEvents(base, []domain.Event{corrupting}, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %+v, want 1", res.Skipped)
	}

	var got doc
	if err := json.Unmarshal(res.Doc, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got.Content != "draft" {
		t.Errorf("Content = %q, want unchanged", got.Content)
	}
}

func TestApplyEvents_MoveAndCopy(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	base := map[string]any{"a": "x", "list": []any{"one"}}

	events := []domain.Event{
		event(`[{"op":"copy","from":"/a","path":"/b"}]`, true, t0, 1),
		event(`[{"op":"move","from":"/list/0","path":"/first"}]`, true, t0.Add(time.Second), 2),
	}

	res, err := ApplyEvents(base, events, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("applied = %v", res.Applied)
	}

	var got map[string]any
	if err := json.Unmarshal(res.Doc, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["b"] != "x" || got["first"] != "one" {
		t.Errorf("doc = %v", got)
	}
}
