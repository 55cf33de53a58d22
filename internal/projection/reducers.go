package projection

import (
	"encoding/json"

	"github.com/ashmarten/seedlog-backend/internal/domain"
)

// Transaction payload shapes. Unknown fields are ignored on unmarshal, so a
// payload carrying extra data still reduces cleanly.

type createSeedPayload struct {
	Content string `json:"content"`
}

type editContentPayload struct {
	Content string `json:"content"`
}

type tagRefPayload struct {
	TagID string `json:"tag_id"`
}

type categoryPayload struct {
	Category string `json:"category"`
}

type followupPayload struct {
	FollowupID string `json:"followup_id"`
	Text       string `json:"text"`
}

type colorPayload struct {
	Color *string `json:"color"`
}

type createTagPayload struct {
	Name string `json:"name"`
}

type renameTagPayload struct {
	Name string `json:"name"`
}

// reduceSeed applies one non-creation transaction to the seed state.
// Reducers are total: a malformed payload, a remove for an absent member, or
// an add for a present member all reduce to a no-op instead of an error.
func reduceSeed(state *domain.SeedState, tx domain.Transaction) {
	switch tx.Type {
	case domain.TransactionEditContent:
		var p editContentPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.Content == "" {
			return
		}
		state.Content = p.Content

	case domain.TransactionAddTag:
		var p tagRefPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.TagID == "" {
			return
		}
		if state.HasTag(p.TagID) {
			return
		}
		state.TagIDs = append(state.TagIDs, p.TagID)

	case domain.TransactionRemoveTag:
		var p tagRefPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.TagID == "" {
			return
		}
		state.TagIDs = remove(state.TagIDs, p.TagID)

	case domain.TransactionAddCategory:
		var p categoryPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.Category == "" {
			return
		}
		if contains(state.Categories, p.Category) {
			return
		}
		state.Categories = append(state.Categories, p.Category)

	case domain.TransactionRemoveCategory:
		var p categoryPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.Category == "" {
			return
		}
		state.Categories = remove(state.Categories, p.Category)

	case domain.TransactionAddFollowup:
		var p followupPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.FollowupID == "" || p.Text == "" {
			return
		}
		for _, f := range state.Followups {
			if f.ID == p.FollowupID {
				return
			}
		}
		state.Followups = append(state.Followups, domain.Followup{
			ID:        p.FollowupID,
			Text:      p.Text,
			CreatedAt: tx.CreatedAt,
		})

	case domain.TransactionCompleteFollowup:
		var p followupPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.FollowupID == "" {
			return
		}
		for i := range state.Followups {
			if state.Followups[i].ID == p.FollowupID {
				state.Followups[i].Completed = true
				break
			}
		}

	case domain.TransactionSetColor:
		var p colorPayload
		if json.Unmarshal(tx.Data, &p) != nil {
			return
		}
		state.Color = p.Color

	default:
		// Unknown types were rejected at the append boundary; a stray one in
		// an old log reduces to a no-op.
		return
	}

	touch(&state.UpdatedAt, tx.CreatedAt)
}

// reduceTag applies one non-creation transaction to the tag state.
func reduceTag(state *domain.TagState, tx domain.Transaction) {
	switch tx.Type {
	case domain.TransactionRenameTag:
		var p renameTagPayload
		if json.Unmarshal(tx.Data, &p) != nil || p.Name == "" {
			return
		}
		state.Name = p.Name

	case domain.TransactionSetColor:
		var p colorPayload
		if json.Unmarshal(tx.Data, &p) != nil {
			return
		}
		state.Color = p.Color

	default:
		return
	}

	touch(&state.UpdatedAt, tx.CreatedAt)
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}

func remove(items []string, v string) []string {
	out := items[:0]
	for _, it := range items {
		if it != v {
			out = append(out, it)
		}
	}
	return out
}
