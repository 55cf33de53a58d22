package domain

// EntityKind identifies the kind of log-backed entity.
type EntityKind string

const (
	EntityKindSeed EntityKind = "SEED"
	EntityKindTag  EntityKind = "TAG"
)

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindSeed, EntityKindTag:
		return true
	}
	return false
}

// TransactionType is a typed log entry tag. Each entity kind has a closed set
// of valid transaction types, enforced at the append boundary.
type TransactionType string

const (
	// Seed transaction types.
	TransactionCreateSeed       TransactionType = "create_seed"
	TransactionEditContent      TransactionType = "edit_content"
	TransactionAddTag           TransactionType = "add_tag"
	TransactionRemoveTag        TransactionType = "remove_tag"
	TransactionAddCategory      TransactionType = "add_category"
	TransactionRemoveCategory   TransactionType = "remove_category"
	TransactionAddFollowup      TransactionType = "add_followup"
	TransactionCompleteFollowup TransactionType = "complete_followup"
	TransactionSetColor         TransactionType = "set_color"

	// Tag transaction types. set_color is shared with seeds.
	TransactionCreateTag TransactionType = "create_tag"
	TransactionRenameTag TransactionType = "rename_tag"
)

func (t TransactionType) String() string { return string(t) }

var seedTransactionTypes = map[TransactionType]struct{}{
	TransactionCreateSeed:       {},
	TransactionEditContent:      {},
	TransactionAddTag:           {},
	TransactionRemoveTag:        {},
	TransactionAddCategory:      {},
	TransactionRemoveCategory:   {},
	TransactionAddFollowup:      {},
	TransactionCompleteFollowup: {},
	TransactionSetColor:         {},
}

var tagTransactionTypes = map[TransactionType]struct{}{
	TransactionCreateTag: {},
	TransactionRenameTag: {},
	TransactionSetColor:  {},
}

// IsValidFor reports whether the transaction type belongs to the closed set
// of the given entity kind.
func (t TransactionType) IsValidFor(kind EntityKind) bool {
	switch kind {
	case EntityKindSeed:
		_, ok := seedTransactionTypes[t]
		return ok
	case EntityKindTag:
		_, ok := tagTransactionTypes[t]
		return ok
	}
	return false
}

// CreationType returns the creation transaction type for the given kind.
// A valid log contains exactly one creation transaction and it is logically first.
func CreationType(kind EntityKind) TransactionType {
	if kind == EntityKindTag {
		return TransactionCreateTag
	}
	return TransactionCreateSeed
}

// MusingTemplateType identifies how an idea musing's content is rendered.
// The scheduler is template-agnostic; interpretation belongs to presentation.
type MusingTemplateType string

const (
	MusingTemplateNumberedIdeas  MusingTemplateType = "numbered_ideas"
	MusingTemplateWikipediaLinks MusingTemplateType = "wikipedia_links"
	MusingTemplateMarkdown       MusingTemplateType = "markdown"
)

func (m MusingTemplateType) String() string { return string(m) }

func (m MusingTemplateType) IsValid() bool {
	switch m {
	case MusingTemplateNumberedIdeas, MusingTemplateWikipediaLinks, MusingTemplateMarkdown:
		return true
	}
	return false
}
