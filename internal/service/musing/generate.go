package musing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashmarten/seedlog-backend/internal/domain"
	"github.com/ashmarten/seedlog-backend/internal/projection"
)

// GenerateMusing produces and stores a new musing for a seed using the
// configured generator. The seed's state comes from a fresh log projection,
// so the generator always sees current content.
func (s *Service) GenerateMusing(ctx context.Context, seedID uuid.UUID, templateType domain.MusingTemplateType) (*domain.IdeaMusing, error) {
	if !templateType.IsValid() {
		return nil, domain.NewValidationError("template_type", "invalid value")
	}
	if s.generator == nil {
		return nil, fmt.Errorf("no musing generator configured")
	}

	if _, err := s.seeds.GetByID(ctx, seedID); err != nil {
		return nil, err
	}

	txs, err := s.txs.ListByEntity(ctx, seedID)
	if err != nil {
		return nil, fmt.Errorf("load transaction log: %w", err)
	}
	state, err := projection.ProjectSeed(txs)
	if err != nil {
		return nil, err
	}

	content, err := s.generator.Generate(ctx, *state, templateType)
	if err != nil {
		return nil, fmt.Errorf("generate musing content: %w", err)
	}

	created, err := s.musings.Create(ctx, &domain.IdeaMusing{
		SeedID:       seedID,
		TemplateType: templateType,
		Content:      content,
	})
	if err != nil {
		return nil, fmt.Errorf("store musing: %w", err)
	}

	s.log.Info("musing generated",
		"seed_id", seedID, "musing_id", created.ID, "template_type", templateType)
	return created, nil
}
