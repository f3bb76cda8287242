package usecase

import (
	"context"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// PlurbStatusInput contains the parameters for the status overview.
type PlurbStatusInput struct {
	Identifier string // Optional filter: plurb id or task name
}

// PlurbStatusOutput contains the status overview.
type PlurbStatusOutput struct {
	Plurbs []*domain.Plurb // Sorted by id
}

// PlurbStatus is the use case for the one-shot status overview.
type PlurbStatus struct {
	registry domain.PlurbRegistry
}

// NewPlurbStatus creates a new PlurbStatus use case.
func NewPlurbStatus(registry domain.PlurbRegistry) *PlurbStatus {
	return &PlurbStatus{registry: registry}
}

// Execute returns all plurbs, or the ones matching the identifier when
// one is given. An identifier that matches nothing is an error; an
// empty workspace is not.
func (uc *PlurbStatus) Execute(_ context.Context, in PlurbStatusInput) (*PlurbStatusOutput, error) {
	plurbs, err := uc.registry.List()
	if err != nil {
		return nil, fmt.Errorf("list plurbs: %w", err)
	}

	if in.Identifier == "" {
		return &PlurbStatusOutput{Plurbs: plurbs}, nil
	}

	matches := domain.ResolvePlurbs(in.Identifier, plurbs)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%q: %w", in.Identifier, domain.ErrPlurbNotFound)
	}
	return &PlurbStatusOutput{Plurbs: matches}, nil
}
