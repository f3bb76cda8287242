package usecase

import (
	"context"
	"fmt"

	"github.com/pluribus-dev/pluribus/internal/domain"
)

// ResolvePlurbInput contains the parameters for resolving an identifier.
type ResolvePlurbInput struct {
	Identifier string // Plurb id or task name
}

// ResolvePlurbOutput contains the matching plurbs.
type ResolvePlurbOutput struct {
	Matches []*domain.Plurb
}

// ResolvePlurb is the use case for mapping a user-supplied identifier
// to plurbs. An exact plurb id wins outright; otherwise all plurbs of
// the named task match, and the caller decides how to disambiguate.
type ResolvePlurb struct {
	registry domain.PlurbRegistry
}

// NewResolvePlurb creates a new ResolvePlurb use case.
func NewResolvePlurb(registry domain.PlurbRegistry) *ResolvePlurb {
	return &ResolvePlurb{registry: registry}
}

// Execute resolves the identifier. Zero matches yield ErrPlurbNotFound;
// multiple matches are returned as-is, never an error.
func (uc *ResolvePlurb) Execute(_ context.Context, in ResolvePlurbInput) (*ResolvePlurbOutput, error) {
	plurbs, err := uc.registry.List()
	if err != nil {
		return nil, fmt.Errorf("list plurbs: %w", err)
	}

	matches := domain.ResolvePlurbs(in.Identifier, plurbs)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%q: %w", in.Identifier, domain.ErrPlurbNotFound)
	}
	return &ResolvePlurbOutput{Matches: matches}, nil
}
