package claims

import (
	"context"
	"fmt"
)

const (
	// DefaultTopProviders is the aggregation size when no limit is given.
	DefaultTopProviders = 10
	// MaxTopProviders is the hard ceiling; larger requests are clamped.
	MaxTopProviders = 10
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// buildClaim validates an input and assembles the persistable record,
// normalizing field values and computing net_fee server-side. net_fee is
// never trusted from input.
func buildClaim(in *ClaimInput) (*Claim, *ValidationError) {
	if verr := Validate(in); verr != nil {
		return nil, verr
	}

	serviceDate, _ := ParseServiceDate(in.ServiceDate)

	c := &Claim{
		ServiceDate:        serviceDate,
		SubmittedProcedure: NormalizeProcedure(in.SubmittedProcedure),
		PlanGroup:          in.PlanGroup,
		SubscriberID:       *in.SubscriberID,
		ProviderNPI:        *in.ProviderNPI,
		ProviderFees:       *in.ProviderFees,
		AllowedFees:        *in.AllowedFees,
		MemberCoinsurance:  *in.MemberCoinsurance,
		MemberCopay:        *in.MemberCopay,
	}
	if q := in.Quadrant; q != "" {
		c.Quadrant = &q
	}
	c.NetFee = NetFee(c.ProviderFees, c.MemberCoinsurance, c.MemberCopay, c.AllowedFees)
	return c, nil
}

// Create validates the input, computes the net fee, and persists the claim.
// The returned claim carries its store-assigned id. A *ValidationError is
// returned for bad input; any other error is a store failure.
func (s *Service) Create(ctx context.Context, in *ClaimInput) (*Claim, error) {
	c, verr := buildClaim(in)
	if verr != nil {
		return nil, verr
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("create claim: %w", err)
	}
	return c, nil
}

// List returns a page of claims plus the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Claim, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// TopProviders returns the providers with the highest summed net fees,
// clamping limit into [1, MaxTopProviders].
func (s *Service) TopProviders(ctx context.Context, limit int) ([]ProviderTotal, error) {
	if limit <= 0 {
		limit = DefaultTopProviders
	}
	if limit > MaxTopProviders {
		limit = MaxTopProviders
	}
	return s.repo.TopProviders(ctx, limit)
}
