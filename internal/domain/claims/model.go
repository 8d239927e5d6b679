package claims

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim maps to the claims table. One row per claim line; the store assigns
// the id once at insert time and it is never reused or mutated. Claims are
// create-only: no update or delete path exists.
type Claim struct {
	ID                 int64           `db:"id" json:"id"`
	ServiceDate        *time.Time      `db:"service_date" json:"service_date,omitempty"`
	SubmittedProcedure string          `db:"submitted_procedure" json:"submitted_procedure"`
	Quadrant           *string         `db:"quadrant" json:"quadrant,omitempty"`
	PlanGroup          string          `db:"plan_group" json:"plan_group"`
	SubscriberID       int64           `db:"subscriber_id" json:"subscriber_id"`
	ProviderNPI        int64           `db:"provider_npi" json:"provider_npi"`
	ProviderFees       decimal.Decimal `db:"provider_fees" json:"provider_fees"`
	AllowedFees        decimal.Decimal `db:"allowed_fees" json:"allowed_fees"`
	MemberCoinsurance  decimal.Decimal `db:"member_coinsurance" json:"member_coinsurance"`
	MemberCopay        decimal.Decimal `db:"member_copay" json:"member_copay"`
	NetFee             decimal.Decimal `db:"net_fee" json:"net_fee"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
}

// ClaimInput is the create-claim payload: a Claim minus id and net_fee,
// neither of which is ever accepted from callers. Required fields are
// pointers so the validator can distinguish absent from zero.
type ClaimInput struct {
	ServiceDate        string           `json:"service_date,omitempty"`
	SubmittedProcedure string           `json:"submitted_procedure"`
	Quadrant           string           `json:"quadrant,omitempty"`
	PlanGroup          string           `json:"plan_group"`
	SubscriberID       *int64           `json:"subscriber_id"`
	ProviderNPI        *int64           `json:"provider_npi"`
	ProviderFees       *decimal.Decimal `json:"provider_fees"`
	AllowedFees        *decimal.Decimal `json:"allowed_fees"`
	MemberCoinsurance  *decimal.Decimal `json:"member_coinsurance"`
	MemberCopay        *decimal.Decimal `json:"member_copay"`
}

// ProviderTotal is one row of the top-providers aggregation.
type ProviderTotal struct {
	ProviderNPI int64           `db:"provider_npi" json:"provider_npi"`
	TotalNetFee decimal.Decimal `db:"total_net_fee" json:"total_net_fee"`
}
