package claims

import "context"

// Repository is the only component that talks to persistent storage. Every
// Insert and InsertBatch call is a single transaction.
type Repository interface {
	// Insert persists one claim and fills in its store-assigned id and
	// created_at.
	Insert(ctx context.Context, c *Claim) error
	// InsertBatch persists a batch of claims in one transaction and returns
	// the number of rows inserted.
	InsertBatch(ctx context.Context, batch []*Claim) (int, error)
	// List returns a page of claims in id order plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Claim, int, error)
	// TopProviders returns at most limit providers ordered by summed net_fee
	// descending; ties break on ascending provider_npi.
	TopProviders(ctx context.Context, limit int) ([]ProviderTotal, error)
}
