package claims

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

// NewRepoPG returns a Postgres-backed claim repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const claimCols = `id, service_date, submitted_procedure, quadrant, plan_group,
	subscriber_id, provider_npi, provider_fees, allowed_fees,
	member_coinsurance, member_copay, net_fee, created_at`

// insertCols excludes id and created_at, both assigned by the store.
var insertCols = []string{
	"service_date", "submitted_procedure", "quadrant", "plan_group",
	"subscriber_id", "provider_npi", "provider_fees", "allowed_fees",
	"member_coinsurance", "member_copay", "net_fee",
}

func scanClaim(row pgx.Row) (*Claim, error) {
	var c Claim
	err := row.Scan(&c.ID, &c.ServiceDate, &c.SubmittedProcedure, &c.Quadrant, &c.PlanGroup,
		&c.SubscriberID, &c.ProviderNPI, &c.ProviderFees, &c.AllowedFees,
		&c.MemberCoinsurance, &c.MemberCopay, &c.NetFee, &c.CreatedAt)
	return &c, err
}

func (r *repoPG) Insert(ctx context.Context, c *Claim) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO claims (service_date, submitted_procedure, quadrant, plan_group,
			subscriber_id, provider_npi, provider_fees, allowed_fees,
			member_coinsurance, member_copay, net_fee)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at`,
		c.ServiceDate, c.SubmittedProcedure, c.Quadrant, c.PlanGroup,
		c.SubscriberID, c.ProviderNPI, c.ProviderFees, c.AllowedFees,
		c.MemberCoinsurance, c.MemberCopay, c.NetFee,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (r *repoPG) InsertBatch(ctx context.Context, batch []*Claim) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"claims"}, insertCols,
		pgx.CopyFromSlice(len(batch), func(i int) ([]interface{}, error) {
			c := batch[i]
			return []interface{}{
				c.ServiceDate, c.SubmittedProcedure, c.Quadrant, c.PlanGroup,
				c.SubscriberID, c.ProviderNPI, c.ProviderFees, c.AllowedFees,
				c.MemberCoinsurance, c.MemberCopay, c.NetFee,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy claims: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit batch insert: %w", err)
	}
	return int(n), nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Claim, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM claims`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count claims: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+claimCols+` FROM claims ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var items []*Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan claim: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate claims: %w", err)
	}
	return items, total, nil
}

func (r *repoPG) TopProviders(ctx context.Context, limit int) ([]ProviderTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT provider_npi, SUM(net_fee) AS total_net_fee
		FROM claims
		GROUP BY provider_npi
		ORDER BY total_net_fee DESC, provider_npi ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregate top providers: %w", err)
	}
	defer rows.Close()

	var totals []ProviderTotal
	for rows.Next() {
		var t ProviderTotal
		if err := rows.Scan(&t.ProviderNPI, &t.TotalNetFee); err != nil {
			return nil, fmt.Errorf("scan provider total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate provider totals: %w", err)
	}
	return totals, nil
}
