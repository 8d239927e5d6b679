package claims

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RowFailure records one skipped CSV row: its 1-based data row number and
// every field violation found in it.
type RowFailure struct {
	Row    int          `json:"row"`
	Errors []FieldError `json:"errors"`
}

// ImportReport summarizes one bulk import pass.
type ImportReport struct {
	BatchID        uuid.UUID    `json:"batch_id"`
	Total          int          `json:"total"`
	Inserted       int          `json:"inserted"`
	Skipped        int          `json:"skipped"`
	DroppedHeaders []string     `json:"dropped_headers,omitempty"`
	Failures       []RowFailure `json:"failures,omitempty"`
}

// Importer reads a claims CSV and loads it through the repository. Header
// names are normalized once from the header row; each data row is
// normalized, validated, and has its net fee computed before batching.
// Rows that fail validation are skipped and reported; a malformed row never
// aborts the rest of the file.
//
// Known limitation: there is no deduplication. Re-running an import over
// the same file appends every row again.
type Importer struct {
	repo      Repository
	log       zerolog.Logger
	batchSize int
}

func NewImporter(repo Repository, logger zerolog.Logger, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Importer{repo: repo, log: logger, batchSize: batchSize}
}

// Run imports the CSV stream and returns the report. The returned error is
// non-nil only for file-level problems (unreadable stream, unusable header,
// store failure); per-row problems land in the report instead.
func (imp *Importer) Run(ctx context.Context, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	report := &ImportReport{BatchID: uuid.New()}

	// columns maps record index -> canonical field name. Unrecognized
	// headers are dropped, not fatal.
	columns := make(map[int]string, len(header))
	for i, raw := range header {
		canon, ok := CanonicalHeader(raw)
		if !ok {
			report.DroppedHeaders = append(report.DroppedHeaders, raw)
			imp.log.Warn().Str("header", raw).Msg("unrecognized CSV header dropped")
			continue
		}
		columns[i] = canon
	}

	if err := checkRequiredColumns(columns); err != nil {
		return nil, err
	}

	var batch []*Claim
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read CSV row %d: %w", row+1, err)
		}
		row++
		report.Total++

		claim, fieldErrs := buildRow(columns, record)
		if len(fieldErrs) > 0 {
			report.Skipped++
			report.Failures = append(report.Failures, RowFailure{Row: row, Errors: fieldErrs})
			imp.log.Warn().Int("row", row).Int("violations", len(fieldErrs)).Msg("skipped invalid claim row")
			continue
		}

		batch = append(batch, claim)
		if len(batch) >= imp.batchSize {
			if err := imp.flush(ctx, batch, report); err != nil {
				return report, err
			}
			batch = batch[:0]
		}
	}

	if err := imp.flush(ctx, batch, report); err != nil {
		return report, err
	}

	imp.log.Info().
		Str("batch_id", report.BatchID.String()).
		Int("total", report.Total).
		Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).
		Msg("bulk import finished")
	return report, nil
}

func (imp *Importer) flush(ctx context.Context, batch []*Claim, report *ImportReport) error {
	if len(batch) == 0 {
		return nil
	}
	n, err := imp.repo.InsertBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("insert claim batch: %w", err)
	}
	report.Inserted += n
	return nil
}

// checkRequiredColumns verifies the header row resolved every required
// field. Optional columns (service_date, quadrant) may be absent; a missing
// required column means no row in the file could validate, so the import
// aborts up front.
func checkRequiredColumns(columns map[int]string) error {
	present := make(map[string]bool, len(columns))
	for _, canon := range columns {
		present[canon] = true
	}
	var missing []string
	for _, field := range RequiredFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("CSV header is missing required columns: %v", missing)
	}
	return nil
}

// buildRow converts one CSV record into a persistable claim, collecting
// every conversion and validation failure.
func buildRow(columns map[int]string, record []string) (*Claim, []FieldError) {
	var in ClaimInput
	var convErrs []FieldError
	failed := make(map[string]bool)

	fail := func(field, msg string) {
		convErrs = append(convErrs, FieldError{Field: field, Message: msg})
		failed[field] = true
	}

	for i, canon := range columns {
		if i >= len(record) {
			continue
		}
		raw := record[i]
		switch canon {
		case FieldServiceDate:
			in.ServiceDate = raw
		case FieldSubmittedProcedure:
			in.SubmittedProcedure = raw
		case FieldQuadrant:
			in.Quadrant = raw
		case FieldPlanGroup:
			in.PlanGroup = raw
		case FieldSubscriberID:
			id, err := CleanSubscriberID(raw)
			if err != nil {
				fail(canon, err.Error())
				continue
			}
			in.SubscriberID = &id
		case FieldProviderNPI:
			npi, err := CleanNPI(raw)
			if err != nil {
				fail(canon, err.Error())
				continue
			}
			in.ProviderNPI = &npi
		case FieldProviderFees, FieldAllowedFees, FieldMemberCoinsurance, FieldMemberCopay:
			amount, err := CleanMoney(raw)
			if err != nil {
				fail(canon, err.Error())
				continue
			}
			switch canon {
			case FieldProviderFees:
				in.ProviderFees = &amount
			case FieldAllowedFees:
				in.AllowedFees = &amount
			case FieldMemberCoinsurance:
				in.MemberCoinsurance = &amount
			case FieldMemberCopay:
				in.MemberCopay = &amount
			}
		}
	}

	claim, verr := buildClaim(&in)
	if verr == nil && len(convErrs) == 0 {
		return claim, nil
	}

	errs := convErrs
	if verr != nil {
		for _, v := range verr.Violations {
			// A field that already failed conversion would double-report
			// as "required" here.
			if failed[v.Field] {
				continue
			}
			errs = append(errs, v)
		}
	}
	if len(errs) == 0 {
		return claim, nil
	}
	return nil, errs
}
