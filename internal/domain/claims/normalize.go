package claims

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names for claim records. CSV headers are resolved to one
// of these (or dropped) before any row processing.
const (
	FieldServiceDate        = "service_date"
	FieldSubmittedProcedure = "submitted_procedure"
	FieldQuadrant           = "quadrant"
	FieldPlanGroup          = "plan_group"
	FieldSubscriberID       = "subscriber_id"
	FieldProviderNPI        = "provider_npi"
	FieldProviderFees       = "provider_fees"
	FieldAllowedFees        = "allowed_fees"
	FieldMemberCoinsurance  = "member_coinsurance"
	FieldMemberCopay        = "member_copay"
)

// CanonicalFields lists every recognized field name.
var CanonicalFields = []string{
	FieldServiceDate,
	FieldSubmittedProcedure,
	FieldQuadrant,
	FieldPlanGroup,
	FieldSubscriberID,
	FieldProviderNPI,
	FieldProviderFees,
	FieldAllowedFees,
	FieldMemberCoinsurance,
	FieldMemberCopay,
}

// RequiredFields are the columns a CSV header must resolve before any row
// can validate. service_date and quadrant are optional.
var RequiredFields = []string{
	FieldSubmittedProcedure,
	FieldPlanGroup,
	FieldSubscriberID,
	FieldProviderNPI,
	FieldProviderFees,
	FieldAllowedFees,
	FieldMemberCoinsurance,
	FieldMemberCopay,
}

// headerAliases maps folded header variants seen in real claim files to
// canonical names. Keys are the output of foldHeader.
var headerAliases = map[string]string{
	"plan/group_#": FieldPlanGroup,
	"plan/group#":  FieldPlanGroup,
	"subscriber#":  FieldSubscriberID,
	"subscriber_#": FieldSubscriberID,
}

// compactAliases is derived at init: every canonical name and alias with
// separator characters stripped, so headers like "ProviderNPI" resolve too.
var compactAliases = map[string]string{}

var separatorStripper = strings.NewReplacer("_", "", " ", "", "/", "", "#", "", "-", "", ".", "")

func init() {
	for _, canon := range CanonicalFields {
		compactAliases[separatorStripper.Replace(canon)] = canon
	}
	for alias, canon := range headerAliases {
		compactAliases[separatorStripper.Replace(alias)] = canon
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// foldHeader lowercases, trims, and collapses internal whitespace runs to a
// single underscore.
func foldHeader(raw string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "_")
}

// CanonicalHeader resolves a raw CSV column header to its canonical field
// name. Matching is case- and whitespace-insensitive and tolerates the
// punctuation variants present in real input files ("Provider NPI",
// "provider_npi", "ProviderNPI", "Plan/Group #", "Subscriber#"). The second
// return is false when the header is not recognized; callers drop the
// column rather than failing the import.
func CanonicalHeader(raw string) (string, bool) {
	folded := foldHeader(raw)
	for _, canon := range CanonicalFields {
		if folded == canon {
			return canon, true
		}
	}
	if canon, ok := headerAliases[folded]; ok {
		return canon, true
	}
	if canon, ok := compactAliases[separatorStripper.Replace(folded)]; ok {
		return canon, true
	}
	return "", false
}

var nonDigits = regexp.MustCompile(`\D`)

// CleanNPI strips formatting characters from a raw NPI value and parses the
// result, which must be exactly 10 digits.
func CleanNPI(raw string) (int64, error) {
	cleaned := nonDigits.ReplaceAllString(raw, "")
	if len(cleaned) != 10 {
		return 0, fmt.Errorf("invalid NPI %q: must be exactly 10 digits", strings.TrimSpace(raw))
	}
	return strconv.ParseInt(cleaned, 10, 64)
}

// CleanMoney parses a monetary CSV value, stripping currency symbols and
// thousands separators. Blank values become zero, matching the source
// files, where an absent fee means no charge.
func CleanMoney(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" || strings.EqualFold(cleaned, "nan") {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid monetary value %q", strings.TrimSpace(raw))
	}
	return d, nil
}

// CleanSubscriberID parses a subscriber identifier, tolerating surrounding
// whitespace.
func CleanSubscriberID(raw string) (int64, error) {
	cleaned := strings.TrimSpace(raw)
	id, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subscriber id %q", cleaned)
	}
	return id, nil
}

// serviceDateLayouts are accepted in order: the claim-file timestamp format
// first, then plain ISO dates for API callers.
var serviceDateLayouts = []string{
	"01/02/06 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseServiceDate parses an optional service date. Blank input yields nil.
func ParseServiceDate(raw string) (*time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, nil
	}
	for _, layout := range serviceDateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			d := t.Truncate(24 * time.Hour)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("invalid service date %q: want MM/DD/YY HH:MM or YYYY-MM-DD", cleaned)
}

// NormalizeProcedure trims and uppercases a submitted procedure code.
func NormalizeProcedure(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
