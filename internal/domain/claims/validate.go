package claims

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError names a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field for one claim, so callers
// (and bulk import reports) see all problems in a single pass.
type ValidationError struct {
	Violations []FieldError `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...interface{}) {
	e.Violations = append(e.Violations, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

const (
	npiMin = 1000000000
	npiMax = 9999999999
)

// Validate checks a candidate claim input against every structural
// constraint and reports all violations, not just the first. It never
// mutates the input.
func Validate(in *ClaimInput) *ValidationError {
	verr := &ValidationError{}

	checkProcedure(in, verr)
	checkPlanGroup(in, verr)
	checkSubscriberID(in, verr)
	checkProviderNPI(in, verr)
	checkMonetary(in, verr)
	checkServiceDate(in, verr)

	if len(verr.Violations) == 0 {
		return nil
	}
	return verr
}

func checkProcedure(in *ClaimInput, verr *ValidationError) {
	code := NormalizeProcedure(in.SubmittedProcedure)
	if code == "" {
		verr.add(FieldSubmittedProcedure, "is required")
		return
	}
	if !strings.HasPrefix(code, "D") {
		verr.add(FieldSubmittedProcedure, "must start with 'D', got %q", code)
	}
}

func checkPlanGroup(in *ClaimInput, verr *ValidationError) {
	if strings.TrimSpace(in.PlanGroup) == "" {
		verr.add(FieldPlanGroup, "is required")
	}
}

func checkSubscriberID(in *ClaimInput, verr *ValidationError) {
	if in.SubscriberID == nil {
		verr.add(FieldSubscriberID, "is required")
		return
	}
	if *in.SubscriberID <= 0 {
		verr.add(FieldSubscriberID, "must be positive, got %d", *in.SubscriberID)
	}
}

func checkProviderNPI(in *ClaimInput, verr *ValidationError) {
	if in.ProviderNPI == nil {
		verr.add(FieldProviderNPI, "is required")
		return
	}
	if *in.ProviderNPI < npiMin || *in.ProviderNPI > npiMax {
		verr.add(FieldProviderNPI, "must be a 10-digit NPI, got %d", *in.ProviderNPI)
	}
}

func checkMonetary(in *ClaimInput, verr *ValidationError) {
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{FieldProviderFees, in.ProviderFees},
		{FieldAllowedFees, in.AllowedFees},
		{FieldMemberCoinsurance, in.MemberCoinsurance},
		{FieldMemberCopay, in.MemberCopay},
	}
	for _, f := range fields {
		if f.value == nil {
			verr.add(f.name, "is required")
			continue
		}
		if f.value.IsNegative() {
			verr.add(f.name, "must not be negative, got %s", f.value.String())
		}
	}
}

func checkServiceDate(in *ClaimInput, verr *ValidationError) {
	if _, err := ParseServiceDate(in.ServiceDate); err != nil {
		verr.add(FieldServiceDate, "%s", err.Error())
	}
}
