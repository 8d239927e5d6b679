package claims

import (
	"testing"

	"github.com/shopspring/decimal"
)

func i64(v int64) *int64 { return &v }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func validInput() *ClaimInput {
	return &ClaimInput{
		ServiceDate:        "2018-03-28",
		SubmittedProcedure: "D0180",
		Quadrant:           "UR",
		PlanGroup:          "GRP-1000",
		SubscriberID:       i64(3730189502),
		ProviderNPI:        i64(1497775530),
		ProviderFees:       dp("100.00"),
		AllowedFees:        dp("80.00"),
		MemberCoinsurance:  dp("16.25"),
		MemberCopay:        dp("0.00"),
	}
}

func violatedFields(verr *ValidationError) map[string]bool {
	fields := make(map[string]bool)
	if verr == nil {
		return fields
	}
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	return fields
}

func TestValidateAccepts(t *testing.T) {
	if verr := Validate(validInput()); verr != nil {
		t.Errorf("expected valid input to pass, got %v", verr)
	}

	in := validInput()
	in.ServiceDate = ""
	in.Quadrant = ""
	if verr := Validate(in); verr != nil {
		t.Errorf("optional fields blank should pass, got %v", verr)
	}

	// Lowercase procedures normalize before the prefix check.
	in = validInput()
	in.SubmittedProcedure = " d0180 "
	if verr := Validate(in); verr != nil {
		t.Errorf("lowercase procedure should pass, got %v", verr)
	}
}

func TestValidateProcedurePrefix(t *testing.T) {
	in := validInput()
	in.SubmittedProcedure = "X1234"
	verr := Validate(in)
	if verr == nil {
		t.Fatal("expected validation error for non-D procedure")
	}
	if !violatedFields(verr)[FieldSubmittedProcedure] {
		t.Errorf("expected %s violation, got %v", FieldSubmittedProcedure, verr.Violations)
	}
}

func TestValidateNPIRange(t *testing.T) {
	for _, npi := range []int64{0, 123456789, 12345678901, -1497775530} {
		in := validInput()
		in.ProviderNPI = i64(npi)
		verr := Validate(in)
		if !violatedFields(verr)[FieldProviderNPI] {
			t.Errorf("NPI %d: expected %s violation", npi, FieldProviderNPI)
		}
	}
}

func TestValidateNegativeMoney(t *testing.T) {
	in := validInput()
	in.MemberCopay = dp("-5.00")
	verr := Validate(in)
	if !violatedFields(verr)[FieldMemberCopay] {
		t.Errorf("expected %s violation, got %v", FieldMemberCopay, verr)
	}
}

func TestValidateBadServiceDate(t *testing.T) {
	in := validInput()
	in.ServiceDate = "March 28, 2018"
	verr := Validate(in)
	if !violatedFields(verr)[FieldServiceDate] {
		t.Errorf("expected %s violation, got %v", FieldServiceDate, verr)
	}
}

// Every violated field must be reported in one pass, not just the first.
func TestValidateCollectsAllViolations(t *testing.T) {
	in := &ClaimInput{
		SubmittedProcedure: "X1234",
		ProviderFees:       dp("-1.00"),
	}
	verr := Validate(in)
	if verr == nil {
		t.Fatal("expected validation error")
	}

	fields := violatedFields(verr)
	for _, want := range []string{
		FieldSubmittedProcedure,
		FieldPlanGroup,
		FieldSubscriberID,
		FieldProviderNPI,
		FieldProviderFees,
		FieldAllowedFees,
		FieldMemberCoinsurance,
		FieldMemberCopay,
	} {
		if !fields[want] {
			t.Errorf("missing violation for %s", want)
		}
	}
	if len(verr.Violations) != 8 {
		t.Errorf("got %d violations, want 8: %v", len(verr.Violations), verr.Violations)
	}
}
