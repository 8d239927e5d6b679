package claims

import "github.com/shopspring/decimal"

// NetFee computes the derived settlement amount:
//
//	net_fee = provider_fees + member_coinsurance + member_copay - allowed_fees
//
// Inputs are assumed already quantized to cents; the result carries no
// additional rounding. A negative net fee is valid; allowed_fees may exceed
// the sum of the other three.
func NetFee(providerFees, memberCoinsurance, memberCopay, allowedFees decimal.Decimal) decimal.Decimal {
	return providerFees.Add(memberCoinsurance).Add(memberCopay).Sub(allowedFees)
}
