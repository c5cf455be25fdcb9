package services

import "surfpass/internal/models"

// ComposePaymentMethods turns the user's funding selection into a single
// or composite payment-method request. Pure and deterministic: it never
// mutates the selection and performs no I/O.
//
// A season-ticket pass always pays for the whole session, so it composes
// alone. Otherwise fixed-value sources go first (certificate, then
// loyalty balance), each clamped so the fixed total never exceeds the
// price, and a card instrument covers whatever remains.
func ComposePaymentMethods(sel FundingSelection, price models.Money) models.PaymentMethodsRequest {
	if sel.SeasonPass != nil {
		return models.Single(models.PaymentMethodRequest{
			Type:   models.MethodSeasonPass,
			PassID: sel.SeasonPass.PassID,
		})
	}

	var methods []models.PaymentMethodRequest
	remaining := price.AmountMinor

	if sel.Certificate != nil && sel.Certificate.BalanceMinor > 0 && remaining > 0 {
		applied := min64(sel.Certificate.BalanceMinor, remaining)
		methods = append(methods, models.PaymentMethodRequest{
			Type:          models.MethodCertificate,
			CertificateID: sel.Certificate.CertificateID,
			AmountMinor:   applied,
		})
		remaining -= applied
	}

	if sel.LoyaltyAmountMinor > 0 && remaining > 0 {
		applied := min64(sel.LoyaltyAmountMinor, remaining)
		methods = append(methods, models.PaymentMethodRequest{
			Type:        models.MethodLoyaltyBalance,
			AmountMinor: applied,
		})
		remaining -= applied
	}

	if remaining > 0 || len(methods) == 0 {
		methods = append(methods, models.PaymentMethodRequest{
			Type: models.MethodCard,
		})
	}

	return models.PaymentMethodsRequest{Methods: methods}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
