package services

import (
	"context"
	"fmt"
	"strconv"

	"surfpass/internal/config"
	"surfpass/internal/models"
)

// CertificateOrchestrator drives the purchase of a gift certificate,
// either a money denomination or a bundle of session passes.
type CertificateOrchestrator struct {
	orchestrator
	payment config.PaymentConfig
}

// NewCertificateOrchestrator creates the certificate purchase flow
func NewCertificateOrchestrator(deps OrchestratorDeps, payment config.PaymentConfig) *CertificateOrchestrator {
	return &CertificateOrchestrator{
		orchestrator: newOrchestrator(deps),
		payment:      payment,
	}
}

// ProcessPayment runs one certificate purchase attempt end to end.
// Denomination bounds are checked locally; nothing goes over the wire
// for an amount the server is guaranteed to reject.
func (o *CertificateOrchestrator) ProcessPayment(ctx context.Context, sel CertificateSelection) error {
	if err := o.acquire(); err != nil {
		return err
	}
	defer o.release()

	o.deps.Presenter.Clear()
	if err := o.validate.Struct(sel); err != nil {
		return o.fail(ctx, nil, fmt.Errorf("%w: %v", models.ErrMissingSelection, err))
	}

	switch sel.Kind {
	case models.CertificateDenomination:
		if sel.AmountMinor <= 0 {
			return o.fail(ctx, nil, fmt.Errorf("%w: denomination must be positive", models.ErrInvalidAmount))
		}
		if sel.AmountMinor < o.payment.CertificateMinAmount {
			return o.fail(ctx, nil, fmt.Errorf("%w: denomination %d below minimum %d",
				models.ErrAmountTooLow, sel.AmountMinor, o.payment.CertificateMinAmount))
		}
	case models.CertificatePasses:
		if sel.Passes < 1 {
			return o.fail(ctx, nil, fmt.Errorf("%w: at least one pass required", models.ErrInvalidAmount))
		}
	}

	attempt := o.deps.Recorder.StartAttempt("certificate-purchase")

	currency := sel.Currency
	if currency == "" {
		currency = o.payment.Currency
	}
	price := models.Money{AmountMinor: sel.AmountMinor, Currency: currency}
	methods := ComposePaymentMethods(sel.Funding, price)

	req := CertificatePurchaseRequest{
		Kind:        sel.Kind,
		AmountMinor: sel.AmountMinor,
		Passes:      sel.Passes,
	}
	key := DeriveIdempotencyKey("certificate", string(sel.Kind),
		strconv.FormatInt(sel.AmountMinor, 10), strconv.Itoa(sel.Passes), attempt.ID)

	result, err := o.deps.Payments.PurchaseCertificate(ctx, req, methods, key)
	if err != nil {
		return o.fail(ctx, attempt, err)
	}

	o.deps.Logger.LogPaymentCreated(ctx, result.Payment.ID, result.Payment.Provider, string(result.Payment.NextAction.Type))
	outcome, rerr := o.deps.Resolver.Resolve(ctx, &result.Payment, attempt)
	return o.finish(ctx, attempt, outcome, rerr, ProductCertificate, result.Certificate.ID)
}
