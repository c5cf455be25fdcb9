package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"surfpass/internal/diagnostics"
	"surfpass/internal/models"
	"surfpass/pkg/logger"
)

// OutcomeStatus is the terminal outcome of driving a payment's declared
// next action.
type OutcomeStatus string

const (
	OutcomePaid      OutcomeStatus = "PAID"
	OutcomeCancelled OutcomeStatus = "CANCELLED"
	OutcomeFailed    OutcomeStatus = "FAILED"
	OutcomePending   OutcomeStatus = "PENDING"
)

// Outcome carries the terminal status plus, for dialog results, the raw
// provider status string so unrecognized values survive for diagnostics.
type Outcome struct {
	Status         OutcomeStatus
	ProviderStatus string
}

// NextActionResolver drives a server-declared next action to a terminal
// outcome. Failures while driving the host dialog are absorbed into a
// FAILED outcome and never propagate unhandled, so the caller's UI can
// always leave its processing state.
type NextActionResolver struct {
	host          HostBridgeInterface
	nav           NavigatorInterface
	dialogTimeout time.Duration
	log           *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewNextActionResolver creates a resolver. dialogTimeout bounds the
// otherwise unbounded wait on the host payment dialog.
func NewNextActionResolver(host HostBridgeInterface, nav NavigatorInterface, dialogTimeout time.Duration, log *logger.Logger) *NextActionResolver {
	return &NextActionResolver{
		host:          host,
		nav:           nav,
		dialogTimeout: dialogTimeout,
		log:           log,
		inFlight:      make(map[string]struct{}),
	}
}

// Resolve drives the payment's next action to a terminal outcome. The
// returned error, when set, explains a FAILED outcome; PAID, PENDING and
// CANCELLED return a nil error.
func (r *NextActionResolver) Resolve(ctx context.Context, payment *models.Payment, attempt *diagnostics.Attempt) (Outcome, error) {
	started := time.Now()
	switch payment.NextAction.Type {
	case models.NextActionNone, "":
		outcome := r.resolveSettled(payment)
		r.log.LogPaymentResolved(ctx, payment.ID, string(outcome.Status), time.Since(started))
		return outcome, nil

	case models.NextActionOpenInvoice:
		outcome, err := r.resolveInvoice(ctx, payment, attempt)
		r.log.LogPaymentResolved(ctx, payment.ID, string(outcome.Status), time.Since(started))
		return outcome, err

	case models.NextActionRedirect:
		// Non-blocking hand-off to an external checkout. Settlement
		// arrives later out-of-band; the attempt stays PENDING here.
		if err := r.nav.OpenExternalURL(ctx, payment.NextAction.RedirectURL); err != nil {
			record(attempt, "redirect_failed", err.Error())
			return Outcome{Status: OutcomeFailed}, fmt.Errorf("failed to open external checkout: %w", err)
		}
		record(attempt, "redirect_opened", payment.NextAction.RedirectURL)
		return Outcome{Status: OutcomePending}, nil

	default:
		err := fmt.Errorf("unknown next action %q", payment.NextAction.Type)
		record(attempt, "next_action_unknown", string(payment.NextAction.Type))
		return Outcome{Status: OutcomeFailed}, err
	}
}

// resolveSettled maps an already terminal payment with no follow-up
// action straight to an outcome, no I/O.
func (r *NextActionResolver) resolveSettled(payment *models.Payment) Outcome {
	switch payment.Status {
	case models.PaymentSucceeded:
		return Outcome{Status: OutcomePaid}
	case models.PaymentCanceled:
		return Outcome{Status: OutcomeCancelled}
	case models.PaymentFailed:
		return Outcome{Status: OutcomeFailed}
	default:
		return Outcome{Status: OutcomePending}
	}
}

func (r *NextActionResolver) resolveInvoice(ctx context.Context, payment *models.Payment, attempt *diagnostics.Attempt) (Outcome, error) {
	if !r.acquire(payment.ID) {
		return Outcome{Status: OutcomeFailed}, models.ErrDialogInFlight
	}
	defer r.release(payment.ID)

	inHost, err := r.host.IsHostEnvironment(ctx)
	if err != nil {
		record(attempt, "host_check_failed", err.Error())
		return Outcome{Status: OutcomeFailed}, fmt.Errorf("failed to detect host environment: %w", err)
	}
	if !inHost {
		record(attempt, "not_host_environment", "")
		return Outcome{Status: OutcomeFailed}, models.ErrNotHostEnvironment
	}

	dialogCtx := ctx
	if r.dialogTimeout > 0 {
		var cancel context.CancelFunc
		dialogCtx, cancel = context.WithTimeout(ctx, r.dialogTimeout)
		defer cancel()
	}

	record(attempt, "dialog_opened", payment.NextAction.InvoiceSlug)
	status, err := r.host.OpenInvoice(dialogCtx, payment.NextAction.InvoiceSlug)
	if err != nil {
		record(attempt, "dialog_error", err.Error())
		return Outcome{Status: OutcomeFailed}, fmt.Errorf("payment dialog failed: %w", err)
	}
	record(attempt, "dialog_result", status)

	switch status {
	case "paid":
		return Outcome{Status: OutcomePaid, ProviderStatus: status}, nil
	case "cancelled":
		return Outcome{Status: OutcomeCancelled, ProviderStatus: status}, nil
	case "pending":
		return Outcome{Status: OutcomePending, ProviderStatus: status}, nil
	case "failed":
		return Outcome{Status: OutcomeFailed, ProviderStatus: status}, fmt.Errorf("payment dialog reported %q", status)
	default:
		// Unrecognized status string; keep the original for diagnostics.
		return Outcome{Status: OutcomeFailed, ProviderStatus: status}, fmt.Errorf("payment dialog reported unrecognized status %q", status)
	}
}

// acquire marks a dialog wait as in flight for the payment. At most one
// wait may run per payment at a time.
func (r *NextActionResolver) acquire(paymentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[paymentID]; busy {
		return false
	}
	r.inFlight[paymentID] = struct{}{}
	return true
}

func (r *NextActionResolver) release(paymentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, paymentID)
}

func record(attempt *diagnostics.Attempt, name, detail string) {
	if attempt != nil {
		attempt.Record(name, detail)
	}
}
