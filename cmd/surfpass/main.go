package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"surfpass/internal/config"
	"surfpass/internal/diagnostics"
	"surfpass/internal/services"
	"surfpass/pkg/logger"
)

// Command-line purchase runner. Talks to the booking API from the
// environment configuration and stands in for the mini-app host with an
// auto-approving bridge, so a full purchase flow can be exercised
// without the real container.
func main() {
	sessionID := flag.String("session", "", "session to book and pay for")
	loyalty := flag.Int64("loyalty", 0, "loyalty balance to apply, in minor units")
	flag.Parse()

	if *sessionID == "" {
		fmt.Fprintln(os.Stderr, "usage: surfpass -session <id> [-loyalty <minor units>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New()

	recorder := diagnostics.NewRecorder(cfg.Diagnostics.AttemptCap, cfg.Diagnostics.EventCap)
	if cfg.Diagnostics.SinkPath != "" {
		sink, err := os.OpenFile(cfg.Diagnostics.SinkPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "diagnostics sink: %v\n", err)
			os.Exit(1)
		}
		defer sink.Close()
		recorder.WithSink(sink)
	}

	api := services.NewAPIClient(cfg.API, log)
	host := services.NewMockHostBridge()
	nav := &services.MockNavigator{}
	presenter := &services.MockErrorPresenter{}
	reauth := &services.MockReauthHandler{}

	orch := services.NewSessionPurchaseOrchestrator(services.OrchestratorDeps{
		Payments:  api,
		Holds:     services.NewBookingHoldManager(api, log),
		Resolver:  services.NewNextActionResolver(host, nav, cfg.Payment.DialogTimeout, log),
		Recorder:  recorder,
		Navigator: nav,
		Presenter: presenter,
		Reauth:    reauth,
		Logger:    log,
	})

	sel := services.SessionPurchaseSelection{
		SessionID: *sessionID,
		Funding:   services.FundingSelection{LoyaltyAmountMinor: *loyalty},
	}
	if err := orch.ProcessPayment(context.Background(), sel); err != nil {
		if presenter.Current != "" {
			fmt.Fprintln(os.Stderr, presenter.Current)
		}
		fmt.Fprintf(os.Stderr, "purchase failed: %v\n", err)
		os.Exit(1)
	}

	for _, call := range nav.SuccessCalls {
		fmt.Printf("paid: %s %s\n", call.Product, call.Ref)
	}
}
