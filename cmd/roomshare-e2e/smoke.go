package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roomshare/e2e/internal/logging"
	"github.com/roomshare/e2e/internal/roomshare"
	"github.com/roomshare/e2e/pkg/browsertest"
	"github.com/roomshare/e2e/pkg/searchmock"
)

const cardCountJS = `() => document.querySelectorAll('[data-testid=listing-card]').length`

func newSmokeCmd() *cobra.Command {
	var (
		pages     int
		totalMock int
		delay     time.Duration
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the mocked pagination flow once in headless Chrome",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runSmoke(log, pages, totalMock, delay)
		},
	}
	cmd.Flags().IntVar(&pages, "pages", 3, "continuation pages to load")
	cmd.Flags().IntVar(&totalMock, "total-mock", 36, "mock listings available to the harness")
	cmd.Flags().DurationVar(&delay, "delay", 0, "artificial delay per mocked response")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

func runSmoke(log *zap.Logger, pages, totalMock int, delay time.Duration) error {
	srv, err := roomshare.NewServer(roomshare.DefaultConfig())
	if err != nil {
		return err
	}
	addr, err := srv.Start()
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	client, err := browsertest.New(browsertest.DefaultConfig())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	// Interception must be in place before the first navigation.
	page := client.Open()
	sess, err := searchmock.Install(page, searchmock.Config{
		TotalListings: totalMock,
		Delay:         delay,
	})
	if err != nil {
		return err
	}
	defer func() { _ = sess.Stop() }()

	url := "http://" + addr + "/search"
	log.Info("navigating", zap.String("url", url))
	if _, err := client.Navigate(url); err != nil {
		return err
	}
	if err := client.WaitStable(); err != nil {
		return err
	}

	initial, err := client.EvalInt(cardCountJS)
	if err != nil {
		return err
	}
	log.Info("initial render", zap.Int("cards", initial))

	for i := 1; i <= pages; i++ {
		btn, err := page.Element(`[data-testid="load-more"]`)
		if err != nil {
			return fmt.Errorf("page %d: load-more button missing: %w", i, err)
		}
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("page %d: click failed: %w", i, err)
		}
		want := initial + i*searchmock.DefaultPageSize
		if err := waitForCards(client, want, 10*time.Second); err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}
		log.Info("page loaded", zap.Int("page", i), zap.Int("cards", want))
	}

	stats := srv.Stats()
	log.Info("summary",
		zap.Int("matchedCalls", sess.MatchedCalls()),
		zap.Int("succeededCalls", sess.SucceededCalls()),
		zap.Int("fixtureContinuationHits", stats.ContinuationHits),
		zap.Strings("consoleErrors", client.ConsoleErrors()))

	if sess.SucceededCalls() != pages {
		return fmt.Errorf("harness served %d pages, want %d", sess.SucceededCalls(), pages)
	}
	if stats.ContinuationHits != 0 {
		return fmt.Errorf("fixture saw %d continuation calls, want 0 (pass-through leak)", stats.ContinuationHits)
	}
	return nil
}

// waitForCards polls the rendered card count until it reaches want.
func waitForCards(client *browsertest.Client, want int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		n, err := client.EvalInt(cardCountJS)
		if err != nil {
			return err
		}
		if n >= want {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for %d cards, have %d", want, n)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
