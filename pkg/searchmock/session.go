package searchmock

import (
	"sync"
	"time"

	"github.com/go-rod/rod"

	"github.com/roomshare/e2e/internal/clock"
)

// Config configures one interception session. A session's configuration is
// immutable after Install.
//
// Values are a caller contract, not runtime-checked: a negative Delay or a
// zero TotalListings behave exactly as the arithmetic implies. PageSize 0
// means DefaultPageSize.
type Config struct {
	// TotalListings is how many mock listings the session can serve in total.
	TotalListings int

	// PageSize is how many listings each continuation call returns.
	PageSize int

	// Delay is an artificial wait applied before every matched response
	// (success and injected failure alike), modeling a slow network.
	Delay time.Duration

	// FailOnCall aborts the matched call with this 1-based sequence number,
	// simulating a transport failure. It fires at most once per session.
	// 0 disables failure injection.
	FailOnCall int

	// HijackPattern is the browser-side URL pattern to hijack. Requests
	// matching it but failing the Matcher are continued untouched.
	// Empty means "*/search*".
	HijackPattern string

	// Matcher identifies continuation calls among hijacked requests.
	// The zero value applies the default method/header/path rule.
	Matcher ActionMatcher
}

func (c *Config) applyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.HijackPattern == "" {
		c.HijackPattern = "*/search*"
	}
}

// failureState is the one-shot failure injection state machine. The state,
// not the call index, gates re-firing: once fired, the session succeeds
// forever after, whatever the counters do.
type failureState int

const (
	failureDisabled failureState = iota
	failureArmed
	failureFired
)

// Session is one installed interception rule and its call state. All mutable
// state lives on the session; nothing is shared across sessions or stored at
// package level.
type Session struct {
	cfg      Config
	listings []Listing
	clock    clock.Clock

	router *rod.HijackRouter

	mu        sync.Mutex
	matched   int
	succeeded int
	failure   failureState
}

// newSession builds the session state without any browser wiring, so the
// per-call behavior is testable on its own.
func newSession(cfg Config, clk clock.Clock) *Session {
	cfg.applyDefaults()
	s := &Session{
		cfg:      cfg,
		listings: ListingBatch(0, cfg.TotalListings),
		clock:    clk,
		failure:  failureDisabled,
	}
	if cfg.FailOnCall > 0 {
		s.failure = failureArmed
	}
	return s
}

// reply is the session's decision for one matched call.
type reply struct {
	abort       bool
	body        []byte
	contentType string
}

// handleMatched runs the per-call protocol for a matched continuation
// request: count it, fire the one-shot failure if armed for this position,
// otherwise serve the next page. The configured delay applies on both paths.
func (s *Session) handleMatched() (reply, error) {
	s.mu.Lock()
	s.matched++
	seq := s.matched
	if s.failure == failureArmed && seq == s.cfg.FailOnCall {
		s.failure = failureFired
		s.mu.Unlock()
		s.clock.Sleep(s.cfg.Delay)
		return reply{abort: true}, nil
	}
	s.succeeded++
	offset := (s.succeeded - 1) * s.cfg.PageSize
	s.mu.Unlock()

	batch := PageEnvelope(s.listings, offset, s.cfg.PageSize)
	body, err := EncodeActionReply(batch)
	if err != nil {
		return reply{}, err
	}
	s.clock.Sleep(s.cfg.Delay)
	return reply{body: body, contentType: FlightContentType}, nil
}

// MatchedCalls returns how many continuation calls the session has
// intercepted, injected failures included.
func (s *Session) MatchedCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matched
}

// SucceededCalls returns how many continuation calls were answered with a
// page of listings.
func (s *Session) SucceededCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.succeeded
}

// Listings returns the full generated listing slice, for independent
// assertions against what the browser rendered.
func (s *Session) Listings() []Listing {
	return s.listings
}

// Stop removes the hijack rule. The session's counters stay readable.
func (s *Session) Stop() error {
	if s.router == nil {
		return nil
	}
	return s.router.Stop()
}
