package searchmock

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/roomshare/e2e/internal/clock"
)

// Install hijacks cfg.HijackPattern on page and serves deterministic
// pagination batches for matched continuation calls. Install must run before
// the navigation whose traffic it should see.
//
// The harness is a passive responder: it never retries, never times out, and
// forwards every non-matched request to the real network untouched.
func Install(page *rod.Page, cfg Config) (*Session, error) {
	return install(page, cfg, clock.System{})
}

func install(page *rod.Page, cfg Config, clk clock.Clock) (*Session, error) {
	s := newSession(cfg, clk)
	router := page.HijackRequests()
	err := router.Add(s.cfg.HijackPattern, "", func(h *rod.Hijack) {
		if !s.cfg.Matcher.Matches(h.Request.Req()) {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}
		rep, err := s.handleMatched()
		if err != nil {
			// Serialization of a pathological override propagates out of the
			// handler; rod surfaces it through the hijack's error hook and
			// the test fails visibly.
			h.OnError(err)
			return
		}
		if rep.abort {
			h.Response.Fail(proto.NetworkErrorReasonConnectionFailed)
			return
		}
		h.Response.Payload().ResponseCode = http.StatusOK
		h.Response.SetHeader("Content-Type", rep.contentType)
		h.Response.SetBody(string(rep.body))
	})
	if err != nil {
		return nil, err
	}
	s.router = router
	go router.Run()
	return s, nil
}

// SearchStub is an installed full-search-response mock for the search API
// endpoint, used by map and threshold flows that need the initial search
// data fabricated rather than the pagination continuation.
type SearchStub struct {
	router *rod.HijackRouter

	mu    sync.Mutex
	calls int
	resp  SearchResponse
}

// InstallSearch hijacks GET /api/search on page and fulfills it with the full
// search response built from items. All other requests on the pattern pass
// through.
func InstallSearch(page *rod.Page, items []Listing) (*SearchStub, error) {
	stub := &SearchStub{resp: NewSearchResponse(items)}
	router := page.HijackRequests()
	err := router.Add("*/api/search*", "", func(h *rod.Hijack) {
		req := h.Request.Req()
		if req == nil || req.Method != http.MethodGet || req.URL.Path != "/api/search" {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}
		stub.mu.Lock()
		stub.calls++
		resp := stub.resp
		stub.mu.Unlock()

		body, err := json.Marshal(resp)
		if err != nil {
			h.OnError(err)
			return
		}
		h.Response.Payload().ResponseCode = http.StatusOK
		h.Response.SetHeader("Content-Type", "application/json")
		h.Response.SetBody(string(body))
	})
	if err != nil {
		return nil, err
	}
	stub.router = router
	go router.Run()
	return stub, nil
}

// Calls returns how many search API requests the stub has answered.
func (s *SearchStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Response returns the fabricated search response the stub serves.
func (s *SearchStub) Response() SearchResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resp
}

// Stop removes the hijack rule.
func (s *SearchStub) Stop() error {
	if s.router == nil {
		return nil
	}
	return s.router.Stop()
}
