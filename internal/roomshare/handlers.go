package roomshare

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/roomshare/e2e/pkg/searchmock"
)

// sessionCookie names the JWT session cookie the login endpoint issues.
const sessionCookie = "roomshare_session"

var searchPage = template.Must(template.New("search").Parse(searchPageHTML))

type searchPageData struct {
	Listings   []searchmock.Listing
	NextCursor *string
	HasNext    bool
	ActionID   string
}

// handleSearchPage renders the search page with the first catalog page
// inlined, the way the real app server-renders its initial results.
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	s.count(func(st *Stats) { st.SearchPageHits++ })

	first, cursor, hasNext := s.page(0)
	data := searchPageData{
		Listings: first,
		HasNext:  hasNext,
		ActionID: continuationActionID,
	}
	if hasNext {
		data.NextCursor = &cursor
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := searchPage.Execute(w, data); err != nil {
		s.log.Error("render search page", zap.Error(err))
	}
}

// handleContinuation is the real "load more" server action. The browser
// client sends a POST with the Next-Action marker header and a one-element
// JSON array holding the previous cursor (or null for the first page).
func (s *Server) handleContinuation(w http.ResponseWriter, r *http.Request) {
	s.count(func(st *Stats) { st.ContinuationHits++ })

	if r.Header.Get("Next-Action") == "" {
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, "missing action header")
		return
	}

	var args []*string
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, "malformed action arguments")
		return
	}
	offset := 0
	if len(args) > 0 && args[0] != nil {
		var err error
		if offset, err = decodeCatalogCursor(*args[0]); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.PlainText(w, r, "bad cursor")
			return
		}
	}

	items, cursor, hasNext := s.page(offset)
	batch := searchmock.NewNextBatch(items, "", len(s.listings))
	if hasNext {
		batch = searchmock.NewNextBatch(items, cursor, len(s.listings))
	}

	frame, err := searchmock.EncodeActionReply(batch)
	if err != nil {
		s.log.Error("encode continuation reply", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", searchmock.FlightContentType)
	_, _ = w.Write(frame)
}

// page slices one catalog page at offset, returning the fixture's own
// continuation cursor when more data remains.
func (s *Server) page(offset int) (items []searchmock.Listing, cursor string, hasNext bool) {
	total := len(s.listings)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + s.cfg.PageSize
	if end > total {
		end = total
	}
	items = s.listings[offset:end]
	if offset+s.cfg.PageSize < total {
		return items, encodeCatalogCursor(offset + s.cfg.PageSize), true
	}
	return items, "", false
}

// handleSearchAPI serves the full search response. An optional ?limit= caps
// the item count, which lets tests sit exactly on the pin threshold.
func (s *Server) handleSearchAPI(w http.ResponseWriter, r *http.Request) {
	s.count(func(st *Stats) { st.SearchAPIHits++ })

	items := s.listings
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		if limit < len(items) {
			items = items[:limit]
		}
	}
	render.JSON(w, r, searchmock.NewSearchResponse(items))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin issues an HS256 session cookie for any non-empty credentials.
// The fixture authenticates nobody for real; the suite only needs the
// cookie-then-me round trip.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "malformed login payload"})
		return
	}
	if req.Email == "" || req.Password == "" {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]string{"error": "email and password are required"})
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.Email,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.log.Error("sign session token", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	render.JSON(w, r, map[string]string{"email": req.Email})
}

// handleMe validates the session cookie and echoes the signed-in user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]string{"error": "not signed in"})
		return
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]string{"error": "invalid session"})
		return
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]string{"error": "invalid session"})
		return
	}
	render.JSON(w, r, map[string]string{"email": sub})
}
