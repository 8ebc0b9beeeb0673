// Package server exposes the tracker over HTTP for the web dashboard.
// Every endpoint is JSON; the session and the book live server side, the
// dashboard is a stateless client.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/etnz/goaltrack"
	"github.com/etnz/goaltrack/advisor"
	"github.com/etnz/goaltrack/kite"
)

// Broker abstracts the kite package for testing.
type Broker interface {
	LoginURL() (string, error)
	GenerateSession(ctx context.Context, requestToken string) (*kite.Session, error)
	Holdings(ctx context.Context, s *kite.Session) ([]goaltrack.Holding, error)
}

// kiteBroker is the production Broker.
type kiteBroker struct{}

func (kiteBroker) LoginURL() (string, error) { return kite.LoginURL() }
func (kiteBroker) GenerateSession(ctx context.Context, token string) (*kite.Session, error) {
	return kite.GenerateSession(ctx, token)
}
func (kiteBroker) Holdings(ctx context.Context, s *kite.Session) ([]goaltrack.Holding, error) {
	return kite.Holdings(ctx, s)
}

// Server routes dashboard requests to the tracker and the broker.
type Server struct {
	tracker *goaltrack.Tracker
	broker  Broker
	session *kite.Session

	// StaticDir, when set, is served at / for the dashboard assets.
	StaticDir string

	// Providers maps the provider names accepted by POST /api/suggestions.
	// Keys are "gemini", "ollama" and "ollama-cloud" in production.
	Providers map[string]advisor.Provider
}

// New creates a server over the tracker, talking to the real Kite API and
// restoring any stored session.
func New(tracker *goaltrack.Tracker) (*Server, error) {
	session, err := kite.LoadSession()
	if err != nil {
		return nil, err
	}
	return &Server{
		tracker:   tracker,
		broker:    kiteBroker{},
		session:   session,
		Providers: make(map[string]advisor.Provider),
	}, nil
}

// NewWithBroker is New with an injected broker and session, for tests.
func NewWithBroker(tracker *goaltrack.Tracker, broker Broker, session *kite.Session) *Server {
	return &Server{
		tracker:   tracker,
		broker:    broker,
		session:   session,
		Providers: make(map[string]advisor.Provider),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/login-url", s.handleLoginURL)
	mux.HandleFunc("GET /callback", s.handleCallback)
	mux.HandleFunc("POST /api/demo-login", s.handleDemoLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/holdings", s.handleHoldings)
	mux.HandleFunc("GET /api/goals", s.handleGetGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("GET /api/assignments", s.handleAssignments)
	mux.HandleFunc("POST /api/assign", s.handleAssign)
	mux.HandleFunc("POST /api/suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /api/suggestions/apply", s.handleApplySuggestions)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/import", s.handleImport)
	if s.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.StaticDir)))
	}
	return mux
}

// ListenAndServe runs the dashboard on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("dashboard listening on http://%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("cannot write response: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, goaltrack.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, goaltrack.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, goaltrack.ErrProviderExhausted):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"isAuthenticated": s.session.Authenticated(),
		"demo":            s.session != nil && s.session.Demo,
	})
}

func (s *Server) handleLoginURL(w http.ResponseWriter, r *http.Request) {
	u, err := s.broker.LoginURL()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

// handleCallback is the Kite Connect redirect target. On success it stores
// the session and sends the browser back to the dashboard.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	requestToken := r.URL.Query().Get("request_token")
	if requestToken == "" {
		http.Error(w, "no request token provided in callback", http.StatusBadRequest)
		return
	}
	session, err := s.broker.GenerateSession(r.Context(), requestToken)
	if err != nil {
		http.Error(w, fmt.Sprintf("cannot generate session: %v", err), http.StatusInternalServerError)
		return
	}
	if err := session.Save(); err != nil {
		log.Printf("cannot persist kite session: %v", err)
	}
	s.session = session
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleDemoLogin switches to a demo session and seeds the demo goals when
// the book is still empty.
func (s *Server) handleDemoLogin(w http.ResponseWriter, r *http.Request) {
	s.session = kite.DemoSession()
	if err := s.session.Save(); err != nil {
		log.Printf("cannot persist kite session: %v", err)
	}
	if len(s.tracker.Book().Goals()) == 0 {
		for _, g := range kite.DemoGoals() {
			if err := s.tracker.AddGoal(g); err != nil {
				writeError(w, err)
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.session = nil
	if err := kite.ClearSession(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.broker.Holdings(r.Context(), s.session)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Book().Goals())
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string  `json:"name"`
		TargetAmount float64 `json:"targetAmount"`
		Deadline     string  `json:"deadline"`
		Color        string  `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: %v", goaltrack.ErrValidation, err))
		return
	}
	goal, err := goaltrack.NewGoal(body.Name, goaltrack.M(body.TargetAmount, goaltrack.DefaultCurrency), body.Deadline, body.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.tracker.AddGoal(goal); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteGoal(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAssignments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Book().Assignments())
}

// handleAssign routes a symbol to a goal; a null or empty goalId unassigns.
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Symbol string  `json:"symbol"`
		GoalID *string `json:"goalId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: %v", goaltrack.ErrValidation, err))
		return
	}
	if body.Symbol == "" {
		writeError(w, fmt.Errorf("%w: symbol is required", goaltrack.ErrValidation))
		return
	}
	var err error
	if body.GoalID == nil || *body.GoalID == "" {
		err = s.tracker.Unassign(body.Symbol)
	} else {
		err = s.tracker.Assign(body.Symbol, *body.GoalID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleSuggestions runs the advisor over the live holdings and the
// current goals. Only suggestions whose goal reference resolves are
// returned; the personality summary is persisted for the next run.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: %v", goaltrack.ErrValidation, err))
		return
	}
	provider, ok := s.Providers[body.Provider]
	if !ok {
		writeError(w, fmt.Errorf("%w: unknown provider %q", goaltrack.ErrValidation, body.Provider))
		return
	}

	holdings, err := s.broker.Holdings(r.Context(), s.session)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := advisor.Suggest(r.Context(), provider, holdings, s.tracker.Book().Goals())
	if err != nil {
		writeError(w, err)
		return
	}
	if resp.Summary != "" {
		if err := s.tracker.SetPersonality(resp.Summary); err != nil {
			log.Printf("cannot persist personality summary: %v", err)
		}
	}

	rec := advisor.NewReconciler(s.tracker, s.tracker, resp.Suggestions)
	resp.Suggestions = rec.Pending()
	writeJSON(w, http.StatusOK, resp)
}

// handleApplySuggestions accepts a batch of suggestions in one call,
// best effort: failed commits are reported, not fatal.
func (s *Server) handleApplySuggestions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Suggestions []advisor.Suggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: %v", goaltrack.ErrValidation, err))
		return
	}
	rec := advisor.NewReconciler(s.tracker, s.tracker, body.Suggestions)
	accepted, failed := rec.AcceptAll()
	writeJSON(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"failed":   failed,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="goaltrack-backup.json"`)
	if err := goaltrack.Export(w, s.tracker.Book()); err != nil {
		log.Printf("cannot export backup: %v", err)
	}
}

// handleImport replaces the whole book with the uploaded backup document.
// A malformed document is rejected with 400 and leaves the state untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	book, err := goaltrack.Import(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.tracker.Replace(book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"goals":   len(book.Goals()),
	})
}
