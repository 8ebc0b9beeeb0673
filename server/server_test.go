package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/goaltrack"
	"github.com/etnz/goaltrack/advisor"
	"github.com/etnz/goaltrack/kite"
	"github.com/shopspring/decimal"
)

// memStore keeps the book in memory, tests do not touch the disk.
type memStore struct {
	saved *goaltrack.Book
}

func (m *memStore) Load() (*goaltrack.Book, error) {
	if m.saved == nil {
		return goaltrack.NewBook(), nil
	}
	return m.saved.Clone(), nil
}

func (m *memStore) Save(b *goaltrack.Book) error {
	m.saved = b.Clone()
	return nil
}

// fakeBroker serves canned holdings to authenticated sessions.
type fakeBroker struct {
	holdings []goaltrack.Holding
}

func (f *fakeBroker) LoginURL() (string, error) { return "https://broker.example/login", nil }

func (f *fakeBroker) GenerateSession(_ context.Context, token string) (*kite.Session, error) {
	if token == "bad" {
		return nil, fmt.Errorf("invalid request token")
	}
	return &kite.Session{Token: "access-" + token}, nil
}

func (f *fakeBroker) Holdings(_ context.Context, s *kite.Session) ([]goaltrack.Holding, error) {
	if !s.Authenticated() {
		return nil, fmt.Errorf("%w: no session", goaltrack.ErrUnauthenticated)
	}
	return f.holdings, nil
}

func newTestServer(t *testing.T, session *kite.Session) (*Server, *goaltrack.Tracker) {
	t.Helper()
	tracker, err := goaltrack.OpenTracker(&memStore{})
	if err != nil {
		t.Fatalf("OpenTracker() = %v", err)
	}
	broker := &fakeBroker{holdings: []goaltrack.Holding{
		{Symbol: "INFY", Quantity: decimal.NewFromInt(10), LastPrice: goaltrack.M(1500, "INR")},
	}}
	return NewWithBroker(tracker, broker, session), tracker
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("cannot decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func TestStatus(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()

	w := do(t, h, "GET", "/api/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[map[string]bool](t, w)
	if got["isAuthenticated"] {
		t.Error("fresh server reports authenticated")
	}

	s.session = kite.DemoSession()
	got = decode[map[string]bool](t, do(t, h, "GET", "/api/status", ""))
	if !got["isAuthenticated"] || !got["demo"] {
		t.Errorf("demo status = %v", got)
	}
}

func TestHoldingsRequireSession(t *testing.T) {
	s, _ := newTestServer(t, nil)
	w := do(t, s.Handler(), "GET", "/api/holdings", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHoldings(t *testing.T) {
	s, _ := newTestServer(t, &kite.Session{Token: "tok"})
	w := do(t, s.Handler(), "GET", "/api/holdings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	holdings := decode[[]goaltrack.Holding](t, w)
	if len(holdings) != 1 || holdings[0].Symbol != "INFY" {
		t.Errorf("holdings = %+v", holdings)
	}
}

func TestGoalLifecycle(t *testing.T) {
	s, tracker := newTestServer(t, nil)
	h := s.Handler()

	w := do(t, h, "POST", "/api/goals", `{"name": "Dream Home", "targetAmount": 5000000, "deadline": "2030-12-31"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d: %s", w.Code, w.Body)
	}
	created := decode[goaltrack.Goal](t, w)
	if created.ID == "" || created.Name != "Dream Home" {
		t.Fatalf("created = %+v", created)
	}
	if created.Color != goaltrack.DefaultColor {
		t.Errorf("color = %q, want default", created.Color)
	}

	goals := decode[[]goaltrack.Goal](t, do(t, h, "GET", "/api/goals", ""))
	if len(goals) != 1 {
		t.Fatalf("goals = %+v", goals)
	}

	if w := do(t, h, "DELETE", "/api/goals/"+created.ID, ""); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", w.Code, w.Body)
	}
	if got := tracker.Book().Goals(); len(got) != 0 {
		t.Errorf("goals after delete = %+v", got)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()

	tests := []string{
		`{"targetAmount": 100}`,
		`{"name": "X"}`,
		`{"name": "X", "targetAmount": 100, "deadline": "tomorrow"}`,
		`not json at all`,
	}
	for _, body := range tests {
		if w := do(t, h, "POST", "/api/goals", body); w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestAssignAndUnassign(t *testing.T) {
	s, tracker := newTestServer(t, nil)
	h := s.Handler()
	goal := goaltrack.Goal{ID: "g1", Name: "Dream Home", TargetAmount: goaltrack.M(100, "INR")}
	if err := tracker.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal() = %v", err)
	}

	if w := do(t, h, "POST", "/api/assign", `{"symbol": "INFY", "goalId": "g1"}`); w.Code != http.StatusOK {
		t.Fatalf("assign status = %d: %s", w.Code, w.Body)
	}
	assignments := decode[map[string]string](t, do(t, h, "GET", "/api/assignments", ""))
	if assignments["INFY"] != "g1" {
		t.Fatalf("assignments = %v", assignments)
	}

	// null goalId unassigns
	if w := do(t, h, "POST", "/api/assign", `{"symbol": "INFY", "goalId": null}`); w.Code != http.StatusOK {
		t.Fatalf("unassign status = %d: %s", w.Code, w.Body)
	}
	if _, ok := tracker.Book().Assignment("INFY"); ok {
		t.Error("INFY still assigned")
	}

	if w := do(t, h, "POST", "/api/assign", `{"goalId": "g1"}`); w.Code != http.StatusBadRequest {
		t.Errorf("assign without symbol: status = %d, want 400", w.Code)
	}
	if w := do(t, h, "POST", "/api/assign", `{"symbol": "INFY", "goalId": "ghost"}`); w.Code != http.StatusBadRequest {
		t.Errorf("assign to unknown goal: status = %d, want 400", w.Code)
	}
}

func TestDemoLoginSeedsGoals(t *testing.T) {
	s, tracker := newTestServer(t, nil)
	h := s.Handler()

	if w := do(t, h, "POST", "/api/demo-login", ""); w.Code != http.StatusOK {
		t.Fatalf("demo-login status = %d: %s", w.Code, w.Body)
	}
	t.Cleanup(func() { kite.ClearSession() })

	if goals := tracker.Book().Goals(); len(goals) != 2 {
		t.Fatalf("goals after demo login = %+v", goals)
	}

	// A second demo login must not duplicate the seed.
	if w := do(t, h, "POST", "/api/demo-login", ""); w.Code != http.StatusOK {
		t.Fatalf("second demo-login status = %d", w.Code)
	}
	if goals := tracker.Book().Goals(); len(goals) != 2 {
		t.Errorf("goals duplicated: %+v", goals)
	}
}

func TestExportImportRoundtrip(t *testing.T) {
	s, tracker := newTestServer(t, nil)
	h := s.Handler()
	goal := goaltrack.Goal{ID: "g1", Name: "Dream Home", TargetAmount: goaltrack.M(100, "INR")}
	if err := tracker.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal() = %v", err)
	}
	if err := tracker.Assign("INFY", "g1"); err != nil {
		t.Fatalf("Assign() = %v", err)
	}

	exported := do(t, h, "GET", "/api/export", "")
	if exported.Code != http.StatusOK {
		t.Fatalf("export status = %d", exported.Code)
	}

	if err := tracker.DeleteGoal("g1"); err != nil {
		t.Fatalf("DeleteGoal() = %v", err)
	}

	w := do(t, h, "POST", "/api/import", exported.Body.String())
	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", w.Code, w.Body)
	}
	book := tracker.Book()
	if _, ok := book.Goal("g1"); !ok {
		t.Error("goal g1 not restored")
	}
	if id, _ := book.Assignment("INFY"); id != "g1" {
		t.Error("assignment not restored")
	}
}

func TestImportRejectsMalformedDocument(t *testing.T) {
	s, tracker := newTestServer(t, nil)
	h := s.Handler()
	goal := goaltrack.Goal{ID: "g1", Name: "Keep Me", TargetAmount: goaltrack.M(100, "INR")}
	if err := tracker.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal() = %v", err)
	}

	w := do(t, h, "POST", "/api/import", `{"goals": {"oops": true}, "assignments": {}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("import status = %d, want 400", w.Code)
	}
	if _, ok := tracker.Book().Goal("g1"); !ok {
		t.Error("failed import modified the book")
	}
}

// cannedProvider returns one fixed payload.
type cannedProvider struct{ payload string }

func (p *cannedProvider) Name() string     { return "canned" }
func (p *cannedProvider) Models() []string { return []string{"canned-1"} }
func (p *cannedProvider) Generate(context.Context, string, string) (string, advisor.Usage, error) {
	return p.payload, advisor.Usage{TotalTokens: 7}, nil
}

func TestSuggestions(t *testing.T) {
	s, tracker := newTestServer(t, kite.DemoSession())
	goal := goaltrack.Goal{ID: "g1", Name: "Dream Home", TargetAmount: goaltrack.M(100, "INR")}
	if err := tracker.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal() = %v", err)
	}
	s.Providers["canned"] = &cannedProvider{payload: `{
		"suggestions": [
			{"stock": "INFY", "goalId": "g1", "reason": "r", "confidence": "high"},
			{"stock": "TCS", "goalId": "ghost", "reason": "r", "confidence": "low"}
		],
		"personality_summary": "bold"
	}`}
	h := s.Handler()

	w := do(t, h, "POST", "/api/suggestions", `{"provider": "canned"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("suggestions status = %d: %s", w.Code, w.Body)
	}
	resp := decode[advisor.Response](t, w)
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].Stock != "INFY" {
		t.Errorf("unresolvable suggestion not dropped: %+v", resp.Suggestions)
	}
	if resp.Model != "canned-1" {
		t.Errorf("model = %q", resp.Model)
	}
	if tracker.Book().Personality() != "bold" {
		t.Errorf("personality = %q", tracker.Book().Personality())
	}

	if w := do(t, h, "POST", "/api/suggestions", `{"provider": "nope"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown provider: status = %d, want 400", w.Code)
	}
}

func TestApplySuggestions(t *testing.T) {
	s, tracker := newTestServer(t, nil)
	goal := goaltrack.Goal{ID: "g1", Name: "Dream Home", TargetAmount: goaltrack.M(100, "INR")}
	if err := tracker.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal() = %v", err)
	}
	h := s.Handler()

	body, err := json.Marshal(map[string]any{"suggestions": []advisor.Suggestion{
		{Stock: "INFY", GoalID: "g1", Confidence: advisor.High},
		{Stock: "TCS", GoalID: "ghost", Confidence: advisor.Low},
	}})
	if err != nil {
		t.Fatal(err)
	}

	w := do(t, h, "POST", "/api/suggestions/apply", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("apply status = %d: %s", w.Code, w.Body)
	}
	result := decode[struct {
		Accepted int `json:"accepted"`
	}](t, w)
	if result.Accepted != 1 {
		t.Errorf("accepted = %d, want 1", result.Accepted)
	}
	if id, _ := tracker.Book().Assignment("INFY"); id != "g1" {
		t.Error("accepted suggestion not committed")
	}
}

func TestCallbackStoresSession(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()

	w := do(t, h, "GET", "/callback?request_token=abc", "")
	if w.Code != http.StatusFound {
		t.Fatalf("callback status = %d: %s", w.Code, w.Body)
	}
	t.Cleanup(func() { kite.ClearSession() })
	if !s.session.Authenticated() || s.session.Token != "access-abc" {
		t.Errorf("session = %+v", s.session)
	}

	if w := do(t, h, "GET", "/callback", ""); w.Code != http.StatusBadRequest {
		t.Errorf("callback without token: status = %d, want 400", w.Code)
	}
}

func TestLogout(t *testing.T) {
	s, _ := newTestServer(t, kite.DemoSession())
	h := s.Handler()

	if w := do(t, h, "POST", "/api/logout", ""); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	if s.session.Authenticated() {
		t.Error("still authenticated after logout")
	}
}
