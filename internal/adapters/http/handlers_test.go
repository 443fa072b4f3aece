package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"kweku/internal/adapters/authclient"
	"kweku/internal/adapters/http/perf"
	"kweku/internal/adapters/storage"
	accountStore "kweku/internal/adapters/storage/account"
	messageStore "kweku/internal/adapters/storage/message"
	paperStore "kweku/internal/adapters/storage/paper"
	postStore "kweku/internal/adapters/storage/post"
	resourceStore "kweku/internal/adapters/storage/resource"
	testimonialStore "kweku/internal/adapters/storage/testimonial"
	videoStore "kweku/internal/adapters/storage/video"
	"kweku/internal/application/session"
	paperDomain "kweku/internal/domain/paper"
	postDomain "kweku/internal/domain/post"
	resourceDomain "kweku/internal/domain/resource"
	testimonialDomain "kweku/internal/domain/testimonial"
)

// newTestServer builds the full handler stack over an in-memory database.
// The returned handler carries the real middleware chain; the package-level
// stores and session manager are also set so handlers can be invoked directly.
func newTestServer(t *testing.T) (*Stores, http.Handler) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}

	s := &Stores{
		AccountStore:     accountStore.NewSQLiteStore(db),
		PaperStore:       paperStore.NewSQLiteStore(db),
		VideoStore:       videoStore.NewSQLiteStore(db),
		ResourceStore:    resourceStore.NewSQLiteStore(db),
		PostStore:        postStore.NewSQLiteStore(db),
		TestimonialStore: testimonialStore.NewSQLiteStore(db),
		MessageStore:     messageStore.NewSQLiteStore(db),
	}

	mgr := session.NewManager(authclient.NewLocal(s.AccountStore))
	if err := mgr.Initialize(context.Background()); err != nil {
		t.Fatalf("manager Initialize() error = %v", err)
	}
	t.Cleanup(mgr.Close)

	RateLimitPerSecond = 1000
	SetEmailSender(nil, "")
	SetBookingPhone("")
	handler := NewMux(t.TempDir(), s, mgr, perf.NewCollector(100))
	return s, handler
}

func seedPapers(t *testing.T, s *Stores) {
	t.Helper()
	ctx := context.Background()
	papers := []paperDomain.PastPaper{
		{ID: "p1", Title: "Mechanics Paper 1", Subject: "Physics", Year: 2024, Session: "May/June", PaperType: "Paper 1"},
		{ID: "p2", Title: "Pure Maths Paper 2", Subject: "Mathematics", Year: 2024, Session: "May/June", PaperType: "Paper 2"},
		{ID: "p3", Title: "Statistics Paper 3", Subject: "Mathematics", Year: 2023, Session: "Oct/Nov", PaperType: "Paper 3"},
	}
	for _, p := range papers {
		p.CreatedAt = time.Now().UTC()
		if err := s.PaperStore.Save(ctx, p); err != nil {
			t.Fatalf("seed paper %s: %v", p.ID, err)
		}
	}
}

func getJSON(t *testing.T, handler http.Handler, path string, v any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code == http.StatusOK && v != nil {
		if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rr
}

// TestPapersEndpoint_Filters tests the public list with filter combinations.
func TestPapersEndpoint_Filters(t *testing.T) {
	s, handler := newTestServer(t)
	seedPapers(t, s)

	tests := []struct {
		name    string
		path    string
		wantIDs map[string]bool
	}{
		{
			name:    "no filters returns everything",
			path:    "/api/papers",
			wantIDs: map[string]bool{"p1": true, "p2": true, "p3": true},
		},
		{
			name:    "subject filter",
			path:    "/api/papers?category=Mathematics",
			wantIDs: map[string]bool{"p2": true, "p3": true},
		},
		{
			name:    "year filter",
			path:    "/api/papers?year=2024",
			wantIDs: map[string]bool{"p1": true, "p2": true},
		},
		{
			name:    "term and category combined",
			path:    "/api/papers?q=paper&category=Mathematics&year=2023",
			wantIDs: map[string]bool{"p3": true},
		},
		{
			name:    "explicit all bypasses",
			path:    "/api/papers?category=all&year=all",
			wantIDs: map[string]bool{"p1": true, "p2": true, "p3": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp struct {
				Items []paperDomain.PastPaper `json:"items"`
				Error string                  `json:"error"`
			}
			rr := getJSON(t, handler, tt.path, &resp)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}
			if resp.Error != "" {
				t.Fatalf("unexpected error signal: %s", resp.Error)
			}
			if len(resp.Items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(resp.Items), len(tt.wantIDs))
			}
			for _, p := range resp.Items {
				if !tt.wantIDs[p.ID] {
					t.Errorf("unexpected item %s", p.ID)
				}
			}
		})
	}
}

// TestPapersEndpoint_EmptyTable tests the explicit none-found state.
func TestPapersEndpoint_EmptyTable(t *testing.T) {
	_, handler := newTestServer(t)

	var resp struct {
		Items []paperDomain.PastPaper `json:"items"`
		Error string                  `json:"error"`
	}
	rr := getJSON(t, handler, "/api/papers", &resp)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if resp.Error != "" {
		t.Errorf("empty table must not be an error, got %q", resp.Error)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("items = %v, want explicit empty list", resp.Items)
	}
}

// TestPostsEndpoint_PublishedOnly tests draft filtering and markdown rendering.
func TestPostsEndpoint_PublishedOnly(t *testing.T) {
	s, handler := newTestServer(t)
	ctx := context.Background()

	published := postDomain.Post{ID: "b1", Title: "Revision", Content: "Little *and* often.", CreatedAt: time.Now().UTC()}
	published.SetPublished(true, time.Now().UTC())
	draft := postDomain.Post{ID: "b2", Title: "Draft", Content: "wip", CreatedAt: time.Now().UTC()}
	for _, p := range []postDomain.Post{published, draft} {
		if err := s.PostStore.Save(ctx, p); err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	var resp struct {
		Items []struct {
			ID   string
			HTML string
		} `json:"items"`
	}
	rr := getJSON(t, handler, "/api/posts", &resp)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "b1" {
		t.Fatalf("items = %+v, want only the published post", resp.Items)
	}
	if !strings.Contains(resp.Items[0].HTML, "<em>and</em>") {
		t.Errorf("HTML = %q, want rendered markdown", resp.Items[0].HTML)
	}
}

// TestTestimonialsEndpoint_ActiveOnly tests the active flag filter.
func TestTestimonialsEndpoint_ActiveOnly(t *testing.T) {
	s, handler := newTestServer(t)
	ctx := context.Background()

	for _, tm := range []testimonialDomain.Testimonial{
		{ID: "t1", Name: "Ama", Quote: "Great tutor", Active: true, CreatedAt: time.Now().UTC()},
		{ID: "t2", Name: "Kofi", Quote: "Hidden", Active: false, CreatedAt: time.Now().UTC()},
	} {
		if err := s.TestimonialStore.Save(ctx, tm); err != nil {
			t.Fatalf("seed testimonial: %v", err)
		}
	}

	var resp struct {
		Items []testimonialDomain.Testimonial `json:"items"`
	}
	if rr := getJSON(t, handler, "/api/testimonials", &resp); rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "t1" {
		t.Errorf("items = %+v, want only the active testimonial", resp.Items)
	}
}

// TestContactEndpoint tests the public contact form submission.
func TestContactEndpoint(t *testing.T) {
	s, handler := newTestServer(t)

	body := `{"Name":"Ama","Email":"ama@example.com","Subject":"Booking","Body":"Weekends?"}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rr.Code, rr.Body.String())
	}

	msgs, err := s.MessageStore.List(context.Background(), "created_at", false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("stored %d messages, want 1", len(msgs))
	}
	if msgs[0].Read {
		t.Error("new message must be unread")
	}

	// Invalid submission is rejected without storing anything.
	req = httptest.NewRequest("POST", "/api/contact", strings.NewReader(`{"Name":"","Email":"","Body":""}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

// TestResourceDownloadEndpoint tests the counter bump.
func TestResourceDownloadEndpoint(t *testing.T) {
	s, handler := newTestServer(t)
	ctx := context.Background()

	res := resourceDomain.Resource{ID: "r1", Title: "Formula sheet", ResourceType: "notes", FileURL: "/f.pdf", Downloads: 5, CreatedAt: time.Now().UTC()}
	if err := s.ResourceStore.Save(ctx, res); err != nil {
		t.Fatalf("seed resource: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/resources/download", strings.NewReader(`{"ID":"r1"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]int
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["Downloads"] != 6 {
		t.Errorf("Downloads = %d, want 6", resp["Downloads"])
	}
}

// TestBookingLinkEndpoint tests the WhatsApp link generation.
func TestBookingLinkEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	// Unconfigured: 404
	if rr := getJSON(t, handler, "/api/booking-link", nil); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when unconfigured", rr.Code)
	}

	SetBookingPhone("233201234567")
	var resp map[string]string
	if rr := getJSON(t, handler, "/api/booking-link", &resp); rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.HasPrefix(resp["URL"], "https://wa.me/233201234567?text=") {
		t.Errorf("URL = %q", resp["URL"])
	}
}

// TestAdminRoutes_RequireSession tests that admin routes are gated.
func TestAdminRoutes_RequireSession(t *testing.T) {
	_, handler := newTestServer(t)

	paths := []string{
		"/admin/api/dashboard",
		"/admin/api/papers",
		"/admin/api/messages",
	}
	for _, path := range paths {
		rr := getJSON(t, handler, path, nil)
		if rr.Code != http.StatusSeeOther {
			t.Errorf("GET %s = %d, want redirect to login", path, rr.Code)
		}
	}
}

// TestLogin_AliasFlow tests alias sign-in end to end: the first attempt
// creates the admin account, the second signs it in.
func TestLogin_AliasFlow(t *testing.T) {
	_, _ = newTestServer(t)

	form := "Identifier=admin&Password=admin"
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handleLogin(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Account created") {
		t.Fatalf("first alias login: status = %d body = %q, want account-created notice", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest("POST", "/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = httptest.NewRecorder()
	handleLogin(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("second alias login: status = %d, want redirect", rr.Code)
	}
	cookies := rr.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "kweku_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("successful login must set the session cookie")
	}
}

// TestAdminDashboard tests the aggregate counts endpoint.
func TestAdminDashboard(t *testing.T) {
	s, _ := newTestServer(t)
	seedPapers(t, s)

	req := httptest.NewRequest("GET", "/admin/api/dashboard", nil)
	rr := httptest.NewRecorder()
	handleDashboard(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var result struct {
		Papers int
		Unread int
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Papers != 3 {
		t.Errorf("Papers = %d, want 3", result.Papers)
	}
	if result.Unread != 0 {
		t.Errorf("Unread = %d, want 0", result.Unread)
	}
}

// TestAdminPapersCRUD tests create, update, delete through the admin handler.
func TestAdminPapersCRUD(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	// Create
	body := `{"Title":"Mechanics Paper 1","Subject":"Physics","Year":2024,"Session":"May/June","PaperType":"Paper 1"}`
	req := httptest.NewRequest("POST", "/admin/api/papers", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handleAdminPapers(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rr.Code, rr.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := created["ID"]
	if id == "" {
		t.Fatal("create must return the new ID")
	}

	// Validation failure
	req = httptest.NewRequest("POST", "/admin/api/papers", strings.NewReader(`{"Title":""}`))
	rr = httptest.NewRecorder()
	handleAdminPapers(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid create: status = %d, want 400", rr.Code)
	}

	// Update
	body = `{"ID":"` + id + `","Title":"Mechanics Paper 1 (v2)","Subject":"Physics","Year":2024,"Session":"May/June","PaperType":"Paper 1"}`
	req = httptest.NewRequest("PUT", "/admin/api/papers", strings.NewReader(body))
	rr = httptest.NewRecorder()
	handleAdminPapers(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update: status = %d", rr.Code)
	}
	got, err := s.PaperStore.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Mechanics Paper 1 (v2)" {
		t.Errorf("Title = %q after update", got.Title)
	}

	// Delete
	req = httptest.NewRequest("DELETE", "/admin/api/papers?id="+id, nil)
	rr = httptest.NewRecorder()
	handleAdminPapers(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rr.Code)
	}
	if n, _ := s.PaperStore.Count(ctx); n != 0 {
		t.Errorf("Count = %d after delete, want 0", n)
	}
}

// TestAdminPostPublish tests the publish toggle stamping.
func TestAdminPostPublish(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	p := postDomain.Post{ID: "b1", Title: "Draft", Content: "...", CreatedAt: time.Now().UTC()}
	if err := s.PostStore.Save(ctx, p); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	req := httptest.NewRequest("POST", "/admin/api/posts/publish", strings.NewReader(`{"ID":"b1","Published":true}`))
	rr := httptest.NewRecorder()
	handleAdminPostPublish(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("publish: status = %d", rr.Code)
	}

	got, err := s.PostStore.GetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.Published || got.PublishedAt.IsZero() {
		t.Errorf("post = %+v, want published with stamp", got)
	}
}

// TestAdminMessageFlags tests the read and replied toggles plus the reply link.
func TestAdminMessageFlags(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	body := `{"Name":"Ama","Email":"ama@example.com","Subject":"Booking question","Body":"Hi"}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handleContact(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("contact: status = %d", rr.Code)
	}
	msgs, _ := s.MessageStore.List(ctx, "created_at", false)
	if len(msgs) != 1 {
		t.Fatalf("stored %d messages", len(msgs))
	}
	id := msgs[0].ID

	req = httptest.NewRequest("POST", "/admin/api/messages/read", strings.NewReader(`{"ID":"`+id+`"}`))
	rr = httptest.NewRecorder()
	handleAdminMessageRead(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("mark read: status = %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/admin/api/messages", nil)
	rr = httptest.NewRecorder()
	handleAdminMessages(rr, req)
	var views []struct {
		ID          string
		Read        bool
		ReplyMailto string
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 1 || !views[0].Read {
		t.Fatalf("views = %+v, want one read message", views)
	}
	if views[0].ReplyMailto != "mailto:ama@example.com?subject=Re%3A+Booking+question" {
		t.Errorf("ReplyMailto = %q", views[0].ReplyMailto)
	}
}
