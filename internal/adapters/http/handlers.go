package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"kweku/internal/adapters/http/middleware"
	"kweku/internal/application/orchestrators"
	"kweku/internal/application/viewstate"
	paperDomain "kweku/internal/domain/paper"
	postDomain "kweku/internal/domain/post"
	resourceDomain "kweku/internal/domain/resource"
	testimonialDomain "kweku/internal/domain/testimonial"
	videoDomain "kweku/internal/domain/video"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// renderMarkdown converts trusted-admin markdown to HTML for display.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTMLEscapeString(md)
	}
	return buf.String()
}

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	// Public content
	mux.HandleFunc("/api/papers", handlePapers)
	mux.HandleFunc("/api/videos", handleVideos)
	mux.HandleFunc("/api/resources", handleResources)
	mux.HandleFunc("/api/resources/download", handleResourceDownload)
	mux.HandleFunc("/api/posts", handlePosts)
	mux.HandleFunc("/api/testimonials", handleTestimonials)
	mux.HandleFunc("/api/contact", handleContact)
	mux.HandleFunc("/api/booking-link", handleBookingLink)

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	// Admin
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}
	mux.Handle("/admin/api/dashboard", admin(handleDashboard))
	mux.Handle("/admin/api/perf", admin(handlePerf))
	mux.Handle("/admin/api/papers", admin(handleAdminPapers))
	mux.Handle("/admin/api/videos", admin(handleAdminVideos))
	mux.Handle("/admin/api/resources", admin(handleAdminResources))
	mux.Handle("/admin/api/posts", admin(handleAdminPosts))
	mux.Handle("/admin/api/posts/publish", admin(handleAdminPostPublish))
	mux.Handle("/admin/api/testimonials", admin(handleAdminTestimonials))
	mux.Handle("/admin/api/messages", admin(handleAdminMessages))
	mux.Handle("/admin/api/messages/read", admin(handleAdminMessageRead))
	mux.Handle("/admin/api/messages/replied", admin(handleAdminMessageReplied))
}

// listResponse is the envelope for public list endpoints. A fetch failure
// degrades to an empty list plus an error signal rather than a bare 500, so
// pages render a "none found" state instead of crashing.
type listResponse[R any] struct {
	Items []R    `json:"items"`
	Error string `json:"error,omitempty"`
}

// serveFiltered loads the full row set, applies the request's filters and
// writes the visible subset. Filtering happens in memory over the complete
// snapshot; row counts are small enough that this beats predicate pushdown.
func serveFiltered[R any](w http.ResponseWriter, r *http.Request, list viewstate.ListFunc[R], fields viewstate.Fields[R]) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view := viewstate.NewView(list, fields)
	if err := view.Load(r.Context()); err != nil {
		slog.Error("fetch_failed", "path", r.URL.Path, "error", err.Error())
		writeJSON(w, listResponse[R]{Items: []R{}, Error: "failed to load content"})
		return
	}
	view.SetFilters(viewstate.ParseFilters(r.URL.Query()))
	writeJSON(w, listResponse[R]{Items: view.Visible()})
}

// handlePapers handles GET /api/papers with q/category/year filters.
func handlePapers(w http.ResponseWriter, r *http.Request) {
	serveFiltered(w, r,
		func(ctx context.Context) ([]paperDomain.PastPaper, error) {
			return stores.PaperStore.List(ctx, "created_at", false)
		},
		viewstate.Fields[paperDomain.PastPaper]{
			Text: []func(paperDomain.PastPaper) string{
				func(p paperDomain.PastPaper) string { return p.Title },
				func(p paperDomain.PastPaper) string { return p.Subject },
				func(p paperDomain.PastPaper) string { return p.PaperType },
			},
			Category: func(p paperDomain.PastPaper) string { return p.Subject },
			Year:     func(p paperDomain.PastPaper) string { return strconv.Itoa(p.Year) },
		})
}

// handleVideos handles GET /api/videos with q/category filters; the category
// selector matches the syllabus unit.
func handleVideos(w http.ResponseWriter, r *http.Request) {
	serveFiltered(w, r,
		func(ctx context.Context) ([]videoDomain.Lesson, error) {
			return stores.VideoStore.List(ctx, "created_at", false)
		},
		viewstate.Fields[videoDomain.Lesson]{
			Text: []func(videoDomain.Lesson) string{
				func(l videoDomain.Lesson) string { return l.Title },
				func(l videoDomain.Lesson) string { return l.Topic },
				func(l videoDomain.Lesson) string { return l.Description },
			},
			Category: func(l videoDomain.Lesson) string { return l.Unit },
		})
}

// handleResources handles GET /api/resources with q/category filters.
func handleResources(w http.ResponseWriter, r *http.Request) {
	serveFiltered(w, r,
		func(ctx context.Context) ([]resourceDomain.Resource, error) {
			return stores.ResourceStore.List(ctx, "created_at", false)
		},
		viewstate.Fields[resourceDomain.Resource]{
			Text: []func(resourceDomain.Resource) string{
				func(res resourceDomain.Resource) string { return res.Title },
				func(res resourceDomain.Resource) string { return res.Description },
				func(res resourceDomain.Resource) string { return res.Subject },
			},
			Category: func(res resourceDomain.Resource) string { return res.ResourceType },
		})
}

// postView is a published post plus its rendered HTML body.
type postView struct {
	postDomain.Post
	HTML string
}

// handlePosts handles GET /api/posts. Only published posts are served, with
// markdown rendered server-side.
func handlePosts(w http.ResponseWriter, r *http.Request) {
	serveFiltered(w, r,
		func(ctx context.Context) ([]postView, error) {
			posts, err := stores.PostStore.List(ctx, "created_at", false)
			if err != nil {
				return nil, err
			}
			views := make([]postView, 0, len(posts))
			for _, p := range posts {
				if !p.Published {
					continue
				}
				views = append(views, postView{Post: p, HTML: renderMarkdown(p.Content)})
			}
			return views, nil
		},
		viewstate.Fields[postView]{
			Text: []func(postView) string{
				func(p postView) string { return p.Title },
				func(p postView) string { return p.Excerpt },
			},
			Category: func(p postView) string { return p.Category },
		})
}

// handleTestimonials handles GET /api/testimonials. Only active testimonials
// are served; no filters apply.
func handleTestimonials(w http.ResponseWriter, r *http.Request) {
	serveFiltered(w, r,
		func(ctx context.Context) ([]testimonialDomain.Testimonial, error) {
			all, err := stores.TestimonialStore.List(ctx, "created_at", false)
			if err != nil {
				return nil, err
			}
			active := make([]testimonialDomain.Testimonial, 0, len(all))
			for _, t := range all {
				if t.Active {
					active = append(active, t)
				}
			}
			return active, nil
		},
		viewstate.Fields[testimonialDomain.Testimonial]{})
}

// handleContact handles POST /api/contact.
func handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cmd := orchestrators.SubmitContactCommand{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		cmd.Name = r.FormValue("Name")
		cmd.Email = r.FormValue("Email")
		cmd.Subject = r.FormValue("Subject")
		cmd.Body = r.FormValue("Body")
	} else {
		if err := strictDecode(r, &cmd); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.SubmitContactDeps{
		MessageStore: stores.MessageStore,
		Sender:       emailSender,
		NotifyTo:     emailNotifyTo,
	}
	if _, err := orchestrators.ExecuteSubmitContact(r.Context(), cmd, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResourceDownload handles POST /api/resources/download. The counter
// bump is best effort; the caller gets the new count back.
func handleResourceDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := r.FormValue("ID")
	if id == "" {
		var input struct{ ID string }
		if err := strictDecode(r, &input); err != nil || input.ID == "" {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		id = input.ID
	}

	deps := orchestrators.RecordDownloadDeps{ResourceStore: stores.ResourceStore}
	downloads, err := orchestrators.ExecuteRecordDownload(r.Context(), id, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, map[string]int{"Downloads": downloads})
}

// handleBookingLink handles GET /api/booking-link. Opening the returned
// WhatsApp URL in a new browsing context is a fire-and-forget side effect
// with no delivery confirmation.
func handleBookingLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if bookingPhone == "" {
		http.Error(w, "booking not configured", http.StatusNotFound)
		return
	}
	text := url.QueryEscape("Hi, I would like to book a tutoring session.")
	writeJSON(w, map[string]string{
		"URL": fmt.Sprintf("https://wa.me/%s?text=%s", bookingPhone, text),
	})
}

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html><head><title>Sign in</title></head><body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
<form method="POST" action="/login">
<input type="hidden" name="gorilla.csrf.Token" value="{{.CSRFToken}}">
<label>Email <input type="text" name="Identifier" required></label>
<label>Password <input type="password" name="Password" required></label>
<button type="submit">Sign in</button>
</form>
</body></html>`))

func renderLogin(w http.ResponseWriter, r *http.Request, errMsg, notice string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	loginTemplate.Execute(w, map[string]string{
		"CSRFToken": csrf.Token(r),
		"Error":     errMsg,
		"Notice":    notice,
	})
}

// handleLogin handles GET (form) and POST (authenticate) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already signed in, go straight to the dashboard
		if middleware.IsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		renderLogin(w, r, "", "")
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		res := sessionManager.SignIn(r.Context(), r.FormValue("Identifier"), r.FormValue("Password"))
		if !res.Success {
			renderLogin(w, r, res.Reason, "")
			return
		}

		cur := sessionManager.Current()
		if cur == nil {
			// The sign-up fallback created the account without establishing
			// a session; one more sign-in with the same credentials lands it.
			renderLogin(w, r, "", "Account created. Sign in to continue.")
			return
		}

		token, err := sessions.Create(cur.ID, cur.Email)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout. Local session state clears through the
// auth client's event stream; the cookie session is removed here.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		sessions.DeleteByEmail(sess.Email)
	}
	if err := sessionManager.SignOut(r.Context()); err != nil {
		slog.Error("logout_failed", "error", err.Error())
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
