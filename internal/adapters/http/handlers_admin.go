package web

import (
	"net/http"
	"strconv"
	"time"

	"kweku/internal/application/projections"
	messageDomain "kweku/internal/domain/message"
	paperDomain "kweku/internal/domain/paper"
	postDomain "kweku/internal/domain/post"
	resourceDomain "kweku/internal/domain/resource"
	testimonialDomain "kweku/internal/domain/testimonial"
	videoDomain "kweku/internal/domain/video"
)

// handleDashboard handles GET /admin/api/dashboard.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	deps := projections.GetDashboardDeps{
		Papers:       stores.PaperStore,
		Videos:       stores.VideoStore,
		Resources:    stores.ResourceStore,
		Posts:        stores.PostStore,
		Testimonials: stores.TestimonialStore,
		Messages:     stores.MessageStore,
	}
	result, err := projections.QueryGetDashboard(r.Context(), deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handlePerf handles GET /admin/api/perf. Returns timing aggregates for the
// window given by the minutes query parameter (default 60).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	minutes := 60
	if v := r.URL.Query().Get("minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}
	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, perfCollector.Snapshot(since, 10))
}

// deleteID extracts the record id for a DELETE request.
func deleteID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// handleAdminPapers handles GET/POST/PUT/DELETE for /admin/api/papers.
func handleAdminPapers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		papers, err := stores.PaperStore.List(ctx, "created_at", false)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, papers)

	case "POST", "PUT":
		var input struct {
			ID               string
			Title            string
			Subject          string
			Year             int
			Session          string
			PaperType        string
			QuestionPaperURL string
			MarkSchemeURL    string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		now := timeNow().UTC()
		p := paperDomain.PastPaper{CreatedAt: now}
		if r.Method == "PUT" {
			existing, err := stores.PaperStore.GetByID(ctx, input.ID)
			if err != nil {
				internalError(w, err)
				return
			}
			p = existing
		} else {
			p.ID = generateID()
		}
		p.Title = input.Title
		p.Subject = input.Subject
		p.Year = input.Year
		p.Session = input.Session
		p.PaperType = input.PaperType
		p.QuestionPaperURL = input.QuestionPaperURL
		p.MarkSchemeURL = input.MarkSchemeURL
		p.UpdatedAt = now

		if err := p.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.PaperStore.Save(ctx, p); err != nil {
			internalError(w, err)
			return
		}
		if r.Method == "POST" {
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, map[string]string{"ID": p.ID})
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "DELETE":
		id, ok := deleteID(w, r)
		if !ok {
			return
		}
		if err := stores.PaperStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminVideos handles GET/POST/PUT/DELETE for /admin/api/videos.
func handleAdminVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		lessons, err := stores.VideoStore.List(ctx, "created_at", false)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, lessons)

	case "POST", "PUT":
		var input struct {
			ID           string
			Title        string
			Topic        string
			Unit         string
			Description  string
			Duration     string
			YoutubeURL   string
			NotesURL     string
			ThumbnailURL string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		now := timeNow().UTC()
		l := videoDomain.Lesson{CreatedAt: now}
		if r.Method == "PUT" {
			existing, err := stores.VideoStore.GetByID(ctx, input.ID)
			if err != nil {
				internalError(w, err)
				return
			}
			l = existing
		} else {
			l.ID = generateID()
		}
		l.Title = input.Title
		l.Topic = input.Topic
		l.Unit = input.Unit
		l.Description = input.Description
		l.Duration = input.Duration
		l.YoutubeURL = input.YoutubeURL
		l.NotesURL = input.NotesURL
		l.ThumbnailURL = input.ThumbnailURL
		l.UpdatedAt = now

		if err := l.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.VideoStore.Save(ctx, l); err != nil {
			internalError(w, err)
			return
		}
		if r.Method == "POST" {
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, map[string]string{"ID": l.ID})
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "DELETE":
		id, ok := deleteID(w, r)
		if !ok {
			return
		}
		if err := stores.VideoStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminResources handles GET/POST/PUT/DELETE for /admin/api/resources.
func handleAdminResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		resources, err := stores.ResourceStore.List(ctx, "created_at", false)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, resources)

	case "POST", "PUT":
		var input struct {
			ID           string
			Title        string
			Description  string
			ResourceType string
			Subject      string
			FileURL      string
			FileSize     string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		now := timeNow().UTC()
		res := resourceDomain.Resource{CreatedAt: now}
		if r.Method == "PUT" {
			// Downloads survives edits: the counter belongs to the record,
			// not the form.
			existing, err := stores.ResourceStore.GetByID(ctx, input.ID)
			if err != nil {
				internalError(w, err)
				return
			}
			res = existing
		} else {
			res.ID = generateID()
		}
		res.Title = input.Title
		res.Description = input.Description
		res.ResourceType = input.ResourceType
		res.Subject = input.Subject
		res.FileURL = input.FileURL
		res.FileSize = input.FileSize
		res.UpdatedAt = now

		if err := res.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ResourceStore.Save(ctx, res); err != nil {
			internalError(w, err)
			return
		}
		if r.Method == "POST" {
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, map[string]string{"ID": res.ID})
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "DELETE":
		id, ok := deleteID(w, r)
		if !ok {
			return
		}
		if err := stores.ResourceStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminPosts handles GET/POST/PUT/DELETE for /admin/api/posts.
// Tags arrive as the edit form's free-text field and are split on commas;
// listing returns the joined text alongside the tag list for the edit form.
func handleAdminPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		posts, err := stores.PostStore.List(ctx, "created_at", false)
		if err != nil {
			internalError(w, err)
			return
		}
		type adminPostView struct {
			postDomain.Post
			TagsText string
		}
		views := make([]adminPostView, 0, len(posts))
		for _, p := range posts {
			views = append(views, adminPostView{Post: p, TagsText: p.TagsText()})
		}
		writeJSON(w, views)

	case "POST", "PUT":
		var input struct {
			ID       string
			Title    string
			Excerpt  string
			Content  string
			Category string
			TagsText string
			ReadTime string
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		now := timeNow().UTC()
		p := postDomain.Post{CreatedAt: now}
		if r.Method == "PUT" {
			existing, err := stores.PostStore.GetByID(ctx, input.ID)
			if err != nil {
				internalError(w, err)
				return
			}
			p = existing
		} else {
			p.ID = generateID()
		}
		p.Title = input.Title
		p.Excerpt = input.Excerpt
		p.Content = input.Content
		p.Category = input.Category
		p.Tags = postDomain.ParseTags(input.TagsText)
		p.ReadTime = input.ReadTime
		p.UpdatedAt = now

		if err := p.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.PostStore.Save(ctx, p); err != nil {
			internalError(w, err)
			return
		}
		if r.Method == "POST" {
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, map[string]string{"ID": p.ID})
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "DELETE":
		id, ok := deleteID(w, r)
		if !ok {
			return
		}
		if err := stores.PostStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminPostPublish handles POST /admin/api/posts/publish. Publishing a
// draft stamps the publish time; re-publishing stamps it again.
func handleAdminPostPublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID        string
		Published bool
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	p, err := stores.PostStore.GetByID(ctx, input.ID)
	if err != nil {
		internalError(w, err)
		return
	}
	p.SetPublished(input.Published, timeNow().UTC())
	p.UpdatedAt = timeNow().UTC()
	if err := stores.PostStore.Save(ctx, p); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminTestimonials handles GET/POST/PUT/DELETE for /admin/api/testimonials.
func handleAdminTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		testimonials, err := stores.TestimonialStore.List(ctx, "created_at", false)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, testimonials)

	case "POST", "PUT":
		var input struct {
			ID       string
			Name     string
			Quote    string
			ImageURL string
			Active   bool
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		now := timeNow().UTC()
		t := testimonialDomain.Testimonial{CreatedAt: now}
		if r.Method == "PUT" {
			existing, err := stores.TestimonialStore.GetByID(ctx, input.ID)
			if err != nil {
				internalError(w, err)
				return
			}
			t = existing
		} else {
			t.ID = generateID()
		}
		t.Name = input.Name
		t.Quote = input.Quote
		t.ImageURL = input.ImageURL
		t.Active = input.Active
		t.UpdatedAt = now

		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.TestimonialStore.Save(ctx, t); err != nil {
			internalError(w, err)
			return
		}
		if r.Method == "POST" {
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, map[string]string{"ID": t.ID})
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "DELETE":
		id, ok := deleteID(w, r)
		if !ok {
			return
		}
		if err := stores.TestimonialStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminMessages handles GET/DELETE for /admin/api/messages. Messages
// are created only through the public contact form.
func handleAdminMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		msgs, err := stores.MessageStore.List(ctx, "created_at", false)
		if err != nil {
			internalError(w, err)
			return
		}
		type messageView struct {
			ID          string
			Name        string
			Email       string
			Subject     string
			Body        string
			Read        bool
			Replied     bool
			CreatedAt   time.Time
			ReplyMailto string
		}
		views := make([]messageView, 0, len(msgs))
		for _, m := range msgs {
			views = append(views, messageView{
				ID:          m.ID,
				Name:        m.Name,
				Email:       m.Email,
				Subject:     m.Subject,
				Body:        m.Body,
				Read:        m.Read,
				Replied:     m.Replied,
				CreatedAt:   m.CreatedAt,
				ReplyMailto: m.ReplyMailto(),
			})
		}
		writeJSON(w, views)

	case "DELETE":
		id, ok := deleteID(w, r)
		if !ok {
			return
		}
		if err := stores.MessageStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminMessageRead handles POST /admin/api/messages/read.
func handleAdminMessageRead(w http.ResponseWriter, r *http.Request) {
	updateMessageFlag(w, r, (*messageDomain.Message).MarkRead)
}

// handleAdminMessageReplied handles POST /admin/api/messages/replied.
func handleAdminMessageReplied(w http.ResponseWriter, r *http.Request) {
	updateMessageFlag(w, r, (*messageDomain.Message).MarkReplied)
}

func updateMessageFlag(w http.ResponseWriter, r *http.Request, apply func(*messageDomain.Message)) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct{ ID string }
	if err := strictDecode(r, &input); err != nil || input.ID == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	m, err := stores.MessageStore.GetByID(ctx, input.ID)
	if err != nil {
		internalError(w, err)
		return
	}

	apply(&m)
	if err := stores.MessageStore.Save(ctx, m); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
