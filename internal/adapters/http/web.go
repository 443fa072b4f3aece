package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"kweku/internal/adapters/email"
	"kweku/internal/adapters/http/middleware"
	"kweku/internal/adapters/http/perf"
	accountStore "kweku/internal/adapters/storage/account"
	messageStore "kweku/internal/adapters/storage/message"
	paperStore "kweku/internal/adapters/storage/paper"
	postStore "kweku/internal/adapters/storage/post"
	resourceStore "kweku/internal/adapters/storage/resource"
	testimonialStore "kweku/internal/adapters/storage/testimonial"
	videoStore "kweku/internal/adapters/storage/video"
	"kweku/internal/application/session"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	PaperStore       paperStore.Store
	VideoStore       videoStore.Store
	ResourceStore    resourceStore.Store
	PostStore        postStore.Store
	TestimonialStore testimonialStore.Store
	MessageStore     messageStore.Store
}

// loadCSRFKey reads the CSRF secret from KWEKU_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("KWEKU_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("KWEKU_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("KWEKU_ENV") == "production" {
		log.Fatal("KWEKU_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set KWEKU_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global session manager (set by NewMux)
var sessionManager *session.Manager

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// emailNotifyTo is the inbox that receives contact-form notifications.
var emailNotifyTo string

// bookingPhone is the WhatsApp number (digits only, country code included)
// behind the public booking link.
var bookingPhone string

// SetEmailSender sets the global email sender and the notification inbox.
func SetEmailSender(sender email.Sender, notifyTo string) {
	emailSender = sender
	emailNotifyTo = notifyTo
}

// SetBookingPhone sets the WhatsApp number used for the booking link.
func SetBookingPhone(phone string) {
	bookingPhone = phone
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, mgr *session.Manager, collector *perf.Collector) http.Handler {
	stores = s
	sessionManager = mgr
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("KWEKU_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
