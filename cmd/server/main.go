package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"kweku/internal/adapters/authclient"
	emailPkg "kweku/internal/adapters/email"
	web "kweku/internal/adapters/http"
	"kweku/internal/adapters/http/perf"
	"kweku/internal/adapters/storage"
	accountStore "kweku/internal/adapters/storage/account"
	messageStore "kweku/internal/adapters/storage/message"
	paperStore "kweku/internal/adapters/storage/paper"
	postStore "kweku/internal/adapters/storage/post"
	resourceStore "kweku/internal/adapters/storage/resource"
	testimonialStore "kweku/internal/adapters/storage/testimonial"
	videoStore "kweku/internal/adapters/storage/video"
	"kweku/internal/application/orchestrators"
	"kweku/internal/application/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("KWEKU_DB", "kweku.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:     acctStore,
		PaperStore:       paperStore.NewSQLiteStore(timedDB),
		VideoStore:       videoStore.NewSQLiteStore(timedDB),
		ResourceStore:    resourceStore.NewSQLiteStore(timedDB),
		PostStore:        postStore.NewSQLiteStore(timedDB),
		TestimonialStore: testimonialStore.NewSQLiteStore(timedDB),
		MessageStore:     messageStore.NewSQLiteStore(timedDB),
	}

	// Seed the admin account on first start (idempotent)
	adminPassword := envOrDefault("KWEKU_ADMIN_PASSWORD", "admin123")
	seedDeps := orchestrators.SeedAdminDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), adminPassword, seedDeps); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Session manager over the local auth client
	mgr := session.NewManager(authclient.NewLocal(acctStore))
	if err := mgr.Initialize(context.Background()); err != nil {
		log.Fatalf("failed to initialize session manager: %v", err)
	}
	defer mgr.Close()

	// Configure email sender
	resendKey := os.Getenv("KWEKU_RESEND_KEY")
	emailFrom := envOrDefault("KWEKU_RESEND_FROM", "Raj Tutoring <noreply@rajtutoring.com>")
	notifyTo := envOrDefault("KWEKU_NOTIFY_TO", session.KnownAdminEmail)
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), notifyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), notifyTo)
		if os.Getenv("KWEKU_ENV") == "production" {
			log.Println("WARNING: KWEKU_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set KWEKU_RESEND_KEY for real delivery)")
		}
	}

	// WhatsApp booking link (digits only, country code included)
	web.SetBookingPhone(os.Getenv("KWEKU_WHATSAPP_NUMBER"))

	// Create HTTP handler with middleware (pass collector for timing + perf endpoint)
	mux := web.NewMux("static", stores, mgr, collector)

	// Start server
	addr := envOrDefault("KWEKU_ADDR", ":8080")
	log.Printf("Kweku %s starting on %s (env=%s)", version, addr, envOrDefault("KWEKU_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
