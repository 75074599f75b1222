package router

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"kitchen-guide/internal/auth"
	"kitchen-guide/internal/handler"
	"kitchen-guide/internal/middleware"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	preparationHandler *handler.PreparationHandler,
	authHandler *handler.AuthHandler,
	searchHandler *handler.SearchHandler,
	issuer *auth.TokenIssuer,
	uploadDir string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(issuer, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Uploaded images are served straight from disk. When S3 is enabled the
	// stored URLs point at the bucket instead and this route goes unused.
	mux.Handle("/static/uploads/", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Product listing doubles as the home page.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		productHandler.List(w, r)
	})

	mux.Handle("/product/new", requireAuth(http.HandlerFunc(productHandler.NewForm)))
	mux.Handle("/product", requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		productHandler.Create(w, r)
	})))

	// Product detail, edit form and update share the /product/{id} prefix.
	mux.HandleFunc("/product/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/update"):
			requireAuth(http.HandlerFunc(productHandler.Update)).ServeHTTP(w, r)
		case strings.HasSuffix(r.URL.Path, "/edit"):
			requireAuth(http.HandlerFunc(productHandler.EditForm)).ServeHTTP(w, r)
		default:
			productHandler.GetByID(w, r)
		}
	})

	mux.HandleFunc("/preparations", preparationHandler.List)
	mux.Handle("/preparation/new", requireAuth(http.HandlerFunc(preparationHandler.NewForm)))
	mux.Handle("/preparation", requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		preparationHandler.Create(w, r)
	})))

	mux.HandleFunc("/preparation/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/update"):
			requireAuth(http.HandlerFunc(preparationHandler.Update)).ServeHTTP(w, r)
		case strings.HasSuffix(r.URL.Path, "/delete"):
			requireAuth(http.HandlerFunc(preparationHandler.Delete)).ServeHTTP(w, r)
		case strings.HasSuffix(r.URL.Path, "/step"):
			requireAuth(http.HandlerFunc(preparationHandler.AddStep)).ServeHTTP(w, r)
		case strings.HasSuffix(r.URL.Path, "/edit"):
			requireAuth(http.HandlerFunc(preparationHandler.EditForm)).ServeHTTP(w, r)
		default:
			preparationHandler.GetByID(w, r)
		}
	})

	mux.HandleFunc("/search", searchHandler.Search)

	mux.HandleFunc("/login", authHandler.Login)
	mux.HandleFunc("/register", authHandler.Register)
	mux.HandleFunc("/logout", authHandler.Logout)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
