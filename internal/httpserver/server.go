package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mfreitas/bariatrack/internal/config"
	"github.com/mfreitas/bariatrack/internal/estimate"
	"github.com/mfreitas/bariatrack/internal/protocol"
	"github.com/mfreitas/bariatrack/internal/reports"
	"github.com/mfreitas/bariatrack/internal/settings"
	"github.com/mfreitas/bariatrack/internal/statestore"
	"github.com/mfreitas/bariatrack/internal/tracker"
)

// Server wires the tracker, estimation and settings services behind
// one mux.
type Server struct {
	config  *config.Config
	mux     *http.ServeMux
	pool    *pgxpool.Pool
	storage statestore.Store
	store   *tracker.Store
}

// New builds the server: storage backend, tracker state, routes.
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()

	catalog := protocol.NewCatalog(protocol.DefaultTimeline())
	s.store = tracker.NewStore(catalog, s.storage, cfg.InitialWeightKg)
	if err := s.store.Load(context.Background()); err != nil {
		log.Printf("WARN tracker: state load failed, starting fresh: %v", err)
	}

	s.routes(catalog)
	return s
}

// initStorage picks the state backend: Postgres when DATABASE_URL is
// set, otherwise the local/S3 factory, otherwise in-memory.
func (s *Server) initStorage() {
	if s.config.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, s.config.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err != nil {
			log.Printf("WARN state: postgres unavailable, fallback to file storage: %v", err)
		} else {
			log.Println("INFO state: mode=postgres")
			s.pool = pool
			s.storage = statestore.NewPostgresStore(pool)
			return
		}
	}

	if s.config.State.Mode == "" && s.config.State.DataDir == "" {
		// Nothing configured (typically tests); keep state in memory.
		log.Println("INFO state: mode=memory (no data dir configured)")
		s.storage = statestore.NewMemoryStore()
		return
	}

	store, _, err := statestore.NewStore(s.config.State, log.Default())
	if err != nil {
		log.Fatalf("state store initialization failed: %v", err)
	}
	s.storage = store
}

func (s *Server) routes(catalog *protocol.Catalog) {
	// Health check
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Protocol API
	s.mux.HandleFunc("GET /v1/protocol/timeline", protocol.HandleTimeline(catalog, s.config.CalorieGoalKcal, s.config.WaterGoalMl))

	// Day tracking API
	s.mux.HandleFunc("GET /v1/day", tracker.HandleGetDay(s.store))
	s.mux.HandleFunc("GET /v1/days", tracker.HandleListDays(s.store))
	s.mux.HandleFunc("POST /v1/day/select", tracker.HandleSelectDay(s.store))
	s.mux.HandleFunc("POST /v1/day/water", tracker.HandleAddWater(s.store, s.config.WaterDefaultAddMl))
	s.mux.HandleFunc("PUT /v1/day/weight", tracker.HandleSetWeight(s.store))
	s.mux.HandleFunc("POST /v1/day/items/toggle", tracker.HandleToggleItem(s.store))
	s.mux.HandleFunc("POST /v1/day/custom", tracker.HandleAddCustomItem(s.store))
	s.mux.HandleFunc("DELETE /v1/day/custom/{id}", tracker.HandleRemoveCustomItem(s.store))
	s.mux.HandleFunc("POST /v1/day/finish", tracker.HandleFinishDay(s.store))

	// Settings API (Gemini API key)
	settingsService := settings.NewService(s.storage, s.config.GeminiAPIKey)
	settingsHandler := settings.NewHandler(settingsService)
	s.mux.HandleFunc("GET /v1/settings/apikey", settingsHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/settings/apikey", settingsHandler.HandlePut)
	s.mux.HandleFunc("DELETE /v1/settings/apikey", settingsHandler.HandleDelete)

	// Calorie estimation API
	provider := estimate.NewProvider(s.config, settingsService)
	s.mux.HandleFunc("POST /v1/estimate", estimate.HandleEstimate(provider))

	// Reports API
	generator := reports.NewGenerator(s.store, s.config.CalorieGoalKcal, s.config.WaterGoalMl)
	s.mux.HandleFunc("GET /v1/reports/progress", reports.HandleProgress(generator))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start runs the HTTP server with the middleware chain.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	// Middleware chain (outermost first): CORS -> Rate Limit -> Router
	var handler http.Handler = s.mux
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Server listening on http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Day tracking API: http://localhost%s/v1/day\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close releases the storage resources.
func (s *Server) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
