package router

import (
	"database/sql"
	"net/http"
	"os"

	"livestock-breeding/internal/adapters/prediction/gemini"
	mem "livestock-breeding/internal/adapters/storage/memory"
	pg "livestock-breeding/internal/adapters/storage/postgres"
	"livestock-breeding/internal/domain/animals"
	"livestock-breeding/internal/domain/breeding"
	"livestock-breeding/internal/domain/herds"
	"livestock-breeding/internal/platform/logger"
	"livestock-breeding/internal/ports/prediction"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: predictor inyectable (tests usan stubs determinísticos).
	// Si es nil, se arma el de Gemini desde env.
	Predictor prediction.Predictor

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("could not open postgres, falling back to in-memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	var (
		animalRepo animals.Repository
		herdRepo   herds.Repository
		recRepo    breeding.Repository
	)
	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		herdRepo = pg.NewHerdsRepo(db)
		recRepo = pg.NewRecommendationsRepo(db)
	} else {
		animalRepo = mem.NewAnimalsRepo()
		herdRepo = mem.NewHerdsRepo()
		recRepo = mem.NewRecommendationsRepo()
	}

	predictor := opts.Predictor
	if predictor == nil {
		// Sin GEMINI_API_KEY el predictor falla con ErrNotConfigured y
		// el motor responde con los fallbacks locales: el servicio
		// funciona igual, con predicciones menos ricas.
		predictor = gemini.NewPredictorFromEnv()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo)
	herdsSvc := herds.NewService(herdRepo, animalRepo)
	breedingSvc := breeding.NewService(animalRepo, recRepo, predictor, log)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	herds.RegisterRoutes(r, herdsSvc)
	breeding.RegisterRoutes(r, breedingSvc)

	return r
}
