package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/ai"
	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/cache"
	httpserver "github.com/fairyhunter13/skillbridge-assessor/internal/adapter/httpserver"
	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	"github.com/fairyhunter13/skillbridge-assessor/internal/usecase"
)

// Deps are the process-wide collaborators shared by every request.
type Deps struct {
	Catalog *config.Catalog
	LLM     domain.LLMGateway
	Cache   domain.QuestionCache
	// Redis is nil when the in-process question cache is used.
	Redis *redis.Client
}

// BuildDeps loads the catalog, builds the LLM gateway behind its circuit
// breaker and picks the question cache: Redis when REDIS_URL is set, memory
// otherwise.
func BuildDeps(ctx context.Context, cfg config.Config) (Deps, error) {
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return Deps{}, fmt.Errorf("op=app.BuildDeps: %w", err)
	}
	llm := ai.WithCircuitBreaker(ai.NewGateway(ctx, cfg), cfg.Provider(), cfg.LLMBreakerThreshold, cfg.LLMBreakerCooldown)

	d := Deps{Catalog: catalog, LLM: llm}
	if cfg.RedisURL == "" {
		d.Cache = cache.NewMemoryQuestionCache(cfg.QuestionCacheSize, cfg.QuestionCacheTTL)
		return d, nil
	}
	rdb, err := cache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return Deps{}, fmt.Errorf("op=app.BuildDeps: %w", err)
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The cache is optional at runtime; lookups degrade to misses.
		slog.Warn("redis not reachable at startup", slog.Any("error", err))
	}
	d.Redis = rdb
	d.Cache = cache.NewRedisQuestionCache(rdb, cfg.QuestionCacheTTL)
	return d, nil
}

// Close releases the Redis connection pool, if any.
func (d Deps) Close() error {
	if d.Redis == nil {
		return nil
	}
	return d.Redis.Close()
}

// Services are the usecases behind the HTTP handlers and the CLI.
type Services struct {
	Turns     usecase.TurnService
	Questions usecase.QuestionService
	Scoring   usecase.ScoringService
	Reports   *usecase.ReportPipeline
}

// NewServices wires the usecases from cfg and d.
func NewServices(cfg config.Config, d Deps) Services {
	rc := cfg.GetReportRetryConfig()
	reports := usecase.NewReportPipeline(d.LLM, rc.Attempts, rc.Interval).WithCallBudget(cfg.LLMTimeout)
	guard := usecase.NewTopicGuard(d.Catalog.TopicGuard.OffTopic, d.Catalog.TopicGuard.Career)
	engine := usecase.NewPhaseEngine(cfg.AssessCompleteThreshold, cfg.AssessHistoryWindow)
	return Services{
		Turns:     usecase.NewTurnService(guard, engine, d.LLM, reports),
		Questions: usecase.NewQuestionService(d.Catalog, d.LLM, d.Cache),
		Scoring:   usecase.NewScoringService(d.Catalog, d.LLM),
		Reports:   reports,
	}
}

// NewServer builds the HTTP server with its readiness checks.
func NewServer(cfg config.Config, d Deps) *httpserver.Server {
	svc := NewServices(cfg, d)
	redisCheck, llmCheck := BuildReadinessChecks(cfg, d.Redis)
	return httpserver.NewServer(cfg, d.Catalog.Courses, svc.Turns, svc.Questions, svc.Scoring, redisCheck, llmCheck)
}
