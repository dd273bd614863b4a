package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-draft/external/footballdata"
	"github.com/riskibarqy/fantasy-draft/external/jobqueue"
	"github.com/riskibarqy/fantasy-draft/internal/config"
	"github.com/riskibarqy/fantasy-draft/internal/domain/draft"
	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
	"github.com/riskibarqy/fantasy-draft/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-draft/internal/infrastructure/account/identity"
	"github.com/riskibarqy/fantasy-draft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-draft/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-draft/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-draft/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-draft/internal/platform/id"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-draft/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-draft/internal/usecase"
)

type repositories struct {
	player  player.Repository
	round   round.Repository
	draft   draft.Repository
	scoring scoring.Repository
}

// NewHTTPServer wires repositories, services and the HTTP surface. The
// returned cleanup releases background resources, currently the database
// pool, and must run after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	provider := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:    cfg.FootballDataBaseURL,
		Token:      cfg.FootballDataToken,
		Timeout:    cfg.FootballDataTimeout,
		MaxRetries: cfg.FootballDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})

	var scheduler usecase.ScoreScheduler
	if cfg.QStashEnabled {
		scheduler = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
		}, logger)
	} else {
		logger.Info("qstash disabled", "reason", "QSTASH_ENABLED=false")
	}

	idGenerator := idgen.NewRandomGenerator()

	draftSvc := usecase.NewDraftService(repos.player, repos.round, repos.draft, idGenerator, logger)
	scoringSvc := usecase.NewScoringService(provider, repos.player, repos.round, repos.scoring, cache.NewStore(cfg.CacheTTL), logger)
	scoringSvc.SetWorkerCount(cfg.ScoringWorkerCount)
	roundSvc := usecase.NewRoundService(repos.round, provider, idGenerator, scheduler, logger)

	verifier := identity.NewClient(
		&http.Client{Timeout: cfg.IdentityTimeout},
		cfg.IdentityBaseURL,
		cfg.IdentityIntrospectPath,
		logger,
	)

	handler := httpapi.NewHandler(draftSvc, scoringSvc, roundSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		if cleanupErr := cleanup(); cleanupErr != nil {
			logger.Error("cleanup after failed wiring", "error", cleanupErr)
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.UseMemoryRepos {
		logger.Info("using in-memory repositories", "reason", "USE_MEMORY_REPOS=true")
		return repositories{
			player:  memory.NewPlayerRepository(memory.SeedPlayers()),
			round:   memory.NewRoundRepository(memory.SeedRounds(time.Now().UTC())),
			draft:   memory.NewDraftRepository(),
			scoring: memory.NewScoringRepository(),
		}, func() error { return nil }, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	return repositories{
		player:  postgres.NewPlayerRepository(db),
		round:   postgres.NewRoundRepository(db),
		draft:   postgres.NewDraftRepository(db),
		scoring: postgres.NewScoringRepository(db),
	}, db.Close, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
