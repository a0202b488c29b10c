package app

import (
	"context"
	"time"

	"hirelink/internal/config"
	"hirelink/internal/database"
	dbpostgres "hirelink/internal/database/postgres"
	"hirelink/internal/infrastructure/ai"
	"hirelink/internal/infrastructure/cache"
	"hirelink/internal/metrics"
	"hirelink/internal/pkg/jwt"
	"hirelink/internal/repository"
	"hirelink/internal/usecase/application"
	"hirelink/internal/usecase/auth"
	"hirelink/internal/usecase/interview"
	jobuc "hirelink/internal/usecase/job"
	"hirelink/internal/usecase/recommendation"
	"hirelink/internal/usecase/talent"
	useruc "hirelink/internal/usecase/user"
	"hirelink/internal/ws"

	"go.uber.org/zap"
)

// Container owns the process-wide dependencies shared by every command.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Redis   *cache.Redis
	Metrics *metrics.Metrics
	Hub     *ws.Hub
	JWT     jwt.Service

	Users        repository.UserRepository
	HRs          repository.HRRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Vectors      repository.CandidateVectorRepository

	Indexer         *talent.Indexer
	Searcher        *talent.Searcher
	Auth            *auth.Service
	Profiles        *useruc.Service
	JobPosts        *jobuc.Service
	Apply           *application.Service
	Recommendations *recommendation.Service
	Interviews      *interview.Service
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	providers, err := ai.NewProviders(ctx, cfg.AI, m, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Redis:   cache.NewRedis(cfg.Redis, logger),
		Metrics: m,
		Hub:     ws.NewHub(logger, m),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),

		Users:        repository.NewPostgresUserRepository(db),
		HRs:          repository.NewPostgresHRRepository(db),
		Jobs:         repository.NewPostgresJobRepository(db),
		Applications: repository.NewPostgresApplicationRepository(db),
		Vectors:      repository.NewPostgresCandidateVectorRepository(db),
	}

	notifier := ws.NewNotifier(c.Hub)

	c.Indexer = talent.NewIndexer(providers.Embedder, c.Vectors, c.Users, logger)
	c.Searcher = talent.NewSearcher(providers.Embedder, c.Vectors, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	c.Auth = auth.NewService(c.Users, c.HRs, c.JWT, c.Indexer)
	c.Profiles = useruc.NewService(c.Users, c.Indexer, c.Redis, logger)
	c.JobPosts = jobuc.NewService(c.Jobs, c.HRs, c.Redis, notifier, logger)
	c.Apply = application.NewService(c.Jobs, c.Users, c.Applications, notifier, m, logger)
	c.Recommendations = recommendation.NewService(c.Users, c.Jobs, c.Redis, cfg.Recommendation.CacheTTL, m, logger)
	c.Interviews = interview.NewService(
		providers.Chat,
		providers.Transcriber,
		cache.NewSessionStore(c.Redis, cfg.Interview.SessionTTL),
		interview.Config{
			DefaultQuestionCount: cfg.Interview.DefaultQuestionCount,
			MaxQuestionCount:     cfg.Interview.MaxQuestionCount,
			MaxAudioBytes:        cfg.Interview.MaxAudioBytes,
		},
		logger,
	)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
