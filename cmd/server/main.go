package main

import (
	"context"
	"time"

	"github.com/cardsage/cardsage/internal/api"
	v1 "github.com/cardsage/cardsage/internal/api/v1"
	"github.com/cardsage/cardsage/internal/config"
	"github.com/cardsage/cardsage/internal/conversation"
	"github.com/cardsage/cardsage/internal/httpclient"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/parser"
	"github.com/cardsage/cardsage/internal/phrasing"
	"github.com/cardsage/cardsage/internal/repository"
	"github.com/cardsage/cardsage/internal/service"
	"github.com/cardsage/cardsage/internal/validator"
	"go.uber.org/fx"

	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/gin-gonic/gin"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			provideLogger,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Repositories
			repository.NewCardRepository,

			// Query understanding
			parser.NewCurrencyNormalizer,
			provideClassifier,
			parser.NewExtractor,

			// Conversation carry-over
			conversation.NewStore,

			// Phrasing collaborator
			phrasing.NewService,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewRewardService,
			service.NewRedemptionService,
			service.NewComparisonService,
			service.NewQueryService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideLogger(cfg *config.Configuration) (*logger.Logger, error) {
	return logger.NewLogger(cfg.Logging.Level)
}

// provideClassifier builds the intent classifier against the loaded card
// set so alias matching stays in sync with the card files on disk.
func provideClassifier(repo card.Repository, log *logger.Logger) (*parser.Classifier, error) {
	cards, err := repo.List(context.Background())
	if err != nil {
		return nil, err
	}
	return parser.NewClassifier(cards, log), nil
}

func provideHandlers(
	logger *logger.Logger,
	queryService service.QueryService,
	phrasingService phrasing.Service,
	conversations *conversation.Store,
	repo card.Repository,
) api.Handlers {
	return api.Handlers{
		Health: v1.NewHealthHandler(logger),
		Query:  v1.NewQueryHandler(queryService, phrasingService, conversations, repo, logger),
		Card:   v1.NewCardHandler(repo, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
