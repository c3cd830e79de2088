package main

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kisan/config"
	"kisan/database"
	"kisan/pkg/ai"
	assistantCtrlImp "kisan/pkg/assistant/controllerImp"
	authCtrlImp "kisan/pkg/auth/controllerImp"
	authSvcImp "kisan/pkg/auth/serviceImp"
	"kisan/pkg/auth/token"
	chatCtrlImp "kisan/pkg/chat/controllerImp"
	"kisan/pkg/chat/hub"
	chatRepo "kisan/pkg/chat/repository"
	chatRepoImp "kisan/pkg/chat/repositoryImp"
	chatSvcImp "kisan/pkg/chat/serviceImp"
	cropCtrlImp "kisan/pkg/crop/controllerImp"
	cropRepoImp "kisan/pkg/crop/repositoryImp"
	cropSvcImp "kisan/pkg/crop/serviceImp"
	dashboardCtrlImp "kisan/pkg/dashboard/controllerImp"
	dashboardSvcImp "kisan/pkg/dashboard/serviceImp"
	expenseCtrlImp "kisan/pkg/expense/controllerImp"
	expenseRepoImp "kisan/pkg/expense/repositoryImp"
	expenseSvcImp "kisan/pkg/expense/serviceImp"
	farmCtrlImp "kisan/pkg/farm/controllerImp"
	farmRepoImp "kisan/pkg/farm/repositoryImp"
	farmSvcImp "kisan/pkg/farm/serviceImp"
	healthCtrlImp "kisan/pkg/health/controllerImp"
	"kisan/pkg/logger"
	marketCtrlImp "kisan/pkg/market/controllerImp"
	marketRepoImp "kisan/pkg/market/repositoryImp"
	"kisan/pkg/market/scrape"
	marketSvcImp "kisan/pkg/market/serviceImp"
	pestCtrlImp "kisan/pkg/pest/controllerImp"
	pestRepoImp "kisan/pkg/pest/repositoryImp"
	pestService "kisan/pkg/pest/service"
	pestSvcImp "kisan/pkg/pest/serviceImp"
	"kisan/pkg/plantid"
	schemeCtrlImp "kisan/pkg/scheme/controllerImp"
	schemeRepoImp "kisan/pkg/scheme/repositoryImp"
	schemeSvcImp "kisan/pkg/scheme/serviceImp"
	taskCtrlImp "kisan/pkg/task/controllerImp"
	taskRepoImp "kisan/pkg/task/repositoryImp"
	taskSvcImp "kisan/pkg/task/serviceImp"
	userCtrlImp "kisan/pkg/user/controllerImp"
	userRepoImp "kisan/pkg/user/repositoryImp"
	userSvcImp "kisan/pkg/user/serviceImp"
	"kisan/pkg/weather"
	weatherCtrlImp "kisan/pkg/weather/controllerImp"
	"kisan/router"
)

type app struct {
	echo    *echo.Echo
	closers []func()
}

// Close releases connections in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// build opens every store and wires the HTTP surface. Redis, Mongo, and the
// model backends are optional: an unset address or key selects the local
// fallback.
func build(ctx context.Context, cfg config.AppConfig) (_ *app, err error) {
	log := logger.L()
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { database.Close(db) })
	if cfg.SeedOnStart {
		n, err := database.Seed(db, time.Now())
		if err != nil {
			return nil, err
		}
		log.Info("catalog seeded", zap.Int("crops", n.Crops), zap.Int("pests", n.Pests),
			zap.Int("schemes", n.Schemes), zap.Int("prices", n.MarketPrices))
	}

	health := healthCtrlImp.NewHealthCtrl(db)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// weather
	var cache weather.Cache = weather.NewMemoryCache()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		cache = weather.NewRedisCache(rdb)
		health.With("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		log.Info("weather cache", zap.String("backend", "redis"), zap.String("addr", cfg.RedisAddr))
	}
	wp := weather.NewCached(weather.NewOpenMeteo(cfg.GeocodeEndpoint, cfg.WeatherEndpoint), cache, weather.DefaultTTL)

	// model
	model, err := pickModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	advisor := ai.NewAdvisor(model)
	var classifier pestService.Classifier = advisor
	if cfg.PlantIDAPIKey != "" {
		classifier = plantid.New(cfg.PlantIDEndpoint, cfg.PlantIDAPIKey)
	}

	// chat
	messages, err := messageStore(ctx, cfg, db, health, a)
	if err != nil {
		return nil, err
	}
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kisan_chat_dropped_events_total",
		Help: "Chat events discarded because a subscriber buffer was full.",
	})
	reg.MustRegister(dropped)
	h := hub.New()
	h.OnDrop(dropped.Inc)

	maker, err := token.NewJWTMaker(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	users := userRepoImp.New(db)
	farms := farmRepoImp.New(db)
	tasks := taskRepoImp.New(db)

	chatSvc := chatSvcImp.NewChatService(messages, users, users, h)
	userSvc := userSvcImp.NewUserService(users, chatSvc)
	authSvc := authSvcImp.NewAuthService(users, users, maker)

	var importer marketSvcImp.Importer
	if len(cfg.MarketImportDomains) > 0 {
		importer = scrape.NewFetcher(cfg.MarketImportDomains, scrape.DefaultMaxBytes)
	}

	ctl := router.Controllers{
		Auth:      authCtrlImp.New(authSvc, userSvc),
		User:      userCtrlImp.New(userSvc),
		Farm:      farmCtrlImp.New(farmSvcImp.NewFarmService(farms)),
		Expense:   expenseCtrlImp.New(expenseSvcImp.NewExpenseService(expenseRepoImp.New(db), expenseRepoImp.NewIncome(db))),
		Task:      taskCtrlImp.New(taskSvcImp.NewTaskService(tasks)),
		Crop:      cropCtrlImp.New(cropSvcImp.NewCropService(cropRepoImp.New(db), farms, wp, advisor)),
		Weather:   weatherCtrlImp.New(wp),
		Assistant: assistantCtrlImp.New(advisor),
		Pest:      pestCtrlImp.New(pestSvcImp.NewPestService(pestRepoImp.New(db), classifier)),
		Market:    marketCtrlImp.New(marketSvcImp.NewMarketService(marketRepoImp.New(db), importer)),
		Scheme:    schemeCtrlImp.New(schemeSvcImp.NewSchemeService(schemeRepoImp.New(db))),
		Chat:      chatCtrlImp.New(chatSvc, cfg.CORSOrigins),
		Dashboard: dashboardCtrlImp.New(dashboardSvcImp.NewDashboardService(users, farms, tasks, messages, wp)),
		Health:    health,
	}
	a.echo = router.New(echo.New(), ctl, router.Options{
		Maker:       maker,
		Accounts:    users,
		CORSOrigins: cfg.CORSOrigins,
		Registry:    reg,
	})
	return a, nil
}

func pickModel(ctx context.Context, cfg config.AppConfig) (ai.Model, error) {
	switch {
	case cfg.GeminiAPIKey != "":
		m, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		logger.L().Info("model", zap.String("backend", "gemini"), zap.String("model", cfg.GeminiModel))
		return m, nil
	case cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "":
		logger.L().Info("model", zap.String("backend", "openai"), zap.String("model", cfg.LLMModel))
		return ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel), nil
	}
	logger.L().Warn("no model configured; advice and assistant endpoints return 503")
	return ai.Disabled(), nil
}

func messageStore(ctx context.Context, cfg config.AppConfig, db *gorm.DB, health *healthCtrlImp.HealthCtrl, a *app) (chatRepo.MessageRepository, error) {
	if cfg.MongoURI == "" {
		return chatRepoImp.New(db), nil
	}
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(cctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	a.closers = append(a.closers, func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		_ = client.Disconnect(dctx)
	})
	mdb := client.Database(cfg.MongoDB)
	if err := chatRepoImp.EnsureIndexes(cctx, mdb); err != nil {
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	health.With("mongo", func(ctx context.Context) error { return client.Ping(ctx, nil) })
	logger.L().Info("chat store", zap.String("backend", "mongo"), zap.String("db", cfg.MongoDB))
	return chatRepoImp.NewMongo(mdb), nil
}
