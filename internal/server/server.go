package server

import (
	"backend-healthband/internal/activity"
	"backend-healthband/internal/auth"
	"backend-healthband/internal/config"
	"backend-healthband/internal/contact"
	"backend-healthband/internal/emergency"
	"backend-healthband/internal/location"
	"backend-healthband/internal/profile"
	"backend-healthband/internal/stream"
	"backend-healthband/internal/vitals"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Feed   *vitals.Feed
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, feed *vitals.Feed) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Feed:   feed,
		Stream: stream.NewHub(redisClient),
	}

	// every snapshot from the wearable reaches dashboard websockets as-is
	if feed != nil {
		feed.SubscribeRaw(func(payload []byte) {
			s.Stream.Broadcast("vitals", payload)
		})
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	sampler := location.NewRedisSampler(s.Redis)
	activitySvc := activity.NewService(s.DB)
	sessions := activity.NewManager(sampler, s.Feed, activitySvc)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB, s.Cfg.PhonePrefix))
	activity.RegisterRoutes(s.App.Group("/activities"), sessions, activitySvc, jwtMiddleware)
	location.RegisterRoutes(s.App.Group("/location"), sampler, jwtMiddleware)
	contact.RegisterRoutes(s.App.Group("/contacts"), contact.NewService(s.DB, s.Cfg.PhonePrefix), jwtMiddleware)
	profile.RegisterRoutes(s.App.Group("/profile"), profile.NewService(s.DB, s.Cfg.PhonePrefix), jwtMiddleware)
	emergency.RegisterRoutes(s.App.Group("/emergency"), emergency.NewService(s.Cfg.SOSWebhookURL), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
