// File: roombook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombook/config"
	"roombook/database"
	roomRepo "roombook/database/repository/room"
	scheduleRepo "roombook/database/repository/schedule"
	"roombook/handlers"
	"roombook/middleware"
	"roombook/models"
	"roombook/routes"
	"roombook/services/booking"
	"roombook/services/dialogue"
	ai "roombook/services/intelligence"
	"roombook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// seedRooms is the demo room directory loaded on first start.
var seedRooms = []models.Room{
	{ID: "1", Name: "Conference Room A", Capacity: 10, Amenities: []string{"projector", "whiteboard"}, CreatedAt: time.Now().UTC()},
	{ID: "2", Name: "Conference Room B", Capacity: 8, Amenities: []string{"whiteboard"}, CreatedAt: time.Now().UTC()},
	{ID: "3", Name: "Board Room", Capacity: 20, Amenities: []string{"projector", "video conferencing", "whiteboard"}, CreatedAt: time.Now().UTC()},
	{ID: "4", Name: "Huddle Room", Capacity: 4, Amenities: []string{"tv screen"}, CreatedAt: time.Now().UTC()},
	{ID: "5", Name: "Training Room", Capacity: 30, Amenities: []string{"projector", "speakers"}, CreatedAt: time.Now().UTC()},
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	aiTimeout := time.Duration(config.AppConfig.AITimeoutSeconds) * time.Second

	// Storage. Memory mode runs the whole service in-process for local
	// development and demos.
	var (
		rooms       roomRepo.RoomRepository
		schedule    scheduleRepo.ScheduleRepository
		sessions    dialogue.SessionStore
		mongoClient *mongo.Client
		redisDep    *redis.Client
	)
	if config.AppConfig.UseMemoryStores {
		rooms = roomRepo.NewMemoryRoomRepo()
		schedule = scheduleRepo.NewMemoryScheduleRepo()
		sessions = dialogue.NewMemorySessionStore(sessionTTL)
	} else {
		database.InitDB()
		utils.InitSessionCache()
		mongoClient = database.MongoClient
		redisDep = utils.GetSessionCacheClient()
		rooms = roomRepo.NewMongoRoomRepo()
		schedule = scheduleRepo.NewMongoScheduleRepo()
		sessions = dialogue.NewRedisSessionStore(redisDep, sessionTTL)
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := rooms.Seed(seedCtx, seedRooms); err != nil {
		logger.Sugar().Fatalf("main: failed to seed rooms: %v", err)
	}
	seedCancel()

	utils.StartHealthMonitor(redisDep, mongoClient)

	// Slot extraction. The rule extractor is always available; Gemini is
	// layered on top when an API key is configured.
	ruleExtractor := ai.NewRuleExtractor()
	var extractor ai.Extractor = ruleExtractor
	var fallback ai.Extractor
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := ai.NewGeminiClient(key, config.AppConfig.AIModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		extractor = ai.NewGeminiExtractor(gemini)
		fallback = ruleExtractor
	}

	commitEngine := booking.NewCommitEngine(rooms, schedule)
	dialogueManager := dialogue.NewManager(extractor, fallback, commitEngine, rooms, sessions, aiTimeout)

	roomHandler := handlers.NewRoomHandler(rooms)
	bookingHandler := handlers.NewBookingHandler(commitEngine)
	aiHandler := handlers.NewAIHandler(extractor, rooms, dialogueManager, aiTimeout)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoomRoutes(router, roomHandler)
	routes.RegisterBookingRoutes(router, bookingHandler, aiHandler)
	routes.RegisterAIRoutes(router, aiHandler)
	routes.RegisterHealthRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
