package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorbot/internal/cache"
	"mentorbot/internal/config"
	"mentorbot/internal/questionbank"
	"mentorbot/internal/repository"
	"mentorbot/internal/service"
	"mentorbot/internal/transport/rest"
	"mentorbot/internal/transport/telegram"
	"mentorbot/internal/transport/ws"
)

func main() {
	log.Println("started")
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	ctx := context.Background()

	// Load configs and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Profile model: %s", aiConfig.Model)
	log.Printf("  Chat model:    %s", aiConfig.ChatModel)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:       configured ✓")
	} else {
		log.Println("  API Key:       NOT SET (using offline generator)")
	}
	botConfig := config.DefaultBotConfig()

	// Question bank
	bank, err := questionbank.Load()
	if err != nil {
		log.Fatal("Failed to load question bank:", err)
	}
	log.Printf("Question bank loaded: %d demographic, %d instrument questions",
		len(bank.DemographicQuestions()), len(bank.InstrumentQuestions()))

	// MongoDB connection
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
		log.Println("Warning: MONGO_URI not set, using default")
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "mentorbot"
	}
	db := mongoClient.Database(dbName)

	// Redis connection
	redisAddr := os.Getenv("REDIS_URI")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
		log.Println("Warning: REDIS_URI not set, using default")
	}
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	profileRepo := repository.NewProfileRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	reminderRepo := repository.NewReminderRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	historyCache := cache.NewHistoryCache(rdb)

	// Narrative generator: real API when configured, offline otherwise
	var generator service.NarrativeGenerator
	if aiConfig.IsEnabled() {
		generator = service.NewOpenAIGenerator(aiConfig)
	} else {
		generator = service.NewStaticGenerator()
	}

	// Initialize services
	authSvc := service.NewAuthService()
	profileSvc := service.NewProfileService(bank, generator, profileRepo, answerRepo)
	surveySvc := service.NewSurveyService(bank, sessionCache, profileSvc)
	chatSvc := service.NewChatService(generator, profileSvc, historyCache)
	adviceSvc := service.NewAdviceService(profileSvc)
	meditationSvc := service.NewMeditationService(profileSvc, nil)

	// Telegram transport
	tgClient := telegram.NewClient(botConfig)
	handlers := telegram.NewHandlers(surveySvc, profileSvc, chatSvc, adviceSvc,
		meditationSvc, nil, userRepo, wsHub)
	reminderSvc := service.NewReminderService(reminderRepo, handlers.ReminderNotifier(tgClient))
	handlers.SetReminders(reminderSvc)

	tgRouter := telegram.NewRouter()
	handlers.Register(tgRouter)
	bot := telegram.NewBot(tgClient, tgRouter, botConfig)

	// Start reminder scheduler
	if err := reminderSvc.Start(ctx); err != nil {
		log.Fatal("Failed to start reminder scheduler:", err)
	}

	// Create admin API router with container
	container := &rest.Container{
		AuthService:     authSvc,
		ProfileService:  profileSvc,
		ReminderService: reminderSvc,
		Users:           userRepo,
		WSHub:           wsHub,
	}
	router := rest.NewRouter(container)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start admin server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Admin server starting on :%s", port)
		log.Println("Endpoints:")
		log.Println("  POST   /v1/auth/login")
		log.Println("  GET    /v1/users/{userId}/profile")
		log.Println("  DELETE /v1/users/{userId}/profile")
		log.Println("  POST   /v1/users/{userId}/profile/retry")
		log.Println("  GET    /v1/users/{userId}/reminder")
		log.Println("  GET    /v1/stats")
		log.Println("  WS     /v1/ws/events")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Start the bot loop
	botCtx, stopBot := context.WithCancel(ctx)
	go func() {
		if err := bot.Run(botCtx); err != nil && err != context.Canceled {
			log.Printf("Bot stopped: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	stopBot()
	reminderSvc.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Exited")
}
