package bootstrap

import (
	"context"
	"log"
	"time"

	"study-assistant-be/internal/config"
	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/controller"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/mailer"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/internal/service"
	"study-assistant-be/pkg/llm/factory"
	speechopenai "study-assistant-be/pkg/speech/openai"

	pktNats "study-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	UserController        controller.IUserController
	ChatSessionController controller.IChatSessionController
	FeatureController     controller.IFeatureController
	ProjectController     controller.IProjectController
	MemoController        controller.IMemoController

	// Background workers (exposed for main.go to run)
	TitleWorker service.ITitleWorker

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	transcriber := speechopenai.NewWhisperTranscriber(cfg.Ai.OpenAIKey, cfg.Ai.WhisperModel)

	// 4. Infrastructure
	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, constant.TitleGenerationTopic)

	chatLogService := service.NewChatLogService(uowFactory, publisherService, eventPublisher, sysLogger)
	sessionService := service.NewChatSessionService(uowFactory)
	messageService := service.NewChatMessageService(uowFactory)
	feedbackService := service.NewFeedbackService(uowFactory)
	titleService := service.NewTitleService(uowFactory, llmProvider, cfg.Ai.TitleTimeout, sysLogger)
	titleWorker := service.NewTitleWorker(pubSub, constant.TitleGenerationTopic, titleService, sysLogger)

	authService := service.NewAuthService(uowFactory, emailService, eventPublisher, sysLogger, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)
	userService := service.NewUserService(uowFactory)
	projectService := service.NewProjectService(uowFactory)
	memoService := service.NewMemoService(uowFactory)

	translateService := service.NewTranslateService(llmProvider, chatLogService)
	summarizeService := service.NewSummarizeService(llmProvider, chatLogService)
	termService := service.NewTermService(llmProvider, chatLogService)
	speechService := service.NewSpeechService(transcriber, chatLogService)
	chatService := service.NewChatService(llmProvider, uowFactory, chatLogService)

	rateLimiter := serverutils.RateLimitMiddleware(rdb, cfg.App.RateLimitPerMinute, time.Minute)

	// 6. Controllers
	return &Container{
		AuthController:        controller.NewAuthController(authService),
		UserController:        controller.NewUserController(userService),
		ChatSessionController: controller.NewChatSessionController(sessionService, messageService, feedbackService),
		FeatureController: controller.NewFeatureController(
			translateService,
			summarizeService,
			termService,
			speechService,
			chatService,
			rateLimiter,
		),
		ProjectController: controller.NewProjectController(projectService),
		MemoController:    controller.NewMemoController(memoService),

		TitleWorker: titleWorker,
		Logger:      sysLogger,
	}
}
