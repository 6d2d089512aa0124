package bootstrap

import (
	"ai-speechcoach-be/internal/config"
	"ai-speechcoach-be/internal/controller"
	"ai-speechcoach-be/internal/pkg/logger"
	"ai-speechcoach-be/internal/repository/memory"
	"ai-speechcoach-be/internal/service"
	"ai-speechcoach-be/pkg/llm"
	"ai-speechcoach-be/pkg/llm/deepseek"
	"ai-speechcoach-be/pkg/llm/ollama"
	"ai-speechcoach-be/pkg/speech"
)

type Container struct {
	// Controllers
	SpeechController   controller.ISpeechController
	ChatController     controller.IChatController
	SessionController  controller.ISessionController
	ExerciseController controller.IExerciseController
	ReviewController   controller.IReviewController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Generation backends. The router dispatches on the model hint; the
	// local adapter is also injected directly where a call must stay local
	// (feedback drills, session chat with context chaining).
	local := ollama.NewProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel, cfg.Ai.RequestTimeout)
	remote := deepseek.NewProvider(cfg.Ai.DeepSeekAPIKey, cfg.Ai.DeepSeekBaseURL, cfg.Ai.DeepSeekModel, cfg.Ai.RequestTimeout)
	router := llm.NewRouter(local, remote, cfg.Ai.DefaultModel)

	// 3. Speech backends (pass-through only)
	asrClient := speech.NewASRClient(cfg.Speech.AsrURL, cfg.Ai.RequestTimeout)
	ttsClient := speech.NewTTSClient(cfg.Speech.TtsURL, cfg.Ai.RequestTimeout)

	// 4. Repositories
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL)

	// 5. Services
	themeService := service.NewThemeService(router, sysLogger)
	shadowService := service.NewShadowService(router, local, sysLogger)
	substitutionService := service.NewSubstitutionService(router, local, sysLogger)
	expansionService := service.NewExpansionService(local, sysLogger)
	reviewService := service.NewReviewService(router, sysLogger)
	feedbackService := service.NewFeedbackService(local, sysLogger)
	chatService := service.NewChatService(local)
	sessionService := service.NewSessionService(sessionRepo, local, sysLogger)
	speechService := service.NewSpeechService(asrClient, ttsClient)

	// 6. Controllers
	return &Container{
		SpeechController:   controller.NewSpeechController(speechService),
		ChatController:     controller.NewChatController(chatService),
		SessionController:  controller.NewSessionController(sessionService),
		ExerciseController: controller.NewExerciseController(themeService, shadowService, substitutionService, expansionService, feedbackService),
		ReviewController:   controller.NewReviewController(reviewService),
		Logger:             sysLogger,
	}
}
