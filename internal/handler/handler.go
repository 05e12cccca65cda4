package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/gitkachoda/tg-api-hitter/internal/middleware"
	"github.com/gitkachoda/tg-api-hitter/internal/service"
)

// Handler manages all bot interactions
type Handler struct {
	bot           *tele.Bot
	configService *service.ConfigService
	relayService  *service.RelayService
	logger        *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	configService *service.ConfigService,
	relayService *service.RelayService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		configService: configService,
		relayService:  relayService,
		logger:        logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.Logging(h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/status", h.handleStatus)
	h.bot.Handle("/baseurl", h.handleBaseURL)
	h.bot.Handle("/stop", h.handleStop)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)
}
