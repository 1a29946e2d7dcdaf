package api

import (
	"embed"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ElBenerDev/asistenteAltamirano/internal/chat"
	"github.com/ElBenerDev/asistenteAltamirano/internal/listing"
	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
	"github.com/ElBenerDev/asistenteAltamirano/internal/render"
)

//go:embed static
var staticFiles embed.FS

type Handler struct {
	sender    chat.Sender
	extractor *listing.Extractor
	renderer  *render.Renderer
	logger    *logrus.Logger
}

func NewHandler(sender chat.Sender, extractor *listing.Extractor, renderer *render.Renderer, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if extractor == nil {
		extractor = listing.NewExtractor(listing.DefaultBaseOrigin, logger)
	}
	if renderer == nil {
		renderer = render.NewRenderer("", logger)
	}

	return &Handler{
		sender:    sender,
		extractor: extractor,
		renderer:  renderer,
		logger:    logger,
	}
}

// Chat forwards one message upstream and answers with the rendered turn.
// The browser keeps the thread id and sends it back on the next message.
func (h *Handler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse chat request")
		c.JSON(http.StatusBadRequest, models.GatewayResponse{
			Status: "error",
			Error:  chat.UserMessage(err),
		})
		return
	}

	var sess chat.Session
	if req.ThreadID != nil {
		sess = sess.With(*req.ThreadID)
	}

	ctx := chat.WithRequestID(c.Request.Context(), c.GetString(requestIDKey))
	reply, next, err := h.sender.Send(ctx, sess, req.Content)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, chat.ErrEmptyInput) {
			status = http.StatusBadRequest
		}
		h.logger.WithError(err).WithField("thread_id", sess.ThreadID).Error("Chat request failed")
		c.JSON(status, models.GatewayResponse{
			Status:   "error",
			ThreadID: sess.ThreadID,
			Error:    chat.UserMessage(err),
		})
		return
	}

	turn := chat.Route(reply, h.extractor)
	html, err := h.renderer.Turn(turn)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render chat turn")
		c.JSON(http.StatusInternalServerError, models.GatewayResponse{
			Status:   "error",
			ThreadID: next.ThreadID,
			Error:    chat.UserMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, models.GatewayResponse{
		Status:   models.StatusSuccess,
		Response: string(html),
		ThreadID: next.ThreadID,
		IsHTML:   true,
		Listings: turn.Listings,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Index serves the chat widget page.
func (h *Handler) Index(c *gin.Context) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		h.logger.WithError(err).Error("Failed to read widget page")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
