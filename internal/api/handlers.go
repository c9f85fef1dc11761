package api

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"postwriter/internal/router"
	"postwriter/internal/service/assistant"
	"postwriter/internal/telegram"
	"postwriter/internal/worker"
)

// handleTimeout bounds one update's store and backend calls.
const handleTimeout = 2 * time.Minute

// Dispatcher enqueues per-user jobs for sequential processing.
type Dispatcher interface {
	Dispatch(worker.Job) error
}

// Handler wires HTTP routes to the bot router and the dispatcher.
type Handler struct {
	bot        *router.Router
	assistant  *assistant.Service
	dispatcher Dispatcher
	db         *sql.DB
	botToken   string
}

// NewHandler constructs a Handler instance.
func NewHandler(bot *router.Router, assistantSvc *assistant.Service, dispatcher Dispatcher, db *sql.DB, botToken string) *Handler {
	return &Handler{
		bot:        bot,
		assistant:  assistantSvc,
		dispatcher: dispatcher,
		db:         db,
		botToken:   botToken,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/webhook/:token", h.handleWebhook)
	engine.GET("/healthz", h.health)
	engine.GET("/api/users/:id/usage", h.userUsage)
}

// handleWebhook receives one Telegram update. It always answers 200 once the
// token checks out — Telegram retries non-2xx deliveries, and a retried
// update the bot chose to drop would just come back.
func (h *Handler) handleWebhook(c *gin.Context) {
	if c.Param("token") != h.botToken {
		c.Status(http.StatusNotFound)
		return
	}

	up, ok, err := telegram.DecodeUpdate(c.Request.Body)
	if err != nil {
		log.Printf("webhook: %v", err)
		c.String(http.StatusOK, "OK")
		return
	}
	if !ok {
		c.String(http.StatusOK, "OK")
		return
	}

	job := worker.Job{
		UserID: up.From.ID,
		Run: func() {
			ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
			defer cancel()
			h.bot.Handle(ctx, up)
		},
	}
	if err := h.dispatcher.Dispatch(job); err != nil {
		if errors.Is(err, worker.ErrDispatcherBusy) {
			log.Printf("webhook: dropping update for user %d: %v", up.From.ID, err)
		} else {
			log.Printf("webhook: dispatch: %v", err)
		}
	}
	c.String(http.StatusOK, "OK")
}

func (h *Handler) health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// userUsage exposes the cumulative token counters for one user. Operator
// convenience; the chat platform's identity is the only auth the bot has.
func (h *Handler) userUsage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	user, err := h.assistant.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                user.ID,
		"prompt_tokens":     user.PromptTokens,
		"completion_tokens": user.CompletionTokens,
	})
}
