package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-ircd/internal/core"
	"github.com/vovakirdan/wirechat-ircd/internal/store"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// APIHandlers serves the read-only admin endpoints.
type APIHandlers struct {
	dispatcher *core.Dispatcher
	history    store.ChannelStore
	log        *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance. history may be nil.
func NewAPIHandlers(d *core.Dispatcher, history store.ChannelStore, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{dispatcher: d, history: history, log: logger}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ChannelResponse is one live channel.
type ChannelResponse struct {
	Name      string    `json:"name"`
	Members   []string  `json:"members"`
	Operators []string  `json:"operators"`
	CreatedAt time.Time `json:"created_at"`
}

// ChannelHistoryResponse is one recorded channel lifetime.
type ChannelHistoryResponse struct {
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"created_at"`
	DestroyedAt *time.Time `json:"destroyed_at,omitempty"`
	Joins       int64      `json:"joins"`
	PeakMembers int        `json:"peak_members"`
}

func toChannelResponse(info core.ChannelInfo) ChannelResponse {
	resp := ChannelResponse{
		Name:      info.Name,
		Members:   info.Members,
		Operators: info.Operators,
		CreatedAt: info.CreatedAt,
	}
	if resp.Members == nil {
		resp.Members = []string{}
	}
	if resp.Operators == nil {
		resp.Operators = []string{}
	}
	return resp
}

// ListChannels returns every live channel.
// GET /api/channels
func (h *APIHandlers) ListChannels(c *gin.Context) {
	channels := h.dispatcher.Channels()
	resp := make([]ChannelResponse, 0, len(channels))
	for _, info := range channels {
		resp = append(resp, toChannelResponse(info))
	}
	c.JSON(http.StatusOK, resp)
}

// GetChannel returns a single live channel.
// GET /api/channels/:name
func (h *APIHandlers) GetChannel(c *gin.Context) {
	info, ok := h.dispatcher.Channel(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "channel not found"})
		return
	}
	c.JSON(http.StatusOK, toChannelResponse(info))
}

// ChannelHistory returns recorded channel lifetimes, newest first.
// GET /api/history/channels?limit=N
func (h *APIHandlers) ChannelHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.history.ListChannels(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list channel history")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	resp := make([]ChannelHistoryResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, ChannelHistoryResponse{
			Name:        r.Name,
			CreatedAt:   r.CreatedAt,
			DestroyedAt: r.DestroyedAt,
			Joins:       r.Joins,
			PeakMembers: r.PeakMembers,
		})
	}
	c.JSON(http.StatusOK, resp)
}
