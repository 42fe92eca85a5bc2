package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	bookingRepo "fundilink/database/repository/booking"
	"fundilink/models"
	"fundilink/services/booking"
	"fundilink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHandler exposes the discovery and assignment endpoints.
type BookingHandler struct {
	Matcher booking.MatchingService
	Service booking.BookingService
	Cache   *redis.Client
	Logger  *zap.Logger
}

func NewBookingHandler(matcher booking.MatchingService, svc booking.BookingService, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Matcher: matcher, Service: svc, Cache: cache, Logger: logger}
}

// DiscoverProviders runs candidate discovery and caches the ranked list as a
// short-lived session so a follow-up booking call can reuse it. Zero
// eligible candidates is a successful empty response, so clients can prompt
// the user to broaden criteria.
func (h *BookingHandler) DiscoverProviders(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	candidates, err := h.Matcher.MatchProviders(c.Request.Context(), req)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}
	if candidates == nil {
		candidates = []models.MatchCandidate{}
	}

	sessionID := uuid.New().String()
	sessionData, err := json.Marshal(candidates)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to marshal discovery session", err.Error())
		return
	}
	ctx := c.Request.Context()
	if err := h.Cache.Set(ctx, utils.DiscoverySessionPrefix+sessionID, sessionData, utils.DiscoverySessionTTL).Err(); err != nil {
		// Discovery still succeeded; the client just cannot reuse the session.
		h.Logger.Warn("failed to cache discovery session", zap.Error(err))
		sessionID = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": sessionID,
		"providers": candidates,
	})
}

// CreateBooking resolves and commits a booking. The request either names an
// explicit provider selection or relies on auto-assignment, optionally
// reusing a cached discovery session.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		SessionID      string                `json:"sessionID"`
		BookingRequest models.BookingRequest `json:"bookingRequest"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	userID := c.GetString("userID")

	ctx := c.Request.Context()
	var ranked []models.MatchCandidate
	if input.SessionID != "" && input.BookingRequest.SelectedProvider == nil {
		sessionData, err := h.Cache.Get(ctx, utils.DiscoverySessionPrefix+input.SessionID).Result()
		if err == nil {
			if err := json.Unmarshal([]byte(sessionData), &ranked); err != nil {
				h.Logger.Warn("failed to parse discovery session, rerunning discovery", zap.Error(err))
				ranked = nil
			}
		}
		// An expired session just means discovery runs again.
	}

	committed, err := h.Service.CreateBooking(ctx, userID, input.BookingRequest, ranked)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	if input.SessionID != "" {
		h.Cache.Del(ctx, utils.DiscoverySessionPrefix+input.SessionID)
	}
	c.JSON(http.StatusCreated, gin.H{"booking": committed})
}

// GetBooking fetches a single booking.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	committed, err := h.Service.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": committed})
}

// UpdateBookingStatus applies a status transition.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		utils.JSONFieldError(c, http.StatusBadRequest, "status is required", "status")
		return
	}

	committed, err := h.Service.TransitionBooking(c.Request.Context(), id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found", id)
		case errors.Is(err, bookingRepo.ErrStaleStatus), booking.IsValidationError(err):
			utils.JSONError(c, http.StatusConflict, "invalid status transition", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update booking status", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": committed})
}

// writeEngineError maps engine error types onto HTTP responses. A rejected
// explicit selection is surfaced as-is; it is never downgraded to
// auto-assignment.
func (h *BookingHandler) writeEngineError(c *gin.Context, err error) {
	var valErr *booking.ValidationError
	var selErr *booking.SelectionInvalidError
	switch {
	case errors.As(err, &valErr):
		utils.JSONFieldError(c, http.StatusBadRequest, valErr.Error(), valErr.Field)
	case errors.As(err, &selErr):
		utils.JSONFieldError(c, http.StatusUnprocessableEntity, selErr.Error(), selErr.Field)
	case errors.Is(err, booking.ErrNoCandidates):
		utils.JSONError(c, http.StatusNotFound, "no eligible providers matched the request", "")
	default:
		h.Logger.Error("booking engine failure", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
