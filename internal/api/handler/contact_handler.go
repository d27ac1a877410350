package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lamsaclean/site-api/internal/api/metrics"
	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// ContactHandler accepts public contact-form submissions and hands them
// to the processing queue.
type ContactHandler struct {
	limiter ports.RateLimiter
	queue   ports.ContactQueue

	limit  int
	window time.Duration
}

func NewContactHandler(limiter ports.RateLimiter, queue ports.ContactQueue, limit int, window time.Duration) *ContactHandler {
	return &ContactHandler{limiter: limiter, queue: queue, limit: limit, window: window}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Submit enqueues a contact-form submission.
//
// @Summary      Submit a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact message"
// @Success      202   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	ok, err := h.limiter.Allow(c.Request().Context(), "contact:"+c.RealIP(), h.limit, h.window)
	if err != nil {
		c.Logger().Warn("rate limiter unavailable: ", err)
		ok = true
	}
	if !ok {
		metrics.RateLimitRejectionsTotal.WithLabelValues("contact").Inc()
		return c.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "too many messages, try again later",
		})
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.queue.Enqueue(domain.ContactMessage{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		ReceivedAt: time.Now().UTC(),
	})
	metrics.ContactSubmissionsTotal.Inc()

	return c.JSON(http.StatusAccepted, map[string]any{
		"success": true,
		"message": "message received",
	})
}
