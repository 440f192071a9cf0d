package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/pkg/response"
)

type NotificationHandler struct {
	Svc    NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// List: GET /api/notifications?limit=20
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.Svc.ListForUser(c.Request.Context(), c.GetString("userID"), limit)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, n := range list {
		out = append(out, gin.H{
			"id":         n.ID,
			"type":       n.Type,
			"title":      n.Title,
			"body":       n.Body,
			"is_sent":    n.IsSent,
			"metadata":   n.Metadata,
			"created_at": n.CreatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "notifications", gin.H{"count": len(out)})
}
