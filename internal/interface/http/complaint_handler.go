package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/pkg/response"
	"github.com/oksasatya/go-complaint-tracker/pkg/validation"
)

const maxAttachmentBytes = 10 << 20

type ComplaintHandler struct {
	Svc    ComplaintService
	Logger *logrus.Logger
}

func NewComplaintHandler(svc ComplaintService, logger *logrus.Logger) *ComplaintHandler {
	return &ComplaintHandler{Svc: svc, Logger: logger}
}

type createComplaintRequest struct {
	ComplaintType string                  `json:"complaint_type" binding:"required,complaint_type"`
	Details       entity.ComplaintDetails `json:"details"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,complaint_status"`
}

func complaintView(cm *entity.Complaint) gin.H {
	return gin.H{
		"id":                cm.ID,
		"user_id":           cm.UserID,
		"complaint_type":    cm.Type,
		"status":            cm.Status,
		"details":           cm.Details,
		"created_at":        cm.CreatedAt,
		"updated_at":        cm.UpdatedAt,
		"status_updated_at": cm.StatusUpdatedAt,
	}
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.CreateComplaint(c.Request.Context(), c.GetString("userID"), entity.ComplaintType(req.ComplaintType), req.Details)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, complaintView(cm), "complaint created", nil)
}

func (h *ComplaintHandler) List(c *gin.Context) {
	list, err := h.Svc.ListComplaints(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, cm := range list {
		out = append(out, complaintView(cm))
	}
	response.Success(c, http.StatusOK, out, "complaints", gin.H{"count": len(out)})
}

// Search: GET /api/complaints/search?q=term&size=10
func (h *ComplaintHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing q", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchComplaints(c.Request.Context(), c.GetString("userID"), q, size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.TransitionComplaint(c.Request.Context(), c.Param("id"), c.GetString("userID"), entity.ComplaintStatus(req.Status))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, complaintView(cm), "status updated", nil)
}

func (h *ComplaintHandler) Metrics(c *gin.Context) {
	m, err := h.Svc.GetComplaintMetrics(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"complaint_id":      m.ComplaintID,
		"status":            m.Status,
		"minutes_in_status": m.MinutesInStatus,
		"minutes_total":     m.MinutesTotal,
	}, "complaint metrics", nil)
}

// UploadAttachment: POST /api/complaints/:id/attachments (multipart, field "file")
func (h *ComplaintHandler) UploadAttachment(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAttachmentBytes+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > maxAttachmentBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	a, err := h.Svc.AddAttachment(c.Request.Context(), c.Param("id"), c.GetString("userID"), f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":           a.ID,
		"complaint_id": a.ComplaintID,
		"url":          a.URL,
		"content_type": a.ContentType,
		"created_at":   a.CreatedAt,
	}, "attachment uploaded", nil)
}
