package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/pkg/response"
	"github.com/oksasatya/go-complaint-tracker/pkg/validation"
)

type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type onboardingStageRequest struct {
	Stage *int `json:"stage" binding:"required,onboarding_stage"`
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":                  u.ID,
		"email":               u.Email,
		"name":                u.Name,
		"avatar_url":          u.AvatarURL,
		"onboarding_stage":    u.OnboardingStage,
		"onboarding_complete": u.OnboardingComplete,
		"created_at":          u.CreatedAt,
		"updated_at":          u.UpdatedAt,
	}
}

func (h *UserHandler) Details(c *gin.Context) {
	d, err := h.Svc.GetDetails(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	view := userView(d.User)
	view["complaints_count"] = d.ComplaintsCount
	response.Success(c, http.StatusOK, view, "user details", nil)
}

func (h *UserHandler) UpdateOnboardingStage(c *gin.Context) {
	var req onboardingStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateOnboardingStage(c.Request.Context(), c.GetString("userID"), *req.Stage)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"onboarding_stage":    u.OnboardingStage,
		"onboarding_complete": u.OnboardingComplete,
	}, "onboarding stage updated", nil)
}
