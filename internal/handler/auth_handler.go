package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	CurrentUser(claims *models.JWTClaims) (*models.CurrentUser, error)
}

type onboardingService interface {
	Onboard(ctx context.Context, req service.OnboardingRequest) (*service.OnboardingResult, error)
}

// AuthHandler wires HTTP endpoints to the auth and onboarding services.
type AuthHandler struct {
	service    authService
	onboarding onboardingService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, onboarding onboardingService) *AuthHandler {
	return &AuthHandler{service: svc, onboarding: onboarding}
}

// Login godoc
// @Summary Authenticate user
// @Description Exchanges email and password for a BaaS session carrying the app role
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser(claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Onboard godoc
// @Summary Link a staff profile to the signed-in account
// @Description Grants the staff role unless the account already holds one.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.OnboardingRequest true "Staff profile"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /onboarding [post]
func (h *AuthHandler) Onboard(c *gin.Context) {
	var req service.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	result, err := h.onboarding.Onboard(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
