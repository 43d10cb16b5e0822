package handler

import (
	"fmt"
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/httperr"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email/", h.RequestCode)
	rg.POST("/token/", h.ObtainToken)
	rg.POST("/token/refresh/", h.RefreshToken)
	rg.POST("/token/revoke/", h.RevokeToken)
}

// RequestCode handles POST /auth/email/
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.RequestCode(ctx, req.Email); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EmailResponse{
		Email:   req.Email,
		Message: fmt.Sprintf("confirmation code sent to %s, exchange it at /auth/token/", req.Email),
	})
}

// ObtainToken handles POST /auth/token/
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pair, err := h.authService.ObtainToken(ctx, req.Email, req.Secret())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     pair.AccessToken,
		Refresh:   pair.RefreshToken,
		ExpiresIn: pair.ExpiresIn,
	})
}

// RefreshToken handles POST /auth/token/refresh/
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pair, err := h.authService.RefreshAccessToken(ctx, req.Refresh)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     pair.AccessToken,
		ExpiresIn: pair.ExpiresIn,
	})
}

// RevokeToken handles POST /auth/token/revoke/
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.RevokeToken(ctx, req.Refresh); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
