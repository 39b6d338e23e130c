package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/service"
)

// HandleSignup handles POST /v1/auth/signup
func HandleSignup(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		result, err := svc.Auth.Signup(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to sign up", err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		result, err := svc.Auth.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to log in", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleForgotPassword handles POST /v1/auth/forgot-password. There is no mail
// delivery, so outside production the reset token is returned in the response.
func HandleForgotPassword(cfg *config.Config, svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		token, err := svc.Auth.ForgotPassword(c.Request.Context(), req.Email)
		if err != nil {
			respondError(c, logger, "Failed to start password reset", err)
			return
		}

		resp := gin.H{"message": "Reset link sent to your email"}
		if !cfg.IsProduction() {
			resp["reset_token"] = token
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleResetPassword handles POST /v1/auth/reset-password
func HandleResetPassword(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
		if err := svc.Auth.ResetPassword(c.Request.Context(), req); err != nil {
			respondError(c, logger, "Failed to reset password", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}

// HandleLogout handles POST /v1/auth/logout
func HandleLogout(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		if err := svc.Auth.Logout(c.Request.Context(), claims.UserID()); err != nil {
			respondError(c, logger, "Failed to log out", err)
			return
		}
		svc.Carts.Drop(claims.UserID())
		c.Status(http.StatusNoContent)
	}
}

// HandleMe handles GET /v1/me
func HandleMe(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		user, adminMode, err := svc.Auth.Me(c.Request.Context(), claims)
		if err != nil {
			respondError(c, logger, "Failed to load profile", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":     user,
			"role":     claims.Role,
			"is_admin": adminMode,
		})
	}
}

// HandleUpdateMe handles PATCH /v1/me
func HandleUpdateMe(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		var req service.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		user, err := svc.Auth.UpdateProfile(c.Request.Context(), claims, req)
		if err != nil {
			respondError(c, logger, "Failed to update profile", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// HandleToggleAdminMode handles POST /v1/me/admin-mode
func HandleToggleAdminMode(svc *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsOrAbort(c)
		if !ok {
			return
		}
		on, err := svc.Auth.ToggleAdminMode(c.Request.Context(), claims)
		if err != nil {
			respondError(c, logger, "Failed to toggle admin mode", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_admin": on})
	}
}
