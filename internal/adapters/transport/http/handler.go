package http

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/adapters/transport/http/dto"
	"github.com/vidtube/user-service/internal/adapters/transport/http/middleware"
	appuser "github.com/vidtube/user-service/internal/app/user"
	customErrors "github.com/vidtube/user-service/internal/domain/user/errors"
	"github.com/vidtube/user-service/internal/domain/user/media"
	"github.com/vidtube/user-service/internal/domain/user/model"
	"github.com/vidtube/user-service/internal/infra/config"
	"go.uber.org/zap"
)

type Handler struct {
	svc appuser.Service
	cfg *config.Config
	log *zap.Logger
}

func NewHandler(svc appuser.Service, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// RegisterRoutes mounts the user endpoints under /api/v1. The authMW guard
// is applied to every route that requires an access token.
func (h *Handler) RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc) {
	users := r.Group("/api/v1/users")

	users.POST("", h.register)
	users.POST("/login", h.login)
	users.POST("/refresh-token", h.refresh)

	users.POST("/logout", authMW, h.logout)
	users.POST("/change-password", authMW, h.changePassword)
	users.GET("/current", authMW, h.currentUser)
	users.PATCH("/account", authMW, h.updateAccount)
	users.PATCH("/avatar", authMW, h.updateAvatar)
	users.PATCH("/cover-image", authMW, h.updateCoverImage)
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBind(&body); err != nil {
		respondError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	avatar, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		respondError(c, customErrors.NewInvalidArgument("avatar file is missing"))
		return
	}
	defer closeAvatar()

	var cover *media.File
	if f, closeCover, err := formFile(c, "coverImage"); err == nil {
		defer closeCover()
		cover = &f
	}

	h.log.Info("register",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	view, err := h.svc.Register(c.Request.Context(), body, avatar, cover)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, view, "User registered successfully")
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	h.log.Info("login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email+body.Username)))),
	)

	view, pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	respond(c, http.StatusOK, gin.H{
		"user":         view,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "User logged in successfully")
}

func (h *Handler) logout(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "access token is required")
		return
	}

	if err := h.svc.Logout(c.Request.Context(), u.ID); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookies(c)
	respond(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

func (h *Handler) refresh(c *gin.Context) {
	presented, _ := c.Cookie("refreshToken")
	if presented == "" {
		var body dto.RefreshDTO
		_ = c.ShouldBindJSON(&body)
		presented = body.RefreshToken
	}
	if presented == "" {
		failure(c, http.StatusUnauthorized, "refresh token is required")
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), presented)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	respond(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "Access token refreshed successfully")
}

func (h *Handler) changePassword(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "access token is required")
		return
	}

	var body dto.ChangePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), u.ID, body); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *Handler) currentUser(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "access token is required")
		return
	}

	view, err := h.svc.CurrentUser(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, view, "Current user details")
}

func (h *Handler) updateAccount(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "access token is required")
		return
	}

	var body dto.UpdateAccountDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}

	view, err := h.svc.UpdateAccount(c.Request.Context(), u.ID, body)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, view, "Account details updated successfully")
}

func (h *Handler) updateAvatar(c *gin.Context) {
	h.updateMedia(c, "avatar", h.svc.UpdateAvatar, "Avatar updated successfully")
}

func (h *Handler) updateCoverImage(c *gin.Context) {
	h.updateMedia(c, "coverImage", h.svc.UpdateCoverImage, "Cover image updated successfully")
}

func (h *Handler) updateMedia(
	c *gin.Context,
	field string,
	update func(ctx context.Context, id uuid.UUID, f media.File) (model.PublicUser, error),
	message string,
) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "access token is required")
		return
	}

	file, closeFile, err := formFile(c, field)
	if err != nil {
		respondError(c, customErrors.NewInvalidArgument("file is required"))
		return
	}
	defer closeFile()

	view, err := update(c.Request.Context(), u.ID, file)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, view, message)
}

func (h *Handler) setSessionCookies(c *gin.Context, pair model.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie( // HttpOnly always; Secure only in production-like environments
		"accessToken",
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		h.cfg.IsProduction(),
		true,
	)
	c.SetCookie(
		"refreshToken",
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		h.cfg.IsProduction(),
		true,
	)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", h.cfg.CookieDomain, h.cfg.IsProduction(), true)
	c.SetCookie("refreshToken", "", -1, "/", h.cfg.CookieDomain, h.cfg.IsProduction(), true)
}

// formFile adapts a multipart upload into the transport-independent
// media.File. Caller must invoke the returned close func.
func formFile(c *gin.Context, field string) (media.File, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return media.File{}, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return media.File{}, nil, err
	}
	return media.File{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}, func() { _ = f.Close() }, nil
}
