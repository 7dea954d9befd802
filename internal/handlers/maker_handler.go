package handlers

import (
	"errors"
	"net/http"

	"github.com/feitoo/makerboard/internal/auth"
	"github.com/feitoo/makerboard/internal/models"
	"github.com/feitoo/makerboard/internal/services"
	"github.com/feitoo/makerboard/internal/storage"
	"github.com/labstack/echo/v4"
)

// MakerHandler handles HTTP requests for maker accounts.
type MakerHandler struct {
	makerService services.MakerService
}

// NewMakerHandler creates a new MakerHandler.
func NewMakerHandler(makerService services.MakerService) *MakerHandler {
	return &MakerHandler{
		makerService: makerService,
	}
}

// Register handles POST /api/maker/register.
func (h *MakerHandler) Register(c echo.Context) error {
	var req models.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	maker, token, err := h.makerService.Register(c.Request().Context(), req.Login, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, storage.ErrLoginExists) {
			return echo.NewHTTPError(http.StatusConflict, "login already exists")
		}
		c.Logger().Errorf("failed to register maker: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	setAuthToken(c, token)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"maker_id":     maker.ID,
		"login":        maker.Login,
		"display_name": maker.DisplayName,
	})
}

// Login handles POST /api/maker/login.
func (h *MakerHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	maker, token, err := h.makerService.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid login or password")
		}
		c.Logger().Errorf("failed to login maker: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	setAuthToken(c, token)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"maker_id":     maker.ID,
		"login":        maker.Login,
		"display_name": maker.DisplayName,
	})
}

// GetProfile handles GET /api/maker/profile.
func (h *MakerHandler) GetProfile(c echo.Context) error {
	makerID, err := auth.GetMakerIDFromContext(c)
	if err != nil {
		return err
	}

	maker, err := h.makerService.GetProfile(c.Request().Context(), makerID)
	if err != nil {
		if errors.Is(err, storage.ErrMakerNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "maker not found")
		}
		c.Logger().Errorf("failed to get maker profile: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"maker_id":     maker.ID,
		"login":        maker.Login,
		"display_name": maker.DisplayName,
	})
}

// setAuthToken puts the token in a cookie and the response header.
func setAuthToken(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     "Authorization",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400,
	}
	c.SetCookie(cookie)

	c.Response().Header().Set("Authorization", "Bearer "+token)
}
