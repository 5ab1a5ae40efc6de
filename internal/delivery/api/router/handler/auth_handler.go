package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"savvy/config"
	"savvy/internal/delivery/api/middleware"
	"savvy/internal/delivery/api/response"
	"savvy/internal/usecase"
)

// AuthHandler issues token pairs.
type AuthHandler struct {
	uc  usecase.UserUsecase
	cfg *config.Config
}

func NewAuthHandler(uc usecase.UserUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{uc: uc, cfg: cfg}
}

// LoginRequest follows the OAuth2 password form: the username is the email.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login handles POST /auth/token with a form or JSON body. The access token
// is also set as a cookie so browser clients can skip the header.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Security.AccessTokenCookie,
		Value:    output.TokenType + " " + output.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cfg.Security.AccessTokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.OK(c, newTokenResponse(output))
}

// Refresh handles POST /auth/token/refresh. RequireRefreshToken has already
// resolved the caller.
func (h *AuthHandler) Refresh(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	output, err := h.uc.RefreshTokens(c.Request().Context(), user)
	if err != nil {
		return err
	}

	return response.OK(c, newTokenResponse(output))
}

func newTokenResponse(output *usecase.TokenPairOutput) TokenResponse {
	return TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    output.TokenType,
	}
}
