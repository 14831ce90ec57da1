package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/services"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ctx"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/logger"
)

// AuthController exposes the identity flows over HTTP.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type credentialsRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=255"`
	Phone string `json:"phone" validate:"required,digits=11"`
}

type phoneRequest struct {
	Phone string `json:"phone" validate:"required,digits=11"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Login handles POST /api/auth/login.
func (a *AuthController) Login(c *ctx.Context) {
	var body credentialsRequest
	if !c.BindJSON(&body) {
		return
	}

	session, err := a.service.SignIn(body.Name, body.Phone)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Success(session)
}

// Register handles POST /api/auth/register.
func (a *AuthController) Register(c *ctx.Context) {
	var body credentialsRequest
	if !c.BindJSON(&body) {
		return
	}

	session, err := a.service.SignUp(body.Name, body.Phone)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Created(session)
}

// Recover handles POST /api/auth/recover. It discloses the name registered
// for a phone number.
func (a *AuthController) Recover(c *ctx.Context) {
	var body phoneRequest
	if !c.BindJSON(&body) {
		return
	}

	name, err := a.service.Recover(body.Phone)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Success(map[string]string{"name": name})
}

// Logout handles POST /api/auth/logout. It revokes the presented token.
func (a *AuthController) Logout(c *ctx.Context) {
	header := c.Header("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		c.Unauthorized()
		return
	}

	if err := a.service.SignOut(token); err != nil {
		logger.WithCtx(c.Context()).Error("auth: revoke token", "error", err)
		c.Error(http.StatusInternalServerError, "Erro ao encerrar sessão")
		return
	}
	c.Success(map[string]string{"message": "Sessão encerrada"})
}

// Refresh handles POST /api/auth/refresh.
func (a *AuthController) Refresh(c *ctx.Context) {
	var body refreshRequest
	if !c.BindJSON(&body) {
		return
	}

	session, err := a.service.Refresh(body.RefreshToken)
	if err != nil {
		c.Unauthorized("Sessão expirada")
		return
	}
	c.Success(session)
}

// fail maps identity errors to their user-facing messages. Anything not in
// the taxonomy is logged and reported as transient.
func (a *AuthController) fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.Error(http.StatusNotFound, "Usuário não encontrado")
	case errors.Is(err, services.ErrNameMismatch):
		c.Unauthorized("Nome incorreto")
	case errors.Is(err, services.ErrPhoneTaken):
		c.Error(http.StatusConflict, "Este telefone já está cadastrado")
	default:
		logger.WithCtx(c.Context()).Error("auth: request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Erro ao conectar. Tente novamente.")
	}
}
