package handler

import (
	"errors"
	"net/http"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/apierror"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Iniciar sesión
// @Description  Autentica username/password y retorna access + refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCredencialesInvalidas) {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalido) {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearUsuario godoc
// @Summary      Crear usuario
// @Description  Alta de usuario con rol; opcionalmente vinculado a un trabajador de la rotación. Sólo administradores.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearUsuarioRequest true "Datos del usuario"
// @Success      201  {object} dto.UsuarioResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/usuarios [post]
func (h *AuthHandler) CrearUsuario(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) ListarUsuarios(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar usuarios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) EliminarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.EliminarUsuario(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) SolicitarReset(c *gin.Context) {
	var req dto.SolicitarResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SolicitarReset(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	// Same answer whether or not the email exists.
	c.JSON(http.StatusOK, gin.H{"mensaje": "Si el email existe, se envió un enlace de restablecimiento"})
}

func (h *AuthHandler) ConfirmarReset(c *gin.Context) {
	var req dto.ConfirmarResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ConfirmarReset(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrTokenInvalido) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Contraseña actualizada"})
}
