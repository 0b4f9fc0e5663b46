package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/config"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/middleware"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/model"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	ErrTokenInvalido         = errors.New("token inválido o expirado")
	ErrUsuarioExistente      = errors.New("el nombre de usuario ya está en uso")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)

	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	EliminarUsuario(ctx context.Context, id uuid.UUID) error

	// SolicitarReset issues a single-use reset token and mails the link.
	// It reports success even for unknown emails so the endpoint cannot be
	// used to probe which addresses exist.
	SolicitarReset(ctx context.Context, req dto.SolicitarResetRequest) error
	ConfirmarReset(ctx context.Context, req dto.ConfirmarResetRequest) error
}

type authService struct {
	usuarios   repository.UsuarioRepository
	tokens     repository.ResetTokenRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
	reloj      func() time.Time
}

func NewAuthService(
	usuarios repository.UsuarioRepository,
	tokens repository.ResetTokenRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
	reloj func() time.Time,
) AuthService {
	if reloj == nil {
		reloj = time.Now
	}
	return &authService{usuarios: usuarios, tokens: tokens, dispatcher: dispatcher, cfg: cfg, reloj: reloj}
}

func toUsuarioResponse(u *model.Usuario) *dto.UsuarioResponse {
	resp := &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
	if u.TrabajadorID != nil {
		s := u.TrabajadorID.String()
		resp.TrabajadorID = &s
	}
	return resp
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.usuarios.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrCredencialesInvalidas
	}

	if err := s.usuarios.TouchUltimoLogin(ctx, u.ID); err != nil {
		log.Warn().Err(err).Str("usuario_id", u.ID.String()).Msg("no se pudo actualizar ultimo_login")
	}
	return s.emitirTokens(u)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.TipoToken != "refresh" {
		return nil, ErrTokenInvalido
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrTokenInvalido
	}
	u, err := s.usuarios.FindByID(ctx, userID)
	if err != nil || !u.Activo {
		return nil, ErrTokenInvalido
	}
	return s.emitirTokens(u)
}

func (s *authService) emitirTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	access, err := s.firmarToken(u, "access", time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.firmarToken(u, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Usuario:      toUsuarioResponse(u),
	}, nil
}

func (s *authService) firmarToken(u *model.Usuario, tipo string, vigencia time.Duration) (string, error) {
	now := s.reloj()
	claims := &middleware.JWTClaims{
		UserID:    u.ID.String(),
		Username:  u.Username,
		Rol:       u.Rol,
		TipoToken: tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(vigencia)),
		},
	}
	if u.TrabajadorID != nil {
		id := u.TrabajadorID.String()
		claims.TrabajadorID = &id
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	_, err := s.usuarios.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return nil, ErrUsuarioExistente
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if req.TrabajadorID != nil {
		trabajadorID, err := uuid.Parse(*req.TrabajadorID)
		if err != nil {
			return nil, ErrTrabajadorNoEncontrado
		}
		u.TrabajadorID = &trabajadorID
	}

	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, *toUsuarioResponse(&usuarios[i]))
	}
	return out, nil
}

func (s *authService) EliminarUsuario(ctx context.Context, id uuid.UUID) error {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		return err
	}
	return s.usuarios.SoftDelete(ctx, id)
}

func (s *authService) SolicitarReset(ctx context.Context, req dto.SolicitarResetRequest) error {
	u, err := s.usuarios.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info().Str("email", req.Email).Msg("reset solicitado para email desconocido")
			return nil
		}
		return err
	}

	if err := s.tokens.InvalidarPorUsuario(ctx, u.ID); err != nil {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)

	rt := &model.ResetToken{
		UsuarioID: u.ID,
		Token:     token,
		ExpiraEn:  s.reloj().Add(time.Duration(s.cfg.ResetTokenMinutes) * time.Minute),
	}
	if err := s.tokens.Create(ctx, rt); err != nil {
		return err
	}

	if s.dispatcher != nil {
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.Domain, token)
		body := fmt.Sprintf(
			"<p>Para restablecer tu contraseña hacé clic en el siguiente enlace:</p><p><a href=%q>%s</a></p><p>El enlace vence en %d minutos y sólo puede usarse una vez.</p>",
			resetURL, resetURL, s.cfg.ResetTokenMinutes)
		err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: req.Email,
			Subject: "Restablecer contraseña",
			Body:    body,
		})
		if err != nil {
			log.Error().Err(err).Msg("no se pudo encolar el email de reset")
		}
	}
	return nil
}

func (s *authService) ConfirmarReset(ctx context.Context, req dto.ConfirmarResetRequest) error {
	rt, err := s.tokens.FindVigente(ctx, req.Token, s.reloj())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalido
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.usuarios.UpdatePassword(ctx, rt.UsuarioID, string(hash)); err != nil {
		return err
	}
	return s.tokens.MarcarUsado(ctx, rt.ID)
}
