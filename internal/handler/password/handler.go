package password

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/password-analyzer/internal/model"
	"github.com/jwalitptl/password-analyzer/internal/session"
	"github.com/jwalitptl/password-analyzer/pkg/errors"
	"github.com/jwalitptl/password-analyzer/pkg/httputil"
	"github.com/jwalitptl/password-analyzer/pkg/strength"
)

// Analyzer is the service behind the password endpoints
type Analyzer interface {
	Score(ctx context.Context, password string) *strength.Result
	Generate(ctx context.Context, sessionID string, length int) (*model.GeneratedPassword, error)
	LastGenerated(ctx context.Context, sessionID string) (*model.GeneratedPassword, error)
	Forget(ctx context.Context, sessionID string)
}

type Handler struct {
	service Analyzer
}

func NewHandler(service Analyzer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	passwords := r.Group("/passwords")
	{
		passwords.POST("/score", h.ScorePassword)
		passwords.POST("/generate", h.GeneratePassword)
		passwords.GET("/generated", h.GetGenerated)
		passwords.DELETE("/generated", h.DeleteGenerated)
	}
}

func (h *Handler) ScorePassword(c *gin.Context) {
	var req model.ScoreRequest
	if !bind(c, &req, false) {
		return
	}
	if len(req.Password) > model.MaxPasswordBytes {
		_ = c.Error(errors.BadRequest(
			fmt.Sprintf("password must not exceed %d bytes", model.MaxPasswordBytes), nil,
		))
		return
	}

	httputil.RespondWithSuccess(c, h.service.Score(c.Request.Context(), req.Password))
}

func (h *Handler) GeneratePassword(c *gin.Context) {
	var req model.GenerateRequest
	if !bind(c, &req, true) {
		return
	}

	id := sessionID(c, true)
	gp, err := h.service.Generate(c.Request.Context(), id, req.Length)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gp)
}

func (h *Handler) GetGenerated(c *gin.Context) {
	id := sessionID(c, false)
	if id == "" {
		httputil.RespondWithError(c, errors.NotFound("generated password", nil))
		return
	}

	gp, err := h.service.LastGenerated(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gp)
}

func (h *Handler) DeleteGenerated(c *gin.Context) {
	if id := sessionID(c, false); id != "" {
		h.service.Forget(c.Request.Context(), id)
	}
	httputil.RespondWithSuccess(c, nil)
}

// bind decodes the JSON body into req. Validation failures are left on the
// context for the validation middleware; allowEmpty accepts a missing body.
func bind(c *gin.Context, req interface{}, allowEmpty bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if allowEmpty && stderrors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		_ = c.Error(errors.PayloadTooLarge(err))
		return false
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}

	_ = c.Error(errors.BadRequest("invalid request body", err))
	return false
}

// sessionID returns the caller's session id from the request header. When
// mint is set an absent or malformed id is replaced with a new one. The id
// in use is echoed in the response.
func sessionID(c *gin.Context, mint bool) string {
	id := strings.TrimSpace(c.GetHeader(session.HeaderSessionID))
	if !session.ValidID(id) {
		if !mint {
			return ""
		}
		id = session.NewID()
	}

	c.Header(session.HeaderSessionID, id)
	return id
}
