package tips

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/password-analyzer/internal/model"
	"github.com/jwalitptl/password-analyzer/pkg/httputil"
)

type TipsProvider interface {
	Tips(ctx context.Context) []model.TipSection
}

type Handler struct {
	service TipsProvider
}

func NewHandler(service TipsProvider) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tips", h.ListTips)
}

func (h *Handler) ListTips(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Tips(c.Request.Context()))
}
