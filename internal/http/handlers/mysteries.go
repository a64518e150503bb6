package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmysteries/backend/internal/article"
	"github.com/openmysteries/backend/internal/catalog"
	"github.com/openmysteries/backend/internal/http/response"
	"github.com/openmysteries/backend/internal/mysteries"
	pkgerrors "github.com/openmysteries/backend/internal/pkg/errors"
	"github.com/openmysteries/backend/internal/pkg/logger"
)

type MysteryHandler struct {
	log     *logger.Logger
	catalog *catalog.Catalog
	service mysteries.Service
}

func NewMysteryHandler(log *logger.Logger, cat *catalog.Catalog, svc mysteries.Service) *MysteryHandler {
	return &MysteryHandler{
		log:     log.With("handler", "MysteryHandler"),
		catalog: cat,
		service: svc,
	}
}

type topicListItem struct {
	catalog.Topic
	CategoryLabel string `json:"categoryLabel"`
}

// GET /api/mysteries
func (h *MysteryHandler) ListTopics(c *gin.Context) {
	topics := h.catalog.All()
	items := make([]topicListItem, 0, len(topics))
	for _, t := range topics {
		items = append(items, topicListItem{Topic: t, CategoryLabel: catalog.CategoryLabels[t.Category]})
	}
	response.RespondOK(c, gin.H{"topics": items})
}

type articleEnvelope struct {
	Article   article.Document `json:"article"`
	FromCache bool             `json:"fromCache"`
}

// GET /api/mysteries/:id?style=
func (h *MysteryHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	style := c.Query("style")

	doc, fromCache, err := h.service.GetOrGenerate(c.Request.Context(), id, style)
	if err != nil {
		var genErr *article.GenerationError
		var valErr *article.ValidationError
		switch {
		case errors.Is(err, pkgerrors.ErrUnknownTopic):
			response.RespondError(c, http.StatusNotFound, "unknown_topic", err)
		case errors.As(err, &genErr):
			h.log.Error("article generation failed", "topic", id, "code", genErr.Code, "error", err)
			response.RespondError(c, http.StatusBadGateway, "generation_failed", err)
		case errors.As(err, &valErr):
			h.log.Error("generated article failed validation", "topic", id, "field", valErr.Field, "error", err)
			response.RespondError(c, http.StatusInternalServerError, "validation_failed", err)
		default:
			h.log.Error("get-or-generate failed", "topic", id, "error", err)
			response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	response.RespondOK(c, articleEnvelope{Article: doc, FromCache: fromCache})
}

// GET /api/mysteries/:id/quality — recomputes the quality report on demand;
// it is derived data and never cached as authoritative.
func (h *MysteryHandler) GetQuality(c *gin.Context) {
	id := c.Param("id")
	style := c.Query("style")

	doc, _, err := h.service.GetOrGenerate(c.Request.Context(), id, style)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrUnknownTopic) {
			response.RespondError(c, http.StatusNotFound, "unknown_topic", err)
			return
		}
		h.log.Error("quality lookup failed", "topic", id, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}

	response.RespondOK(c, article.EvaluateQuality(doc))
}
