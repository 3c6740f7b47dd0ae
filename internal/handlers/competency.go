package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/services"
)

type CompetencyHandler struct {
	log            *logger.Logger
	catalogService services.CatalogService
}

func NewCompetencyHandler(log *logger.Logger, catalogService services.CatalogService) *CompetencyHandler {
	return &CompetencyHandler{
		log:            log.With("handler", "CompetencyHandler"),
		catalogService: catalogService,
	}
}

func (h *CompetencyHandler) ListCompetencies(c *gin.Context) {
	filter := repos.CompetencyFilter{Search: c.Query("search")}
	if raw := c.Query("domain_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "Invalid domain_id", nil)
			return
		}
		filter.DomainID = id
	}
	if raw := c.Query("subdomain_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "Invalid subdomain_id", nil)
			return
		}
		filter.SubdomainID = id
	}
	competencies, err := h.catalogService.ListCompetencies(c.Request.Context(), nil, filter)
	if err != nil {
		h.log.Error("ListCompetencies failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch competencies", nil)
		return
	}
	RespondOK(c, competencies)
}

func (h *CompetencyHandler) GetCompetency(c *gin.Context) {
	competencyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid competency id", nil)
		return
	}
	detail, err := h.catalogService.GetCompetency(c.Request.Context(), nil, competencyID)
	if err != nil {
		h.log.Error("GetCompetency failed", "error", err, "competency_id", competencyID)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch competency", nil)
		return
	}
	if detail == nil {
		RespondError(c, http.StatusNotFound, "Competency not found", nil)
		return
	}
	RespondOK(c, detail)
}
