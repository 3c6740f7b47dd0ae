package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/services"
)

type DomainHandler struct {
	log            *logger.Logger
	catalogService services.CatalogService
}

func NewDomainHandler(log *logger.Logger, catalogService services.CatalogService) *DomainHandler {
	return &DomainHandler{
		log:            log.With("handler", "DomainHandler"),
		catalogService: catalogService,
	}
}

func (h *DomainHandler) ListDomains(c *gin.Context) {
	domains, err := h.catalogService.ListDomains(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListDomains failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch domains", nil)
		return
	}
	RespondOK(c, domains)
}

func (h *DomainHandler) GetDomain(c *gin.Context) {
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid domain id", nil)
		return
	}
	domain, err := h.catalogService.GetDomain(c.Request.Context(), nil, domainID)
	if err != nil {
		h.log.Error("GetDomain failed", "error", err, "domain_id", domainID)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch domain", nil)
		return
	}
	if domain == nil {
		RespondError(c, http.StatusNotFound, "Domain not found", nil)
		return
	}
	RespondOK(c, domain)
}

func (h *DomainHandler) ListSubdomains(c *gin.Context) {
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid domain id", nil)
		return
	}
	subdomains, err := h.catalogService.ListSubdomains(c.Request.Context(), nil, domainID)
	if err != nil {
		h.log.Error("ListSubdomains failed", "error", err, "domain_id", domainID)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch subdomains", nil)
		return
	}
	RespondOK(c, subdomains)
}
