package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/services"
)

type RoleHandler struct {
	log         *logger.Logger
	roleService services.RoleService
}

func NewRoleHandler(log *logger.Logger, roleService services.RoleService) *RoleHandler {
	return &RoleHandler{
		log:         log.With("handler", "RoleHandler"),
		roleService: roleService,
	}
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	filter := repos.RoleFilter{
		Search: c.Query("search"),
		Type:   c.Query("type"),
	}
	roles, err := h.roleService.ListRoles(c.Request.Context(), nil, filter)
	if err != nil {
		h.log.Error("ListRoles failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch roles", nil)
		return
	}
	RespondOK(c, roles)
}

func (h *RoleHandler) GetRole(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid role id", nil)
		return
	}
	role, err := h.roleService.GetRole(c.Request.Context(), nil, roleID)
	if err != nil {
		h.log.Error("GetRole failed", "error", err, "role_id", roleID)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch role", nil)
		return
	}
	if role == nil {
		RespondError(c, http.StatusNotFound, "Role not found", nil)
		return
	}
	RespondOK(c, role)
}

func (h *RoleHandler) CreateRole(c *gin.Context) {
	var input services.RoleCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if input.RoleCode == "" || input.RoleTitle == "" || input.RoleType == "" {
		RespondError(c, http.StatusBadRequest, "role_code, role_title and role_type are required", nil)
		return
	}
	role, err := h.roleService.CreateRole(c.Request.Context(), nil, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateRoleCode):
			RespondError(c, http.StatusBadRequest, "Role code already exists", nil)
		case errors.Is(err, services.ErrInvalidRoleType):
			RespondError(c, http.StatusBadRequest, "Invalid role type", nil)
		default:
			h.log.Error("CreateRole failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "Failed to create role", nil)
		}
		return
	}
	RespondCreated(c, role)
}

func (h *RoleHandler) UpdateRole(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid role id", nil)
		return
	}
	var input services.RoleUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	role, err := h.roleService.UpdateRole(c.Request.Context(), nil, roleID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateRoleCode):
			RespondError(c, http.StatusBadRequest, "Role code already exists", nil)
		case errors.Is(err, services.ErrInvalidRoleType):
			RespondError(c, http.StatusBadRequest, "Invalid role type", nil)
		default:
			h.log.Error("UpdateRole failed", "error", err, "role_id", roleID)
			RespondError(c, http.StatusInternalServerError, "Failed to update role", nil)
		}
		return
	}
	if role == nil {
		RespondError(c, http.StatusNotFound, "Role not found", nil)
		return
	}
	RespondOK(c, role)
}

func (h *RoleHandler) DeleteRole(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid role id", nil)
		return
	}
	deleted, err := h.roleService.DeleteRole(c.Request.Context(), nil, roleID)
	if err != nil {
		h.log.Error("DeleteRole failed", "error", err, "role_id", roleID)
		RespondError(c, http.StatusInternalServerError, "Failed to delete role", nil)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "Role not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoleHandler) GetRoleCompetencies(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid role id", nil)
		return
	}
	mappings, err := h.roleService.GetRoleCompetencies(c.Request.Context(), nil, roleID)
	if err != nil {
		h.log.Error("GetRoleCompetencies failed", "error", err, "role_id", roleID)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch role competencies", nil)
		return
	}
	RespondOK(c, mappings)
}

func (h *RoleHandler) MapCompetencies(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid role id", nil)
		return
	}
	var input services.MapCompetenciesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if len(input.CompetencyIDs) == 0 {
		RespondError(c, http.StatusBadRequest, "competency_ids is required", nil)
		return
	}
	mappings, err := h.roleService.MapCompetencies(c.Request.Context(), nil, roleID, input)
	if err != nil {
		var missing *services.MissingCompetenciesError
		switch {
		case errors.As(err, &missing):
			RespondError(c, http.StatusBadRequest, "Some competencies were not found", gin.H{"missingIds": missing.MissingIDs})
		case errors.Is(err, services.ErrInvalidProficiency):
			RespondError(c, http.StatusBadRequest, "Invalid proficiency level", nil)
		default:
			h.log.Error("MapCompetencies failed", "error", err, "role_id", roleID)
			RespondError(c, http.StatusInternalServerError, "Failed to map competencies", nil)
		}
		return
	}
	if mappings == nil {
		RespondError(c, http.StatusNotFound, "Role not found", nil)
		return
	}
	RespondCreated(c, mappings)
}

func (h *RoleHandler) UnmapCompetency(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid role id", nil)
		return
	}
	competencyID, err := uuid.Parse(c.Param("competencyId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid competency id", nil)
		return
	}
	if err := h.roleService.UnmapCompetency(c.Request.Context(), nil, roleID, competencyID); err != nil {
		h.log.Error("UnmapCompetency failed", "error", err, "role_id", roleID, "competency_id", competencyID)
		RespondError(c, http.StatusInternalServerError, "Failed to remove mapping", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
