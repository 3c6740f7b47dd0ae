package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/services"
)

type LearningModuleHandler struct {
	log           *logger.Logger
	moduleService services.LearningModuleService
}

func NewLearningModuleHandler(log *logger.Logger, moduleService services.LearningModuleService) *LearningModuleHandler {
	return &LearningModuleHandler{
		log:           log.With("handler", "LearningModuleHandler"),
		moduleService: moduleService,
	}
}

func (h *LearningModuleHandler) ListModules(c *gin.Context) {
	filter := repos.ModuleFilter{
		Search:   c.Query("search"),
		Provider: c.Query("provider"),
	}
	modules, err := h.moduleService.List(c.Request.Context(), nil, filter)
	if err != nil {
		h.log.Error("ListModules failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch learning modules", nil)
		return
	}
	RespondOK(c, modules)
}

func (h *LearningModuleHandler) GetModule(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid learning module id", nil)
		return
	}
	module, err := h.moduleService.Get(c.Request.Context(), nil, moduleID)
	if err != nil {
		h.log.Error("GetModule failed", "error", err, "learning_module_id", moduleID)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch learning module", nil)
		return
	}
	if module == nil {
		RespondError(c, http.StatusNotFound, "Learning module not found", nil)
		return
	}
	RespondOK(c, module)
}

func (h *LearningModuleHandler) CreateModule(c *gin.Context) {
	var input services.LearningModuleCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if input.Title == "" {
		RespondError(c, http.StatusBadRequest, "title is required", nil)
		return
	}
	module, err := h.moduleService.Create(c.Request.Context(), nil, input)
	if err != nil {
		h.log.Error("CreateModule failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to create learning module", nil)
		return
	}
	RespondCreated(c, module)
}

func (h *LearningModuleHandler) UpdateModule(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid learning module id", nil)
		return
	}
	var input services.LearningModuleUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	module, err := h.moduleService.Update(c.Request.Context(), nil, moduleID, input)
	if err != nil {
		h.log.Error("UpdateModule failed", "error", err, "learning_module_id", moduleID)
		RespondError(c, http.StatusInternalServerError, "Failed to update learning module", nil)
		return
	}
	if module == nil {
		RespondError(c, http.StatusNotFound, "Learning module not found", nil)
		return
	}
	RespondOK(c, module)
}

func (h *LearningModuleHandler) DeleteModule(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid learning module id", nil)
		return
	}
	deleted, err := h.moduleService.Delete(c.Request.Context(), nil, moduleID)
	if err != nil {
		h.log.Error("DeleteModule failed", "error", err, "learning_module_id", moduleID)
		RespondError(c, http.StatusInternalServerError, "Failed to delete learning module", nil)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "Learning module not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
