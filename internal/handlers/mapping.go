package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhlf/dhcf-backend/internal/importer"
	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/services"
)

type MappingHandler struct {
	log            *logger.Logger
	mappingService services.MappingService
}

func NewMappingHandler(log *logger.Logger, mappingService services.MappingService) *MappingHandler {
	return &MappingHandler{
		log:            log.With("handler", "MappingHandler"),
		mappingService: mappingService,
	}
}

// ParseMappingFile handles the preview step: multipart upload in, role
// and code validation out, nothing written.
func (h *MappingHandler) ParseMappingFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	if fileHeader.Size > importer.MaxUploadBytes {
		RespondError(c, http.StatusBadRequest, "Uploaded file is too large (5MB limit)", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("ParseMappingFile open failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to read uploaded file", nil)
		return
	}
	defer file.Close()

	preview, err := h.mappingService.Preview(c.Request.Context(), nil, file)
	if err != nil {
		h.respondImportError(c, err, "ParseMappingFile")
		return
	}
	RespondOK(c, gin.H{
		"success": true,
		"preview": preview,
	})
}

type saveMappingsRequest struct {
	RoleCode        string   `json:"roleCode"`
	CompetencyCodes []string `json:"competencyCodes"`
}

// SaveMappings handles the apply step: replaces the role's mapping set
// with the confirmed codes.
func (h *MappingHandler) SaveMappings(c *gin.Context) {
	var req saveMappingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.RoleCode == "" || len(req.CompetencyCodes) == 0 {
		RespondError(c, http.StatusBadRequest, "roleCode and competencyCodes are required", nil)
		return
	}
	result, err := h.mappingService.Apply(c.Request.Context(), nil, req.RoleCode, req.CompetencyCodes)
	if err != nil {
		h.respondImportError(c, err, "SaveMappings")
		return
	}
	RespondOK(c, gin.H{
		"success":         true,
		"message":         result.Message,
		"mappingsCreated": result.MappingsCreated,
	})
}

// respondImportError translates an ImportError into the status and extra
// fields the frontend keys on. Only role_not_in_catalog is a 404; the
// rest of the import failures are the uploader's to fix.
func (h *MappingHandler) respondImportError(c *gin.Context, err error, op string) {
	var importErr *services.ImportError
	if !errors.As(err, &importErr) {
		h.log.Error(op+" failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to process mapping file", nil)
		return
	}

	status := http.StatusBadRequest
	if importErr.Code == services.ImportErrRoleNotInCatalog {
		status = http.StatusNotFound
	}

	fields := gin.H{}
	if importErr.RoleName != "" {
		fields["excelRoleName"] = importErr.RoleName
	}
	if importErr.RoleCode != "" {
		fields["roleCode"] = importErr.RoleCode
	}
	if len(importErr.MissingCodes) > 0 {
		fields["missingCodes"] = importErr.MissingCodes
	}
	if len(importErr.AvailableSheets) > 0 {
		fields["availableSheets"] = importErr.AvailableSheets
	}
	RespondError(c, status, importErr.Message, fields)
}
