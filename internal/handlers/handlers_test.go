package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/rolemap"
	"github.com/dhlf/dhcf-backend/internal/services"
	"github.com/dhlf/dhcf-backend/internal/testutil"
	"github.com/dhlf/dhcf-backend/internal/types"
)

// newTestRouter wires the full handler stack over the shared test DB.
// Handler tests commit, so each test seeds its own uniquely-coded rows.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	domainRepo := repos.NewDomainRepo(db, log)
	subdomainRepo := repos.NewSubdomainRepo(db, log)
	competencyRepo := repos.NewCompetencyRepo(db, log)
	criteriaRepo := repos.NewPerformanceCriteriaRepo(db, log)
	roleRepo := repos.NewRoleRepo(db, log)
	roleCompetencyRepo := repos.NewRoleCompetencyRepo(db, log)
	moduleRepo := repos.NewLearningModuleRepo(db, log)
	moduleLinkRepo := repos.NewLearningModuleCompetencyRepo(db, log)
	courseRepo := repos.NewCourseRepo(db, log)
	courseLinkRepo := repos.NewCourseCompetencyRepo(db, log)

	catalogService := services.NewCatalogService(db, log, domainRepo, subdomainRepo, competencyRepo, criteriaRepo)
	roleService := services.NewRoleService(db, log, roleRepo, competencyRepo, roleCompetencyRepo)
	moduleService := services.NewLearningModuleService(db, log, moduleRepo, moduleLinkRepo)
	courseService := services.NewCourseService(db, log, courseRepo, courseLinkRepo)
	mappingService := services.NewMappingService(db, log, rolemap.Defaults(), roleRepo, competencyRepo, roleCompetencyRepo)

	router := gin.New()
	router.GET("/health", HealthCheck)
	api := router.Group("/api")
	{
		domainHandler := NewDomainHandler(log, catalogService)
		competencyHandler := NewCompetencyHandler(log, catalogService)
		roleHandler := NewRoleHandler(log, roleService)
		moduleHandler := NewLearningModuleHandler(log, moduleService)
		courseHandler := NewCourseHandler(log, courseService)
		mappingHandler := NewMappingHandler(log, mappingService)

		api.GET("/domains", domainHandler.ListDomains)
		api.GET("/domains/:id", domainHandler.GetDomain)
		api.GET("/domains/:id/subdomains", domainHandler.ListSubdomains)
		api.GET("/competencies", competencyHandler.ListCompetencies)
		api.GET("/competencies/:id", competencyHandler.GetCompetency)
		api.GET("/roles", roleHandler.ListRoles)
		api.POST("/roles", roleHandler.CreateRole)
		api.GET("/roles/:id", roleHandler.GetRole)
		api.PUT("/roles/:id", roleHandler.UpdateRole)
		api.DELETE("/roles/:id", roleHandler.DeleteRole)
		api.GET("/roles/:id/competencies", roleHandler.GetRoleCompetencies)
		api.POST("/roles/:id/competencies", roleHandler.MapCompetencies)
		api.DELETE("/roles/:id/competencies/:competencyId", roleHandler.UnmapCompetency)
		api.POST("/learning-modules", moduleHandler.CreateModule)
		api.GET("/learning-modules/:id", moduleHandler.GetModule)
		api.POST("/courses", courseHandler.CreateCourse)
		api.POST("/mappings/parse", mappingHandler.ParseMappingFile)
		api.POST("/mappings/save", mappingHandler.SaveMappings)
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" || body["version"] != "1.0.0" {
		t.Fatalf("body = %v", body)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["error"] != "Not found" {
		t.Fatalf("body = %v", body)
	}
}

func TestGetDomainNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/domains/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetDomainBadID(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/domains/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCompetencySearch(t *testing.T) {
	router, db := newTestRouter(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	domain := testutil.SeedDomain(t, ctx, db, "SR-"+suffix, 90)
	sub := testutil.SeedSubdomain(t, ctx, db, domain.DomainID, "SR-S-"+suffix, 1)
	testutil.SeedCompetency(t, ctx, db, sub.SubdomainID, "SRCH "+suffix, 1)

	rec := doJSON(t, router, http.MethodGet, "/api/competencies?search=srch+"+suffix, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var views []map[string]any
	decode(t, rec, &views)
	if len(views) != 1 {
		t.Fatalf("expected 1 result, got %d", len(views))
	}
	if views[0]["competency_code"] != "SRCH "+suffix {
		t.Fatalf("result = %v", views[0])
	}
	if views[0]["domain_name"] == "" {
		t.Fatal("joined domain name missing")
	}
}

func TestRoleCRUDOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	code := "HT-" + uuid.NewString()[:8]

	rec := doJSON(t, router, http.MethodPost, "/api/roles", map[string]any{
		"role_code":  code,
		"role_title": "HTTP Test Role",
		"role_type":  types.RoleTypeGovernment,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	decode(t, rec, &created)
	roleID, _ := created["role_id"].(string)
	if roleID == "" {
		t.Fatalf("created = %v", created)
	}

	// Duplicate code rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/roles", map[string]any{
		"role_code":  code,
		"role_title": "Another",
		"role_type":  types.RoleTypeOther,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d", rec.Code)
	}

	// Partial update leaves the code alone.
	rec = doJSON(t, router, http.MethodPut, "/api/roles/"+roleID, map[string]any{
		"role_title": "Renamed Role",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated map[string]any
	decode(t, rec, &updated)
	if updated["role_title"] != "Renamed Role" || updated["role_code"] != code {
		t.Fatalf("updated = %v", updated)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/roles/"+roleID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/roles/"+roleID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestCreateRoleValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/roles", map[string]any{
		"role_title": "No Code",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/roles", map[string]any{
		"role_code":  "V-" + uuid.NewString()[:8],
		"role_title": "Bad Type",
		"role_type":  "Contractor",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLearningModuleCreateAndGet(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/learning-modules", map[string]any{
		"title":    "Intro to Health Data Standards",
		"provider": "WHO Academy",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	decode(t, rec, &created)
	moduleID, _ := created["learning_module_id"].(string)
	if moduleID == "" {
		t.Fatalf("created = %v", created)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/learning-modules/"+moduleID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// Title is required.
	rec = doJSON(t, router, http.MethodPost, "/api/learning-modules", map[string]any{
		"provider": "Nobody",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing title status = %d", rec.Code)
	}
}

func uploadWorkbook(t *testing.T, router *gin.Engine, roleName string, codes []string) *httptest.ResponseRecorder {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]any{{"Role", "Domain", "Subdomain", "Competencies"}}
	for i, code := range codes {
		role := ""
		if i == 0 {
			role = roleName
		}
		rows = append(rows, []any{role, "Leadership", "Strategy", code})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	workbook, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "mapping.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/mappings/parse", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParseMappingFilePreview(t *testing.T) {
	router, db := newTestRouter(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	domain := testutil.SeedDomain(t, ctx, db, "MP-"+suffix, 91)
	sub := testutil.SeedSubdomain(t, ctx, db, domain.DomainID, "MP-S-"+suffix, 1)
	valid := fmt.Sprintf("MP %s.1", suffix)
	testutil.SeedCompetency(t, ctx, db, sub.SubdomainID, valid, 1)
	testutil.SeedRole(t, ctx, db, "14", "Department Chief, MoH", types.RoleTypeGovernment)

	rec := uploadWorkbook(t, router, "Department Chief, MoH", []string{valid, "ZZ 0.0"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
	preview, ok := body["preview"].(map[string]any)
	if !ok {
		t.Fatalf("preview missing from body %v", body)
	}
	if preview["excelRoleName"] != "Department Chief, MoH" {
		t.Fatalf("preview = %v", preview)
	}
	if preview["validCompetencies"].(float64) != 1 || preview["invalidCompetencies"].(float64) != 1 {
		t.Fatalf("counts = %v / %v", preview["validCompetencies"], preview["invalidCompetencies"])
	}
	if preview["sheetName"] != "Sheet1" {
		t.Fatalf("sheetName = %v", preview["sheetName"])
	}
}

func TestParseMappingFileUnmappedRole(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := uploadWorkbook(t, router, "Mystery Role", []string{"LG 1.1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["excelRoleName"] != "Mystery Role" {
		t.Fatalf("body = %v", body)
	}
	if !strings.Contains(body["error"].(string), "mapping configuration") {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestParseMappingFileMissingUpload(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/mappings/parse", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSaveMappingsRoleNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/mappings/save", map[string]any{
		"roleCode":        "no-such-code",
		"competencyCodes": []string{"LG 1.1"},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["roleCode"] != "no-such-code" {
		t.Fatalf("body = %v", body)
	}
}

func TestSaveMappingsHappyPath(t *testing.T) {
	router, db := newTestRouter(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	domain := testutil.SeedDomain(t, ctx, db, "SV-"+suffix, 92)
	sub := testutil.SeedSubdomain(t, ctx, db, domain.DomainID, "SV-S-"+suffix, 1)
	code := fmt.Sprintf("SV %s.1", suffix)
	testutil.SeedCompetency(t, ctx, db, sub.SubdomainID, code, 1)
	roleCode := "RC-" + suffix
	testutil.SeedRole(t, ctx, db, roleCode, "Save Target", types.RoleTypeGovernment)

	rec := doJSON(t, router, http.MethodPost, "/api/mappings/save", map[string]any{
		"roleCode":        roleCode,
		"competencyCodes": []string{code},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
	if body["mappingsCreated"].(float64) != 1 {
		t.Fatalf("body = %v", body)
	}
}

func TestSaveMappingsUnknownCodes(t *testing.T) {
	router, db := newTestRouter(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	roleCode := "UC-" + suffix
	testutil.SeedRole(t, ctx, db, roleCode, "Unknown Codes Target", types.RoleTypeGovernment)

	rec := doJSON(t, router, http.MethodPost, "/api/mappings/save", map[string]any{
		"roleCode":        roleCode,
		"competencyCodes": []string{"GHOST 1.1"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	decode(t, rec, &body)
	missing, ok := body["missingCodes"].([]any)
	if !ok || len(missing) != 1 || missing[0] != "GHOST 1.1" {
		t.Fatalf("body = %v", body)
	}
}
