package integrity

import (
	"catalog-manager/core/logger"
	"catalog-manager/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/files", h.HandleDataFilesCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
}

func checkError(err error) fiber.Map {
	return fiber.Map{"status": "error", "error": err.Error()}
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Files, Schema, Catalog).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := fiber.Map{}

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = checkError(err)
	} else {
		report["structure"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if issues, err := h.service.CheckDataFiles(ctx); err != nil {
		report["files"] = checkError(err)
	} else {
		report["files"] = fiber.Map{"status": "ok", "issues": issues}
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = checkError(err)
	} else {
		report["schema"] = schema
	}

	if catalogReport, err := h.service.CheckCatalog(ctx); err != nil {
		report["catalog"] = checkError(err)
	} else {
		report["catalog"] = catalogReport
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks that every data folder holds at least one data file. Optionally seeds missing folders with an empty file.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleDataFilesCheck checks the shape of every data file.
// @Summary Check Data Files
// @Description Verify that every data file is valid JSON carrying its top-level array.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Data File Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/files [get]
func (h *Handler) HandleDataFilesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	issues, err := h.service.CheckDataFiles(c.Context())
	if err != nil {
		l.Error("Data file check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"issues": issues,
	})
}

// HandleSchemaCheck checks the collection database schema.
// @Summary Check Collection Schema
// @Description Checks that the collection tables carry every expected column.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleCatalogCheck runs the catalog consistency checks.
// @Summary Check Catalog
// @Description Runs the advisory consistency checks over the committed catalog.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} validator.Report "Catalog Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckCatalog(c.Context())
	if err != nil {
		l.Error("Catalog check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Catalog check completed", zap.Int("warnings", len(report.Warnings)))
	return c.JSON(report)
}
