package catalog

import (
	"errors"
	"net/url"

	"catalog-manager/core/dataerr"
	"catalog-manager/core/logger"
	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/items", h.HandleListItems)
	group.Get("/items/:id", h.HandleGetItem)
	group.Get("/sources", h.HandleListSources)
	group.Get("/sources/:key", h.HandleGetSource)
	group.Get("/catalogs/:key", h.HandleGetCatalog)
	group.Post("/import/:sheet", h.HandleImport)
	group.Get("/export/items", h.HandleExportItems)
	group.Get("/export/new", h.HandleExportNewItems)
	group.Get("/export/catalog/:key", h.HandleExportCatalog)
	group.Get("/validate", h.HandleValidate)
	group.Post("/reload", h.HandleReload)
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var de *dataerr.Error
	switch {
	case errors.As(err, &de):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleListItems lists every item.
// @Summary List Items
// @Description Returns every catalog item ordered by id.
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Item
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.Items(c.Context())
	if err != nil {
		return h.fail(c, l, "Failed to list items", err)
	}
	return c.JSON(items)
}

// HandleGetItem returns one item.
// @Summary Get Item
// @Description Returns a single catalog item.
// @Tags catalog
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.Item
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/items/{id} [get]
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}
	it, err := h.service.Item(c.Context(), id)
	if err != nil {
		return h.fail(c, l, "Failed to get item", err)
	}
	return c.JSON(it)
}

// HandleListSources lists the source index.
// @Summary List Sources
// @Description Returns every way to obtain items, with the items each one drops.
// @Tags catalog
// @Produce json
// @Param type query string false "Only sources of this type"
// @Success 200 {array} models.SourceDetails
// @Failure 400 {object} map[string]string "Unknown type"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/sources [get]
func (h *Handler) HandleListSources(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var only models.SourceType
	if t := c.Query("type"); t != "" {
		parsed, err := models.ParseSourceType(t)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		only = parsed
	}

	sources, err := h.service.Sources(c.Context(), only)
	if err != nil {
		return h.fail(c, l, "Failed to list sources", err)
	}
	return c.JSON(sources)
}

// HandleGetSource returns one source.
// @Summary Get Source
// @Description Returns one entry of the source index by key.
// @Tags catalog
// @Produce json
// @Param key path string true "Source key"
// @Success 200 {object} models.SourceDetails
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/sources/{key} [get]
func (h *Handler) HandleGetSource(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid source key"})
	}
	d, err := h.service.Source(c.Context(), models.SourceKey(key))
	if err != nil {
		return h.fail(c, l, "Failed to get source", err)
	}
	return c.JSON(d)
}

// HandleGetCatalog returns one catalog.
// @Summary Get Catalog
// @Description Returns a catalog with its resolved item ids.
// @Tags catalog
// @Produce json
// @Param key path string true "Catalog key"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/catalogs/{key} [get]
func (h *Handler) HandleGetCatalog(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key, err := models.ParseCatalogType(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	def, err := h.service.Catalog(c.Context(), key)
	if err != nil {
		return h.fail(c, l, "Failed to get catalog", err)
	}
	return c.JSON(fiber.Map{
		"catalog":  def,
		"item_ids": def.ItemSet.IDs(),
	})
}

// HandleImport imports a spreadsheet export.
// @Summary Import Sheet
// @Description Parses a spreadsheet export, integrates it and commits the result unless dry_run is set.
// @Tags catalog
// @Accept plain
// @Produce json
// @Param sheet path string true "Sheet format" Enums(license, sources, icons, journey)
// @Param dry_run query boolean false "Plan only"
// @Param keep_sources query boolean false "Keep existing sources on source import"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Unknown sheet"
// @Failure 422 {object} map[string]string "Invalid sheet data"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/import/{sheet} [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sheet, err := ParseSheet(c.Params("sheet"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dryRun := utils.ToBool(c.Query("dry_run"))

	l.Info("Importing sheet", zap.String("sheet", string(sheet)), zap.Bool("dry_run", dryRun))
	result, err := h.service.Import(c.Context(), sheet, string(c.Body()), ImportOptions{
		DryRun:      dryRun,
		Confirmed:   !dryRun,
		KeepSources: utils.ToBool(c.Query("keep_sources")),
	})
	if err != nil {
		return h.fail(c, l, "Import failed", err)
	}
	return c.JSON(result)
}

func (h *Handler) sendExport(c *fiber.Ctx, exp *Export) error {
	c.Set("X-Export-Path", exp.Path)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(exp.Data)
}

// HandleExportItems exports every item.
// @Summary Export Items
// @Description Writes all items to the export folder and returns the file.
// @Tags catalog
// @Produce json
// @Success 200 {object} models.ItemFile
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/export/items [get]
func (h *Handler) HandleExportItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	exp, err := h.service.ExportItems(c.Context())
	if err != nil {
		return h.fail(c, l, "Export failed", err)
	}
	return h.sendExport(c, exp)
}

// HandleExportNewItems exports the items added since load.
// @Summary Export New Items
// @Description Writes the items created since the data files were loaded and returns the file.
// @Tags catalog
// @Produce json
// @Success 200 {object} models.ItemFile
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/export/new [get]
func (h *Handler) HandleExportNewItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	exp, err := h.service.ExportNewItems(c.Context())
	if err != nil {
		return h.fail(c, l, "Export failed", err)
	}
	return h.sendExport(c, exp)
}

// HandleExportCatalog exports one catalog.
// @Summary Export Catalog
// @Description Writes one catalog to the export folder and returns the file.
// @Tags catalog
// @Produce json
// @Param key path string true "Catalog key"
// @Success 200 {object} models.CatalogFile
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/export/catalog/{key} [get]
func (h *Handler) HandleExportCatalog(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key, err := models.ParseCatalogType(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	exp, err := h.service.ExportCatalog(c.Context(), key)
	if err != nil {
		return h.fail(c, l, "Export failed", err)
	}
	return h.sendExport(c, exp)
}

// HandleValidate runs the integrity checks.
// @Summary Validate Catalog
// @Description Runs the advisory consistency checks over the committed catalog.
// @Tags catalog
// @Produce json
// @Success 200 {object} validator.Report
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/validate [get]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Validate(c.Context())
	if err != nil {
		return h.fail(c, l, "Validation failed", err)
	}
	l.Info("Validation completed", zap.Int("warnings", len(report.Warnings)))
	return c.JSON(report)
}

// HandleReload re-reads the data files.
// @Summary Reload Catalog
// @Description Drops the committed snapshot and reads the data files again. Unexported changes are lost.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Invalid data files"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	db, err := h.service.Reload(c.Context())
	if err != nil {
		return h.fail(c, l, "Reload failed", err)
	}
	return c.JSON(fiber.Map{
		"status":  "reloaded",
		"items":   len(db.Items),
		"sources": len(db.Sources),
	})
}
