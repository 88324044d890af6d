package collection

import (
	"catalog-manager/core/logger"
	"catalog-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the collection.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collection")
	group.Get("/", h.HandleList)
	group.Get("/export", h.HandleExport)
	group.Post("/import", h.HandleImport)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandlePut)
	group.Post("/:id/observe", h.HandleObserve)
	group.Post("/:id/licensed", h.HandleMarkLicensed)
}

func itemID(c *fiber.Ctx) (int, bool) {
	id, err := utils.ParseID(c.Params("id"))
	return id, err == nil && id > 0
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
}

func serverError(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// HandleList lists every recorded item.
// @Summary List Collection
// @Description Returns every item with recorded collection state.
// @Tags collection
// @Produce json
// @Success 200 {array} CollectedItem
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.All(c.Context())
	if err != nil {
		return serverError(c, l, "Failed to list collection", err)
	}
	return c.JSON(items)
}

// HandleGet returns the state of one item.
// @Summary Get Collected Item
// @Tags collection
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} CollectedItem
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /collection/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, ok := itemID(c)
	if !ok {
		return badID(c)
	}
	it, err := h.service.Get(c.Context(), id)
	if err != nil {
		return serverError(c, l, "Failed to get collected item", err)
	}
	return c.JSON(it)
}

// HandlePut replaces the state of one item.
// @Summary Update Collected Item
// @Tags collection
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param item body CollectedItem true "New state"
// @Success 200 {object} CollectedItem
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /collection/{id} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, ok := itemID(c)
	if !ok {
		return badID(c)
	}
	var it CollectedItem
	if err := c.BodyParser(&it); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if it.ID != 0 && it.ID != id {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "item id does not match path"})
	}
	it.ID = id
	if it.LicenseProgress < 0 || it.StorageAmount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amounts must not be negative"})
	}

	if err := h.service.Save(c.Context(), it); err != nil {
		return serverError(c, l, "Failed to save collected item", err)
	}
	return c.JSON(it)
}

// HandleObserve marks an item as seen.
// @Summary Observe Item
// @Tags collection
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} CollectedItem
// @Router /collection/{id}/observe [post]
func (h *Handler) HandleObserve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, ok := itemID(c)
	if !ok {
		return badID(c)
	}
	it, err := h.service.Observe(c.Context(), id)
	if err != nil {
		return serverError(c, l, "Failed to observe item", err)
	}
	return c.JSON(it)
}

// HandleMarkLicensed marks an item as licensed.
// @Summary Mark Item Licensed
// @Tags collection
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} CollectedItem
// @Router /collection/{id}/licensed [post]
func (h *Handler) HandleMarkLicensed(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, ok := itemID(c)
	if !ok {
		return badID(c)
	}
	it, err := h.service.MarkLicensed(c.Context(), id)
	if err != nil {
		return serverError(c, l, "Failed to mark item licensed", err)
	}
	return c.JSON(it)
}

// HandleExport returns the collection file.
// @Summary Export Collection
// @Tags collection
// @Produce json
// @Success 200 {object} Collection
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	col, err := h.service.Export(c.Context())
	if err != nil {
		return serverError(c, l, "Failed to export collection", err)
	}
	return c.JSON(col)
}

// HandleImport replaces the collection.
// @Summary Import Collection
// @Description Replaces every recorded item with the uploaded collection file.
// @Tags collection
// @Accept json
// @Produce json
// @Param collection body Collection true "Collection file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid collection"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var col Collection
	if err := c.BodyParser(&col); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid collection file"})
	}
	if err := col.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.Import(c.Context(), col); err != nil {
		return serverError(c, l, "Failed to import collection", err)
	}
	return c.JSON(fiber.Map{
		"status": "imported",
		"items":  len(col.Items),
	})
}
