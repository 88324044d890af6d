package license

import (
	"strings"

	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the license calculator.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the license routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/license", h.HandleCompute)
}

// ParseHidden parses a comma separated list of catalog keys.
func ParseHidden(s string) ([]models.CatalogType, error) {
	var out []models.CatalogType
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, err := models.ParseCatalogType(part)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, nil
}

// HandleCompute returns the items left to license and the materials needed.
// @Summary License Requirements
// @Description Lists the items left to license and the total materials they need.
// @Tags license
// @Produce json
// @Param hide query string false "Comma separated catalog keys to hide"
// @Param hide_uncollected query boolean false "Hide items whose recipe was not collected"
// @Param hide_premium query boolean false "Hide premium pack items"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Unknown catalog"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /license [get]
func (h *Handler) HandleCompute(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	hidden, err := ParseHidden(c.Query("hide"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	f := Filter{
		HiddenCatalogs:  hidden,
		HideUncollected: c.QueryBool("hide_uncollected"),
		HidePremium:     c.QueryBool("hide_premium"),
	}

	res, err := h.service.Compute(c.Context(), f)
	if err != nil {
		l.Error("License computation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}
