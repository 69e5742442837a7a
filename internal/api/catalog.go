package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"restaurant-service/internal/service"
)

type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type CatalogHandler struct {
	catalog *service.CatalogService
	cache   cacheInvalidator
}

// NewCatalogHandler creates a new instance of CatalogHandler
func NewCatalogHandler(catalog *service.CatalogService, cache cacheInvalidator) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cache: cache}
}

func (h *CatalogHandler) Restaurant(c echo.Context) error {
	restaurant, err := h.catalog.Restaurant(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

// Revalidate drops the cached restaurant document and allergen names.
func (h *CatalogHandler) Revalidate(c echo.Context) error {
	if h.cache != nil {
		if err := h.cache.Invalidate(c.Request().Context()); err != nil {
			return err
		}
	}
	h.catalog.ClearAllergenCache()
	return c.JSON(http.StatusOK, map[string]interface{}{"revalidated": true})
}

func (h *CatalogHandler) MenuGroups(c echo.Context) error {
	ctx := c.Request().Context()
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		groups, err := h.catalog.SearchMenuGroups(ctx, q)
		if err != nil {
			return catalogError(c, err)
		}
		return c.JSON(http.StatusOK, groups)
	}

	groups, err := h.catalog.MenuGroups(ctx)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *CatalogHandler) MenuGroup(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}
	group, err := h.catalog.MenuGroup(c.Request().Context(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, group)
}

func (h *CatalogHandler) SubGroups(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}
	groups, err := h.catalog.SubGroups(c.Request().Context(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *CatalogHandler) MenuGroupCounts(c echo.Context) error {
	counts, err := h.catalog.MenuGroupCounts(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// MenuItems applies at most one filter, checked in this order: groupId, q,
// vegetarian, exclude, minPrice/maxPrice, sort.
func (h *CatalogHandler) MenuItems(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items interface{}
		err   error
	)
	switch {
	case c.QueryParam("groupId") != "":
		groupID, convErr := strconv.Atoi(c.QueryParam("groupId"))
		if convErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid groupId"})
		}
		items, err = h.catalog.MenuItemsByGroup(ctx, groupID)
	case strings.TrimSpace(c.QueryParam("q")) != "":
		items, err = h.catalog.SearchMenuItems(ctx, strings.TrimSpace(c.QueryParam("q")))
	case c.QueryParam("vegetarian") == "true":
		items, err = h.catalog.VegetarianItems(ctx)
	case c.QueryParam("exclude") != "":
		items, err = h.catalog.ItemsWithoutAllergens(ctx, strings.Split(c.QueryParam("exclude"), ","))
	case c.QueryParam("minPrice") != "" || c.QueryParam("maxPrice") != "":
		minPrice, maxPrice, ok := priceRange(c.QueryParam("minPrice"), c.QueryParam("maxPrice"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid price range"})
		}
		items, err = h.catalog.ItemsByPriceRange(ctx, minPrice, maxPrice)
	case c.QueryParam("sort") != "":
		switch c.QueryParam("sort") {
		case "price", "price_asc":
			items, err = h.catalog.ItemsSortedByPrice(ctx, true)
		case "price_desc":
			items, err = h.catalog.ItemsSortedByPrice(ctx, false)
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid sort"})
		}
	case c.QueryParam("grouped") == "true":
		items, err = h.catalog.GroupedMenuItems(ctx)
	default:
		items, err = h.catalog.MenuItems(ctx)
	}
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) MenuItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}
	item, err := h.catalog.MenuItem(c.Request().Context(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Food returns the cart snapshot of a menu item, allergen names resolved.
func (h *CatalogHandler) Food(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}
	food, err := h.catalog.Food(c.Request().Context(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, food)
}

func (h *CatalogHandler) MenuItemStats(c echo.Context) error {
	stats, err := h.catalog.MenuItemStats(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Tables applies at most one filter, checked in this order: group, q,
// minCapacity/maxCapacity, bookingFee.
func (h *CatalogHandler) Tables(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		tables interface{}
		err    error
	)
	switch {
	case c.QueryParam("group") != "":
		tables, err = h.catalog.TablesByGroup(ctx, c.QueryParam("group"))
	case strings.TrimSpace(c.QueryParam("q")) != "":
		tables, err = h.catalog.SearchTables(ctx, strings.TrimSpace(c.QueryParam("q")))
	case c.QueryParam("minCapacity") != "" || c.QueryParam("maxCapacity") != "":
		minCapacity, maxCapacity, ok := capacityRange(c.QueryParam("minCapacity"), c.QueryParam("maxCapacity"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid capacity"})
		}
		tables, err = h.catalog.TablesByCapacity(ctx, minCapacity, maxCapacity)
	case c.QueryParam("bookingFee") != "":
		withFee, convErr := strconv.ParseBool(c.QueryParam("bookingFee"))
		if convErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid bookingFee"})
		}
		tables, err = h.catalog.TablesWithBookingFee(ctx, withFee)
	default:
		tables, err = h.catalog.Tables(ctx)
	}
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, tables)
}

func (h *CatalogHandler) Table(c echo.Context) error {
	table, err := h.catalog.TableByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

func (h *CatalogHandler) TableGroups(c echo.Context) error {
	groups, err := h.catalog.TableGroups(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *CatalogHandler) TableStats(c echo.Context) error {
	stats, err := h.catalog.TableStats(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *CatalogHandler) Allergens(c echo.Context) error {
	allergens, err := h.catalog.Allergens(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, allergens)
}

func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) Category(c echo.Context) error {
	category, err := h.catalog.Category(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// catalogError answers lookups that missed with 404 and hands everything
// else to the error handler.
func catalogError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return err
}

func priceRange(minRaw, maxRaw string) (float64, float64, bool) {
	minPrice, maxPrice := 0.0, math.MaxFloat64
	var err error
	if minRaw != "" {
		if minPrice, err = strconv.ParseFloat(minRaw, 64); err != nil {
			return 0, 0, false
		}
	}
	if maxRaw != "" {
		if maxPrice, err = strconv.ParseFloat(maxRaw, 64); err != nil {
			return 0, 0, false
		}
	}
	return minPrice, maxPrice, minPrice <= maxPrice
}

func capacityRange(minRaw, maxRaw string) (int, int, bool) {
	var minCapacity, maxCapacity int
	var err error
	if minRaw != "" {
		if minCapacity, err = strconv.Atoi(minRaw); err != nil {
			return 0, 0, false
		}
	}
	if maxRaw != "" {
		if maxCapacity, err = strconv.Atoi(maxRaw); err != nil {
			return 0, 0, false
		}
	}
	return minCapacity, maxCapacity, maxCapacity == 0 || minCapacity <= maxCapacity
}
