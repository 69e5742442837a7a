package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"restaurant-service/internal/cart"
	"restaurant-service/internal/service"
)

type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler creates a new instance of CartHandler
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartResponse struct {
	cart.State
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

type addItemRequest struct {
	FoodID   int    `json:"foodId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type tableRequest struct {
	Table string `json:"table"`
	QR    string `json:"qr"`
}

func (h *CartHandler) store(c echo.Context) *cart.Store {
	return h.carts.For(c.Request().Context(), sessionID(c))
}

func respondCart(c echo.Context, store *cart.Store) error {
	state := store.State()
	return c.JSON(http.StatusOK, cartResponse{
		State:      state,
		TotalItems: state.TotalItems(),
		TotalPrice: state.TotalPrice(),
	})
}

// GetCart clears an expired cart before returning it.
func (h *CartHandler) GetCart(c echo.Context) error {
	store := h.store(c)
	store.CheckExpiration(c.Request().Context())
	return respondCart(c, store)
}

// ClearCart empties the session cart --> DELETE /api/cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	store := h.store(c)
	store.ClearCart(c.Request().Context())
	return respondCart(c, store)
}

// AddItem adds a menu item to the cart --> POST /api/cart/items
func (h *CartHandler) AddItem(c echo.Context) error {
	req := addItemRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if req.FoodID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "foodId is required"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request().Context()
	_, err := h.carts.AddFood(ctx, sessionID(c), req.FoodID, req.Quantity, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return err
	}
	return respondCart(c, h.store(c))
}

// UpdateQuantity sets a line quantity --> PATCH /api/cart/items/:id
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	req := quantityRequest{}
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	store := h.store(c)
	itemID := c.Param("id")
	if _, ok := store.Item(itemID); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Cart item not found"})
	}
	store.UpdateQuantity(c.Request().Context(), itemID, *req.Quantity)
	return respondCart(c, store)
}

// UpdateProductNotes edits a line's notes --> PUT /api/cart/items/:id/notes
func (h *CartHandler) UpdateProductNotes(c echo.Context) error {
	req := notesRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	store := h.store(c)
	itemID := c.Param("id")
	if _, ok := store.Item(itemID); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Cart item not found"})
	}
	store.UpdateProductNotes(c.Request().Context(), itemID, req.Notes)
	return respondCart(c, store)
}

// RemoveItem drops a line --> DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c echo.Context) error {
	store := h.store(c)
	store.RemoveItem(c.Request().Context(), c.Param("id"))
	return respondCart(c, store)
}

// Count returns the total quantity, or the quantity of one food/notes line
// when foodId is given.
func (h *CartHandler) Count(c echo.Context) error {
	store := h.store(c)
	if foodID := c.QueryParam("foodId"); foodID != "" {
		return c.JSON(http.StatusOK, map[string]int{"count": store.ItemCount(foodID, c.QueryParam("notes"))})
	}
	return c.JSON(http.StatusOK, map[string]int{"count": store.TotalItems()})
}

// UpdateOrderNotes sets the order-wide notes --> PUT /api/cart/notes
func (h *CartHandler) UpdateOrderNotes(c echo.Context) error {
	req := notesRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	store := h.store(c)
	store.UpdateOrderNotes(c.Request().Context(), req.Notes)
	return respondCart(c, store)
}

// SetTable takes a table number, or the raw payload of a table QR code.
func (h *CartHandler) SetTable(c echo.Context) error {
	req := tableRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	table := req.Table
	if strings.TrimSpace(req.QR) != "" {
		parsed, ok := cart.ParseTableNumber(req.QR)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid table QR code"})
		}
		table = parsed
	}
	if strings.TrimSpace(table) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "table is required"})
	}

	store := h.store(c)
	store.SetTableNumber(c.Request().Context(), table)
	return respondCart(c, store)
}

func (h *CartHandler) OpenCart(c echo.Context) error {
	store := h.store(c)
	store.OpenCart(c.Request().Context())
	return respondCart(c, store)
}

func (h *CartHandler) CloseCart(c echo.Context) error {
	store := h.store(c)
	store.CloseCart()
	return respondCart(c, store)
}

func (h *CartHandler) ToggleCart(c echo.Context) error {
	store := h.store(c)
	store.ToggleCart(c.Request().Context())
	return respondCart(c, store)
}
