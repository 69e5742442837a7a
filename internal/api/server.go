package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type ServerConfig struct {
	Development bool
	RateLimit   rate.Limit
	RateBurst   int
}

type Handlers struct {
	Health  *HealthHandler
	Catalog *CatalogHandler
	Cart    *CartHandler
}

// NewServer wires middleware, routes and error handling onto a new echo
// instance.
func NewServer(cfg ServerConfig, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(cfg.Development)

	if cfg.RateLimit == 0 {
		cfg.RateLimit = 20
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 40
	}

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      cfg.RateLimit,
				Burst:     cfg.RateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, SessionHeader},
		ExposeHeaders: []string{SessionHeader},
	}))
	e.Use(RequestLogger())
	e.Use(middleware.BodyLimit("10K"))
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.GET("/health", h.Health.Health)
	e.GET("/health/live", h.Health.Live)
	e.GET("/health/ready", h.Health.Ready)
	e.GET("/", h.Health.Root)
	e.POST("/", h.Health.Echo)

	api := e.Group("/api")
	api.GET("/restaurant", h.Catalog.Restaurant)
	api.POST("/restaurant/revalidate", h.Catalog.Revalidate)
	api.GET("/menu/groups", h.Catalog.MenuGroups)
	api.GET("/menu/groups/counts", h.Catalog.MenuGroupCounts)
	api.GET("/menu/groups/:id", h.Catalog.MenuGroup)
	api.GET("/menu/groups/:id/subgroups", h.Catalog.SubGroups)
	api.GET("/menu/items", h.Catalog.MenuItems)
	api.GET("/menu/items/stats", h.Catalog.MenuItemStats)
	api.GET("/menu/items/:id", h.Catalog.MenuItem)
	api.GET("/menu/items/:id/food", h.Catalog.Food)
	api.GET("/tables", h.Catalog.Tables)
	api.GET("/tables/groups", h.Catalog.TableGroups)
	api.GET("/tables/stats", h.Catalog.TableStats)
	api.GET("/tables/:uid", h.Catalog.Table)
	api.GET("/allergens", h.Catalog.Allergens)
	api.GET("/categories", h.Catalog.Categories)
	api.GET("/categories/:slug", h.Catalog.Category)

	carts := api.Group("/cart", CartSession())
	carts.GET("", h.Cart.GetCart)
	carts.DELETE("", h.Cart.ClearCart)
	carts.POST("/items", h.Cart.AddItem)
	carts.PATCH("/items/:id", h.Cart.UpdateQuantity)
	carts.PUT("/items/:id/notes", h.Cart.UpdateProductNotes)
	carts.DELETE("/items/:id", h.Cart.RemoveItem)
	carts.GET("/count", h.Cart.Count)
	carts.PUT("/notes", h.Cart.UpdateOrderNotes)
	carts.PUT("/table", h.Cart.SetTable)
	carts.POST("/open", h.Cart.OpenCart)
	carts.POST("/close", h.Cart.CloseCart)
	carts.POST("/toggle", h.Cart.ToggleCart)

	return e
}

// RequestLogger writes one zerolog line per request.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil || v.Status >= http.StatusBadRequest {
				event = logger.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Str("user_agent", v.UserAgent).
				Msg("request")
			return nil
		},
	})
}

// ErrorHandler answers unknown routes with 404 and every other error with
// {success:false, message}. Server error details are shown only in
// development.
func ErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
			_ = c.JSON(http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": fmt.Sprintf("Route %s not found", c.Request().URL.RequestURI()),
			})
			return
		}

		code := http.StatusInternalServerError
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		}

		logger.Error().Err(err).
			Int("status", code).
			Str("method", c.Request().Method).
			Str("url", c.Request().URL.String()).
			Str("ip", c.RealIP()).
			Str("user_agent", c.Request().UserAgent()).
			Msgf("Error %d: %s", code, message)

		if code >= http.StatusInternalServerError && !development {
			message = "An error occurred"
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, map[string]interface{}{"success": false, "message": message})
	}
}
