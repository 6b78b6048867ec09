package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Asip90/User-View-OpenFood/configs"
	"github.com/Asip90/User-View-OpenFood/controllers"
	"github.com/Asip90/User-View-OpenFood/middlewares"
	"github.com/Asip90/User-View-OpenFood/repository"
	"github.com/Asip90/User-View-OpenFood/services"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, backend *repository.Backend, sessions *services.SessionService) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Controllers
	menuCtrl := controllers.NewMenuController(backend)
	cartCtrl := controllers.NewCartController(cfg.DeliveryFee)
	checkoutCtrl := controllers.NewCheckoutController()

	// Everything a diner touches is scoped to a table token; the token is
	// the only capability.
	t := r.Group("/t/:token", middlewares.SessionMiddleware(sessions))
	{
		t.GET("/menu", menuCtrl.Get)
		t.GET("/theme.css", menuCtrl.ThemeCSS)
		t.GET("/items", menuCtrl.Items)
		t.POST("/filters/clear", menuCtrl.ClearFilters)

		t.GET("/cart", cartCtrl.Get)
		t.POST("/cart/items", cartCtrl.Add)
		t.DELETE("/cart/items/:id", cartCtrl.Remove)
		t.DELETE("/cart", cartCtrl.Clear)
		t.POST("/cart/open", cartCtrl.Open)
		t.POST("/cart/close", cartCtrl.Close)

		t.GET("/checkout", checkoutCtrl.Get)
		t.POST("/checkout/open", checkoutCtrl.Open)
		t.POST("/checkout/close", checkoutCtrl.Close)
		t.POST("/checkout/order-type", checkoutCtrl.SetOrderType)
		t.POST("/checkout", checkoutCtrl.Submit)
	}
}
