package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Asip90/User-View-OpenFood/entity"
	"github.com/Asip90/User-View-OpenFood/middlewares"
	"github.com/Asip90/User-View-OpenFood/pkg/resp"
	"github.com/Asip90/User-View-OpenFood/repository"
	"github.com/Asip90/User-View-OpenFood/services"
)

type MenuController struct {
	Backend *repository.Backend
	Filter  services.FilterService
}

func NewMenuController(backend *repository.Backend) *MenuController {
	return &MenuController{Backend: backend}
}

type categorySummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GET /t/:token/menu
//
// Fetches the snapshot for this page load and binds it to the session.
// The page calls this once on mount, so a reload refetches. A failed
// fetch is the terminal "menu unavailable" state; the client recovers
// with a full reload.
func (ctl *MenuController) Get(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	token := c.Param("token")

	menu, err := ctl.Backend.FetchMenu(c.Request.Context(), token)
	if err != nil {
		log.Printf("menu fetch failed for table %s: %v", token, err)
		resp.BadGateway(c, "menu unavailable")
		return
	}
	sess.SetMenu(menu)

	counts := make([]categorySummary, 0, len(menu.Categories))
	for _, cat := range menu.Categories {
		counts = append(counts, categorySummary{ID: cat.ID, Name: cat.Name, Count: len(cat.Items)})
	}

	resp.OK(c, gin.H{
		"restaurant":    menu.Restaurant,
		"table":         menu.Table,
		"customization": menu.Customization,
		"categories":    counts,
		"items":         menu.Items(),
	})
}

// GET /t/:token/theme.css
//
// The theming side channel: customization rendered as CSS custom
// properties. Defaults are served until the menu has been fetched.
func (ctl *MenuController) ThemeCSS(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var custom entity.Customization
	if menu := sess.Menu(); menu != nil {
		custom = menu.Customization
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(services.ThemeCSS(custom)))
}

// GET /t/:token/items?category=&q=&price=&availability=&picker=&grouped=
//
// Applies the filter tuple and saves it as the session filter state.
// Absent params mean their sentinel, so the query string fully describes
// the state.
func (ctl *MenuController) Items(c *gin.Context) {
	sess := middlewares.RequireMenu(c)
	if sess == nil {
		return
	}
	menu := sess.Menu()

	f := entity.NewFilterState()
	if v := c.Query("category"); v != "" {
		f.Category = v
	}
	f.Query = c.Query("q")
	if v := c.Query("price"); v != "" {
		f.PriceBucket = v
	}
	if v := c.Query("availability"); v != "" {
		f.Availability = v
	}
	f.CategoryPickerOpen = c.Query("picker") == "open"
	sess.SetFilter(f)

	if c.Query("grouped") == "true" {
		groups := ctl.Filter.ApplyGrouped(menu, f)
		var count int
		for _, g := range groups {
			count += len(g.Items)
		}
		resp.OK(c, gin.H{"groups": groups, "count": count, "filter": f})
		return
	}

	items := ctl.Filter.Apply(menu, f)
	resp.OK(c, gin.H{"items": items, "count": len(items), "filter": f})
}

// POST /t/:token/filters/clear
//
// Resets every filter field to its sentinel and closes the category
// picker, atomically.
func (ctl *MenuController) ClearFilters(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	resp.OK(c, gin.H{"filter": sess.ClearFilters()})
}
