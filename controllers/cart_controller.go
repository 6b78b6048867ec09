package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Asip90/User-View-OpenFood/entity"
	"github.com/Asip90/User-View-OpenFood/middlewares"
	"github.com/Asip90/User-View-OpenFood/pkg/resp"
	"github.com/Asip90/User-View-OpenFood/services"
)

type CartController struct {
	// DeliveryFee is added to the displayed total when the delivery order
	// type is selected. Presentation-side only; the upstream API receives
	// item lines.
	DeliveryFee float64
}

func NewCartController(deliveryFee float64) *CartController {
	return &CartController{DeliveryFee: deliveryFee}
}

type cartSummary struct {
	Lines       []entity.CartLine `json:"lines"`
	Count       int               `json:"count"`
	Subtotal    float64           `json:"subtotal"`
	DeliveryFee float64           `json:"delivery_fee"`
	Total       float64           `json:"total"`
	CartOpen    bool              `json:"cart_open"`
}

func (ctl *CartController) summary(sess *services.Session) cartSummary {
	subtotal := sess.Cart.Total()
	var fee float64
	if sess.Checkout.OrderType() == entity.OrderTypeDelivery {
		fee = ctl.DeliveryFee
	}
	return cartSummary{
		Lines:       sess.Cart.Lines(),
		Count:       sess.Cart.Count(),
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
		CartOpen:    sess.Checkout.Snapshot().CartOpen,
	}
}

// GET /t/:token/cart
func (ctl *CartController) Get(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	resp.OK(c, ctl.summary(sess))
}

// POST /t/:token/cart/items
func (ctl *CartController) Add(c *gin.Context) {
	sess := middlewares.RequireMenu(c)
	if sess == nil {
		return
	}

	var req struct {
		MenuItemID int `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, ok := sess.Menu().FindItem(req.MenuItemID)
	if !ok {
		resp.NotFound(c, "menu item not found")
		return
	}
	sess.Cart.AddItem(item)
	resp.OK(c, ctl.summary(sess))
}

// DELETE /t/:token/cart/items/:id
func (ctl *CartController) Remove(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}
	sess.Cart.RemoveItem(id)
	resp.OK(c, ctl.summary(sess))
}

// DELETE /t/:token/cart
func (ctl *CartController) Clear(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	sess.Cart.Clear()
	resp.OK(c, ctl.summary(sess))
}

// POST /t/:token/cart/open
func (ctl *CartController) Open(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	sess.Checkout.OpenCart()
	resp.OK(c, ctl.summary(sess))
}

// POST /t/:token/cart/close
func (ctl *CartController) Close(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	sess.Checkout.CloseCart()
	resp.OK(c, ctl.summary(sess))
}
