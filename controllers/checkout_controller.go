package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Asip90/User-View-OpenFood/entity"
	"github.com/Asip90/User-View-OpenFood/middlewares"
	"github.com/Asip90/User-View-OpenFood/pkg/resp"
	"github.com/Asip90/User-View-OpenFood/services"
)

type CheckoutController struct{}

func NewCheckoutController() *CheckoutController { return &CheckoutController{} }

// GET /t/:token/checkout
func (ctl *CheckoutController) Get(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	resp.OK(c, sess.Checkout.Snapshot())
}

// POST /t/:token/checkout/open
func (ctl *CheckoutController) Open(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	if err := sess.Checkout.Open(); err != nil {
		resp.Conflict(c, err.Error())
		return
	}
	resp.OK(c, sess.Checkout.Snapshot())
}

// POST /t/:token/checkout/close
func (ctl *CheckoutController) Close(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	if err := sess.Checkout.Close(); err != nil {
		resp.Conflict(c, err.Error())
		return
	}
	resp.OK(c, sess.Checkout.Snapshot())
}

// POST /t/:token/checkout/order-type
func (ctl *CheckoutController) SetOrderType(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req struct {
		OrderType string `json:"order_type" binding:"required,oneof=dine_in takeaway delivery"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := sess.Checkout.SetOrderType(entity.OrderType(req.OrderType)); err != nil {
		resp.Conflict(c, err.Error())
		return
	}
	resp.OK(c, sess.Checkout.Snapshot())
}

type submitReq struct {
	OrderType string `json:"order_type" binding:"omitempty,oneof=dine_in takeaway delivery"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Note      string `json:"note"`
}

// POST /t/:token/checkout
//
// Runs the submission pipeline. Local validation failures come back as
// 422 with the per-field error map; everything past validation settles
// into the checkout snapshot (success, rejection or network failure) so
// the client renders one state object either way.
func (ctl *CheckoutController) Submit(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	form := entity.CustomerInfo{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Note:  req.Note,
	}

	err := sess.Checkout.Submit(c.Request.Context(), entity.OrderType(req.OrderType), form)
	switch {
	case err == nil:
		resp.OK(c, sess.Checkout.Snapshot())
	case errors.Is(err, services.ErrValidationFailed):
		resp.Unprocessable(c, err.Error(), sess.Checkout.Snapshot().FieldErrors)
	case errors.Is(err, services.ErrSubmitInFlight),
		errors.Is(err, services.ErrCheckoutNotOpen),
		errors.Is(err, services.ErrCartEmpty):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
