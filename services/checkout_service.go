package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Asip90/User-View-OpenFood/entity"
	"github.com/Asip90/User-View-OpenFood/repository"
)

type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutEditing    CheckoutState = "editing"
	CheckoutValidating CheckoutState = "validating"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSuccess    CheckoutState = "success"
)

const (
	// ResetDelay is how long the success state lingers before the cart,
	// form and panels are reset.
	ResetDelay = 2500 * time.Millisecond
	// ConfirmDismissDelay auto-dismisses the confirmation overlay,
	// independent of the reset.
	ConfirmDismissDelay = 3 * time.Second
)

var (
	ErrCheckoutNotOpen  = errors.New("checkout is not open")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
	ErrValidationFailed = errors.New("validation failed")
)

// OrderCreator is the slice of the backend the pipeline needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, tableToken string, payload *entity.OrderPayload) (*repository.CreateOrderRes, error)
}

// CheckoutService drives one diner's checkout: the cart drawer flag, the
// modal state machine (idle → editing → validating → submitting → success,
// with errors returning to editing), and the timed reset after a confirmed
// order. All transitions happen under its lock; timer callbacks re-check
// state so a stale timer never acts after being superseded.
type CheckoutService struct {
	cart       *CartService
	orders     OrderCreator
	tableToken string

	ResetDelay   time.Duration
	ConfirmDelay time.Duration

	mu               sync.Mutex
	state            CheckoutState
	orderType        entity.OrderType
	form             entity.CustomerInfo
	fieldErrors      map[string]string
	message          string
	messageKind      string
	showConfirmation bool
	cartOpen         bool
	lastOrderNumber  string

	resetTimer   *time.Timer
	confirmTimer *time.Timer
}

func NewCheckoutService(cart *CartService, orders OrderCreator, tableToken string) *CheckoutService {
	return &CheckoutService{
		cart:         cart,
		orders:       orders,
		tableToken:   tableToken,
		ResetDelay:   ResetDelay,
		ConfirmDelay: ConfirmDismissDelay,
		state:        CheckoutIdle,
		orderType:    entity.OrderTypeDineIn,
	}
}

// Snapshot is the read-only view controllers expose to rendering code.
type Snapshot struct {
	State            CheckoutState       `json:"state"`
	OrderType        entity.OrderType    `json:"order_type"`
	Form             entity.CustomerInfo `json:"form"`
	FieldErrors      map[string]string   `json:"field_errors,omitempty"`
	Message          string              `json:"message,omitempty"`
	MessageKind      string              `json:"message_kind,omitempty"`
	ShowConfirmation bool                `json:"show_confirmation"`
	CartOpen         bool                `json:"cart_open"`
	OrderNumber      string              `json:"order_number,omitempty"`
}

func (s *CheckoutService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:            s.state,
		OrderType:        s.orderType,
		Form:             s.form,
		FieldErrors:      s.fieldErrors,
		Message:          s.message,
		MessageKind:      s.messageKind,
		ShowConfirmation: s.showConfirmation,
		CartOpen:         s.cartOpen,
		OrderNumber:      s.lastOrderNumber,
	}
}

func (s *CheckoutService) OrderType() entity.OrderType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderType
}

func (s *CheckoutService) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = true
}

func (s *CheckoutService) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = false
}

// Open moves idle → editing. The modal needs something to order.
func (s *CheckoutService) Open() error {
	if s.cart.Empty() {
		return ErrCartEmpty
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == CheckoutSubmitting {
		return ErrSubmitInFlight
	}
	if s.state == CheckoutIdle {
		s.state = CheckoutEditing
	}
	return nil
}

// Close dismisses the modal, discarding the form. Blocked while a
// submission is in flight.
func (s *CheckoutService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == CheckoutSubmitting {
		return ErrSubmitInFlight
	}
	s.resetFormLocked()
	s.state = CheckoutIdle
	return nil
}

// SetOrderType switches the service type while the modal is open.
func (s *CheckoutService) SetOrderType(t entity.OrderType) error {
	if !t.Valid() {
		return fmt.Errorf("invalid order type %q", t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == CheckoutSubmitting {
		return ErrSubmitInFlight
	}
	s.orderType = t
	return nil
}

// Submit runs the whole pipeline: local validation, payload assembly, the
// single POST, and the resulting state transition. The submit control is
// re-entrancy guarded; only one submission can be in flight.
func (s *CheckoutService) Submit(ctx context.Context, orderType entity.OrderType, form entity.CustomerInfo) error {
	s.mu.Lock()
	switch s.state {
	case CheckoutSubmitting:
		s.mu.Unlock()
		return ErrSubmitInFlight
	case CheckoutIdle, CheckoutSuccess:
		s.mu.Unlock()
		return ErrCheckoutNotOpen
	}
	if orderType.Valid() {
		s.orderType = orderType
	}
	s.form = form

	s.state = CheckoutValidating
	if errs := ValidateCustomerInfo(form); len(errs) > 0 {
		s.fieldErrors = errs
		s.state = CheckoutEditing
		s.mu.Unlock()
		return ErrValidationFailed
	}
	s.fieldErrors = nil

	if s.cart.Empty() {
		s.state = CheckoutEditing
		s.mu.Unlock()
		return ErrCartEmpty
	}

	payload := &entity.OrderPayload{
		OrderType:     s.orderType,
		CustomerName:  form.Name,
		CustomerPhone: form.Phone,
		CustomerEmail: form.Email,
		Note:          form.Note,
		TableToken:    s.tableToken,
		Items:         s.cart.OrderItems(),
	}
	s.state = CheckoutSubmitting
	s.message = ""
	s.messageKind = ""
	s.mu.Unlock()

	res, err := s.orders.CreateOrder(ctx, s.tableToken, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != CheckoutSubmitting {
		// The session was torn down or reset while the request was in
		// flight; discard the stale result.
		return nil
	}

	if err != nil {
		var apiErr *repository.APIError
		if errors.As(err, &apiErr) {
			s.message = apiErr.Detail
			if s.message == "" {
				s.message = "The order could not be submitted."
			}
		} else {
			s.message = "Network error, please try again."
		}
		s.messageKind = "error"
		s.state = CheckoutEditing
		return nil
	}

	s.lastOrderNumber = res.OrderNumber.String()
	s.message = fmt.Sprintf("Order #%s confirmed!", s.lastOrderNumber)
	s.messageKind = "success"
	s.showConfirmation = true
	s.state = CheckoutSuccess
	s.scheduleResetLocked()
	return nil
}

// scheduleResetLocked arms the post-success timers, superseding any timers
// from an earlier order.
func (s *CheckoutService) scheduleResetLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetTimer = time.AfterFunc(s.ResetDelay, s.finishReset)

	if s.confirmTimer != nil {
		s.confirmTimer.Stop()
	}
	s.confirmTimer = time.AfterFunc(s.ConfirmDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.showConfirmation = false
	})
}

// finishReset clears the cart, closes both panels and resets the form once
// the success message has been on screen long enough.
func (s *CheckoutService) finishReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != CheckoutSuccess {
		return
	}
	s.cart.Clear()
	s.resetFormLocked()
	s.cartOpen = false
	s.state = CheckoutIdle
}

func (s *CheckoutService) resetFormLocked() {
	s.form = entity.CustomerInfo{}
	s.fieldErrors = nil
	s.message = ""
	s.messageKind = ""
}

// Teardown stops pending timers so nothing fires after the session is
// gone.
func (s *CheckoutService) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	if s.confirmTimer != nil {
		s.confirmTimer.Stop()
	}
	s.state = CheckoutIdle
}

var (
	validate     = validator.New()
	phonePattern = regexp.MustCompile(`^[0-9+]{8,15}$`)
)

func init() {
	_ = validate.RegisterValidation("table_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// ValidateCustomerInfo checks the contact form locally: name must be
// non-empty after trimming, phone must be 8-15 digits (a leading + is
// allowed) once internal whitespace is stripped. Email and note are free
// text. Returns a per-field error map; an empty map means valid.
func ValidateCustomerInfo(in entity.CustomerInfo) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(in.Name)
	if err := validate.Var(name, "required"); err != nil {
		errs["name"] = "Name is required."
	}

	phone := stripWhitespace(in.Phone)
	if err := validate.Var(phone, "required"); err != nil {
		errs["phone"] = "Phone number is required."
	} else if err := validate.Var(phone, "table_phone"); err != nil {
		errs["phone"] = "Invalid phone number."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
