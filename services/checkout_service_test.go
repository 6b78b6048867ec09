package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Asip90/User-View-OpenFood/entity"
	"github.com/Asip90/User-View-OpenFood/repository"
)

func TestValidateCustomerInfo(t *testing.T) {
	tests := []struct {
		name   string
		in     entity.CustomerInfo
		fields []string
	}{
		{"valid", entity.CustomerInfo{Name: "Jean", Phone: "+33612345678"}, nil},
		{"valid with spaces in phone", entity.CustomerInfo{Name: "Jean", Phone: "06 12 34 56 78"}, nil},
		{"empty name", entity.CustomerInfo{Name: "", Phone: "+33612345678"}, []string{"name"}},
		{"whitespace name", entity.CustomerInfo{Name: "   ", Phone: "+33612345678"}, []string{"name"}},
		{"phone too short", entity.CustomerInfo{Name: "Jean", Phone: "12"}, []string{"phone"}},
		{"phone too long", entity.CustomerInfo{Name: "Jean", Phone: "1234567890123456"}, []string{"phone"}},
		{"phone with letters", entity.CustomerInfo{Name: "Jean", Phone: "06abcdefgh"}, []string{"phone"}},
		{"missing phone", entity.CustomerInfo{Name: "Jean"}, []string{"phone"}},
		{"both missing", entity.CustomerInfo{}, []string{"name", "phone"}},
		{"email not validated", entity.CustomerInfo{Name: "Jean", Phone: "+33612345678", Email: "not-an-email"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCustomerInfo(tt.in)
			if len(errs) != len(tt.fields) {
				t.Fatalf("got errors %v, want fields %v", errs, tt.fields)
			}
			for _, f := range tt.fields {
				if errs[f] == "" {
					t.Errorf("expected an error for field %q, got %v", f, errs)
				}
			}
		})
	}
}

// newCheckout wires a checkout against a fake order-management API and
// shrinks the UI timers so tests can observe the timed reset.
func newCheckout(t *testing.T, handler http.HandlerFunc) (*CheckoutService, *CartService, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	backend := repository.NewBackend(srv.URL, 5*time.Second)
	cart := NewCartService()
	svc := NewCheckoutService(cart, backend, "tok-1")
	svc.ResetDelay = 30 * time.Millisecond
	svc.ConfirmDelay = 60 * time.Millisecond
	t.Cleanup(svc.Teardown)
	return svc, cart, &hits
}

func fillCart(cart *CartService) {
	cart.AddItem(&entity.MenuItem{ID: 1, Name: "A", Price: "400"})
	cart.AddItem(&entity.MenuItem{ID: 2, Name: "B", Price: "1200", DiscountPrice: strPtr("900")})
	cart.AddItem(&entity.MenuItem{ID: 2, Name: "B", Price: "1200", DiscountPrice: strPtr("900")})
}

func validForm() entity.CustomerInfo {
	return entity.CustomerInfo{Name: "Jean", Phone: "+33612345678"}
}

func TestCheckoutOpenRequiresItems(t *testing.T) {
	svc, cart, _ := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {})

	if err := svc.Open(); err != ErrCartEmpty {
		t.Fatalf("Open() on empty cart = %v, want ErrCartEmpty", err)
	}
	fillCart(cart)
	if err := svc.Open(); err != nil {
		t.Fatalf("Open() = %v", err)
	}
	if got := svc.Snapshot().State; got != CheckoutEditing {
		t.Errorf("state = %s, want editing", got)
	}
}

func TestCheckoutValidationBlocksNetwork(t *testing.T) {
	svc, cart, hits := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {})
	fillCart(cart)
	_ = svc.Open()

	err := svc.Submit(context.Background(), entity.OrderTypeDineIn, entity.CustomerInfo{Phone: "12"})
	if err != ErrValidationFailed {
		t.Fatalf("Submit() = %v, want ErrValidationFailed", err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Error("validation failure must not reach the network")
	}

	snap := svc.Snapshot()
	if snap.State != CheckoutEditing {
		t.Errorf("state = %s, want editing", snap.State)
	}
	if snap.FieldErrors["name"] == "" || snap.FieldErrors["phone"] == "" {
		t.Errorf("field errors = %v, want name and phone populated", snap.FieldErrors)
	}
}

func TestCheckoutSubmitNotOpen(t *testing.T) {
	svc, cart, _ := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {})
	fillCart(cart)

	if err := svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm()); err != ErrCheckoutNotOpen {
		t.Fatalf("Submit() without Open() = %v, want ErrCheckoutNotOpen", err)
	}
}

func TestCheckoutSuccessFlow(t *testing.T) {
	var gotBody string
	svc, cart, hits := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id": 7, "order_number": "1042", "total": 2200}`))
	})
	fillCart(cart)
	svc.OpenCart()
	_ = svc.Open()

	if err := svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm()); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Fatalf("expected exactly one submission attempt, got %d", atomic.LoadInt32(hits))
	}

	for _, want := range []string{`"order_type":"dine_in"`, `"table_token":"tok-1"`,
		`"customer_name":"Jean"`, `{"menu_item_id":1,"quantity":1}`, `{"menu_item_id":2,"quantity":2}`} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("payload missing %s: %s", want, gotBody)
		}
	}

	snap := svc.Snapshot()
	if snap.State != CheckoutSuccess {
		t.Fatalf("state = %s, want success", snap.State)
	}
	if !strings.Contains(snap.Message, "1042") {
		t.Errorf("success message must carry the order number: %q", snap.Message)
	}
	if !snap.ShowConfirmation {
		t.Error("confirmation overlay should be showing")
	}

	// after the reset delay the cart is empty, panels closed, form blank
	time.Sleep(45 * time.Millisecond)
	snap = svc.Snapshot()
	if snap.State != CheckoutIdle {
		t.Errorf("state = %s after reset, want idle", snap.State)
	}
	if !cart.Empty() {
		t.Error("cart should be cleared after the reset delay")
	}
	if snap.CartOpen {
		t.Error("drawer should be closed after the reset delay")
	}
	if snap.Form != (entity.CustomerInfo{}) {
		t.Errorf("form should be reset, got %+v", snap.Form)
	}
	if snap.Message != "" {
		t.Errorf("message should be cleared, got %q", snap.Message)
	}
	// the confirmation overlay dismisses on its own, later
	if !snap.ShowConfirmation {
		t.Error("confirmation overlay dismisses independently, should still be up")
	}
	time.Sleep(30 * time.Millisecond)
	if svc.Snapshot().ShowConfirmation {
		t.Error("confirmation overlay should have auto-dismissed")
	}
}

func TestCheckoutApplicationRejectionKeepsCart(t *testing.T) {
	svc, cart, _ := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Item unavailable"}`))
	})
	fillCart(cart)
	_ = svc.Open()

	form := validForm()
	if err := svc.Submit(context.Background(), entity.OrderTypeDineIn, form); err != nil {
		t.Fatalf("Submit() = %v", err)
	}

	snap := svc.Snapshot()
	if snap.State != CheckoutEditing {
		t.Errorf("state = %s, want editing for retry", snap.State)
	}
	if snap.Message != "Item unavailable" {
		t.Errorf("message = %q, want the server detail", snap.Message)
	}
	if snap.MessageKind != "error" {
		t.Errorf("message kind = %q, want error", snap.MessageKind)
	}
	if cart.Total() != 2200 {
		t.Errorf("cart must be preserved on rejection, total = %v", cart.Total())
	}
	if snap.Form != form {
		t.Errorf("form must be retained on rejection, got %+v", snap.Form)
	}
}

func TestCheckoutRejectionWithoutDetailUsesFallback(t *testing.T) {
	svc, cart, _ := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	fillCart(cart)
	_ = svc.Open()

	_ = svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm())
	snap := svc.Snapshot()
	if snap.Message == "" || snap.MessageKind != "error" {
		t.Errorf("want generic fallback error message, got %+v", snap)
	}
}

func TestCheckoutNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // requests will never complete

	backend := repository.NewBackend(srv.URL, time.Second)
	cart := NewCartService()
	svc := NewCheckoutService(cart, backend, "tok-1")
	t.Cleanup(svc.Teardown)
	fillCart(cart)
	_ = svc.Open()

	if err := svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm()); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	snap := svc.Snapshot()
	if snap.State != CheckoutEditing || snap.MessageKind != "error" {
		t.Errorf("network failure must return to editing with an error message, got %+v", snap)
	}
	if !strings.Contains(strings.ToLower(snap.Message), "network") {
		t.Errorf("want generic network message, got %q", snap.Message)
	}
	if cart.Empty() {
		t.Error("cart must survive a network failure")
	}
}

func TestCheckoutSubmitReentryGuard(t *testing.T) {
	release := make(chan struct{})
	svc, cart, hits := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"order_number": "1"}`))
	})
	fillCart(cart)
	_ = svc.Open()

	done := make(chan error, 1)
	go func() {
		done <- svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm())
	}()

	// wait until the first submission is in flight
	deadline := time.After(2 * time.Second)
	for svc.Snapshot().State != CheckoutSubmitting {
		select {
		case <-deadline:
			t.Fatal("first submission never reached submitting")
		case <-time.After(time.Millisecond):
		}
	}

	if err := svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm()); err != ErrSubmitInFlight {
		t.Errorf("second Submit() = %v, want ErrSubmitInFlight", err)
	}
	if err := svc.Close(); err != ErrSubmitInFlight {
		t.Errorf("Close() while submitting = %v, want ErrSubmitInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit() = %v", err)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Errorf("exactly one network call expected, got %d", atomic.LoadInt32(hits))
	}
}

func TestCheckoutCloseDiscardsForm(t *testing.T) {
	svc, cart, _ := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	fillCart(cart)
	_ = svc.Open()
	_ = svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm())

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	snap := svc.Snapshot()
	if snap.State != CheckoutIdle || snap.Form != (entity.CustomerInfo{}) || snap.Message != "" {
		t.Errorf("close must discard form state, got %+v", snap)
	}
}

func TestCheckoutSupersededTimer(t *testing.T) {
	svc, cart, _ := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order_number": "2"}`))
	})
	fillCart(cart)
	_ = svc.Open()
	_ = svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm())

	// a second order placed before the first reset timer fires must not be
	// wiped by the stale timer
	time.Sleep(35 * time.Millisecond) // let the first reset land
	fillCart(cart)
	_ = svc.Open()
	_ = svc.Submit(context.Background(), entity.OrderTypeDineIn, validForm())

	if svc.Snapshot().State != CheckoutSuccess {
		t.Fatalf("second order should be in success state")
	}
	time.Sleep(45 * time.Millisecond)
	if !cart.Empty() {
		t.Error("second order's own reset should have cleared the cart")
	}
}

func TestCheckoutSetOrderType(t *testing.T) {
	svc, _, _ := newCheckout(t, func(w http.ResponseWriter, r *http.Request) {})

	if err := svc.SetOrderType(entity.OrderTypeDelivery); err != nil {
		t.Fatalf("SetOrderType = %v", err)
	}
	if svc.OrderType() != entity.OrderTypeDelivery {
		t.Error("order type not stored")
	}
	if err := svc.SetOrderType("drive_through"); err == nil {
		t.Error("invalid order type must be rejected")
	}
}
