package views

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mps-cell/mps-dashboard/models"
	"github.com/mps-cell/mps-dashboard/poller"
	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/session"
	"github.com/mps-cell/mps-dashboard/utils"
)

// ErrLoginRequired is returned by Submit when no session is present.
// No request is issued; the login prompt is raised instead.
var ErrLoginRequired = errors.New("autenticação necessária para criar ordens")

// OrdersView holds the orders page state: the polled order list, the
// login-prompt flag and the in-progress order draft
type OrdersView struct {
	mu sync.RWMutex

	interval time.Duration

	orders          []models.Order
	showLoginPrompt bool
	draft           models.OrderForm

	listPoller *poller.Poller[[]models.Order]
}

var ordersViewInstance *OrdersView

// InitOrdersView initializes the orders view
func InitOrdersView(interval time.Duration) *OrdersView {
	ordersViewInstance = NewOrdersView(interval)
	return ordersViewInstance
}

// GetOrdersView returns the initialized orders view instance
func GetOrdersView() *OrdersView {
	return ordersViewInstance
}

// SetOrdersView sets the orders view instance (primarily for testing)
func SetOrdersView(view *OrdersView) {
	ordersViewInstance = view
}

// NewOrdersView creates an orders view with the given poll interval
func NewOrdersView(interval time.Duration) *OrdersView {
	return &OrdersView{
		interval: interval,
		draft:    models.DefaultOrderForm(),
	}
}

// Mount starts the order list polling schedule
func (v *OrdersView) Mount(ctx context.Context) {
	list := poller.New("recent-orders", v.interval, v.fetchOrders, v.applyOrders, logPollError("recent-orders"))

	v.mu.Lock()
	v.listPoller = list
	v.mu.Unlock()

	list.Start(ctx)
}

// Unmount stops the polling schedule
func (v *OrdersView) Unmount() {
	v.mu.Lock()
	list := v.listPoller
	v.listPoller = nil
	v.mu.Unlock()

	if list != nil {
		list.Stop()
	}
}

// Refresh fetches the order list once
func (v *OrdersView) Refresh(ctx context.Context) error {
	orders, err := v.fetchOrders(ctx)
	if err != nil {
		return err
	}
	v.applyOrders(orders)
	return nil
}

func (v *OrdersView) fetchOrders(ctx context.Context) ([]models.Order, error) {
	return services.GetMPSService().RecentOrders(ctx)
}

func (v *OrdersView) applyOrders(orders []models.Order) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.orders = orders
}

// Draft returns the current order draft
func (v *OrdersView) Draft() models.OrderForm {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.draft
}

// UpdateDraft replaces the order draft with user input
func (v *OrdersView) UpdateDraft(form models.OrderForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = form
}

// Submit runs the order submission flow on the current draft:
//
//	no session        -> raise the login prompt, no request, ErrLoginRequired
//	invalid draft     -> *utils.ValidationError, no request
//	401 on submission -> session cleared by the gateway, prompt raised again
//	success           -> draft reset to defaults, list refreshed
//
// Any other failure is returned as-is for the caller to surface.
func (v *OrdersView) Submit(ctx context.Context) error {
	if !session.GetStore().IsAuthenticated() {
		v.setLoginPrompt(true)
		return ErrLoginRequired
	}

	draft := v.Draft()
	if err := utils.ValidateOrderForm(draft); err != nil {
		return err
	}

	if err := services.GetMPSService().CreateOrder(ctx, draft); err != nil {
		if services.IsSessionExpired(err) {
			v.setLoginPrompt(true)
		}
		return err
	}

	v.mu.Lock()
	v.draft = models.DefaultOrderForm()
	v.mu.Unlock()

	// Best effort; the poller catches up on the next tick anyway
	if err := v.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh orders after creation: %v", err)
	}
	return nil
}

// IsAuthenticated reports whether a session is present
func (v *OrdersView) IsAuthenticated() bool {
	return session.GetStore().IsAuthenticated()
}

// ShowLoginPrompt reports whether the login prompt is raised
func (v *OrdersView) ShowLoginPrompt() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.showLoginPrompt
}

// HandleLoginSuccess lowers the login prompt after a successful login
func (v *OrdersView) HandleLoginSuccess() {
	v.setLoginPrompt(false)
}

// DismissLoginPrompt lowers the login prompt without logging in
func (v *OrdersView) DismissLoginPrompt() {
	v.setLoginPrompt(false)
}

func (v *OrdersView) setLoginPrompt(show bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showLoginPrompt = show
}

// OrdersState is the display-ready orders page state
type OrdersState struct {
	Orders          []OrderItem      `json:"orders"`
	Authenticated   bool             `json:"authenticated"`
	ShowLoginPrompt bool             `json:"show_login_prompt"`
	Draft           models.OrderForm `json:"draft"`
}

// State returns the current orders page state with derivations applied
func (v *OrdersView) State() OrdersState {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return OrdersState{
		Orders:          newOrderItems(v.orders),
		Authenticated:   session.GetStore().IsAuthenticated(),
		ShowLoginPrompt: v.showLoginPrompt,
		Draft:           v.draft,
	}
}
