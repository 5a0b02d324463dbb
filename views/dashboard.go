package views

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mps-cell/mps-dashboard/models"
	"github.com/mps-cell/mps-dashboard/poller"
	"github.com/mps-cell/mps-dashboard/services"
)

// DashboardView holds the latest snapshots for the dashboard page:
// machine status, production stats, hourly buckets, recent orders and
// one page of the produced-pieces feed, together with the pieces
// pagination cursor and the optional date filter.
//
// Snapshots are replaced wholesale on every poll tick. Mount starts the
// polling schedules, Unmount cancels them; page or filter changes
// restart the pieces schedule with the new parameters.
type DashboardView struct {
	mu sync.RWMutex

	interval time.Duration
	pageSize int

	machineStatus    *models.MachineStatus
	productionStats  *models.ProductionStats
	hourlyData       []models.HourlyDataPoint
	recentOrders     []models.Order
	recentPieces     []models.Piece
	piecesPage       int
	piecesTotalPages int
	dateFilter       string

	mountCtx     context.Context
	mainPoller   *poller.Poller[dashboardSnapshot]
	piecesPoller *poller.Poller[*models.PiecesPage]
}

// dashboardSnapshot bundles the four endpoints fetched together on each
// main tick, so either all of them replace the current state or none
type dashboardSnapshot struct {
	machine *models.MachineStatus
	stats   *models.ProductionStats
	hourly  []models.HourlyDataPoint
	orders  []models.Order
}

var dashboardViewInstance *DashboardView

// InitDashboardView initializes the dashboard view
func InitDashboardView(interval time.Duration, pageSize int) *DashboardView {
	dashboardViewInstance = NewDashboardView(interval, pageSize)
	return dashboardViewInstance
}

// GetDashboardView returns the initialized dashboard view instance
func GetDashboardView() *DashboardView {
	return dashboardViewInstance
}

// SetDashboardView sets the dashboard view instance (primarily for testing)
func SetDashboardView(view *DashboardView) {
	dashboardViewInstance = view
}

// NewDashboardView creates a dashboard view with the given poll
// interval and pieces page size
func NewDashboardView(interval time.Duration, pageSize int) *DashboardView {
	return &DashboardView{
		interval:         interval,
		pageSize:         pageSize,
		piecesPage:       1,
		piecesTotalPages: 1,
	}
}

// Mount starts the dashboard polling schedules. The context bounds the
// whole mounted lifetime; Unmount (or context cancellation) ends it.
func (v *DashboardView) Mount(ctx context.Context) {
	v.mu.Lock()
	v.mountCtx = ctx
	v.mu.Unlock()

	main := poller.New("dashboard", v.interval, v.fetchDashboard, v.applyDashboard, logPollError("dashboard"))
	v.mu.Lock()
	v.mainPoller = main
	v.mu.Unlock()
	main.Start(ctx)

	v.restartPiecesPoller()
}

// Unmount stops both polling schedules
func (v *DashboardView) Unmount() {
	v.mu.Lock()
	main := v.mainPoller
	pieces := v.piecesPoller
	v.mainPoller = nil
	v.piecesPoller = nil
	v.mountCtx = nil
	v.mu.Unlock()

	if main != nil {
		main.Stop()
	}
	if pieces != nil {
		pieces.Stop()
	}
}

// Refresh fetches the four dashboard endpoints once and replaces the
// current snapshots
func (v *DashboardView) Refresh(ctx context.Context) error {
	snapshot, err := v.fetchDashboard(ctx)
	if err != nil {
		return err
	}
	v.applyDashboard(snapshot)
	return nil
}

// RefreshPieces fetches the pieces page for the current cursor and
// filter once
func (v *DashboardView) RefreshPieces(ctx context.Context) error {
	v.mu.RLock()
	page, filter := v.piecesPage, v.dateFilter
	v.mu.RUnlock()

	pieces, err := services.GetMPSService().RecentPieces(ctx, page, v.pageSize, filter)
	if err != nil {
		return err
	}
	v.applyPieces(page, filter, pieces)
	return nil
}

// fetchDashboard fetches machine status, production stats, hourly data
// and recent orders in parallel. Any failure fails the whole tick and
// leaves the last good snapshots in place.
func (v *DashboardView) fetchDashboard(ctx context.Context) (dashboardSnapshot, error) {
	mps := services.GetMPSService()

	var snapshot dashboardSnapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		machine, err := mps.MachineStatus(ctx)
		if err != nil {
			return err
		}
		snapshot.machine = machine
		return nil
	})
	g.Go(func() error {
		stats, err := mps.ProductionStats(ctx)
		if err != nil {
			return err
		}
		snapshot.stats = stats
		return nil
	})
	g.Go(func() error {
		hourly, err := mps.HourlyProduction(ctx)
		if err != nil {
			return err
		}
		snapshot.hourly = hourly
		return nil
	})
	g.Go(func() error {
		orders, err := mps.RecentOrders(ctx)
		if err != nil {
			return err
		}
		snapshot.orders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboardSnapshot{}, err
	}
	return snapshot, nil
}

func (v *DashboardView) applyDashboard(snapshot dashboardSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.machineStatus = snapshot.machine
	v.productionStats = snapshot.stats
	v.hourlyData = snapshot.hourly
	v.recentOrders = snapshot.orders
}

// applyPieces commits a pieces page only when the cursor and filter it
// was fetched for are still current, so a slow fetch for stale
// parameters cannot overwrite a fresher page
func (v *DashboardView) applyPieces(page int, filter string, pieces *models.PiecesPage) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.piecesPage != page || v.dateFilter != filter {
		return
	}
	v.recentPieces = pieces.Pieces
	v.piecesTotalPages = pieces.TotalPages
}

// restartPiecesPoller replaces the pieces schedule with one bound to
// the current cursor and filter. Stop-then-start is the whole
// re-parameterization contract: parameters never mutate under a
// running schedule.
func (v *DashboardView) restartPiecesPoller() {
	v.mu.Lock()
	page, filter := v.piecesPage, v.dateFilter
	ctx := v.mountCtx
	old := v.piecesPoller
	v.mu.Unlock()

	if ctx == nil {
		return
	}
	if old != nil {
		old.Stop()
	}

	pieces := poller.New("recent-pieces", v.interval,
		func(ctx context.Context) (*models.PiecesPage, error) {
			return services.GetMPSService().RecentPieces(ctx, page, v.pageSize, filter)
		},
		func(snapshot *models.PiecesPage) {
			v.applyPieces(page, filter, snapshot)
		},
		logPollError("recent-pieces"))

	v.mu.Lock()
	v.piecesPoller = pieces
	v.mu.Unlock()
	pieces.Start(ctx)
}

// PreviousPage moves the pieces cursor one page back; a no-op at page 1
func (v *DashboardView) PreviousPage() {
	v.mu.Lock()
	if v.piecesPage <= 1 {
		v.mu.Unlock()
		return
	}
	v.piecesPage--
	v.mu.Unlock()

	v.restartPiecesPoller()
}

// NextPage moves the pieces cursor one page forward; a no-op at the
// last page
func (v *DashboardView) NextPage() {
	v.mu.Lock()
	if v.piecesPage >= v.piecesTotalPages {
		v.mu.Unlock()
		return
	}
	v.piecesPage++
	v.mu.Unlock()

	v.restartPiecesPoller()
}

// SetDateFilter changes the date filter and resets the cursor to page 1
func (v *DashboardView) SetDateFilter(filter string) {
	v.mu.Lock()
	v.dateFilter = filter
	v.piecesPage = 1
	v.mu.Unlock()

	v.restartPiecesPoller()
}

// ClearDateFilter removes the date filter and resets the cursor to page 1
func (v *DashboardView) ClearDateFilter() {
	v.SetDateFilter("")
}

// Page returns the current pieces page number
func (v *DashboardView) Page() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.piecesPage
}

// TotalPages returns the last known pieces page count
func (v *DashboardView) TotalPages() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.piecesTotalPages
}

// DateFilter returns the current date filter, empty when unset
func (v *DashboardView) DateFilter() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dateFilter
}

// MachineStatusView is the machine status with display derivations
type MachineStatusView struct {
	models.MachineStatus
	StatusText string  `json:"status_text"`
	Progress   float64 `json:"progress"`
}

// DashboardState is the display-ready dashboard page state
type DashboardState struct {
	MachineStatus    *MachineStatusView      `json:"machine_status"`
	ProductionStats  *models.ProductionStats `json:"production_stats"`
	HourlyData       []models.HourlyDataPoint `json:"hourly_data"`
	RecentOrders     []OrderItem             `json:"recent_orders"`
	RecentPieces     []PieceItem             `json:"recent_pieces"`
	PiecesPage       int                     `json:"pieces_page"`
	PiecesTotalPages int                     `json:"pieces_total_pages"`
	DateFilter       string                  `json:"date_filter"`
}

// State returns the current dashboard state with all derivations applied
func (v *DashboardView) State() DashboardState {
	v.mu.RLock()
	defer v.mu.RUnlock()

	state := DashboardState{
		ProductionStats:  v.productionStats,
		HourlyData:       v.hourlyData,
		RecentOrders:     newOrderItems(v.recentOrders),
		RecentPieces:     newPieceItems(v.recentPieces),
		PiecesPage:       v.piecesPage,
		PiecesTotalPages: v.piecesTotalPages,
		DateFilter:       v.dateFilter,
	}

	if v.machineStatus != nil {
		view := MachineStatusView{
			MachineStatus: *v.machineStatus,
			StatusText:    StatusText(v.machineStatus.Status),
		}
		if v.machineStatus.ActiveOrder != nil {
			view.Progress = ProgressPercentage(
				v.machineStatus.ActiveOrder.QuantityProcessed,
				v.machineStatus.ActiveOrder.QuantityRequested,
			)
		}
		state.MachineStatus = &view
	}

	return state
}

// logPollError returns the shared error callback for polling schedules:
// log and keep the last good snapshot
func logPollError(name string) func(error) {
	return func(err error) {
		log.Printf("Failed to refresh %s: %v", name, err)
	}
}
