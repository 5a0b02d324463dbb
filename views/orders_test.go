package views

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mps-cell/mps-dashboard/models"
	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/session"
	"github.com/mps-cell/mps-dashboard/utils"
)

func validDraft() models.OrderForm {
	return models.OrderForm{OrderName: "ORDEM_001", Color: models.ColorPrata, Quantity: 10}
}

func TestSubmitWithoutSessionPromptsLogin(t *testing.T) {
	mock := setupMocks(t)

	view := NewOrdersView(time.Hour)
	view.UpdateDraft(validDraft())

	err := view.Submit(context.Background())

	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.True(t, view.ShowLoginPrompt(), "Login prompt must be raised")
	assert.Equal(t, 0, mock.Requests(), "No request may be issued without a session")
}

func TestSubmitInvalidDraftNeverIssuesRequest(t *testing.T) {
	tests := []struct {
		name         string
		draft        models.OrderForm
		expectedCode string
	}{
		{
			name:         "Empty order name",
			draft:        models.OrderForm{OrderName: "", Color: models.ColorPrata, Quantity: 1},
			expectedCode: "EMPTY_ORDER_NAME",
		},
		{
			name:         "Zero quantity",
			draft:        models.OrderForm{OrderName: "ORDEM_001", Color: models.ColorPrata, Quantity: 0},
			expectedCode: "INVALID_QUANTITY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMocks(t)
			require.NoError(t, session.GetStore().SetSession("token-123", models.User(`{}`)))

			view := NewOrdersView(time.Hour)
			view.UpdateDraft(tt.draft)

			err := view.Submit(context.Background())

			var validation *utils.ValidationError
			assert.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.expectedCode, validation.Code)
			assert.Equal(t, 0, mock.Requests(), "Validation failures must not reach the network")
		})
	}
}

func TestSubmitSuccessResetsDraftAndRefreshesList(t *testing.T) {
	mock := setupMocks(t)
	mock.Orders = []models.Order{{ID: 1, OrderName: "ORDEM_001"}}
	require.NoError(t, session.GetStore().SetSession("token-123", models.User(`{}`)))

	view := NewOrdersView(time.Hour)
	view.UpdateDraft(validDraft())

	require.NoError(t, view.Submit(context.Background()))

	assert.Equal(t, 1, mock.CreatedOrderCount())
	assert.Equal(t, validDraft(), mock.CreatedOrders[0])
	assert.Equal(t, models.DefaultOrderForm(), view.Draft(), "Draft must reset to defaults after success")

	state := view.State()
	assert.Len(t, state.Orders, 1, "Order list must be refreshed after success")
	assert.False(t, state.ShowLoginPrompt)
}

func TestSubmitExpiredSessionPromptsLoginAgain(t *testing.T) {
	mock := setupMocks(t)
	store := session.GetStore()
	require.NoError(t, store.SetSession("stale-token", models.User(`{}`)))
	mock.SetError(&services.SessionExpiredError{Endpoint: "api/create-order"})

	view := NewOrdersView(time.Hour)
	view.UpdateDraft(validDraft())

	err := view.Submit(context.Background())

	assert.True(t, services.IsSessionExpired(err))
	assert.True(t, view.ShowLoginPrompt(), "Expired session must raise the login prompt")
	assert.Equal(t, validDraft(), view.Draft(), "Draft must survive a failed submission")
}

func TestSubmitServerErrorKeepsDraft(t *testing.T) {
	mock := setupMocks(t)
	require.NoError(t, session.GetStore().SetSession("token-123", models.User(`{}`)))
	mock.SetError(&services.ServerError{StatusCode: 500})

	view := NewOrdersView(time.Hour)
	view.UpdateDraft(validDraft())

	err := view.Submit(context.Background())

	assert.Error(t, err)
	assert.False(t, services.IsSessionExpired(err))
	assert.False(t, view.ShowLoginPrompt(), "Non-401 failures must not raise the login prompt")
	assert.Equal(t, validDraft(), view.Draft())
}

func TestLoginPromptLifecycle(t *testing.T) {
	setupMocks(t)

	view := NewOrdersView(time.Hour)
	assert.False(t, view.ShowLoginPrompt())

	view.UpdateDraft(validDraft())
	_ = view.Submit(context.Background())
	assert.True(t, view.ShowLoginPrompt())

	view.HandleLoginSuccess()
	assert.False(t, view.ShowLoginPrompt())

	_ = view.Submit(context.Background())
	view.DismissLoginPrompt()
	assert.False(t, view.ShowLoginPrompt())
}

func TestOrdersViewMountPollsAndUnmountStops(t *testing.T) {
	mock := setupMocks(t)
	mock.Orders = []models.Order{{ID: 1}}

	view := NewOrdersView(10 * time.Millisecond)
	view.Mount(context.Background())

	assert.Eventually(t, func() bool {
		return len(view.State().Orders) == 1 && mock.Requests() >= 2
	}, time.Second, 5*time.Millisecond, "Mount should keep refreshing the order list")

	view.Unmount()
	after := mock.Requests()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, mock.Requests(), "Unmount must stop polling")
}

func TestOrdersStateReflectsAuthentication(t *testing.T) {
	setupMocks(t)

	view := NewOrdersView(time.Hour)
	assert.False(t, view.State().Authenticated)

	require.NoError(t, session.GetStore().SetSession("token-123", models.User(`{}`)))
	assert.True(t, view.State().Authenticated)

	require.NoError(t, session.GetStore().ClearSession())
	assert.False(t, view.State().Authenticated)
}
