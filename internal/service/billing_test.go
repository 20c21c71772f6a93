package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/testutil"
)

func TestBillingService_Plans(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("GET /billing/plans", []model.Plan{
		{ID: "free", Tier: model.PlanFree, Name: "Free"},
		{ID: "premium", Tier: model.PlanPremium, Name: "Premium", PriceMonthly: 2900, PriceYearly: 29000, Popular: true},
	})
	svc := NewBillingService(api)

	plans, err := svc.Plans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, model.PlanPremium, plans[1].Tier)
	assert.True(t, plans[1].Popular)

	last, _ := fb.Last()
	assert.Equal(t, "Bearer test-token", last.Authorization)
}

func TestBillingService_Subscription(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("GET /billing/subscription", model.Subscription{
		ID: "sub_1", Tier: model.PlanBasic, Status: model.StatusActive, CancelAtPeriodEnd: true,
	})
	svc := NewBillingService(api)

	sub, err := svc.Subscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sub_1", sub.ID)
	assert.True(t, sub.CancelAtPeriodEnd)
}

func TestBillingService_ApplicationError(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.Handle("GET /billing/usage", func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, map[string]any{"success": false, "error": "usage unavailable"})
	})
	svc := NewBillingService(api)

	_, err := svc.Usage(context.Background())
	require.Error(t, err)
	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, backend.KindApplication, apiErr.Kind)
	assert.Equal(t, "usage unavailable", backend.Message(err))
}

func TestBillingService_Checkout(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("POST /billing/checkout", model.CheckoutSession{SessionID: "cs_1", CheckoutURL: "https://pay.example.com/cs_1"})
	svc := NewBillingService(api)

	cs, err := svc.Checkout(context.Background(), model.CheckoutRequest{PlanID: "premium"})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_1", cs.CheckoutURL)

	last, _ := fb.Last()
	var sent model.CheckoutRequest
	require.NoError(t, json.Unmarshal(last.Body, &sent))
	assert.Equal(t, model.CycleMonthly, sent.BillingCycle, "cycle defaults to monthly")
}

func TestBillingService_Checkout_Validation(t *testing.T) {
	fb, api := newFakeAPI(t)
	svc := NewBillingService(api)

	_, err := svc.Checkout(context.Background(), model.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrMissingID)
	assert.Empty(t, fb.Requests())
}

func TestBillingService_Checkout_MissingURL(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("POST /billing/checkout", model.CheckoutSession{SessionID: "cs_1"})
	svc := NewBillingService(api)

	_, err := svc.Checkout(context.Background(), model.CheckoutRequest{PlanID: "basic", BillingCycle: model.CycleYearly})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkout URL missing")
}

func TestBillingService_CancelAndReactivate(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("POST /billing/subscription/cancel", model.Subscription{ID: "sub_1", CancelAtPeriodEnd: true})
	fb.OK("POST /billing/subscription/reactivate", model.Subscription{ID: "sub_1"})
	svc := NewBillingService(api)

	sub, err := svc.Cancel(context.Background())
	require.NoError(t, err)
	assert.True(t, sub.CancelAtPeriodEnd)

	sub, err = svc.Reactivate(context.Background())
	require.NoError(t, err)
	assert.False(t, sub.CancelAtPeriodEnd)
}

func TestBillingService_History(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("GET /billing/history", []model.Payment{{ID: "pay_1", Amount: 1900, Currency: "usd", Status: "succeeded"}})
	svc := NewBillingService(api)

	payments, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	last, _ := fb.Last()
	assert.Equal(t, "limit=10", last.RawQuery)

	_, err = svc.History(context.Background(), 0)
	require.NoError(t, err)
	last, _ = fb.Last()
	assert.Empty(t, last.RawQuery)
}

func TestBillingService_Portal(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("POST /billing/portal", model.PortalSession{URL: "https://billing.example.com/p/1"})
	svc := NewBillingService(api)

	ps, err := svc.Portal(context.Background(), "http://localhost:8080/billing")
	require.NoError(t, err)
	assert.Equal(t, "https://billing.example.com/p/1", ps.URL)

	last, _ := fb.Last()
	assert.JSONEq(t, `{"return_url":"http://localhost:8080/billing"}`, string(last.Body))
}

func TestBillingService_CheckPermission(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("GET /billing/permissions/mock_interview", map[string]any{
		"allowed": false, "reason": "Monthly limit reached", "used": 3, "limit": 3,
	})
	svc := NewBillingService(api)

	pc, err := svc.CheckPermission(context.Background(), model.FeatureMockInterview)
	require.NoError(t, err)
	assert.False(t, pc.Allowed)
	assert.Equal(t, model.FeatureMockInterview, pc.Feature, "feature is filled in when the backend omits it")
	assert.Equal(t, "Monthly limit reached", pc.Reason)

	_, err = svc.CheckPermission(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestBillingService_RecordUsage(t *testing.T) {
	fb, api := newFakeAPI(t)
	fb.OK("POST /billing/usage/resume_upload", model.UsageCounter{Feature: model.FeatureResumeUpload, Used: 2, Limit: 5})
	svc := NewBillingService(api)

	u, err := svc.RecordUsage(context.Background(), model.FeatureResumeUpload)
	require.NoError(t, err)
	assert.Equal(t, 3, u.Remaining())
}

func TestBillingService_UnauthorizedFiresHook(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Fail("GET /billing/subscription", http.StatusUnauthorized, "")
	sess := backend.NewMemorySession("stale-token")
	fired := 0
	client := backend.NewClient(backend.Options{
		BaseURL:          fb.URL(),
		Session:          sess,
		OnSessionExpired: func(context.Context) { fired++ },
	})
	svc := NewBillingService(APIOptions{Client: client})

	_, err := svc.Subscription(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrUnauthorized))
	assert.Equal(t, "HTTP 401", backend.Message(err))
	assert.Equal(t, 1, fired)
	assert.False(t, sess.SignedIn())
	assert.Equal(t, 1, fb.Count(http.MethodGet, "/billing/subscription"), "no retry after 401")
}
