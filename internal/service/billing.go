package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// BillingService wraps the /billing endpoints: plans, subscription, usage,
// checkout, history and feature permission checks. Usage reset semantics are
// owned by the backend and passed through untouched.
type BillingService struct{ api }

// NewBillingService constructs a BillingService.
func NewBillingService(opts APIOptions) *BillingService {
	return &BillingService{newAPI(opts, "billing_service")}
}

// Plans lists the purchasable plans.
func (s *BillingService) Plans(ctx context.Context) ([]model.Plan, error) {
	plans, err := backend.Call[[]model.Plan](ctx, s.client, http.MethodGet, endpoint("billing", "plans"), nil)
	if err != nil {
		return nil, s.fail(ctx, "list plans", err)
	}
	return plans, nil
}

// Subscription returns the caller's subscription.
func (s *BillingService) Subscription(ctx context.Context) (*model.Subscription, error) {
	sub, err := backend.Call[model.Subscription](ctx, s.client, http.MethodGet, endpoint("billing", "subscription"), nil)
	if err != nil {
		return nil, s.fail(ctx, "get subscription", err)
	}
	return &sub, nil
}

// Usage returns the caller's usage counters for the current period.
func (s *BillingService) Usage(ctx context.Context) ([]model.UsageCounter, error) {
	usage, err := backend.Call[[]model.UsageCounter](ctx, s.client, http.MethodGet, endpoint("billing", "usage"), nil)
	if err != nil {
		return nil, s.fail(ctx, "get usage", err)
	}
	return usage, nil
}

// Checkout starts a hosted checkout and returns where to send the browser.
func (s *BillingService) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error) {
	if err := requireID("plan", req.PlanID); err != nil {
		return nil, err
	}
	if req.BillingCycle == "" {
		req.BillingCycle = model.CycleMonthly
	}
	cs, err := backend.Call[model.CheckoutSession](ctx, s.client, http.MethodPost, endpoint("billing", "checkout"), req)
	if err != nil {
		return nil, s.fail(ctx, "create checkout", err)
	}
	if cs.CheckoutURL == "" {
		return nil, s.fail(ctx, "create checkout", errors.New("checkout URL missing from response"))
	}
	return &cs, nil
}

// Cancel schedules cancellation at period end.
func (s *BillingService) Cancel(ctx context.Context) (*model.Subscription, error) {
	sub, err := backend.Call[model.Subscription](ctx, s.client, http.MethodPost, endpoint("billing", "subscription", "cancel"), nil)
	if err != nil {
		return nil, s.fail(ctx, "cancel subscription", err)
	}
	return &sub, nil
}

// Reactivate undoes a pending cancellation.
func (s *BillingService) Reactivate(ctx context.Context) (*model.Subscription, error) {
	sub, err := backend.Call[model.Subscription](ctx, s.client, http.MethodPost, endpoint("billing", "subscription", "reactivate"), nil)
	if err != nil {
		return nil, s.fail(ctx, "reactivate subscription", err)
	}
	return &sub, nil
}

// History lists past payments, newest first as returned by the backend.
func (s *BillingService) History(ctx context.Context, limit int) ([]model.Payment, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	payments, err := backend.Call[[]model.Payment](ctx, s.client, http.MethodGet, withQuery(endpoint("billing", "history"), q), nil)
	if err != nil {
		return nil, s.fail(ctx, "get billing history", err)
	}
	return payments, nil
}

// Portal opens a billing portal session.
func (s *BillingService) Portal(ctx context.Context, returnURL string) (*model.PortalSession, error) {
	body := map[string]string{}
	if returnURL != "" {
		body["return_url"] = returnURL
	}
	ps, err := backend.Call[model.PortalSession](ctx, s.client, http.MethodPost, endpoint("billing", "portal"), body)
	if err != nil {
		return nil, s.fail(ctx, "open billing portal", err)
	}
	return &ps, nil
}

// CheckPermission asks whether the caller may use feature right now.
func (s *BillingService) CheckPermission(ctx context.Context, feature model.Feature) (*model.PermissionCheck, error) {
	if err := requireID("feature", string(feature)); err != nil {
		return nil, err
	}
	pc, err := backend.Call[model.PermissionCheck](ctx, s.client, http.MethodGet, endpoint("billing", "permissions", string(feature)), nil)
	if err != nil {
		return nil, s.fail(ctx, "check permission", err)
	}
	if pc.Feature == "" {
		pc.Feature = feature
	}
	return &pc, nil
}

// RecordUsage counts one use of feature and returns the updated counter.
func (s *BillingService) RecordUsage(ctx context.Context, feature model.Feature) (*model.UsageCounter, error) {
	if err := requireID("feature", string(feature)); err != nil {
		return nil, err
	}
	u, err := backend.Call[model.UsageCounter](ctx, s.client, http.MethodPost, endpoint("billing", "usage", string(feature)), nil)
	if err != nil {
		return nil, s.fail(ctx, "record usage", err)
	}
	return &u, nil
}
