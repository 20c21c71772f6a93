package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

func testPlans() []model.Plan {
	return []model.Plan{
		{ID: "free", Tier: model.PlanFree, Name: "Free", Currency: "usd"},
		{ID: "basic", Tier: model.PlanBasic, Name: "Basic", PriceMonthly: 1200, PriceYearly: 12000, Currency: "usd"},
		{ID: "premium", Tier: model.PlanPremium, Name: "Premium", PriceMonthly: 2900, PriceYearly: 29000, Currency: "usd", Popular: true},
	}
}

func TestNewPlanCards_Visitor(t *testing.T) {
	cards := NewPlanCards(testPlans(), model.CycleMonthly, "", false)
	require.Len(t, cards, 3)

	assert.True(t, cards[0].Free)
	assert.Equal(t, "Free", cards[0].Price)
	assert.Equal(t, "none", cards[0].Action)

	assert.Equal(t, "12.00 USD", cards[1].Price)
	assert.Equal(t, "/month", cards[1].PriceSuffix)
	assert.Equal(t, "signin", cards[1].Action)
	assert.Zero(t, cards[1].Savings)
	assert.True(t, cards[2].Popular)
}

func TestNewPlanCards_SignedInHighlightsCurrent(t *testing.T) {
	cards := NewPlanCards(testPlans(), model.CycleYearly, model.PlanBasic, true)

	assert.Equal(t, "none", cards[0].Action, "no downgrade button")
	assert.True(t, cards[1].Current)
	assert.Equal(t, "current", cards[1].Action)
	assert.Equal(t, "checkout", cards[2].Action)
	assert.Equal(t, "290.00 USD", cards[2].Price)
	assert.Equal(t, "/year", cards[2].PriceSuffix)
	assert.Equal(t, 16, cards[2].Savings)
}

func TestCycleTabs(t *testing.T) {
	tabs := CycleTabs(model.CycleYearly)
	require.Len(t, tabs, 2)
	assert.False(t, tabs[0].Active)
	assert.True(t, tabs[1].Active)
}

func TestNewSubscriptionView(t *testing.T) {
	end := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	v := NewSubscriptionView(model.Subscription{
		Tier: model.PlanPremium, Status: model.StatusActive, BillingCycle: model.CycleMonthly,
		CurrentPeriodEnd: &end,
	})
	assert.Equal(t, "Premium", v.PlanName)
	assert.Equal(t, "Active", v.Status)
	assert.Equal(t, "badge-success", v.StatusClass)
	assert.Equal(t, "Renews on", v.PeriodLabel)
	assert.Equal(t, "May 1, 2026", v.PeriodEnd)
	assert.True(t, v.Cancelable)
	assert.False(t, v.Reactivatable)

	v = NewSubscriptionView(model.Subscription{
		PlanName: "Basic", Tier: model.PlanBasic, Status: model.StatusActive,
		CancelAtPeriodEnd: true, CurrentPeriodEnd: &end,
	})
	assert.Equal(t, "Ends on", v.PeriodLabel)
	assert.False(t, v.Cancelable)
	assert.True(t, v.Reactivatable)

	v = NewSubscriptionView(model.Subscription{Tier: model.PlanFree, Status: model.StatusPastDue})
	assert.Equal(t, "Past due", v.Status)
	assert.False(t, v.IsPaid)
	assert.Empty(t, v.PeriodEnd)
}

func TestNewUsageRows(t *testing.T) {
	resets := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := NewUsageRows([]model.UsageCounter{
		{Feature: model.FeatureMockInterview, Used: 9, Limit: 10, ResetsAt: &resets},
		{Feature: model.FeatureTranscription, Used: 40, Limit: model.Unlimited},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Mock interview", rows[0].Label)
	assert.Equal(t, "10", rows[0].Limit)
	assert.Equal(t, "1", rows[0].Remaining)
	assert.True(t, rows[0].NearLimit)
	assert.Equal(t, "2026-06-01T00:00:00Z", rows[0].ResetsAt)

	assert.True(t, rows[1].Unlimited)
	assert.Equal(t, "Unlimited", rows[1].Limit)
	assert.False(t, rows[1].NearLimit)
	assert.Zero(t, rows[1].Percent)
}

func TestNewPaymentRows(t *testing.T) {
	rows := NewPaymentRows([]model.Payment{
		{ID: "p2", Amount: 2900, Currency: "usd", Status: "paid", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "p1", Amount: 2900, Currency: "usd", Status: "failed", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "p2", rows[0].ID, "backend order kept")
	assert.Equal(t, "29.00 USD", rows[0].Amount)
	assert.Equal(t, "Paid", rows[0].Status)
	assert.Equal(t, "badge-danger", rows[1].StatusClass)
}

func TestNewPermissionResult(t *testing.T) {
	r := NewPermissionResult(model.PermissionCheck{
		Feature: model.FeatureResumeAnalysis, Allowed: false, Reason: "limit reached", Used: 3, Limit: 3, Tier: model.PlanFree,
	}, true)
	assert.Equal(t, "Resume analysis", r.Label)
	assert.Equal(t, "3", r.Limit)
	assert.Equal(t, "Free", r.Tier)
	assert.True(t, r.Recorded)

	r = NewPermissionResult(model.PermissionCheck{Feature: model.FeatureMockInterview, Allowed: true, Limit: -1}, false)
	assert.Equal(t, "Unlimited", r.Limit)
}

func TestFeatureOptions(t *testing.T) {
	opts := FeatureOptions(string(model.FeatureTranscription))
	require.Len(t, opts, len(model.AllFeatures()))
	for _, o := range opts {
		assert.Equal(t, o.Value == string(model.FeatureTranscription), o.Selected)
	}
}
