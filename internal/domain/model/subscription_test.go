package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanTier_Rank(t *testing.T) {
	assert.Less(t, PlanFree.Rank(), PlanBasic.Rank())
	assert.Less(t, PlanBasic.Rank(), PlanPremium.Rank())
	assert.Equal(t, 0, PlanTier("enterprise-legacy").Rank())
}

func TestParseBillingCycle(t *testing.T) {
	assert.Equal(t, CycleYearly, ParseBillingCycle(" YEARLY "))
	assert.Equal(t, CycleMonthly, ParseBillingCycle("monthly"))
	assert.Equal(t, CycleMonthly, ParseBillingCycle("weekly"))
	assert.Equal(t, CycleMonthly, ParseBillingCycle(""))
}

func TestPlan_PriceAndSavings(t *testing.T) {
	p := Plan{PriceMonthly: 1000, PriceYearly: 9600}
	assert.Equal(t, int64(1000), p.Price(CycleMonthly))
	assert.Equal(t, int64(9600), p.Price(CycleYearly))
	assert.Equal(t, 20, p.YearlySavingsPercent())

	assert.Equal(t, 0, Plan{}.YearlySavingsPercent())
	assert.Equal(t, 0, Plan{PriceMonthly: 100, PriceYearly: 1500}.YearlySavingsPercent())
}

func TestUsageCounter(t *testing.T) {
	u := UsageCounter{Used: 3, Limit: 10}
	assert.Equal(t, 30, u.Percent())
	assert.Equal(t, 7, u.Remaining())
	assert.False(t, u.IsUnlimited())

	over := UsageCounter{Used: 12, Limit: 10}
	assert.Equal(t, 100, over.Percent())
	assert.Equal(t, 0, over.Remaining())

	unl := UsageCounter{Used: 40, Limit: Unlimited}
	assert.True(t, unl.IsUnlimited())
	assert.Equal(t, 0, unl.Percent())
	assert.Equal(t, Unlimited, unl.Remaining())
}

func TestSubscription_Cancelable(t *testing.T) {
	assert.True(t, Subscription{Tier: PlanBasic, Status: StatusActive}.Cancelable())
	assert.False(t, Subscription{Tier: PlanFree, Status: StatusActive}.Cancelable())
	assert.False(t, Subscription{Tier: PlanPremium, Status: StatusActive, CancelAtPeriodEnd: true}.Cancelable())
	assert.False(t, Subscription{Tier: PlanPremium, Status: StatusCanceled}.Cancelable())
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "Free", FormatMoney(0, "usd"))
	assert.Equal(t, "19.99 USD", FormatMoney(1999, "usd"))
	assert.Equal(t, "5.05 EUR", FormatMoney(505, "EUR"))
	assert.Equal(t, "-1.00 USD", FormatMoney(-100, ""))
}

func TestFeature_Label(t *testing.T) {
	assert.Equal(t, "Mock interview", FeatureMockInterview.Label())
	assert.Empty(t, Feature("").Label())
	assert.Len(t, AllFeatures(), 6)
}
