package model

import (
	"fmt"
	"strings"
	"time"
)

// PlanTier names a subscription level.
type PlanTier string

const (
	PlanFree    PlanTier = "free"
	PlanBasic   PlanTier = "basic"
	PlanPremium PlanTier = "premium"
)

// Rank orders tiers so upgrades can be detected; unknown tiers rank lowest.
func (t PlanTier) Rank() int {
	switch t {
	case PlanBasic:
		return 1
	case PlanPremium:
		return 2
	default:
		return 0
	}
}

// BillingCycle is the renewal period of a subscription.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// ParseBillingCycle normalizes a cycle name, defaulting to monthly.
func ParseBillingCycle(v string) BillingCycle {
	if BillingCycle(strings.ToLower(strings.TrimSpace(v))) == CycleYearly {
		return CycleYearly
	}
	return CycleMonthly
}

// Feature is a metered capability gated by plan.
type Feature string

const (
	FeatureMockInterview     Feature = "mock_interview"
	FeatureQuestionGenerate  Feature = "question_generation"
	FeatureResumeUpload      Feature = "resume_upload"
	FeatureResumeAnalysis    Feature = "resume_analysis"
	FeatureInterviewAnalysis Feature = "interview_analysis"
	FeatureTranscription     Feature = "live_transcription"
)

// AllFeatures lists every gated feature in display order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureMockInterview,
		FeatureQuestionGenerate,
		FeatureResumeUpload,
		FeatureResumeAnalysis,
		FeatureInterviewAnalysis,
		FeatureTranscription,
	}
}

// Label returns a human readable feature name.
func (f Feature) Label() string {
	s := strings.ReplaceAll(string(f), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Unlimited marks a limit without a cap.
const Unlimited = -1

// Plan is an offer shown on the pricing page. Prices are in minor units.
type Plan struct {
	ID           string          `json:"id"`
	Tier         PlanTier        `json:"tier"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	PriceMonthly int64           `json:"price_monthly"`
	PriceYearly  int64           `json:"price_yearly"`
	Currency     string          `json:"currency"`
	Features     []string        `json:"features"`
	Limits       map[Feature]int `json:"limits,omitempty"`
	Popular      bool            `json:"popular,omitempty"`
}

// Price returns the price for the cycle in minor units.
func (p Plan) Price(cycle BillingCycle) int64 {
	if cycle == CycleYearly {
		return p.PriceYearly
	}
	return p.PriceMonthly
}

// YearlySavingsPercent compares twelve monthly payments with the yearly price.
func (p Plan) YearlySavingsPercent() int {
	full := p.PriceMonthly * 12
	if full <= 0 || p.PriceYearly >= full {
		return 0
	}
	return int((full - p.PriceYearly) * 100 / full)
}

// SubscriptionStatus mirrors the payment provider's lifecycle.
type SubscriptionStatus string

const (
	StatusActive     SubscriptionStatus = "active"
	StatusTrialing   SubscriptionStatus = "trialing"
	StatusPastDue    SubscriptionStatus = "past_due"
	StatusCanceled   SubscriptionStatus = "canceled"
	StatusIncomplete SubscriptionStatus = "incomplete"
)

// Subscription is the caller's current plan.
type Subscription struct {
	ID                 string             `json:"id"`
	PlanID             string             `json:"plan_id"`
	PlanName           string             `json:"plan_name"`
	Tier               PlanTier           `json:"tier"`
	Status             SubscriptionStatus `json:"status"`
	BillingCycle       BillingCycle       `json:"billing_cycle"`
	CurrentPeriodStart *time.Time         `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time         `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	Usage              []UsageCounter     `json:"usage,omitempty"`
}

// IsPaid reports whether the subscription is on a paid tier.
func (s Subscription) IsPaid() bool { return s.Tier.Rank() > 0 }

// Cancelable reports whether a cancel request makes sense.
func (s Subscription) Cancelable() bool {
	return s.IsPaid() && !s.CancelAtPeriodEnd &&
		(s.Status == StatusActive || s.Status == StatusTrialing || s.Status == StatusPastDue)
}

// UsageCounter is one metered feature's consumption in the current period.
// ResetsAt is whatever the backend reports; the UI shows it verbatim.
type UsageCounter struct {
	Feature  Feature    `json:"feature"`
	Used     int        `json:"used"`
	Limit    int        `json:"limit"`
	ResetsAt *time.Time `json:"resets_at,omitempty"`
}

// IsUnlimited reports whether the counter has no cap.
func (u UsageCounter) IsUnlimited() bool { return u.Limit < 0 }

// Percent returns usage as 0..100 for progress bars.
func (u UsageCounter) Percent() int {
	if u.Limit <= 0 {
		return 0
	}
	p := u.Used * 100 / u.Limit
	if p > 100 {
		return 100
	}
	return p
}

// Remaining returns how many uses are left, or Unlimited.
func (u UsageCounter) Remaining() int {
	if u.IsUnlimited() {
		return Unlimited
	}
	if r := u.Limit - u.Used; r > 0 {
		return r
	}
	return 0
}

// Payment is one entry of the billing history.
type Payment struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	InvoiceURL  string    `json:"invoice_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CheckoutRequest starts a hosted checkout for a plan.
type CheckoutRequest struct {
	PlanID       string       `json:"plan_id"`
	BillingCycle BillingCycle `json:"billing_cycle"`
	SuccessURL   string       `json:"success_url,omitempty"`
	CancelURL    string       `json:"cancel_url,omitempty"`
}

// CheckoutSession points the browser at the payment provider.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// PortalSession points the browser at the provider's billing portal.
type PortalSession struct {
	URL string `json:"url"`
}

// PermissionCheck is the backend verdict for one feature.
type PermissionCheck struct {
	Feature Feature  `json:"feature"`
	Allowed bool     `json:"allowed"`
	Reason  string   `json:"reason,omitempty"`
	Used    int      `json:"used"`
	Limit   int      `json:"limit"`
	Tier    PlanTier `json:"tier,omitempty"`
}

// FormatMoney renders minor units as "12.34 USD"; zero renders "Free".
func FormatMoney(amount int64, currency string) string {
	if amount == 0 {
		return "Free"
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = "USD"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, cur)
}
