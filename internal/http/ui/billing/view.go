// Package billing builds the typed view models for the pricing, billing and
// permission console pages.
package billing

import (
	"strconv"
	"time"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/landing"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
	"github.com/prepdeck/prepdeck-web/internal/http/uiutil"
)

// PlanCard is one plan column on the pricing page.
type PlanCard struct {
	ID          string
	Name        string
	Description string
	Tier        string
	Price       string
	PriceSuffix string
	Savings     int
	Features    []string
	Popular     bool
	Current     bool
	Free        bool
	// Action is "checkout", "signin", "current" or "none".
	Action string
}

// PricingPage is the view model of GET /pricing.
type PricingPage struct {
	viewmodel.Layout

	Cycle string
	Tabs  []viewmodel.Tab
	Plans viewmodel.Panel
	FAQ   landing.Accordion
}

// LayoutData returns a pointer to the embedded layout for renderer helpers.
func (p *PricingPage) LayoutData() *viewmodel.Layout { return &p.Layout }

// PlansFragment is the view model of GET /pricing/plans.
type PlansFragment struct {
	viewmodel.Panel

	Cycle     string
	Cards     []PlanCard
	CSRFToken string
}

// CycleTabs returns the monthly/yearly tab strip.
func CycleTabs(active model.BillingCycle) []viewmodel.Tab {
	return viewmodel.Tabs(string(active),
		viewmodel.Tab{ID: string(model.CycleMonthly), Label: "Monthly", URL: "/pricing?cycle=monthly"},
		viewmodel.Tab{ID: string(model.CycleYearly), Label: "Yearly", URL: "/pricing?cycle=yearly"},
	)
}

// NewPlanCards renders plans for cycle. current is the signed-in caller's
// tier, empty for visitors.
func NewPlanCards(plans []model.Plan, cycle model.BillingCycle, current model.PlanTier, signedIn bool) []PlanCard {
	cards := make([]PlanCard, 0, len(plans))
	for _, p := range plans {
		price := p.Price(cycle)
		card := PlanCard{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Tier:        string(p.Tier),
			Price:       model.FormatMoney(price, p.Currency),
			Features:    p.Features,
			Popular:     p.Popular,
			Free:        price == 0,
			Current:     signedIn && p.Tier == current,
		}
		if !card.Free {
			card.PriceSuffix = "/month"
			if cycle == model.CycleYearly {
				card.PriceSuffix = "/year"
				card.Savings = p.YearlySavingsPercent()
			}
		}
		card.Action = planAction(card, p.Tier, current, signedIn)
		cards = append(cards, card)
	}
	return cards
}

func planAction(card PlanCard, tier, current model.PlanTier, signedIn bool) string {
	switch {
	case card.Current:
		return "current"
	case card.Free:
		return "none"
	case !signedIn:
		return "signin"
	case tier.Rank() > current.Rank():
		return "checkout"
	default:
		return "none"
	}
}

// BillingPage is the view model of GET /billing.
type BillingPage struct {
	viewmodel.Layout

	Tab   string
	Tabs  []viewmodel.Tab
	Panel viewmodel.Panel
}

// LayoutData returns a pointer to the embedded layout for renderer helpers.
func (p *BillingPage) LayoutData() *viewmodel.Layout { return &p.Layout }

// BillingTabs returns the overview/history tab strip.
func BillingTabs(active string) []viewmodel.Tab {
	return viewmodel.Tabs(active,
		viewmodel.Tab{ID: "overview", Label: "Overview", URL: "/billing?tab=overview"},
		viewmodel.Tab{ID: "history", Label: "Payment history", URL: "/billing?tab=history"},
	)
}

// SubscriptionView is the display form of a subscription.
type SubscriptionView struct {
	PlanName      string
	Tier          string
	Status        string
	StatusClass   string
	Cycle         string
	PeriodEnd     string
	PeriodLabel   string
	CancelPending bool
	Cancelable    bool
	Reactivatable bool
	IsPaid        bool
}

// UsageRow is one usage meter.
type UsageRow struct {
	Feature   string
	Label     string
	Used      int
	Limit     string
	Remaining string
	Percent   int
	Unlimited bool
	NearLimit bool
	ResetsAt  string
}

// SubscriptionPanel is the view model of GET /billing/subscription-panel.
type SubscriptionPanel struct {
	viewmodel.Panel

	Subscription *SubscriptionView
	Usage        []UsageRow
	Notice       string
	CSRFToken    string
}

// NewSubscriptionView converts sub for display.
func NewSubscriptionView(sub model.Subscription) *SubscriptionView {
	v := &SubscriptionView{
		PlanName:      sub.PlanName,
		Tier:          string(sub.Tier),
		Status:        statusLabel(sub.Status),
		StatusClass:   StatusClass(string(sub.Status)),
		Cycle:         string(sub.BillingCycle),
		CancelPending: sub.CancelAtPeriodEnd,
		Cancelable:    sub.Cancelable(),
		Reactivatable: sub.CancelAtPeriodEnd && sub.Status != model.StatusCanceled,
		IsPaid:        sub.IsPaid(),
	}
	if v.PlanName == "" {
		v.PlanName = label(string(sub.Tier))
	}
	if sub.CurrentPeriodEnd != nil {
		v.PeriodEnd = uiutil.FormatFriendlyDate(*sub.CurrentPeriodEnd)
		v.PeriodLabel = "Renews on"
		if sub.CancelAtPeriodEnd {
			v.PeriodLabel = "Ends on"
		}
	}
	return v
}

// NearLimitPercent marks a meter as almost exhausted.
const NearLimitPercent = 80

// NewUsageRows converts usage counters for display. ResetsAt is shown as
// reported by the backend.
func NewUsageRows(usage []model.UsageCounter) []UsageRow {
	rows := make([]UsageRow, 0, len(usage))
	for _, u := range usage {
		row := UsageRow{
			Feature:   string(u.Feature),
			Label:     u.Feature.Label(),
			Used:      u.Used,
			Unlimited: u.IsUnlimited(),
			Percent:   u.Percent(),
		}
		if row.Unlimited {
			row.Limit = "Unlimited"
			row.Remaining = "Unlimited"
		} else {
			row.Limit = strconv.Itoa(u.Limit)
			row.Remaining = strconv.Itoa(u.Remaining())
			row.NearLimit = row.Percent >= NearLimitPercent
		}
		if u.ResetsAt != nil {
			row.ResetsAt = u.ResetsAt.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows
}

// PaymentRow is one line of the payment history table.
type PaymentRow struct {
	ID          string
	Date        string
	Description string
	Amount      string
	Status      string
	StatusClass string
	InvoiceURL  string
}

// HistoryPanel is the view model of GET /billing/history.
type HistoryPanel struct {
	viewmodel.Panel

	Payments []PaymentRow
}

// NewPaymentRows converts payments for display, keeping backend order.
func NewPaymentRows(payments []model.Payment) []PaymentRow {
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			ID:          p.ID,
			Date:        uiutil.FormatFriendlyDate(p.CreatedAt),
			Description: p.Description,
			Amount:      model.FormatMoney(p.Amount, p.Currency),
			Status:      label(p.Status),
			StatusClass: StatusClass(p.Status),
			InvoiceURL:  p.InvoiceURL,
		})
	}
	return rows
}

// StatusClass maps subscription and payment statuses to badge classes.
func StatusClass(status string) string {
	switch status {
	case "active", "paid", "succeeded", "trialing":
		return "badge-success"
	case "past_due", "pending", "incomplete", "open":
		return "badge-warning"
	case "canceled", "failed", "refunded", "void":
		return "badge-danger"
	default:
		return "badge-light"
	}
}

func statusLabel(s model.SubscriptionStatus) string {
	if s == model.StatusPastDue {
		return "Past due"
	}
	return label(string(s))
}

func label(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}

// FeatureOption is one entry of the permission console's feature picker.
type FeatureOption struct {
	Value    string
	Label    string
	Selected bool
}

// FeatureOptions lists every gated feature, marking selected.
func FeatureOptions(selected string) []FeatureOption {
	all := model.AllFeatures()
	out := make([]FeatureOption, 0, len(all))
	for _, f := range all {
		out = append(out, FeatureOption{Value: string(f), Label: f.Label(), Selected: string(f) == selected})
	}
	return out
}

// PermissionResult is the rendered outcome of a check or a recorded use.
type PermissionResult struct {
	viewmodel.Panel

	Feature  string
	Label    string
	Allowed  bool
	Reason   string
	Used     int
	Limit    string
	Tier     string
	Recorded bool
}

// NewPermissionResult converts a backend verdict for display.
func NewPermissionResult(pc model.PermissionCheck, recorded bool) PermissionResult {
	limit := strconv.Itoa(pc.Limit)
	if pc.Limit < 0 {
		limit = "Unlimited"
	}
	return PermissionResult{
		Feature:  string(pc.Feature),
		Label:    pc.Feature.Label(),
		Allowed:  pc.Allowed,
		Reason:   pc.Reason,
		Used:     pc.Used,
		Limit:    limit,
		Tier:     label(string(pc.Tier)),
		Recorded: recorded,
	}
}

// ProbeResult is the outcome of an admin raw probe.
type ProbeResult struct {
	viewmodel.Panel

	Path       string
	Expression string
	Output     string
}

// PermissionsPage is the view model of GET /permissions.
type PermissionsPage struct {
	viewmodel.Layout

	Features []FeatureOption
	Result   *PermissionResult
	Probe    *ProbeResult
}

// LayoutData returns a pointer to the embedded layout for renderer helpers.
func (p *PermissionsPage) LayoutData() *viewmodel.Layout { return &p.Layout }
