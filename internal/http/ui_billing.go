package httpx

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/billing"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
)

//nolint:gochecknoglobals // static panel descriptors
var (
	subscriptionPanel = viewmodel.Panel{ID: "subscription-panel", Source: "/billing/subscription-panel"}
	historyPanel      = viewmodel.Panel{ID: "history-panel", Source: "/billing/history"}
)

// BillingPage renders the billing page shell for the selected tab.
func (h *UIHandlers) BillingPage(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab != BillingTabHistory {
		tab = BillingTabOverview
	}
	page := &billing.BillingPage{
		Layout: buildLayout(r, PageMeta{Title: "Billing - PrepDeck", PageTitle: "Billing", CurrentPage: PageBilling}),
		Tab:    tab,
		Tabs:   billing.BillingTabs(tab),
		Panel:  subscriptionPanel,
	}
	if tab == BillingTabHistory {
		page.Panel = historyPanel
	}
	if r.URL.Query().Get("checkout") == "success" {
		triggerToast(w, "Thanks! Your plan will update as soon as the payment is confirmed.", "success")
	}
	h.renderPage(w, r, page)
}

// SubscriptionPanel renders the current plan and usage meters.
func (h *UIHandlers) SubscriptionPanel(w http.ResponseWriter, r *http.Request) {
	h.writeSubscriptionPanel(w, r, "")
}

// loadSubscriptionPanel fetches subscription and usage concurrently.
func (h *UIHandlers) loadSubscriptionPanel(ctx context.Context) (billing.SubscriptionPanel, error) {
	var (
		sub   *model.Subscription
		usage []model.UsageCounter
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sub, err = h.Billing.Subscription(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		usage, err = h.Billing.Usage(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return billing.SubscriptionPanel{Panel: subscriptionPanel}, err
	}
	if len(usage) == 0 && sub != nil {
		usage = sub.Usage
	}
	panel := billing.SubscriptionPanel{Panel: subscriptionPanel, Usage: billing.NewUsageRows(usage)}
	if sub != nil {
		panel.Subscription = billing.NewSubscriptionView(*sub)
	}
	return panel, nil
}

// writeSubscriptionPanel renders a freshly fetched panel with notice.
func (h *UIHandlers) writeSubscriptionPanel(w http.ResponseWriter, r *http.Request, notice string) {
	panel, err := h.loadSubscriptionPanel(r.Context())
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "subscription panel unavailable", "error", err)
		panel.Panel = panel.Failed(ErrorMessage(err))
		h.renderFragment(w, r, "subscription-panel", panel, DetermineErrorStatus(err))
		return
	}
	panel.Notice = notice
	panel.CSRFToken = GetCSRFToken(r)
	h.renderFragment(w, r, "subscription-panel", panel, http.StatusOK)
}

// BillingHistory renders the payment history table.
func (h *UIHandlers) BillingHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryIntInRange(r, "limit", DefaultHistoryLimit, 1, maxHistoryLimit)
	panel := billing.HistoryPanel{Panel: historyPanel}

	payments, err := h.Billing.History(r.Context(), limit)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "billing history unavailable", "error", err)
		panel.Panel = panel.Failed(ErrorMessage(err))
		h.renderFragment(w, r, "history-panel", panel, DetermineErrorStatus(err))
		return
	}
	panel.Payments = billing.NewPaymentRows(payments)
	h.renderFragment(w, r, "history-panel", panel, http.StatusOK)
}

const maxHistoryLimit = 100

// subscriptionAction runs a cancel or reactivate call, then re-renders the
// panel from a fresh fetch so the page never shows a guessed state.
func (h *UIHandlers) subscriptionAction(w http.ResponseWriter, r *http.Request, name, okMsg string,
	call func(context.Context) (*model.Subscription, error),
) {
	if _, err := call(r.Context()); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "subscription action failed", "action", name, "error", err)
		triggerToast(w, ErrorMessage(err), "error")
		h.writeSubscriptionPanel(w, r, "")
		return
	}
	h.logger().InfoContext(r.Context(), "subscription updated", "action", name)
	triggerToast(w, okMsg, "success")
	h.writeSubscriptionPanel(w, r, okMsg)
}

// CancelSubscription schedules cancellation at period end.
// POST /billing/cancel.
func (h *UIHandlers) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	h.subscriptionAction(w, r, "cancel",
		"Your subscription will end at the close of the current period.", h.Billing.Cancel)
}

// ReactivateSubscription undoes a pending cancellation.
// POST /billing/reactivate.
func (h *UIHandlers) ReactivateSubscription(w http.ResponseWriter, r *http.Request) {
	h.subscriptionAction(w, r, "reactivate",
		"Your subscription has been reactivated.", h.Billing.Reactivate)
}

// BillingPortal opens the payment provider's portal.
// POST /billing/portal.
func (h *UIHandlers) BillingPortal(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Billing.Portal(r.Context(), h.absoluteURL(r, "/billing"))
	if err == nil && ps.URL == "" {
		h.logger().WarnContext(r.Context(), "portal response had no url")
		triggerToast(w, msgBadResponse, "error")
		h.writeSubscriptionPanel(w, r, "")
		return
	}
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "billing portal failed", "error", err)
		triggerToast(w, ErrorMessage(err), "error")
		h.writeSubscriptionPanel(w, r, "")
		return
	}
	navigate(w, r, ps.URL)
}
