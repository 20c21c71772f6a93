package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/billing"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/landing"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
)

func plansPanel(cycle model.BillingCycle) viewmodel.Panel {
	return viewmodel.Panel{ID: "pricing-plans", Source: "/pricing/plans?cycle=" + string(cycle)}
}

// Pricing renders the pricing page shell; plans load from PricingPlans.
func (h *UIHandlers) Pricing(w http.ResponseWriter, r *http.Request) {
	cycle := model.ParseBillingCycle(r.URL.Query().Get("cycle"))
	page := &billing.PricingPage{
		Layout: buildLayout(r, PageMeta{Title: "Pricing - PrepDeck", PageTitle: "Pricing", CurrentPage: PagePricing}),
		Cycle:  string(cycle),
		Tabs:   billing.CycleTabs(cycle),
		Plans:  plansPanel(cycle),
		FAQ:    landing.FAQ(landing.SectionPricing, ""),
	}
	h.renderPage(w, r, page)
}

// PricingPlans renders the plan cards, or an error panel whose retry
// re-requests this fragment.
func (h *UIHandlers) PricingPlans(w http.ResponseWriter, r *http.Request) {
	cycle := model.ParseBillingCycle(r.URL.Query().Get("cycle"))
	frag := billing.PlansFragment{
		Panel:     plansPanel(cycle),
		Cycle:     string(cycle),
		CSRFToken: GetCSRFToken(r),
	}

	plans, err := h.Billing.Plans(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "pricing plans unavailable", "error", err)
		frag.Panel = frag.Panel.Failed(ErrorMessage(err))
		h.renderFragment(w, r, "plans", frag, DetermineErrorStatus(err))
		return
	}

	var current model.PlanTier
	session, signedIn := signedInSession(r.Context())
	if signedIn {
		current = session.Plan
		if current == "" {
			current = model.PlanFree
		}
	}
	frag.Cards = billing.NewPlanCards(plans, cycle, current, signedIn)
	h.renderFragment(w, r, "plans", frag, http.StatusOK)
}

// Checkout starts a hosted checkout for the posted plan and sends the
// browser to the payment provider.
// POST /billing/checkout.
func (h *UIHandlers) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	planID := strings.TrimSpace(r.PostFormValue("plan_id"))
	cycle := model.ParseBillingCycle(r.PostFormValue("cycle"))

	cs, err := h.Billing.Checkout(r.Context(), model.CheckoutRequest{
		PlanID:       planID,
		BillingCycle: cycle,
		SuccessURL:   h.absoluteURL(r, "/billing?checkout=success"),
		CancelURL:    h.absoluteURL(r, "/pricing?"+url.Values{"cycle": {string(cycle)}, "checkout": {"canceled"}}.Encode()),
	})
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "checkout failed", "plan", planID, "error", err)
		if IsHTMX(r) {
			// Toast only; the plan cards stay as rendered.
			HTMX(w).Reswap("none")
			triggerToast(w, ErrorMessage(err), "error")
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, ErrorMessage(err), DetermineErrorStatus(err))
		return
	}

	h.logger().InfoContext(r.Context(), "checkout started", "plan", planID, "cycle", cycle, "session", cs.SessionID)
	navigate(w, r, cs.CheckoutURL)
}
