package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

func pricingPlans() []model.Plan {
	return []model.Plan{
		{ID: "free", Tier: model.PlanFree, Name: "Free", Currency: "usd"},
		{ID: "basic", Tier: model.PlanBasic, Name: "Basic", PriceMonthly: 1200, PriceYearly: 12000, Currency: "usd"},
		{ID: "premium", Tier: model.PlanPremium, Name: "Premium", PriceMonthly: 2900, PriceYearly: 29000, Currency: "usd", Popular: true},
	}
}

func TestUIHandlers_Pricing_Shell(t *testing.T) {
	f := newUIFixture(t)

	w := httptest.NewRecorder()
	f.h.Pricing(w, httptest.NewRequest(http.MethodGet, "/pricing?cycle=yearly", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `hx-get="/pricing/plans?cycle=yearly"`)
	assert.Contains(t, body, `hx-trigger="load"`)
	assert.Contains(t, body, `id="faq-pricing"`)
	assert.Contains(t, body, "Can I cancel at any time?")
}

func TestUIHandlers_Pricing_HTMXNavigation(t *testing.T) {
	f := newUIFixture(t)

	w := httptest.NewRecorder()
	f.h.Pricing(w, htmxRequest(httptest.NewRequest(http.MethodGet, "/pricing", nil)))

	body := w.Body.String()
	assert.Contains(t, body, "<title>Pricing - PrepDeck</title>")
	assert.Contains(t, body, `hx-swap-oob="outerHTML"`)
	assert.NotContains(t, body, "<!doctype html>", "htmx navigation gets the content only")
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "nav:activate")
}

func TestUIHandlers_PricingPlans_Visitor(t *testing.T) {
	f := newUIFixture(t)
	f.billing.EXPECT().Plans(gomock.Any()).Return(pricingPlans(), nil)

	w := httptest.NewRecorder()
	f.h.PricingPlans(w, httptest.NewRequest(http.MethodGet, "/pricing/plans", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="pricing-plans"`)
	assert.Contains(t, body, "12.00 USD")
	assert.Contains(t, body, "Most popular")
	assert.Contains(t, body, "Get started")
	assert.NotContains(t, body, `action="/billing/checkout"`, "visitors sign up before checkout")
}

func TestUIHandlers_PricingPlans_SignedIn(t *testing.T) {
	f := newUIFixture(t)
	f.billing.EXPECT().Plans(gomock.Any()).Return(pricingPlans(), nil)

	req := WithTestSession(httptest.NewRequest(http.MethodGet, "/pricing/plans?cycle=yearly", nil), userSession(model.PlanBasic))
	w := httptest.NewRecorder()
	f.h.PricingPlans(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "Current plan")
	assert.Contains(t, body, `name="plan_id" value="premium"`)
	assert.Contains(t, body, `name="cycle" value="yearly"`)
	assert.Equal(t, 1, strings.Count(body, `action="/billing/checkout"`), "only upgrades are offered")
	assert.Contains(t, body, "Save 16%")
}

func TestUIHandlers_PricingPlans_ErrorPanel(t *testing.T) {
	f := newUIFixture(t)
	f.billing.EXPECT().Plans(gomock.Any()).
		Return(nil, &backend.APIError{Kind: backend.KindStatus, StatusCode: http.StatusInternalServerError, Message: "HTTP 500"})

	w := httptest.NewRecorder()
	f.h.PricingPlans(w, htmxRequest(httptest.NewRequest(http.MethodGet, "/pricing/plans?cycle=monthly", nil)))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "panel-error")
	assert.Contains(t, body, "HTTP 500")
	assert.Contains(t, body, `hx-get="/pricing/plans?cycle=monthly"`)
	assert.Contains(t, body, `hx-target="#pricing-plans"`)
}

func TestUIHandlers_PricingPlans_Unreachable(t *testing.T) {
	f := newUIFixture(t)
	f.billing.EXPECT().Plans(gomock.Any()).
		Return(nil, &backend.APIError{Kind: backend.KindTransport, Err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	f.h.PricingPlans(w, httptest.NewRequest(http.MethodGet, "/pricing/plans", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "couldn&#39;t reach the server")
}

func TestUIHandlers_Checkout(t *testing.T) {
	t.Run("redirects to the provider", func(t *testing.T) {
		f := newUIFixture(t)
		f.billing.EXPECT().Checkout(gomock.Any(), model.CheckoutRequest{
			PlanID:       "premium",
			BillingCycle: model.CycleYearly,
			SuccessURL:   "https://prepdeck.test/billing?checkout=success",
			CancelURL:    "https://prepdeck.test/pricing?checkout=canceled&cycle=yearly",
		}).Return(&model.CheckoutSession{SessionID: "cs_1", CheckoutURL: "https://pay.example.com/c/cs_1"}, nil)

		req := htmxRequest(FormRequest("/billing/checkout", url.Values{"plan_id": {"premium"}, "cycle": {"yearly"}}))
		req = WithTestSession(req, userSession(model.PlanBasic))
		w := httptest.NewRecorder()
		f.h.Checkout(w, req)

		assert.Equal(t, "https://pay.example.com/c/cs_1", w.Header().Get("Hx-Redirect"))
	})

	t.Run("failure keeps the page and toasts", func(t *testing.T) {
		f := newUIFixture(t)
		f.billing.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, &backend.APIError{Kind: backend.KindApplication, Message: "Plan is not available"})

		req := htmxRequest(FormRequest("/billing/checkout", url.Values{"plan_id": {"premium"}}))
		w := httptest.NewRecorder()
		f.h.Checkout(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "none", w.Header().Get("Hx-Reswap"))
		assert.Contains(t, w.Header().Get("Hx-Trigger"), "Plan is not available")
	})

	t.Run("failure without htmx", func(t *testing.T) {
		f := newUIFixture(t)
		f.billing.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, &backend.APIError{Kind: backend.KindApplication, Message: "Plan is not available"})

		w := httptest.NewRecorder()
		f.h.Checkout(w, FormRequest("/billing/checkout", url.Values{"plan_id": {"premium"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("expired session", func(t *testing.T) {
		f := newUIFixture(t)
		f.billing.EXPECT().Checkout(gomock.Any(), gomock.Any()).
			Return(nil, &backend.APIError{Kind: backend.KindUnauthorized, StatusCode: http.StatusUnauthorized})

		req := htmxRequest(FormRequest("/billing/checkout", url.Values{"plan_id": {"premium"}}))
		w := httptest.NewRecorder()
		f.h.Checkout(w, req)

		assert.Contains(t, w.Header().Get("Hx-Redirect"), "/auth/signed-out?")
		assert.Contains(t, w.Header().Get("Hx-Redirect"), "reason=expired")
		c := findCookie(t, w, sessionCookieName)
		require.NotNil(t, c)
		assert.Equal(t, -1, c.MaxAge)
	})
}

func TestUIHandlers_FAQToggle(t *testing.T) {
	f := newUIFixture(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantOpen   string
		wantClosed []string
	}{
		{
			name:       "opening one closes the other",
			target:     "/faq/toggle?section=landing&open=what&id=voice",
			wantStatus: http.StatusOK,
			wantOpen:   "Live transcription turns your spoken answers",
			wantClosed: []string{"PrepDeck turns a job posting"},
		},
		{
			name:       "toggling the open item hides it",
			target:     "/faq/toggle?section=pricing&open=cancel&id=cancel",
			wantStatus: http.StatusOK,
			wantClosed: []string{"Your plan stays active"},
		},
		{
			name:       "section defaults to landing",
			target:     "/faq/toggle?id=privacy",
			wantStatus: http.StatusOK,
			wantOpen:   "Only you.",
		},
		{
			name:       "unknown section",
			target:     "/faq/toggle?section=nope&id=what",
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			f.h.FAQToggle(w, htmxRequest(httptest.NewRequest(http.MethodGet, tt.target, nil)))

			assert.Equal(t, tt.wantStatus, w.Code)
			body := w.Body.String()
			if tt.wantOpen != "" {
				assert.Contains(t, body, tt.wantOpen)
				assert.Equal(t, 1, strings.Count(body, `aria-expanded="true"`))
			}
			for _, closed := range tt.wantClosed {
				assert.NotContains(t, body, closed)
			}
		})
	}
}

func TestUIHandlers_Landing_OpensRequestedFAQ(t *testing.T) {
	f := newUIFixture(t)

	w := httptest.NewRecorder()
	f.h.Landing(w, httptest.NewRequest(http.MethodGet, "/?faq=voice", nil))

	body := w.Body.String()
	assert.Contains(t, body, "Live transcription turns your spoken answers")
	assert.Contains(t, body, "open=voice&id=what", "toggle links carry the open item")
}

func TestUIHandlers_Landing_UnknownPath(t *testing.T) {
	f := newUIFixture(t)

	w := httptest.NewRecorder()
	f.h.Landing(w, browserRequest(http.MethodGet, "/nope"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
