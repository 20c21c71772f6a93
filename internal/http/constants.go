package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageLanding     = "landing"
	PageDashboard   = "dashboard"
	PagePricing     = "pricing"
	PageBilling     = "billing"
	PagePermissions = "permissions"
	PageLogin       = "login"
	PageRegister    = "register"
)

// Billing page tabs.
const (
	BillingTabOverview = "overview"
	BillingTabHistory  = "history"
)

const (
	// DefaultHistoryLimit is how many payments the history tab requests.
	DefaultHistoryLimit = 20

	// DashboardRecentLimit caps each list on the dashboard.
	DashboardRecentLimit = 5

	// sessionCookieName holds the opaque server-side session id.
	sessionCookieName = "session_id"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLanding:     "landing-content",
	PageDashboard:   "dashboard-content",
	PagePricing:     "pricing-content",
	PageBilling:     "billing-content",
	PagePermissions: "permissions-content",
	PageLogin:       "login-content",
	PageRegister:    "register-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the landing content.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "landing-content"
}
