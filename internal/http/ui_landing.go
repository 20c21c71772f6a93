package httpx

import (
	"net/http"

	"github.com/prepdeck/prepdeck-web/internal/http/ui/landing"
)

// Landing serves the public marketing page.
func (h *UIHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	page := &landing.Page{
		Layout:   buildLayout(r, PageMeta{Title: "PrepDeck - Practice interviews that feel real", PageTitle: "PrepDeck", CurrentPage: PageLanding}),
		Features: landing.Features(),
		FAQ:      landing.FAQ(landing.SectionLanding, r.URL.Query().Get("faq")),
	}
	h.renderPage(w, r, page)
}

// FAQToggle returns the accordion fragment after toggling one item.
// GET /faq/toggle?section=&open=&id= where open is the currently expanded item.
func (h *UIHandlers) FAQToggle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	section := q.Get("section")
	if section == "" {
		section = landing.SectionLanding
	}
	acc := landing.Toggle(section, q.Get("open"), q.Get("id"))
	if len(acc.Items) == 0 {
		http.Error(w, "unknown faq section", http.StatusNotFound)
		return
	}
	h.renderFragment(w, r, "faq", acc, http.StatusOK)
}
