// Package landing holds the static marketing content and the FAQ accordion
// used by the landing and pricing pages.
package landing

import "github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"

// FAQ sections.
const (
	SectionLanding = "landing"
	SectionPricing = "pricing"
)

// FAQItem is one question of an accordion.
type FAQItem struct {
	ID       string
	Question string
	Answer   string
	Open     bool
}

// Accordion is a single-expanded list: at most one item is open.
type Accordion struct {
	Section string
	Items   []FAQItem
}

// OpenID returns the id of the expanded item, or "".
func (a Accordion) OpenID() string {
	for _, it := range a.Items {
		if it.Open {
			return it.ID
		}
	}
	return ""
}

// NextOpen applies a toggle of id to an accordion whose open item is current.
// Toggling the open item closes it; toggling another item opens it instead.
func NextOpen(current, id string) string {
	if id == current {
		return ""
	}
	return id
}

//nolint:gochecknoglobals // static copy
var faqs = map[string][]FAQItem{
	SectionLanding: {
		{ID: "what", Question: "What is PrepDeck?",
			Answer: "PrepDeck turns a job posting and your resume into a realistic mock interview, then scores your answers and tells you what to improve."},
		{ID: "questions", Question: "Where do the interview questions come from?",
			Answer: "Questions are generated for the role you are targeting and mixed with a curated bank of behavioral and technical questions."},
		{ID: "voice", Question: "Can I answer out loud?",
			Answer: "Yes. Live transcription turns your spoken answers into text as you go, so you can practice the way you will interview."},
		{ID: "privacy", Question: "Who can see my resume?",
			Answer: "Only you. Resumes are used to tailor questions and feedback and can be deleted at any time."},
	},
	SectionPricing: {
		{ID: "cancel", Question: "Can I cancel at any time?",
			Answer: "Yes. Your plan stays active until the end of the current billing period and then moves back to Free."},
		{ID: "yearly", Question: "What do I save with yearly billing?",
			Answer: "Yearly plans are billed once and cost less than twelve monthly payments. The saving is shown on each plan."},
		{ID: "limits", Question: "What happens when I reach a limit?",
			Answer: "The feature is paused until your usage resets at the start of the next period, or you can upgrade right away."},
		{ID: "refunds", Question: "Do you offer refunds?",
			Answer: "If something went wrong with a charge, contact support from the billing page and we will sort it out."},
	},
}

// FAQ returns the accordion for section with openID expanded. Unknown
// sections are empty; unknown ids leave every item closed.
func FAQ(section, openID string) Accordion {
	src := faqs[section]
	items := make([]FAQItem, len(src))
	for i, it := range src {
		it.Open = it.ID == openID
		items[i] = it
	}
	return Accordion{Section: section, Items: items}
}

// Toggle returns the accordion after toggling id from the state where
// current was open.
func Toggle(section, current, id string) Accordion {
	return FAQ(section, NextOpen(current, id))
}

// Feature is a marketing tile on the landing page.
type Feature struct {
	Icon  string
	Title string
	Body  string
}

// Features returns the landing page feature grid.
func Features() []Feature {
	return []Feature{
		{Icon: "target", Title: "Role-specific questions", Body: "Paste a job posting and get questions written for that role and level."},
		{Icon: "mic", Title: "Live mock interviews", Body: "Answer out loud with real-time transcription and a steady interview pace."},
		{Icon: "chart", Title: "Actionable feedback", Body: "Every answer is scored for structure, relevance and clarity with concrete suggestions."},
		{Icon: "file", Title: "Resume match", Body: "See how well your resume fits a posting and which skills to highlight."},
	}
}

// Page is the view model of GET /.
type Page struct {
	viewmodel.Layout

	Features []Feature
	FAQ      Accordion
}

// LayoutData returns a pointer to the embedded layout for renderer helpers.
func (p *Page) LayoutData() *viewmodel.Layout { return &p.Layout }
