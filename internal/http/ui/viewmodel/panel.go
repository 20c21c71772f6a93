package viewmodel

// Panel describes an asynchronously loaded region. The page renders it in
// its loading state; the fragment endpoint at Source re-renders it with
// either content or an error and a retry control pointing back at Source.
type Panel struct {
	ID           string
	Source       string
	Error        bool
	ErrorMessage string
}

// Failed returns a copy of p in the error state.
func (p Panel) Failed(msg string) Panel {
	p.Error = true
	p.ErrorMessage = msg
	return p
}

// Tab is one entry of a tab strip.
type Tab struct {
	ID     string
	Label  string
	URL    string
	Active bool
}

// Tabs builds a tab strip, marking active.
func Tabs(active string, entries ...Tab) []Tab {
	out := make([]Tab, len(entries))
	for i, t := range entries {
		t.Active = t.ID == active
		out[i] = t
	}
	return out
}
