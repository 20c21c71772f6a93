package httpx

import (
	"net/http"
	"strings"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/billing"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
	"github.com/prepdeck/prepdeck-web/internal/http/validation"
)

//nolint:gochecknoglobals // static panel descriptors
var (
	permissionPanel = viewmodel.Panel{ID: "permission-result", Source: "/permissions/check"}
	probePanel      = viewmodel.Panel{ID: "probe-result", Source: "/permissions/probe"}
)

const (
	maxProbePathLen = 256
	maxProbeExprLen = 512
)

// Permissions renders the permission test console.
func (h *UIHandlers) Permissions(w http.ResponseWriter, r *http.Request) {
	page := &billing.PermissionsPage{
		Layout:   buildLayout(r, PageMeta{Title: "Permissions - PrepDeck", PageTitle: "Permission console", CurrentPage: PagePermissions}),
		Features: billing.FeatureOptions(r.URL.Query().Get("feature")),
	}
	h.renderPage(w, r, page)
}

func featureValues() []string {
	all := model.AllFeatures()
	out := make([]string, len(all))
	for i, f := range all {
		out[i] = string(f)
	}
	return out
}

// parseFeature reads and validates the posted feature, writing a 400
// result fragment when it is missing or unknown.
func (h *UIHandlers) parseFeature(w http.ResponseWriter, r *http.Request) (model.Feature, bool) {
	feature := strings.TrimSpace(r.PostFormValue("feature"))
	fv := validation.New().Validate("feature", feature,
		validation.Required("Feature", 64), validation.OneOf("Feature", featureValues()))
	if !fv.Valid() {
		res := billing.PermissionResult{Panel: permissionPanel.Failed(fv.Errors()["feature"])}
		h.renderFragment(w, r, "permission-result", res, http.StatusBadRequest)
		return "", false
	}
	return model.Feature(feature), true
}

// CheckPermission renders the backend verdict for one feature.
// POST /permissions/check.
func (h *UIHandlers) CheckPermission(w http.ResponseWriter, r *http.Request) {
	feature, ok := h.parseFeature(w, r)
	if !ok {
		return
	}
	h.writePermissionResult(w, r, feature, false)
}

// RecordUsage counts one use of a feature, then re-checks it so the result
// reflects the backend's updated counter.
// POST /permissions/usage.
func (h *UIHandlers) RecordUsage(w http.ResponseWriter, r *http.Request) {
	feature, ok := h.parseFeature(w, r)
	if !ok {
		return
	}
	if _, err := h.Billing.RecordUsage(r.Context(), feature); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "record usage failed", "feature", feature, "error", err)
		res := billing.PermissionResult{Panel: permissionPanel.Failed(ErrorMessage(err)), Feature: string(feature), Label: feature.Label()}
		h.renderFragment(w, r, "permission-result", res, DetermineErrorStatus(err))
		return
	}
	h.writePermissionResult(w, r, feature, true)
}

func (h *UIHandlers) writePermissionResult(w http.ResponseWriter, r *http.Request, feature model.Feature, recorded bool) {
	pc, err := h.Billing.CheckPermission(r.Context(), feature)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "permission check failed", "feature", feature, "error", err)
		res := billing.PermissionResult{Panel: permissionPanel.Failed(ErrorMessage(err)), Feature: string(feature), Label: feature.Label()}
		h.renderFragment(w, r, "permission-result", res, DetermineErrorStatus(err))
		return
	}
	res := billing.NewPermissionResult(*pc, recorded)
	res.Panel = permissionPanel
	h.renderFragment(w, r, "permission-result", res, http.StatusOK)
}

// Probe issues a raw GET to a backend endpoint with the caller's token and
// renders the JSON, optionally filtered by a JMESPath expression. Admin only.
// POST /permissions/probe.
func (h *UIHandlers) Probe(w http.ResponseWriter, r *http.Request) {
	res := billing.ProbeResult{
		Panel:      probePanel,
		Path:       strings.TrimSpace(r.PostFormValue("path")),
		Expression: strings.TrimSpace(r.PostFormValue("expr")),
	}

	fv := validation.New().
		Validate("path", res.Path, validation.Required("Path", maxProbePathLen), validation.APIPath("Path")).
		Validate("expr", res.Expression, validation.Optional("Expression", maxProbeExprLen))
	if !fv.Valid() {
		msg := fv.Errors()["path"]
		if msg == "" {
			msg = fv.Errors()["expr"]
		}
		res.Panel = res.Failed(msg)
		h.renderFragment(w, r, "probe-result", res, http.StatusBadRequest)
		return
	}

	out, err := h.Prober.Probe(r.Context(), res.Path, res.Expression)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "probe failed", "path", res.Path, "error", err)
		res.Panel = res.Failed(ErrorMessage(err))
		h.renderFragment(w, r, "probe-result", res, DetermineErrorStatus(err))
		return
	}

	body := out.Raw
	if res.Expression != "" {
		body = out.Filtered
	}
	res.Output = string(body)
	h.logger().InfoContext(r.Context(), "probe executed", "path", res.Path, "filtered", res.Expression != "")
	h.renderFragment(w, r, "probe-result", res, http.StatusOK)
}
