package httpx

import "net/http"

type healthStatus struct {
	Status string `json:"status"`
}

// healthHandler answers liveness probes. It never calls the backend so a
// slow API does not take the front end out of rotation.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, healthStatus{Status: "ok"})
}
