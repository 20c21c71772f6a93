package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// apiError is the JSON body sent to non-browser clients on failure.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with status code. Encoding happens before the
// header is sent so a marshal failure still yields a clean 500.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(b, '\n'))
}

// writeAPIError writes {"error": code, "message": msg}.
func writeAPIError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, apiError{Error: code, Message: msg})
}

// queryIntInRange reads an integer query parameter, returning def when it is
// missing, malformed or outside [lo, hi].
func queryIntInRange(r *http.Request, key string, def, lo, hi int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return def
	}
	return n
}
