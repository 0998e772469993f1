// cmd/worker-manager/server.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// healthMux serves liveness, readiness and the Prometheus registry. Readiness
// requires postgres; redis and elasticsearch are reported but not required.
func healthMux(be *backends) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"postgres": "disabled", "redis": "disabled", "elasticsearch": "disabled"}
		if be.pg != nil {
			checks["postgres"] = check(ctx, be.pg)
		}
		if be.redis != nil {
			checks["redis"] = check(ctx, be.redis)
		}
		if be.es != nil {
			checks["elasticsearch"] = check(ctx, be.es)
		}
		status, code := "ready", http.StatusOK
		if checks["postgres"] != "ok" {
			status, code = "not ready", http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]interface{}{"status": status, "checks": checks})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func check(ctx context.Context, p pinger) string {
	if err := p.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

