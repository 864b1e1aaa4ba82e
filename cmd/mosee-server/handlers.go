package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/filters"
	"github.com/Patrickdoranlearning/MOSEE/internal/interfaces"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// buildMux creates the HTTP mux with the REST endpoints.
func buildMux(service interfaces.AnalysisService, config *common.Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", healthHandler)
	mux.HandleFunc("/api/analyze", analyzeHandler(service))
	mux.HandleFunc("/api/screen", screenHandler(service, config))
	mux.HandleFunc("/api/history", historyHandler(service))
	return mux
}

// healthHandler responds to GET/HEAD /api/health with {"status":"ok"}.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeHandler serves GET /api/analyze?ticker=ACME.
func analyzeHandler(service interfaces.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
		if ticker == "" {
			writeError(w, http.StatusBadRequest, "ticker is required")
			return
		}
		report, err := service.Analyze(r.Context(), ticker)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// screenHandler serves GET /api/screen?tickers=A,B&style=garp&preset=us_only.
func screenHandler(service interfaces.AnalysisService, config *common.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()

		var tickers []string
		for _, t := range strings.Split(q.Get("tickers"), ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				tickers = append(tickers, t)
			}
		}
		if len(tickers) == 0 {
			tickers = config.Tickers
		}

		opts := interfaces.ScreenOptions{
			Style:  models.InvestmentStyle(q.Get("style")),
			SortBy: q.Get("sort"),
		}
		if preset := q.Get("preset"); preset != "" {
			filter := filters.Preset(preset)
			if filter == nil {
				writeError(w, http.StatusBadRequest, "unknown filter preset: "+preset)
				return
			}
			opts.Filter = filter
		}

		profiles, err := service.Screen(r.Context(), tickers, opts)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"count":    len(profiles),
			"profiles": profiles,
		})
	}
}

// historyHandler serves GET /api/history?ticker=ACME&months=12 plus the
// month-over-month delta when available.
func historyHandler(service interfaces.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
		if ticker == "" {
			writeError(w, http.StatusBadRequest, "ticker is required")
			return
		}
		months := 12
		if v := r.URL.Query().Get("months"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				months = n
			}
		}

		snapshots, err := service.History(r.Context(), ticker, months)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// comparison is best effort; a missing current snapshot is not an error
		delta, _ := service.MonthOverMonth(r.Context(), ticker)

		writeJSON(w, http.StatusOK, map[string]any{
			"ticker":           ticker,
			"snapshots":        snapshots,
			"month_over_month": delta,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
