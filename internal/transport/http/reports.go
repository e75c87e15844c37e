package httptransport

import (
	"net/http"
	"time"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/report"
)

// reportParams reads the shared range/date query parameters. The date may
// be a full timestamp or a plain calendar date; it defaults to now.
func reportParams(r *http.Request) (report.RangeType, time.Time, error) {
	q := r.URL.Query()
	rangeType := report.ParseRange(q.Get("range"))

	raw := q.Get("date")
	if raw == "" {
		return rangeType, time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if date, err := time.Parse(layout, raw); err == nil {
			return rangeType, date, nil
		}
	}

	return rangeType, time.Time{}, apperrors.BadRequest("invalid date %q", raw)
}

func (h *HTTPTransport) reportSummary(w http.ResponseWriter, r *http.Request) {
	rangeType, date, err := reportParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.reports.Summary(r.Context(), rangeType, date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *HTTPTransport) reportTopSold(w http.ResponseWriter, r *http.Request) {
	rangeType, date, err := reportParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.reports.TopSold(r.Context(), rangeType, date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *HTTPTransport) reportChart(w http.ResponseWriter, r *http.Request) {
	rangeType, date, err := reportParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.reports.Chart(r.Context(), r.URL.Query().Get("metric"), rangeType, date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
