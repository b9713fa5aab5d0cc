package handlers

import (
	"net/http"
	"strconv"

	"github.com/mauv0809/dna-dashboard/internal/players"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type pageQuery struct {
	Page     int `json:"page" validate:"gte=1"`
	PageSize int `json:"pageSize" validate:"gte=1"`
}

// parsePageQuery reads page and pageSize, which must be positive integers when present.
func parsePageQuery(r *http.Request) (pageQuery, string) {
	q := pageQuery{Page: defaultPage, PageSize: defaultPageSize}
	for name, dst := range map[string]*int{"page": &q.Page, "pageSize": &q.PageSize} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, name + " must be a positive integer"
		}
		*dst = n
	}
	if err := validate.Struct(q); err != nil {
		return q, validationMessage(err)
	}
	return q, ""
}

func ListPlayersHandler(store players.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, problem := parsePageQuery(r)
		if problem != "" {
			writeError(w, http.StatusBadRequest, "Invalid pagination parameters: "+problem)
			return
		}

		page, err := store.Paginate(r.Context(), q.Page, q.PageSize)
		if err != nil {
			writeUpstreamError(w, "fetching paginated data", err)
			return
		}
		writeJSON(w, http.StatusOK, Envelope{
			Success: true,
			Data:    page.Data,
			Pagination: &Pagination{
				Page:       page.Page,
				PageSize:   page.PageSize,
				TotalItems: page.TotalItems,
				TotalPages: page.TotalPages,
			},
		})
	}
}

func StatsHandler(store players.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := store.Stats(r.Context())
		if err != nil {
			writeUpstreamError(w, "calculating dashboard stats", err)
			return
		}
		writeData(w, stats)
	}
}

func HourlyStatsHandler(store players.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hourly, err := store.HourlyByDate(r.Context())
		if err != nil {
			writeUpstreamError(w, "fetching hourly stats by date", err)
			return
		}
		writeData(w, hourly)
	}
}
