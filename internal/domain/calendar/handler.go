package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/events", func(er chi.Router) {
		er.Get("/", listEventsHandler(svc))
		er.Get("/upcoming", upcomingEventsHandler(svc))
		er.Get("/{eventID}", getEventHandler(svc))
	})
}

// alertResponse es un evento próximo renderizado en la zona pedida.
type alertResponse struct {
	Record
	Line string `json:"line"`
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Lista eventos canónicos almacenados, ordenados por time_utc ascendente. Los eventos sin hora van al final.
// @Tags events
// @Produce json
// @Param provider query string false "Proveedor (forex_factory, investing_com, rss)"
// @Param country query string false "Lista CSV de países (coincidencia exacta)"
// @Param importance query string false "Lista CSV de importancias (low,medium,high)"
// @Param from query string false "time_utc mínimo (RFC3339)"
// @Param to query string false "time_utc máximo (RFC3339)"
// @Param limit query int false "Máximo de eventos (1-500). Por defecto 100"
// @Success 200 {array} Record
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 500 {string} string "internal error"
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ToRecords(items))
	}
}

// getEventHandler godoc
// @Summary Obtener evento
// @Description Devuelve un evento por su id de contenido (sha1).
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} Record
// @Failure 404 {string} string "event not found"
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
				http.Error(w, "event not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ToRecord(e))
	}
}

// upcomingEventsHandler godoc
// @Summary Próximos eventos
// @Description Eventos cuyo time_utc cae en [ahora, ahora+window]. La ventana es un entero con unidad h o m; otra unidad equivale a 24h.
// @Tags events
// @Produce json
// @Param window query string false "Ventana, ej: 24h, 90m. Por defecto 24h"
// @Param tz query string false "Zona IANA para time_local. Por defecto UTC"
// @Success 200 {array} alertResponse
// @Failure 400 {string} string "invalid tz"
// @Failure 500 {string} string "internal error"
// @Router /events/upcoming [get]
func upcomingEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		window := DefaultWindow
		if v := strings.TrimSpace(q.Get("window")); v != "" {
			window = ParseWindow(v)
		}

		loc := time.UTC
		if v := strings.TrimSpace(q.Get("tz")); v != "" {
			l, err := time.LoadLocation(v)
			if err != nil {
				http.Error(w, "invalid tz", http.StatusBadRequest)
				return
			}
			loc = l
		}

		items, err := svc.UpcomingStored(r.Context(), window)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]alertResponse, 0, len(items))
		for _, e := range items {
			rec := ToRecord(e)
			local := RenderLocal(e, loc)
			rec.TimeLocal = &local
			out = append(out, alertResponse{Record: rec, Line: FormatAlert(e, loc)})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	var f ListFilter
	f.Provider = strings.TrimSpace(q.Get("provider"))
	f.Countries = splitCSV(q.Get("country"))

	for _, v := range splitCSV(q.Get("importance")) {
		imp, ok := ParseImportance(v)
		if !ok {
			return ListFilter{}, errors.New("invalid importance")
		}
		f.Importances = append(f.Importances, imp)
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		f.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		f.To = &t
	}

	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxListLimit {
			return ListFilter{}, errors.New("limit must be between 1 and 500")
		}
		f.Limit = n
	}

	return f, nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
