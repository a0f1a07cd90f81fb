package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	campaignservice "funnel/contexts/crm/campaign-service"
	leadservice "funnel/contexts/crm/lead-service"
	sessionapp "funnel/contexts/identity-access/session-service/application"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "funnel/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	sessionHeader string
	leads         leadservice.Module
	campaigns     campaignservice.Module
}

func New(
	leads leadservice.Module,
	campaigns campaignservice.Module,
	logger *slog.Logger,
	addr string,
	sessionHeader string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if sessionHeader == "" {
		sessionHeader = "Authorization"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		sessionHeader: sessionHeader,
		leads:         leads,
		campaigns:     campaigns,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/leads", s.withSession(s.handleListLeads))
	s.mux.HandleFunc("POST /api/leads", s.withSession(s.handleCreateLead))
	s.mux.HandleFunc("GET /api/leads/{lead_id}", s.withSession(s.handleGetLead))
	s.mux.HandleFunc("PATCH /api/leads/{lead_id}", s.withSession(s.handleUpdateLead))
	s.mux.HandleFunc("DELETE /api/leads/{lead_id}", s.withSession(s.handleDeleteLead))

	s.mux.HandleFunc("GET /api/campaigns", s.withSession(s.handleListCampaigns))
	s.mux.HandleFunc("POST /api/campaigns", s.withSession(s.handleCreateCampaign))
	s.mux.HandleFunc("GET /api/campaigns/{campaign_id}", s.withSession(s.handleGetCampaign))
	s.mux.HandleFunc("PATCH /api/campaigns/{campaign_id}", s.withSession(s.handleUpdateCampaign))
	s.mux.HandleFunc("DELETE /api/campaigns/{campaign_id}", s.withSession(s.handleDeleteCampaign))

	s.mux.HandleFunc("GET /api/campaigns/{campaign_id}/leads", s.withSession(s.handleListCampaignLeads))
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/leads", s.withSession(s.handleAddCampaignLead))
	s.mux.HandleFunc("PATCH /api/campaigns/{campaign_id}/leads/{membership_id}", s.withSession(s.handleUpdateCampaignLeadStatus))
	s.mux.HandleFunc("DELETE /api/campaigns/{campaign_id}/leads/{lead_id}", s.withSession(s.handleRemoveCampaignLead))
}

// withSession lifts the caller's bearer token into the request context. It
// never rejects here; identity gating happens inside the use cases so every
// operation applies the same rule.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r.Header.Get(s.sessionHeader)); token != "" {
			r = r.WithContext(sessionapp.WithSessionToken(r.Context(), token))
		}
		next(w, r)
	}
}

func bearerToken(header string) string {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return trimmed
}

// parsePagination reads page and page_size query parameters with dashboard
// defaults. A non-integer value reports false after writing the 400.
func parsePagination(w http.ResponseWriter, r *http.Request, writeError func(http.ResponseWriter, int, string, string)) (int, int, bool) {
	page := 1
	pageSize := 10

	query := r.URL.Query()
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return 0, 0, false
		}
		page = parsed
	}
	if raw := query.Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_page_size", "page_size must be an integer")
			return 0, 0, false
		}
		pageSize = parsed
	}
	return page, pageSize, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
