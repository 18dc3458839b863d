package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/AdamBeresnev/courtbracket/internal/config"
	"github.com/AdamBeresnev/courtbracket/internal/httputil"
	"github.com/AdamBeresnev/courtbracket/internal/live"
	"github.com/AdamBeresnev/courtbracket/internal/service"
	"github.com/AdamBeresnev/courtbracket/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

type bracketLister interface {
	ListBrackets(ctx context.Context) ([]store.BracketSummary, error)
}

type application struct {
	cfg         *config.Config
	tournaments *service.TournamentService
	brackets    bracketLister
	hub         *live.Hub
}

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/brackets", func(r chi.Router) {
		r.Get("/", app.listBrackets)
		r.Post("/", app.createBracket)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.getBracket)
			r.Get("/rounds", app.getRounds)
			r.Get("/champion", app.getChampion)
			r.Get("/live", app.liveBracket)
			r.Post("/matches/{matchID}/result", app.recordResult)
			r.Post("/schedule", app.generateSchedule)
			r.Post("/pools/{poolID}/close", app.closePool)
			r.Put("/placeholders/{placeholderID}", app.bindPlaceholder)
		})
	})

	r.Route("/schedules/{id}", func(r chi.Router) {
		r.Get("/", app.getSchedule)
		r.Put("/matches/{matchID}", app.rescheduleMatch)
	})

	return r
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.BadRequest(w, "Invalid id", err)
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return false
	}
	return true
}

func (app *application) listBrackets(w http.ResponseWriter, r *http.Request) {
	if app.brackets == nil {
		httputil.WriteJSON(w, http.StatusOK, []store.BracketSummary{})
		return
	}
	summaries, err := app.brackets.ListBrackets(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list brackets", err)
		return
	}
	if summaries == nil {
		summaries = []store.BracketSummary{}
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

type createBracketRequest struct {
	Roster     []bracket.Team      `json:"roster"`
	RosterText string              `json:"roster_text"`
	Format     string              `json:"format"`
	Courts     int                 `json:"courts"`
	GameFormat *bracket.GameFormat `json:"game_format"`
}

func (app *application) createBracket(w http.ResponseWriter, r *http.Request) {
	var req createBracketRequest
	if !decode(w, r, &req) {
		return
	}

	format, err := bracket.ParseFormat(req.Format)
	if err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	roster := req.Roster
	if len(roster) == 0 && req.RosterText != "" {
		if roster, err = service.ParseRoster(req.RosterText); err != nil {
			httputil.Error(w, "Failed to parse roster", err)
			return
		}
	}

	gameFormat := app.cfg.GameFormat
	if req.GameFormat != nil {
		gameFormat = *req.GameFormat
	}

	b, err := app.tournaments.CreateBracket(r.Context(), service.CreateBracketInput{
		Roster:     roster,
		Format:     format,
		Courts:     req.Courts,
		GameFormat: gameFormat,
	})
	if err != nil {
		httputil.Error(w, "Failed to create bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, b)
}

func (app *application) getBracket(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b, err := app.tournaments.GetBracket(r.Context(), id)
	if err != nil {
		httputil.Error(w, "Failed to get bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

func (app *application) getRounds(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b, err := app.tournaments.GetBracket(r.Context(), id)
	if err != nil {
		httputil.Error(w, "Failed to get bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, service.PrepareBracketView(b))
}

func (app *application) getChampion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	champion, err := app.tournaments.GetChampion(r.Context(), id)
	if err != nil {
		httputil.Error(w, "Failed to get champion", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, champion)
}

type recordResultRequest struct {
	Scores []bracket.GameScore `json:"scores"`
}

func (app *application) recordResult(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req recordResultRequest
	if !decode(w, r, &req) {
		return
	}

	b, err := app.tournaments.RecordResult(r.Context(), id, chi.URLParam(r, "matchID"), req.Scores)
	if err != nil {
		httputil.Error(w, "Failed to record result", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

type scheduleResponse struct {
	Schedule *bracket.Schedule `json:"schedule"`
	Error    string            `json:"error,omitempty"`
}

// generateSchedule starts from the configured defaults; any field in the
// body overrides them.
func (app *application) generateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	cfg := app.cfg.Schedule
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	sched, err := app.tournaments.GenerateSchedule(r.Context(), id, cfg)
	switch {
	case errors.Is(err, bracket.ErrSchedulingInfeasible):
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, scheduleResponse{Schedule: sched, Error: err.Error()})
	case err != nil:
		httputil.Error(w, "Failed to generate schedule", err)
	default:
		httputil.WriteJSON(w, http.StatusOK, scheduleResponse{Schedule: sched})
	}
}

func (app *application) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	sched, err := app.tournaments.GetSchedule(r.Context(), id)
	if err != nil {
		httputil.Error(w, "Failed to get schedule", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sched)
}

type rescheduleRequest struct {
	CourtID string `json:"court_id"`
	Start   string `json:"start"`
}

func (app *application) rescheduleMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req rescheduleRequest
	if !decode(w, r, &req) {
		return
	}

	sched, err := app.tournaments.RescheduleMatch(r.Context(), id, chi.URLParam(r, "matchID"), req.CourtID, req.Start)
	if err != nil {
		httputil.Error(w, "Failed to reschedule match", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sched)
}

func (app *application) closePool(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	standings, err := app.tournaments.ClosePool(r.Context(), id, chi.URLParam(r, "poolID"))
	if err != nil {
		httputil.Error(w, "Failed to close pool", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, standings)
}

type bindPlaceholderRequest struct {
	TeamID string `json:"team_id"`
}

func (app *application) bindPlaceholder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req bindPlaceholderRequest
	if !decode(w, r, &req) {
		return
	}

	b, err := app.tournaments.BindPlayoffSlot(r.Context(), id, chi.URLParam(r, "placeholderID"), req.TeamID)
	if err != nil {
		httputil.Error(w, "Failed to bind playoff slot", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

func (app *application) liveBracket(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if _, err := app.tournaments.GetBracket(r.Context(), id); err != nil {
		httputil.Error(w, "Failed to open live feed", err)
		return
	}
	app.hub.ServeWS(w, r, id)
}
