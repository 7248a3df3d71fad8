package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jacobf001/iceland-db/controller"
	"github.com/jacobf001/iceland-db/db"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

func rootHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "iceland-db")
	}
}

func listCompetitionsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := strconv.Atoi(r.URL.Query().Get("season"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "season must be a year, e.g. ?season=2025"})
			return
		}

		comps, err := ctrl.ListCompetitions(r.Context(), season)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"season":       season,
			"competitions": comps,
		})
	}
}

func getCompetitionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		motnumer := chi.URLParam(r, "motnumer")
		comp, err := ctrl.GetCompetition(r.Context(), motnumer)
		if err != nil {
			if errors.Is(err, db.ErrCompetitionNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "competition not found"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		matches, err := ctrl.ListMatches(r.Context(), motnumer)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"competition": comp,
			"matches":     matches,
		})
	}
}

func getTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 32)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid team id"})
			return
		}

		team, err := ctrl.GetTeam(r.Context(), int32(id))
		if err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: "team not found"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		aliases, err := ctrl.ListTeamAliases(r.Context(), team.ID)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"team":    team,
			"aliases": aliases,
		})
	}
}

func getTeamByNameHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "name parameter is required"})
			return
		}

		team, err := ctrl.GetTeamByName(r.Context(), name)
		if err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				render.JSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no team named %q", name)})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		render.JSON(w, http.StatusOK, team)
	}
}

func ingestHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := strconv.Atoi(r.URL.Query().Get("season"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "season must be a year, e.g. ?season=2025"})
			return
		}

		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			limit, err = strconv.Atoi(l)
			if err != nil || limit < 0 {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative number"})
				return
			}
		}

		summary, err := ctrl.IngestSeason(r.Context(), season, limit)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		render.JSON(w, http.StatusOK, summary)
	}
}
