package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"courtmap/dashboard/pkg/dataset"
	"courtmap/dashboard/pkg/export"
	"courtmap/dashboard/pkg/teams"
	"courtmap/dashboard/pkg/telemetry/logging"
)

const (
	msgNoData       = "No data available"
	msgTeamNotFound = "Team not found"
	msgNoMatches    = "No teams match the current filters"
)

// refreshResponse is the body of a successful manual refresh or upload.
type refreshResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Timestamp  time.Time    `json:"timestamp"`
	TeamsCount int          `json:"teams_count"`
	Origin     teams.Origin `json:"origin,omitempty"`
}

// failureResponse is the body of a failed manual refresh or upload.
type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type shareResponse struct {
	Team string `json:"team"`
	URL  string `json:"url"`
}

// filterFromQuery reads country, league, sport and search parameters.
func filterFromQuery(q url.Values) teams.Filter {
	return teams.Filter{
		Country: q.Get("country"),
		League:  q.Get("league"),
		Sport:   q.Get("sport"),
		Search:  q.Get("search"),
	}
}

// teamParam returns the decoded {name} path parameter. chi matches against
// the escaped path when the request needed escaping beyond the default
// (an encoded comma, for instance).
func teamParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(name); err == nil {
			return decoded
		}
	}
	return name
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.deps.Catalog.EnsureFresh(r.Context())

	opts, err := s.deps.Catalog.Options()
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgNoData)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	s.deps.Catalog.EnsureFresh(r.Context())

	ds, err := s.deps.Catalog.Query(filterFromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgNoData)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	name := teamParam(r)
	r = withTeam(r, name)

	team, ok, err := s.deps.Catalog.Team(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgNoData)
		return
	}
	if !ok {
		s.logger.DebugContext(r.Context(), "team not found")
		writeError(w, http.StatusNotFound, msgTeamNotFound)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	name := teamParam(r)
	r = withTeam(r, name)

	_, ok, err := s.deps.Catalog.Team(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgNoData)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, msgTeamNotFound)
		return
	}
	link := s.shareBuilder(r).TeamURL(name)
	s.logger.DebugContext(r.Context(), "share link built", "url", link)
	writeJSON(w, http.StatusOK, shareResponse{Team: name, URL: link})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, s.config.Export.Filename, s.deps.Exports.ExportCSV)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSuffix(s.config.Export.Filename, path.Ext(s.config.Export.Filename))
	s.handleExport(w, r, base+".json", s.deps.Exports.ExportJSON)
}

type exportFunc func(ctx context.Context, ds dataset.Dataset, filename string, d export.FileDownloader) error

// handleExport sends the filtered teams as an attachment. The optional
// filename parameter is reduced to its base name.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, defaultName string, fn exportFunc) {
	s.deps.Catalog.EnsureFresh(r.Context())

	q := r.URL.Query()
	ds, err := s.deps.Catalog.Query(filterFromQuery(q))
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgNoData)
		return
	}

	filename := exportFilename(q.Get("filename"), defaultName)
	err = fn(r.Context(), ds, filename, export.NewResponseDownloader(w))
	switch {
	case err == nil:
	case errors.Is(err, dataset.ErrEmptyDataset):
		writeError(w, http.StatusUnprocessableEntity, msgNoMatches)
	case headerWritten(w):
		// Body partially sent; the export service has logged the failure.
	default:
		writeError(w, http.StatusInternalServerError, "Export failed")
	}
}

func exportFilename(requested, fallback string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(requested), `\`, "/"))
	if name == "" || name == "." || name == "/" {
		return fallback
	}
	return name
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Catalog.Refresh(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "manual data refresh failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, failureResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Success:    true,
		Message:    "Data refreshed successfully",
		Timestamp:  res.LoadedAt,
		TeamsCount: res.Teams,
		Origin:     res.Origin,
	})
}

// withTeam tags the request context with the team for log correlation.
func withTeam(r *http.Request, name string) *http.Request {
	return r.WithContext(logging.WithTeam(r.Context(), name))
}
