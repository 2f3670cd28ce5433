package web

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"timetracker/internal/api"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
)

// trackPageData drives the timer page.
type trackPageData struct {
	Timer  timerData
	Offset int
}

// timerData drives the running/idle timer fragments.
type timerData struct {
	Session    *api.TimerSession
	WorkItems  []*domain.WorkItem
	SelectedID int64
	Error      string
}

// workItemsPageData drives the work item management page and form fragment.
type workItemsPageData struct {
	Items []*domain.WorkItem
	Name  string
	Error string
}

// entriesTableData drives the entry table fragment.
type entriesTableData struct {
	Rows       []*api.EntryWithItem
	Offset     int
	Date       time.Time
	WorkItemID *int64
}

// entryEditData drives the entry edit form fragment.
type entryEditData struct {
	Row       *api.EntryWithItem
	WorkItems []*domain.WorkItem
	Offset    int
}

// render executes a template into a buffer first so a failed render
// never leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, name, data); err != nil {
		s.logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError maps an application error to a plain HTTP error response.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.ShouldLogError(err) {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
	}
	http.Error(w, errors.GetUserMessage(err), errors.HTTPStatus(err))
}

// ========== Pages ==========

func (s *Server) handleTrackPage(w http.ResponseWriter, r *http.Request) {
	items, err := s.api.ListWorkItems(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	session, err := s.api.RunningEntry(r.Context())
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "page/track", trackPageData{
		Timer:  timerData{Session: session, WorkItems: items},
		Offset: 0,
	})
}

func (s *Server) handleWorkItemsPage(w http.ResponseWriter, r *http.Request) {
	items, err := s.api.ListWorkItems(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "page/work-items", workItemsPageData{Items: items})
}

// ========== Work Items ==========

func (s *Server) handleCreateWorkItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("name")

	if _, err := s.api.CreateWorkItem(r.Context(), name); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeValidation) {
			// Re-render the form naming the invalid field
			w.Header().Set("HX-Retarget", "#new-work-item")
			w.Header().Set("HX-Reswap", "outerHTML")
			s.render(w, http.StatusBadRequest, "fragment/work-items/form", workItemsPageData{
				Name:  name,
				Error: errors.GetUserMessage(err),
			})
			return
		}
		s.renderError(w, r, err)
		return
	}

	s.renderWorkItemsTable(w, r, http.StatusOK)
}

func (s *Server) handleRenameWorkItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid work item ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	if _, err := s.api.UpdateWorkItem(r.Context(), id, r.PostFormValue("name")); err != nil {
		s.renderError(w, r, err)
		return
	}

	s.renderWorkItemsTable(w, r, http.StatusOK)
}

func (s *Server) handleWorkItemsTable(w http.ResponseWriter, r *http.Request) {
	s.renderWorkItemsTable(w, r, http.StatusOK)
}

func (s *Server) renderWorkItemsTable(w http.ResponseWriter, r *http.Request, status int) {
	items, err := s.api.ListWorkItems(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, status, "fragment/work-items/table", workItemsPageData{Items: items})
}

// ========== Timer ==========

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	rawID := r.PostFormValue("work_item_id")
	if rawID == "" {
		s.renderIdleTimer(w, r, http.StatusBadRequest, 0, "select a work item first")
		return
	}

	workItemID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		s.renderIdleTimer(w, r, http.StatusBadRequest, 0, "invalid work item")
		return
	}

	session, err := s.api.StartTimer(r.Context(), workItemID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) || errors.IsErrorType(err, errors.ErrorTypeValidation) {
			s.renderIdleTimer(w, r, errors.HTTPStatus(err), workItemID, errors.GetUserMessage(err))
			return
		}
		s.renderError(w, r, err)
		return
	}

	s.metrics.timersStarted.Inc()
	s.render(w, http.StatusOK, "fragment/timer/running", timerData{Session: session})
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	_, err := s.api.StopTimer(r.Context())
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			s.renderIdleTimer(w, r, http.StatusNotFound, 0, "no timer is running")
			return
		}
		s.renderError(w, r, err)
		return
	}

	s.metrics.timersStopped.Inc()
	// Tells the page to refresh the entry table
	w.Header().Set("HX-Trigger", "newEntry")
	s.renderIdleTimer(w, r, http.StatusOK, 0, "")
}

func (s *Server) renderIdleTimer(w http.ResponseWriter, r *http.Request, status int, selectedID int64, errMsg string) {
	items, err := s.api.ListWorkItems(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, status, "fragment/timer/idle", timerData{
		WorkItems:  items,
		SelectedID: selectedID,
		Error:      errMsg,
	})
}

// ========== Time Entries ==========

func (s *Server) handleEntriesTable(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid offset", http.StatusBadRequest)
			return
		}
		offset = n
	}

	opts, day, err := entryListOptions(r.URL.Query().Get("work_item_id"), offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := s.api.ListEntriesWithItems(r.Context(), opts)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "fragment/entries/table", entriesTableData{
		Rows:       rows,
		Offset:     offset,
		Date:       day,
		WorkItemID: opts.WorkItemID,
	})
}

// entryListOptions builds the listing filter for a day offset back from
// today plus an optional work item.
func entryListOptions(rawItemID string, offset int) (api.ListEntriesOptions, time.Time, error) {
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
	dayEnd := day.AddDate(0, 0, 1)

	opts := api.ListEntriesOptions{
		StartedAfter:  &day,
		StartedBefore: &dayEnd,
	}

	if rawItemID != "" {
		id, err := strconv.ParseInt(rawItemID, 10, 64)
		if err != nil {
			return api.ListEntriesOptions{}, time.Time{}, fmt.Errorf("invalid work item ID")
		}
		opts.WorkItemID = &id
	}

	return opts, day, nil
}

func (s *Server) handleEntryEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	entry, err := s.api.GetTimeEntry(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	item, err := s.api.GetWorkItem(r.Context(), entry.WorkItemID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	items, err := s.api.ListWorkItems(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	s.render(w, http.StatusOK, "fragment/entries/edit", entryEditData{
		Row:       &api.EntryWithItem{Entry: entry, WorkItem: item},
		WorkItems: items,
		Offset:    offset,
	})
}

func (s *Server) handleEntryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	workItemID, err := strconv.ParseInt(r.PostFormValue("work_item_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid work item ID", http.StatusBadRequest)
		return
	}

	startTime, err := parseFormTime(r.PostFormValue("start_time"))
	if err != nil {
		http.Error(w, "invalid start time", http.StatusBadRequest)
		return
	}

	var endTime *time.Time
	if raw := r.PostFormValue("end_time"); raw != "" {
		t, err := parseFormTime(raw)
		if err != nil {
			http.Error(w, "invalid end time", http.StatusBadRequest)
			return
		}
		endTime = &t
	}

	if _, err := s.api.UpdateTimeEntry(r.Context(), id, workItemID, startTime, endTime); err != nil {
		s.renderError(w, r, err)
		return
	}

	offset, _ := strconv.Atoi(r.PostFormValue("offset"))
	http.Redirect(w, r, "/entries?"+url.Values{"offset": {strconv.Itoa(offset)}}.Encode(), http.StatusSeeOther)
}

func (s *Server) handleEntryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	if err := s.api.DeleteTimeEntry(r.Context(), id); err != nil {
		s.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parseFormTime accepts datetime-local values with or without seconds.
func parseFormTime(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}
