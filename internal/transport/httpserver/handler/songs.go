package handler

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	songsdomain "invite-app-go/internal/domain/songs"
	"invite-app-go/internal/metrics"
)

const (
	exportFilename   = "canciones_sugeridas.csv"
	exportTimeLayout = "2006-01-02 15:04"
)

type createSongRequest struct {
	Family string  `json:"family"`
	Song   string  `json:"song"`
	Artist *string `json:"artist"`
}

type songResponse struct {
	ID        int64     `json:"id"`
	Family    string    `json:"family"`
	Song      string    `json:"song"`
	Artist    *string   `json:"artist"`
	CreatedAt time.Time `json:"created_at"`
}

type createSongResponse struct {
	Song songResponse `json:"song"`
}

type songListResponse struct {
	Songs []songResponse `json:"songs"`
}

func (h *Handlers) CreateSong(w http.ResponseWriter, r *http.Request) {
	var req createSongRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Songs.AddSuggestion(r.Context(), req.Family, req.Song, req.Artist)
	if err != nil {
		switch {
		case errors.Is(err, songsdomain.ErrFamilyRequired):
			h.metrics.Suggestion(metrics.OutcomeInvalid)
			h.log.BusinessError("songs.create: invalid request", err)
			writeError(w, http.StatusBadRequest, "invalid_request", "family is required")
		case errors.Is(err, songsdomain.ErrSongRequired):
			h.metrics.Suggestion(metrics.OutcomeInvalid)
			h.log.BusinessError("songs.create: invalid request", err, "family", req.Family)
			writeError(w, http.StatusBadRequest, "invalid_request", "song is required")
		default:
			h.metrics.Suggestion(metrics.OutcomeFailed)
			h.metrics.StorageError("insert")
			h.log.InternalError("songs.create: add suggestion failed", err, "family", req.Family)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	h.metrics.Suggestion(metrics.OutcomeStored)
	h.log.Info("songs.create: suggestion stored", "id", result.ID, "family", result.Family)
	writeJSON(w, http.StatusCreated, createSongResponse{Song: toSongResponse(result)})
}

func (h *Handlers) ListSongs(w http.ResponseWriter, r *http.Request) {
	items, ok := h.listSuggestions(w, r, "songs.list")
	if !ok {
		return
	}

	response := make([]songResponse, 0, len(items))
	for i := range items {
		response = append(response, toSongResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, songListResponse{Songs: response})
}

// ExportSongs writes every suggestion as CSV, newest first, with times shown
// in the event's zone.
func (h *Handlers) ExportSongs(w http.ResponseWriter, r *http.Request) {
	items, ok := h.listSuggestions(w, r, "songs.export")
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)

	out := csv.NewWriter(w)
	_ = out.Write([]string{"id", "family", "song", "artist", "created_at"})
	for _, item := range items {
		artist := ""
		if item.Artist != nil {
			artist = *item.Artist
		}
		_ = out.Write([]string{
			strconv.FormatInt(item.ID, 10),
			item.Family,
			item.Song,
			artist,
			item.CreatedAt.In(h.location).Format(exportTimeLayout),
		})
	}
	out.Flush()
	if err := out.Error(); err != nil {
		h.log.InternalError("songs.export: write csv failed", err)
	}
}

func (h *Handlers) listSuggestions(w http.ResponseWriter, r *http.Request, operation string) ([]songsdomain.Suggestion, bool) {
	items, err := h.Songs.ListSuggestions(r.Context())
	if err != nil {
		h.metrics.StorageError("list")
		h.log.InternalError(operation+": list suggestions failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return nil, false
	}
	return items, true
}

func toSongResponse(item *songsdomain.Suggestion) songResponse {
	return songResponse{
		ID:        item.ID,
		Family:    item.Family,
		Song:      item.Song,
		Artist:    item.Artist,
		CreatedAt: item.CreatedAt.UTC(),
	}
}
