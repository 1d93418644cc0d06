package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/internal/session"
)

const (
	maxPageLimit     = 1000
	defaultListLimit = 50
	maxRequestBody   = 1 << 16
)

// ScanService runs and tracks scans. *session.Manager implements it.
type ScanService interface {
	Start(ctx context.Context, req session.Request) (session.Snapshot, error)
	Get(ctx context.Context, id string) (session.Snapshot, error)
	List(ctx context.Context, limit int) ([]session.Snapshot, error)
	Result(ctx context.Context, id string) (*scanner.CollectionResult, error)
	Head(ctx context.Context, endpoint string) (uint64, scanner.BlockRange, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	scans ScanService
	log   *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(scans ScanService, log *logger.Logger) *Handler {
	return &Handler{
		scans: scans,
		log:   log,
	}
}

// Health returns the health status of the API.
// @Summary Health check
// @Description Check that the API is serving requests
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// GetChainHead returns the current head and the default scan range.
// @Summary Get chain head
// @Description Query the node for its latest block and the default range ending there
// @Tags Chain
// @Produce json
// @Param endpoint query string false "Node WebSocket endpoint (defaults to the configured node)"
// @Success 200 {object} HeadResponse "Chain head and default range"
// @Failure 400 {object} ErrorResponse "Invalid endpoint"
// @Failure 502 {object} ErrorResponse "Node unreachable"
// @Router /chain/head [get]
func (h *Handler) GetChainHead(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Query().Get("endpoint")

	head, rng, err := h.scans.Head(r.Context(), endpoint)
	if err != nil {
		if errors.Is(err, session.ErrInvalidEndpoint) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.log.Warnw("failed to get chain head", "endpoint", endpoint, "error", err)
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, HeadResponse{
		Endpoint:          endpoint,
		Head:              head,
		DefaultStartBlock: rng.Start,
		DefaultEndBlock:   rng.End,
	})
}

// StartScan launches a scan of a block range.
// @Summary Start a scan
// @Description Collect every event in [start_block, end_block] in the background
// @Tags Scans
// @Accept json
// @Produce json
// @Param request body StartScanRequest true "Scan request"
// @Success 202 {object} session.Snapshot "Scan accepted"
// @Failure 400 {object} ErrorResponse "Invalid request or block range"
// @Failure 503 {object} ErrorResponse "Scanner is shutting down"
// @Router /scans [post]
func (h *Handler) StartScan(w http.ResponseWriter, r *http.Request) {
	var body StartScanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if body.StartBlock == nil || body.EndBlock == nil {
		respondError(w, http.StatusBadRequest, "start_block and end_block are required")
		return
	}

	snap, err := h.scans.Start(r.Context(), session.Request{
		Endpoint:   body.Endpoint,
		StartBlock: *body.StartBlock,
		EndBlock:   *body.EndBlock,
	})
	if err != nil {
		var rangeErr *scanner.RangeError

		switch {
		case errors.As(err, &rangeErr):
			n := scanner.NotifyError(err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:        http.StatusText(http.StatusBadRequest),
				Message:      err.Error(),
				Code:         http.StatusBadRequest,
				Notification: &n,
			})
		case errors.Is(err, session.ErrInvalidEndpoint):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Errorw("failed to start scan", "error", err)
			respondError(w, http.StatusServiceUnavailable, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusAccepted, snap)
}

// ListScans returns recent scans.
// @Summary List scans
// @Description List scans of this process and the archive, newest first
// @Tags Scans
// @Produce json
// @Param limit query int false "Maximum number of scans to return" default(50)
// @Success 200 {object} ScanListResponse "Scans"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /scans [get]
func (h *Handler) ListScans(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > maxPageLimit {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: must be between 1 and %d", maxPageLimit))
			return
		}
		limit = l
	}

	snaps, err := h.scans.List(r.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to list scans", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list scans")
		return
	}

	respondJSON(w, http.StatusOK, ScanListResponse{Scans: snaps, Count: len(snaps)})
}

// GetScan returns the state of one scan.
// @Summary Get a scan
// @Description Get the status, progress and notifications of a scan
// @Tags Scans
// @Produce json
// @Param id path string true "Scan ID"
// @Success 200 {object} session.Snapshot "Scan state"
// @Failure 404 {object} ErrorResponse "Scan not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /scans/{id} [get]
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	snap, err := h.scans.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondScanError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// GetEvents returns a filtered page of a completed scan's events.
// @Summary Get scan events
// @Description Retrieve the events of a completed scan with optional filtering, pagination and sorting
// @Tags Events
// @Produce json
// @Param id path string true "Scan ID"
// @Param name query []string false "Keep events whose name starts with any value" collectionFormat(csv)
// @Param module query []string false "Keep events whose module starts with any value" collectionFormat(csv)
// @Param argument query []string false "Keep events with an argument of any of the types" collectionFormat(csv)
// @Param sort_order query string false "Sort by block number" Enums(asc, desc) default(desc)
// @Param limit query int false "Maximum number of events to return" default(10)
// @Param offset query int false "Number of events to skip" default(0)
// @Success 200 {object} EventResponse "Events with pagination info"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Scan not found"
// @Failure 409 {object} ErrorResponse "Scan still running or failed"
// @Router /scans/{id}/events [get]
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	query, err := parseEventQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err))
		return
	}

	result, err := h.scans.Result(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondScanError(w, err)
		return
	}

	events, total := result.Query(query)

	respondJSON(w, http.StatusOK, EventResponse{
		Events: events,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   query.Limit,
			Offset:  query.Offset,
			HasMore: query.Offset+len(events) < total,
		},
	})
}

// GetFilters returns the facet filters of a completed scan.
// @Summary Get scan filters
// @Description List the distinct event names, modules and argument types of a completed scan
// @Tags Events
// @Produce json
// @Param id path string true "Scan ID"
// @Success 200 {object} FiltersResponse "Facet filters"
// @Failure 404 {object} ErrorResponse "Scan not found"
// @Failure 409 {object} ErrorResponse "Scan still running or failed"
// @Router /scans/{id}/filters [get]
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	result, err := h.scans.Result(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondScanError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, FiltersResponse{
		Names:     result.NameFilters,
		Modules:   result.ModuleFilters,
		Arguments: result.ArgumentFilters,
	})
}

func (h *Handler) respondScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrScanRunning), errors.Is(err, session.ErrNoResult):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.log.Errorw("failed to load scan", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load scan")
	}
}

// parseEventQuery parses HTTP query parameters into an EventQuery.
// Filter parameters may repeat or hold comma separated values.
func parseEventQuery(r *http.Request) (*scanner.EventQuery, error) {
	values := r.URL.Query()
	query := scanner.NewDefaultEventQuery()

	query.Names = listParam(values["name"])
	query.Modules = listParam(values["module"])
	query.ArgumentTypes = listParam(values["argument"])

	if limitStr := values.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxPageLimit {
			return nil, fmt.Errorf("invalid limit: must be between 1 and %d", maxPageLimit)
		}
		query.Limit = limit
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid offset: must be non-negative")
		}
		query.Offset = offset
	}

	if sortOrder := values.Get("sort_order"); sortOrder != "" {
		query.SortOrder = strings.ToLower(sortOrder)
	}

	if err := query.Validate(); err != nil {
		return nil, err
	}

	return query, nil
}

func listParam(raw []string) []string {
	var out []string
	for _, v := range raw {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// respondJSON sends a JSON response. Encoding happens before the status is written.
func respondJSON(w http.ResponseWriter, status int, data any) {
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
