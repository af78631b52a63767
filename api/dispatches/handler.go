package dispatches

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kilianp07/dispatchrec/core/dispatch"
	"github.com/kilianp07/dispatchrec/core/logger"
	"github.com/kilianp07/dispatchrec/core/metrics"
	"github.com/kilianp07/dispatchrec/core/responsetime"
)

type createRequest struct {
	ID          *int   `json:"id"`
	Description string `json:"description"`
}

type updateRequest struct {
	Description string `json:"description"`
}

type sampleRequest struct {
	Value *float64 `json:"value"`
}

// AverageResponse is returned by the average endpoints. Count lets clients
// tell an empty sample set apart from a zero mean.
type AverageResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type handler struct {
	manager *dispatch.SyncManager
	sink    metrics.Sink
	log     logger.Logger

	trackerMu sync.Mutex
	tracker   *responsetime.Tracker
}

func newHandler(o Options) *handler {
	h := &handler{manager: o.Manager, sink: o.Metrics, log: o.Logger, tracker: o.Tracker}
	if h.manager == nil {
		h.manager = dispatch.NewSyncManager(dispatch.NewManager(o.Logger))
	}
	if h.tracker == nil {
		h.tracker = responsetime.NewTracker()
	}
	if h.sink == nil {
		h.sink = metrics.NopSink{}
	}
	if h.log == nil {
		h.log = logger.Nop{}
	}
	return h
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.List())
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == nil {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	rec, err := h.manager.Create(dispatch.ID(*req.ID), req.Description)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *handler) read(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, found := h.manager.Read(id)
	if !found {
		writeError(w, http.StatusNotFound, "dispatch "+strconv.Itoa(int(id))+" not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.manager.Update(id, req.Description)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.manager.Delete(id); err != nil {
		writeManagerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) addResponseTime(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, ok := sampleValue(w, r)
	if !ok {
		return
	}
	rec, err := h.manager.AddResponseTime(id, v)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) average(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, found := h.manager.Read(id)
	if !found {
		writeError(w, http.StatusNotFound, "dispatch "+strconv.Itoa(int(id))+" not found")
		return
	}
	writeJSON(w, http.StatusOK, AverageResponse{Average: rec.AverageResponseTime, Count: len(rec.ResponseTimes)})
}

func (h *handler) trackResponseTime(w http.ResponseWriter, r *http.Request) {
	v, ok := sampleValue(w, r)
	if !ok {
		return
	}
	h.trackerMu.Lock()
	h.tracker.AddResponseTime(v)
	resp := AverageResponse{Average: h.tracker.AverageResponseTime(), Count: h.tracker.Count()}
	h.trackerMu.Unlock()

	if err := h.sink.RecordResponseTime(metrics.ResponseTimeEvent{Scope: metrics.ScopeTracker, Value: v, Time: time.Now()}); err != nil {
		h.log.Warnf("record tracker response time: %v", err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) trackerAverage(w http.ResponseWriter, r *http.Request) {
	h.trackerMu.Lock()
	resp := AverageResponse{Average: h.tracker.AverageResponseTime(), Count: h.tracker.Count()}
	h.trackerMu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func pathID(w http.ResponseWriter, r *http.Request) (dispatch.ID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dispatch id "+strconv.Quote(raw))
		return 0, false
	}
	return dispatch.ID(id), true
}

func sampleValue(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var req sampleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return 0, false
	}
	return *req.Value, true
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}

func writeManagerError(w http.ResponseWriter, err error) {
	switch {
	case dispatch.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case dispatch.IsDuplicateKey(err):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSON encodes v before committing the status so an unencodable value
// turns into a 500 instead of an empty response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
