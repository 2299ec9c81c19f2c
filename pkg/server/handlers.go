package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"valley-oracle/pkg/jobs"
	"valley-oracle/pkg/mechanics"
	"valley-oracle/pkg/predict"
	"valley-oracle/pkg/search"
	"valley-oracle/pkg/version"
)

// errorResponse is the JSON error envelope shared by every endpoint.
type errorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var perr *search.ParseError
	if errors.As(err, &perr) {
		resp.Path = perr.Path
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// resolveVersion parses the optional wire version, defaulting to the
// configured one.
func (s *Server) resolveVersion(raw string) (version.Version, error) {
	if raw == "" {
		return s.cfg.DefaultVersion, nil
	}
	return version.Parse(raw)
}

type dayRequest struct {
	Seed    int32  `json:"seed"`
	Day     int    `json:"day"`
	Version string `json:"version,omitempty"`
}

func (s *Server) handlePredictDay(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if !s.decode(w, r, &req) {
		return
	}
	v, err := s.resolveVersion(req.Version)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Day < 1 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("day must be >= 1, have %d", req.Day))
		return
	}
	s.writeJSON(w, http.StatusOK, predict.Day(req.Seed, req.Day, v))
}

type rangeRequest struct {
	Seed    int32  `json:"seed"`
	DayLo   int    `json:"day_lo"`
	DayHi   int    `json:"day_hi"`
	Version string `json:"version,omitempty"`
}

func (s *Server) rangeArgs(w http.ResponseWriter, r *http.Request) (rangeRequest, version.Version, bool) {
	var req rangeRequest
	if !s.decode(w, r, &req) {
		return req, version.Version{}, false
	}
	v, err := s.resolveVersion(req.Version)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return req, v, false
	}
	if req.DayLo < 1 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("day_lo must be >= 1, have %d", req.DayLo))
		return req, v, false
	}
	return req, v, true
}

func (s *Server) handlePredictLuck(w http.ResponseWriter, r *http.Request) {
	req, _, ok := s.rangeArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, predict.LuckRange(req.Seed, req.DayLo, req.DayHi))
}

func (s *Server) handlePredictDish(w http.ResponseWriter, r *http.Request) {
	req, _, ok := s.rangeArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, predict.DishRange(req.Seed, req.DayLo, req.DayHi))
}

func (s *Server) handlePredictWeather(w http.ResponseWriter, r *http.Request) {
	req, v, ok := s.rangeArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, predict.WeatherRange(req.Seed, req.DayLo, req.DayHi, v))
}

func (s *Server) handlePredictNightEvents(w http.ResponseWriter, r *http.Request) {
	req, v, ok := s.rangeArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, predict.NightEventsRange(req.Seed, req.DayLo, req.DayHi, v))
}

func (s *Server) handlePredictCart(w http.ResponseWriter, r *http.Request) {
	req, v, ok := s.rangeArgs(w, r)
	if !ok {
		return
	}
	carts := predict.CartRange(req.Seed, req.DayLo, req.DayHi, v)
	if carts == nil {
		carts = []predict.DayCart{}
	}
	s.writeJSON(w, http.StatusOK, carts)
}

type geodeRequest struct {
	Seed      int32  `json:"seed"`
	Start     int    `json:"start"`
	Count     int    `json:"count"`
	GeodeType string `json:"geode_type"`
	Version   string `json:"version,omitempty"`
}

func (s *Server) handlePredictGeodes(w http.ResponseWriter, r *http.Request) {
	var req geodeRequest
	if !s.decode(w, r, &req) {
		return
	}
	v, err := s.resolveVersion(req.Version)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	results, err := predict.Geodes(req.Seed, req.Start, req.Count, mechanics.GeodeType(req.GeodeType), v)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

type floorRequest struct {
	Seed    int32  `json:"seed"`
	Day     int    `json:"day"`
	FloorLo int    `json:"floor_lo"`
	FloorHi int    `json:"floor_hi"`
	Version string `json:"version,omitempty"`
}

func (s *Server) floorArgs(w http.ResponseWriter, r *http.Request) (floorRequest, version.Version, bool) {
	var req floorRequest
	if !s.decode(w, r, &req) {
		return req, version.Version{}, false
	}
	v, err := s.resolveVersion(req.Version)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return req, v, false
	}
	if req.Day < 1 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("day must be >= 1, have %d", req.Day))
		return req, v, false
	}
	return req, v, true
}

func (s *Server) handleMineFloors(w http.ResponseWriter, r *http.Request) {
	req, v, ok := s.floorArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, predict.MineFloors(req.Seed, req.Day, req.FloorLo, req.FloorHi, v))
}

func (s *Server) handleMonsterFloors(w http.ResponseWriter, r *http.Request) {
	req, v, ok := s.floorArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, intsOrEmpty(predict.FindMonsterFloors(req.Seed, req.Day, req.FloorLo, req.FloorHi, v)))
}

func (s *Server) handleDarkFloors(w http.ResponseWriter, r *http.Request) {
	req, v, ok := s.floorArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, intsOrEmpty(predict.FindDarkFloors(req.Seed, req.Day, req.FloorLo, req.FloorHi, v)))
}

func (s *Server) handleMushroomFloors(w http.ResponseWriter, r *http.Request) {
	req, v, ok := s.floorArgs(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, intsOrEmpty(predict.FindMushroomFloors(req.Seed, req.Day, req.FloorLo, req.FloorHi, v)))
}

type findItemRequest struct {
	Seed    int32  `json:"seed"`
	ItemID  int32  `json:"item_id"`
	MaxDays int    `json:"max_days"`
	Version string `json:"version,omitempty"`
}

type findItemResponse struct {
	Found bool  `json:"found"`
	Day   int   `json:"day,omitempty"`
	Price int32 `json:"price,omitempty"`
}

func (s *Server) handleFindItemInCart(w http.ResponseWriter, r *http.Request) {
	var req findItemRequest
	if !s.decode(w, r, &req) {
		return
	}
	v, err := s.resolveVersion(req.Version)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	day, price, found := predict.FindItemInCart(req.Seed, req.ItemID, req.MaxDays, v)
	s.writeJSON(w, http.StatusOK, findItemResponse{Found: found, Day: day, Price: price})
}

// searchRequest is shared by the HTTP and WebSocket search endpoints.
type searchRequest struct {
	Filter     json.RawMessage `json:"filter"`
	SeedLo     int32           `json:"seed_lo"`
	SeedHi     int32           `json:"seed_hi"`
	MaxResults int             `json:"max_results,omitempty"`
	Version    string          `json:"version,omitempty"`
}

func (s *Server) buildJobRequest(req searchRequest) (jobs.Request, error) {
	v, err := s.resolveVersion(req.Version)
	if err != nil {
		return jobs.Request{}, err
	}
	if len(req.Filter) == 0 {
		return jobs.Request{}, fmt.Errorf("missing required field \"filter\"")
	}

	span := int64(req.SeedHi) - int64(req.SeedLo) + 1
	if span > s.cfg.SearchMaxSpan {
		return jobs.Request{}, fmt.Errorf("seed interval spans %d seeds, limit is %d", span, s.cfg.SearchMaxSpan)
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > s.cfg.SearchMaxResults {
		maxResults = s.cfg.SearchMaxResults
	}

	return jobs.Request{
		FilterJSON: req.Filter,
		SeedLo:     req.SeedLo,
		SeedHi:     req.SeedHi,
		MaxResults: maxResults,
		Version:    v,
		Workers:    s.cfg.SearchWorkers,
	}, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}
	jobReq, err := s.buildJobRequest(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	s.metrics.SearchStarted()
	summary, err := s.coordinator.Run(ctx, jobReq)
	if err != nil {
		s.metrics.SearchFinished(0, 0)
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.SearchFinished(summary.Checked, summary.Found)
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func intsOrEmpty(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
