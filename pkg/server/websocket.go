package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"valley-oracle/pkg/jobs"
)

// Streaming frame types sent to websocket search clients.
const (
	frameProgress = "progress"
	frameMatch    = "match"
	frameError    = "error"
	frameDone     = "done"
)

// searchFrame is one message on the search socket.
type searchFrame struct {
	Type    string        `json:"type"`
	Checked int64         `json:"checked,omitempty"`
	Found   int64         `json:"found,omitempty"`
	Seed    int32         `json:"seed,omitempty"`
	Error   string        `json:"error,omitempty"`
	Summary *jobs.Summary `json:"summary,omitempty"`
}

// progressInterval throttles progress frames; matches are never
// throttled.
const progressInterval = 200 * time.Millisecond

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || s.cfg.EnableDevMode {
				return true
			}
			for _, allowed := range s.cfg.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
}

// handleSearchSocket runs one search per connection: the client sends a
// single searchRequest, receives progress and match frames as the job
// runs, and a final done frame with the summary. Closing the socket
// cancels the job cooperatively at the next chunk boundary.
func (s *Server) handleSearchSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		s.metrics.WSClosed("upgrade_failed")
		return
	}
	defer conn.Close()

	var req searchRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.metrics.WSClosed("bad_request")
		return
	}
	jobReq, err := s.buildJobRequest(req)
	if err != nil {
		_ = conn.WriteJSON(searchFrame{Type: frameError, Error: err.Error()})
		s.metrics.WSClosed("bad_request")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Writers: the match/progress callbacks run on worker goroutines,
	// and gorilla connections allow one writer at a time.
	var writeMu sync.Mutex
	send := func(frame searchFrame) bool {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(frame); err != nil {
			cancel()
			return false
		}
		return true
	}

	// A reader goroutine notices the client going away and cancels.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	var lastProgress time.Time
	var progressMu sync.Mutex

	jobReq.OnProgress = func(checked, found int64) {
		progressMu.Lock()
		due := time.Since(lastProgress) >= progressInterval
		if due {
			lastProgress = time.Now()
		}
		progressMu.Unlock()
		if due {
			send(searchFrame{Type: frameProgress, Checked: checked, Found: found})
		}
	}
	jobReq.OnMatch = func(seed int32) {
		send(searchFrame{Type: frameMatch, Seed: seed})
	}

	s.metrics.SearchStarted()
	summary, err := s.coordinator.Run(ctx, jobReq)
	if err != nil {
		s.metrics.SearchFinished(0, 0)
		send(searchFrame{Type: frameError, Error: err.Error()})
		s.metrics.WSClosed("error")
		return
	}
	s.metrics.SearchFinished(summary.Checked, summary.Found)

	send(searchFrame{Type: frameDone, Checked: summary.Checked, Found: summary.Found, Summary: &summary})
	s.metrics.WSClosed(string(summary.State))

	s.logger.WithFields(logrus.Fields{
		"job_id": summary.JobID,
		"state":  summary.State,
	}).Debug("websocket search finished")
}
