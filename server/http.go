// REST command surface over *sim.Engine: a bare *http.ServeMux is plenty
// for a handful of routes this thin, no router library needed.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	sim "github.com/elevator-sim/elevator-sim/sim"
)

// NewHTTPHandler builds the REST command surface over engine.
func NewHTTPHandler(engine *sim.Engine) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /snapshot", handleSnapshot(engine))
	mux.HandleFunc("GET /metrics", handleMetrics(engine))
	mux.HandleFunc("POST /start", handleStart(engine))
	mux.HandleFunc("POST /stop", handleStop(engine))
	mux.HandleFunc("POST /reset", handleReset(engine))
	mux.HandleFunc("POST /speed", handleSetSpeed(engine))
	mux.HandleFunc("POST /frequency", handleSetFrequency(engine))
	mux.HandleFunc("POST /reconfig", handleReconfig(engine))
	mux.HandleFunc("POST /requests", handleAddRequest(engine))
	mux.HandleFunc("POST /scenarios", handleSpawnScenario(engine))

	return mux
}

func handleSnapshot(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handleMetrics(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, engine.MetricsSnapshot())
	}
}

func handleStart(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Start(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handleStop(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Stop(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handleReset(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Reset(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

type speedRequest struct {
	Speed float64 `json:"speed"`
}

func handleSetSpeed(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body speedRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, sim.NewError(sim.KindInvalidInput, "malformed body: %v", err))
			return
		}
		if err := engine.SetSpeed(body.Speed); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}
}

type frequencyRequest struct {
	FreqPerMinute float64 `json:"freqPerMinute"`
}

func handleSetFrequency(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body frequencyRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, sim.NewError(sim.KindInvalidInput, "malformed body: %v", err))
			return
		}
		if err := engine.SetRequestFrequency(body.FreqPerMinute); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}
}

func handleReconfig(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cf sim.ConfigFile
		if err := json.NewDecoder(r.Body).Decode(&cf); err != nil {
			writeError(w, sim.NewError(sim.KindInvalidInput, "malformed body: %v", err))
			return
		}
		if err := engine.Reconfig(&cf); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

type addRequestBody struct {
	Type          sim.RequestType `json:"type"`
	Origin        int             `json:"origin"`
	Destination   int             `json:"destination"`
	ElevatorID    string          `json:"elevatorId"`
	IsMorningRush bool            `json:"isMorningRush"`
}

func handleAddRequest(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, sim.NewError(sim.KindInvalidInput, "malformed body: %v", err))
			return
		}
		result := engine.AddManualRequest(sim.ManualRequestInput{
			Type:          body.Type,
			Origin:        body.Origin,
			Destination:   body.Destination,
			ElevatorID:    body.ElevatorID,
			IsMorningRush: body.IsMorningRush,
		})
		status := http.StatusOK
		if !result.OK {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, result)
	}
}

type scenarioBody struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func handleSpawnScenario(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body scenarioBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, sim.NewError(sim.KindInvalidInput, "malformed body: %v", err))
			return
		}
		reqs, err := engine.SpawnScenario(body.Name, body.Count)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reqs)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("http: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if serr, ok := err.(*sim.Error); ok {
		switch serr.Kind {
		case sim.KindInvalidInput:
			status = http.StatusBadRequest
		case sim.KindFull, sim.KindState:
			status = http.StatusConflict
		case sim.KindNotFound:
			status = http.StatusNotFound
		}
	}
	writeJSON(w, status, map[string]string{"message": err.Error()})
}
