// Push channel + inbound command dispatch over WebSocket (spec §6). Named
// directly rather than grounded on a pack example — no example repo in the
// retrieved pack runs a WebSocket server — gorilla/websocket is the
// de-facto standard library for this in idiomatic Go.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	sim "github.com/elevator-sim/elevator-sim/sim"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsCommand struct {
	Command string          `json:"command"`
	Params  json.RawMessage `json:"params"`
}

// HandleWS upgrades the connection, subscribes it to the engine's push
// channel, and dispatches inbound command frames against the same engine
// (spec §6: "Initial snapshot is sent on subscription"; "info"/"error"
// replies in response to commands).
func HandleWS(engine *sim.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.Warnf("ws: upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		sub := engine.Subscribe()
		defer engine.Unsubscribe(sub)

		replies := make(chan sim.PushMessage, 16)
		done := make(chan struct{})
		go readCommands(conn, engine, replies, done)

		for {
			select {
			case <-done:
				return
			case msg, ok := <-sub:
				if !ok {
					return
				}
				if err := conn.WriteJSON(msg); err != nil {
					logrus.Warnf("%s: ws write failed: %v", sim.KindTransport, err)
					return
				}
			case msg := <-replies:
				if err := conn.WriteJSON(msg); err != nil {
					logrus.Warnf("%s: ws write failed: %v", sim.KindTransport, err)
					return
				}
			}
		}
	}
}

func readCommands(conn *websocket.Conn, engine *sim.Engine, replies chan<- sim.PushMessage, done chan<- struct{}) {
	defer close(done)
	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		replies <- dispatch(engine, cmd)
	}
}

func dispatch(engine *sim.Engine, cmd wsCommand) sim.PushMessage {
	switch cmd.Command {
	case "start":
		if err := engine.Start(); err != nil {
			return errMsg(err)
		}
		return infoMsg("started")

	case "stop":
		if err := engine.Stop(); err != nil {
			return errMsg(err)
		}
		return infoMsg("stopped")

	case "reset":
		if err := engine.Reset(); err != nil {
			return errMsg(err)
		}
		return infoMsg("reset")

	case "setSpeed":
		var p speedRequest
		if err := json.Unmarshal(cmd.Params, &p); err != nil {
			return errMsg(sim.NewError(sim.KindInvalidInput, "malformed params: %v", err))
		}
		if err := engine.SetSpeed(p.Speed); err != nil {
			return errMsg(err)
		}
		return infoMsg("speed updated")

	case "setRequestFrequency":
		var p frequencyRequest
		if err := json.Unmarshal(cmd.Params, &p); err != nil {
			return errMsg(sim.NewError(sim.KindInvalidInput, "malformed params: %v", err))
		}
		if err := engine.SetRequestFrequency(p.FreqPerMinute); err != nil {
			return errMsg(err)
		}
		return infoMsg("frequency updated")

	case "addManualRequest":
		var p addRequestBody
		if err := json.Unmarshal(cmd.Params, &p); err != nil {
			return errMsg(sim.NewError(sim.KindInvalidInput, "malformed params: %v", err))
		}
		result := engine.AddManualRequest(sim.ManualRequestInput{
			Type:          p.Type,
			Origin:        p.Origin,
			Destination:   p.Destination,
			ElevatorID:    p.ElevatorID,
			IsMorningRush: p.IsMorningRush,
		})
		if !result.OK {
			return sim.PushMessage{Type: "error", Message: result.Message}
		}
		return sim.PushMessage{Type: "info", Data: result.Request, Message: result.Message}

	case "spawnScenario":
		var p scenarioBody
		if err := json.Unmarshal(cmd.Params, &p); err != nil {
			return errMsg(sim.NewError(sim.KindInvalidInput, "malformed params: %v", err))
		}
		reqs, err := engine.SpawnScenario(p.Name, p.Count)
		if err != nil {
			return errMsg(err)
		}
		return sim.PushMessage{Type: "info", Data: reqs, Message: "scenario spawned"}

	default:
		return errMsg(sim.NewError(sim.KindInvalidInput, "unknown command %q", cmd.Command))
	}
}

func infoMsg(message string) sim.PushMessage {
	return sim.PushMessage{Type: "info", Message: message}
}

func errMsg(err error) sim.PushMessage {
	return sim.PushMessage{Type: "error", Message: err.Error()}
}
