package web

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/knight-runner/internal/sim"
)

// Codec selects how state messages are encoded on the wire.
type Codec string

const (
	CodecJSON    Codec = "json"    // Text frames
	CodecMsgpack Codec = "msgpack" // Binary frames
)

// ParseCodec maps a query value to a codec. Anything unknown is JSON.
func ParseCodec(s string) Codec {
	if Codec(s) == CodecMsgpack {
		return CodecMsgpack
	}
	return CodecJSON
}

// encode marshals v and returns the websocket frame type to send it in.
func (c Codec) encode(v any) (int, []byte, error) {
	if c == CodecMsgpack {
		data, err := msgpack.Marshal(v)
		return websocket.BinaryMessage, data, err
	}
	data, err := json.Marshal(v)
	return websocket.TextMessage, data, err
}

// decodeClientMessage reads a client frame. Text frames are JSON and binary
// frames are msgpack, whatever codec the session sends with.
func decodeClientMessage(messageType int, data []byte) (clientMessage, error) {
	var msg clientMessage
	var err error
	switch messageType {
	case websocket.TextMessage:
		err = json.Unmarshal(data, &msg)
	case websocket.BinaryMessage:
		err = msgpack.Unmarshal(data, &msg)
	default:
		err = fmt.Errorf("unsupported frame type %d", messageType)
	}
	return msg, err
}

// Client message types.
const (
	msgJumpStart    = "jump_start"
	msgJumpRelease  = "jump_release"
	msgJump         = "jump" // Start and release in the same tick
	msgStart        = "start"
	msgNext         = "next"
	msgRestartLevel = "restart_level"
	msgRestartGame  = "restart_game"
	msgPause        = "pause"
)

type clientMessage struct {
	Type string `json:"type" msgpack:"type"`
}

type playerMessage struct {
	X           float64 `json:"x" msgpack:"x"`
	Y           float64 `json:"y" msgpack:"y"`
	Width       float64 `json:"w" msgpack:"w"`
	Height      float64 `json:"h" msgpack:"h"`
	VY          float64 `json:"vy" msgpack:"vy"`
	ChargePower float64 `json:"charge" msgpack:"charge"`
	Charging    bool    `json:"charging" msgpack:"charging"`
	OnGround    bool    `json:"onGround" msgpack:"onGround"`
}

type obstacleMessage struct {
	ID      uint64  `json:"id" msgpack:"id"`
	Kind    string  `json:"kind" msgpack:"kind"`
	Pattern string  `json:"pattern" msgpack:"pattern"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Width   float64 `json:"w" msgpack:"w"`
	Height  float64 `json:"h" msgpack:"h"`
}

type stateMessage struct {
	Type         string            `json:"type" msgpack:"type"`
	Tick         uint64            `json:"tick" msgpack:"tick"`
	Phase        string            `json:"phase" msgpack:"phase"`
	Paused       bool              `json:"paused" msgpack:"paused"`
	Level        int               `json:"level" msgpack:"level"`
	LevelName    string            `json:"levelName" msgpack:"levelName"`
	LevelCount   int               `json:"levelCount" msgpack:"levelCount"`
	Score        int               `json:"score" msgpack:"score"`
	TargetScore  int               `json:"targetScore" msgpack:"targetScore"`
	TotalScore   int               `json:"totalScore" msgpack:"totalScore"`
	Lives        int               `json:"lives" msgpack:"lives"`
	MaxLives     int               `json:"maxLives" msgpack:"maxLives"`
	Speed        float64           `json:"speed" msgpack:"speed"`
	GroundOffset float64           `json:"groundOffset" msgpack:"groundOffset"`
	Player       playerMessage     `json:"player" msgpack:"player"`
	Obstacles    []obstacleMessage `json:"obstacles" msgpack:"obstacles"`
	Events       []string          `json:"events,omitempty" msgpack:"events,omitempty"`
}

type errorMessage struct {
	Type  string `json:"type" msgpack:"type"`
	Error string `json:"error" msgpack:"error"`
}

func newStateMessage(snap sim.Snapshot, paused bool) stateMessage {
	msg := stateMessage{
		Type:         "state",
		Tick:         snap.Tick,
		Phase:        snap.Phase.String(),
		Paused:       paused,
		Level:        snap.Level,
		LevelName:    snap.LevelName,
		LevelCount:   snap.LevelCount,
		Score:        snap.Score,
		TargetScore:  snap.TargetScore,
		TotalScore:   snap.TotalScore,
		Lives:        snap.Lives,
		MaxLives:     snap.MaxLives,
		Speed:        snap.Speed,
		GroundOffset: snap.GroundOffset,
		Player: playerMessage{
			X:           snap.Player.X,
			Y:           snap.Player.Y,
			Width:       snap.Player.Width,
			Height:      snap.Player.Height,
			VY:          snap.Player.VY,
			ChargePower: snap.Player.ChargePower,
			Charging:    snap.Player.Charging,
			OnGround:    snap.Player.OnGround,
		},
		Obstacles: make([]obstacleMessage, len(snap.Obstacles)),
	}
	for i, o := range snap.Obstacles {
		msg.Obstacles[i] = obstacleMessage{
			ID:      o.ID,
			Kind:    o.Kind.String(),
			Pattern: o.Pattern.String(),
			X:       o.X,
			Y:       o.Y,
			Width:   o.Width,
			Height:  o.Height,
		}
	}
	for _, e := range snap.Events {
		msg.Events = append(msg.Events, e.Kind.String())
	}
	return msg
}
