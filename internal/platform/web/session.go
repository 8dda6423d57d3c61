package web

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/knight-runner/internal/games/knight"
	"github.com/vovakirdan/knight-runner/internal/sim"
)

const (
	writeWait      = 2 * time.Second
	maxMessageSize = 512
	commandBuffer  = 64
)

// session runs one simulation for one connection. The tick loop is the only
// goroutine that touches the simulation or writes to the socket; the read
// loop only forwards decoded client messages.
type session struct {
	conn     *websocket.Conn
	codec    Codec
	sim      *sim.Simulation
	pilot    *knight.Autopilot // Set in auto mode
	logger   *log.Logger
	interval time.Duration
	commands chan string

	pending sim.Intent
	paused  bool
	dirty   bool
	snap    sim.Snapshot
}

func newSession(conn *websocket.Conn, s *sim.Simulation, codec Codec, auto bool, tickRate int, logger *log.Logger) *session {
	sess := &session{
		conn:     conn,
		codec:    codec,
		sim:      s,
		logger:   logger,
		interval: time.Second / time.Duration(tickRate),
		commands: make(chan string, commandBuffer),
		dirty:    true,
	}
	if auto {
		sess.pilot = knight.NewAutopilot(s.Config().Physics)
		s.Start()
	}
	sess.snap = s.Snapshot()
	return sess
}

// run blocks until the client disconnects or ctx is cancelled.
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.readLoop(ctx, cancel)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.sendState(); err != nil {
		s.logger.Debug("initial state write failed", "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			s.close(websocket.CloseGoingAway, "server shutting down")
			return
		case cmd := <-s.commands:
			s.apply(cmd)
		case <-ticker.C:
			if err := s.tick(); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					s.logger.Debug("state write failed", "error", err)
				}
				return
			}
		}
	}
}

// readLoop decodes client frames until the connection fails.
func (s *session) readLoop(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	s.conn.SetReadLimit(maxMessageSize)

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", "error", err)
			}
			return
		}

		msg, err := decodeClientMessage(messageType, data)
		if err != nil || msg.Type == "" {
			s.logger.Warn("malformed message", "error", err, "size", len(data))
			continue
		}

		select {
		case s.commands <- msg.Type:
		case <-ctx.Done():
			return
		}
	}
}

// apply merges a client message into the next tick. Jump edges accumulate
// until the tick consumes them, so a start and release inside one tick
// becomes a tap.
func (s *session) apply(cmd string) {
	if s.pilot != nil && (cmd == msgJumpStart || cmd == msgJumpRelease || cmd == msgJump) {
		return
	}

	switch cmd {
	case msgJumpStart:
		s.pending.JumpStart = true
	case msgJumpRelease:
		s.pending.JumpRelease = true
	case msgJump:
		s.pending.JumpStart = true
		s.pending.JumpRelease = true
	case msgStart:
		s.sim.Start()
	case msgNext:
		s.sim.NextLevel()
	case msgRestartLevel:
		s.sim.RestartLevel()
	case msgRestartGame:
		s.sim.RestartGame()
	case msgPause:
		if s.sim.Phase() == sim.PhasePlaying {
			s.paused = !s.paused
		}
	default:
		s.logger.Warn("unknown message", "type", cmd)
		s.writeError("unknown message type " + cmd)
		return
	}
	s.dirty = true
}

// tick advances the simulation once and sends the state. Frozen phases only
// send when something changed.
func (s *session) tick() error {
	if s.paused || s.sim.Phase() != sim.PhasePlaying {
		s.pending = sim.Intent{}
		if s.pilot != nil {
			s.pilot.Reset()
		}
		if !s.dirty {
			return nil
		}
		s.snap = s.sim.Snapshot()
		return s.sendState()
	}

	in := s.pending
	if s.pilot != nil {
		in = s.pilot.Next(s.snap)
	}
	s.pending = sim.Intent{}

	prevLevel := s.snap.Level
	s.snap = s.sim.Advance(in)
	s.logTransitions(prevLevel)

	return s.sendState()
}

func (s *session) logTransitions(prevLevel int) {
	switch {
	case s.snap.Has(sim.EventGameOver):
		s.logger.Info("game over", "level", s.snap.Level+1, "total", s.snap.TotalScore)
	case s.snap.Has(sim.EventAllComplete):
		s.logger.Info("all levels complete", "total", s.snap.TotalScore)
	case s.snap.Has(sim.EventLevelComplete):
		s.logger.Info("level complete", "level", prevLevel+1, "total", s.snap.TotalScore)
	}
}

func (s *session) sendState() error {
	s.dirty = false
	return s.write(newStateMessage(s.snap, s.paused))
}

func (s *session) writeError(text string) {
	if err := s.write(errorMessage{Type: "error", Error: text}); err != nil {
		s.logger.Debug("error write failed", "error", err)
	}
}

func (s *session) write(v any) error {
	messageType, data, err := s.codec.encode(v)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

func (s *session) close(code int, text string) {
	message := websocket.FormatCloseMessage(code, text)
	s.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
}
