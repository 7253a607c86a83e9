package observer

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"astrodominion.ai/internal/protocol"
	"astrodominion.ai/internal/sim/game"
)

const (
	RoleObserver = "OBSERVER"
	RoleResolver = "RESOLVER"
)

type client struct {
	id   string
	role string
	out  chan []byte
}

// Server pushes turn, phase and combat frames to subscribed websocket
// clients and feeds COMBAT_DONE frames from the external combat resolver
// back into the engine.
type Server struct {
	engine  *game.Engine
	log     *log.Logger
	welcome func() protocol.WelcomeMsg

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu       sync.Mutex
	clients  map[string]*client
	combatID string
	counter  int
}

func NewServer(e *game.Engine, welcome func() protocol.WelcomeMsg, logger *log.Logger) *Server {
	return &Server{
		engine:  e,
		log:     logger,
		welcome: welcome,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: make(map[string]*client),
	}
}

// Attach wires the engine's notification hooks to broadcast frames. Combat
// and invasion hooks block the turn until a resolver answers, so they are
// only wired when AutoResolve is false.
func (s *Server) Attach(autoResolve bool) {
	e := s.engine
	e.PhaseChanged = func(g *game.GameContext, phase game.TurnPhase) {
		s.broadcastPhase(g.TurnNumber, phase, "CHANGED")
	}
	e.PhaseFinished = func(g *game.GameContext, phase game.TurnPhase) {
		s.broadcastPhase(g.TurnNumber, phase, "FINISHED")
	}
	e.SendUpdates = func(g *game.GameContext) {
		s.broadcast(buildTurnMsg(g))
	}
	if autoResolve {
		e.CombatOccurring = func(g *game.GameContext, enc *game.CombatEncounter) {
			e.NotifyCombatFinished()
		}
		e.InvasionOccurring = func(g *game.GameContext, a *game.InvasionArena) {
			e.NotifyCombatFinished()
		}
		return
	}
	e.CombatOccurring = func(g *game.GameContext, enc *game.CombatEncounter) {
		id := s.nextCombatID(g.TurnNumber)
		if !s.broadcastToResolvers(buildCombatMsg(g, enc, id)) {
			// No resolver connected; resolve in place rather than hang the turn.
			s.log.Printf("combat %s: no resolver connected, auto-resolving", id)
			e.NotifyCombatFinished()
		}
	}
	e.InvasionOccurring = func(g *game.GameContext, a *game.InvasionArena) {
		id := s.nextCombatID(g.TurnNumber)
		if !s.broadcastToResolvers(buildInvasionMsg(g, a, id)) {
			s.log.Printf("invasion %s: no resolver connected, auto-resolving", id)
			e.NotifyCombatFinished()
		}
	}
}

func (s *Server) nextCombatID(turn int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	s.combatID = fmt.Sprintf("C-%d-%d", turn, s.counter)
	return s.combatID
}

func (s *Server) broadcastPhase(turn int, phase game.TurnPhase, state string) {
	s.broadcast(protocol.PhaseMsg{
		Type:            protocol.TypePhase,
		ProtocolVersion: protocol.Version,
		TurnNumber:      turn,
		Phase:           phase.String(),
		State:           state,
	})
}

func (s *Server) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		select {
		case c.out <- b:
		default:
			// Drop frames for slow clients; frames are advisory.
		}
	}
}

// broadcastToResolvers reports whether at least one resolver received the
// frame.
func (s *Server) broadcastToResolvers(v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delivered := false
	for _, c := range s.clients {
		if c.role != RoleResolver {
			continue
		}
		select {
		case c.out <- b:
			delivered = true
		default:
		}
	}
	return delivered
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Handshake: must send HELLO first.
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var hello protocol.HelloMsg
		if err := json.Unmarshal(msg, &hello); err != nil {
			closePolicy(conn, "bad hello")
			return
		}
		if hello.Type != protocol.TypeHello || hello.ProtocolVersion != protocol.Version {
			closePolicy(conn, "expected HELLO")
			return
		}
		role := hello.Role
		if role != RoleObserver && role != RoleResolver {
			closePolicy(conn, "unknown role")
			return
		}

		c := &client{
			id:   fmt.Sprintf("O%d", s.nextID.Add(1)),
			role: role,
			out:  make(chan []byte, 256),
		}

		s.mu.Lock()
		s.clients[c.id] = c
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.clients, c.id)
			s.mu.Unlock()
		}()

		// WELCOME is written before the writer starts, so it is always the
		// first frame the client sees.
		welcome := s.welcome()
		welcome.Type = protocol.TypeWelcome
		welcome.ProtocolVersion = protocol.Version
		welcome.SessionID = c.id
		wb, _ := json.Marshal(welcome)
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, wb); err != nil {
			return
		}

		// Writer goroutine.
		done := make(chan struct{})
		writeErr := make(chan error, 1)
		go func() {
			for {
				select {
				case <-done:
					writeErr <- nil
					return
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		// Reader loop: resolvers answer combat frames, observers just hold
		// the connection open.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeCombatDone {
				continue
			}
			if role != RoleResolver {
				s.sendError(c, protocol.ErrRoleDenied, "only resolvers may finish combat")
				continue
			}
			var doneMsg protocol.CombatDoneMsg
			if err := json.Unmarshal(msg, &doneMsg); err != nil {
				s.sendError(c, protocol.ErrProtoBadRequest, "bad COMBAT_DONE")
				continue
			}
			s.mu.Lock()
			expected := s.combatID
			s.combatID = ""
			s.mu.Unlock()
			if expected == "" || doneMsg.CombatID != expected {
				s.sendError(c, protocol.ErrNoCombat, "no combat awaiting resolution")
				continue
			}
			s.engine.NotifyCombatFinished()
		}

		close(done)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

		// Best-effort wait for the writer to stop so it doesn't outlive conn.
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (s *Server) sendError(c *client, code, msg string) {
	b, _ := json.Marshal(protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		Code:            code,
		Message:         msg,
	})
	select {
	case c.out <- b:
	default:
	}
}

func closePolicy(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		time.Now().Add(time.Second))
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
