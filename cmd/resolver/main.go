package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"astrodominion.ai/internal/protocol"
)

// Stand-in combat resolver: subscribes with the RESOLVER role and answers
// every COMBAT and INVASION frame after a short think delay. A tactical
// client replaces this in real deployments; the turn engine only cares that
// COMBAT_DONE eventually arrives.
func main() {
	var (
		url   = flag.String("url", "ws://localhost:8080/v1/observe", "ws url")
		name  = flag.String("name", "auto-resolver", "client name")
		delay = flag.Duration("delay", 500*time.Millisecond, "base think time per encounter")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[resolver] ", log.LstdFlags|log.Lmicroseconds)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		Role:            "RESOLVER",
		ClientName:      *name,
	}
	if err := conn.WriteJSON(hello); err != nil {
		logger.Fatalf("send HELLO: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		select {
		case <-stop:
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if err := json.Unmarshal(msg, &w); err != nil {
				continue
			}
			logger.Printf("WELCOME session=%s game=%s turn=%d civs=%d",
				w.SessionID, w.GameID, w.TurnNumber, len(w.Civilizations))

		case protocol.TypeCombat:
			var c protocol.CombatMsg
			if err := json.Unmarshal(msg, &c); err != nil {
				continue
			}
			logger.Printf("COMBAT %s at (%d,%d) sides=%d", c.CombatID, c.Location[0], c.Location[1], len(c.Sides))
			resolve(conn, logger, c.CombatID, *delay, rng)

		case protocol.TypeInvasion:
			var inv protocol.InvasionMsg
			if err := json.Unmarshal(msg, &inv); err != nil {
				continue
			}
			logger.Printf("INVASION %s at (%d,%d) colony=%d", inv.InvasionID, inv.Location[0], inv.Location[1], inv.ColonyID)
			resolve(conn, logger, inv.InvasionID, *delay, rng)

		case protocol.TypeError:
			var e protocol.ErrorMsg
			if err := json.Unmarshal(msg, &e); err != nil {
				continue
			}
			logger.Printf("ERROR %s: %s", e.Code, e.Message)
		}
	}
}

func resolve(conn *websocket.Conn, logger *log.Logger, id string, delay time.Duration, rng *rand.Rand) {
	// Jitter the think time so turns don't resolve in lockstep.
	time.Sleep(delay + time.Duration(rng.Int63n(int64(delay)+1)))
	done := protocol.CombatDoneMsg{
		Type:            protocol.TypeCombatDone,
		ProtocolVersion: protocol.Version,
		CombatID:        id,
	}
	if err := conn.WriteJSON(done); err != nil {
		logger.Printf("send COMBAT_DONE: %v", err)
	}
}
