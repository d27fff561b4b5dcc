package server

import (
	"aimtrainer/internal/analytics"
	"aimtrainer/internal/config"
	"aimtrainer/internal/db"
	"aimtrainer/internal/game"
	"aimtrainer/internal/geom"
	"aimtrainer/internal/metrics"
	"aimtrainer/internal/sessions"
	"aimtrainer/internal/targets"
	"aimtrainer/internal/wshub"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// handleWS is the input controller: the client reports pointer-lock
// transitions, mode selection and clicks with the camera's aim direction;
// the server answers with spawn/despawn/HUD deltas.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(r)
	if sess == nil {
		http.Error(w, "Session not found", http.StatusBadRequest)
		return
	}

	idCookie, err := r.Cookie("player_id")
	if err != nil || !s.Players.ValidateSession(idCookie.Value) {
		http.Error(w, "Not Registered", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	client := &wshub.Client{
		PlayerID: idCookie.Value,
		Conn:     conn,
		Send:     make(chan []byte, 64),
	}
	sess.Hub.Register(client)
	defer sess.Hub.Unregister(client.PlayerID)

	ctx := r.Context()
	go client.WritePump(ctx)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg wshub.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Unmarshal error: %v\n", err)
			continue
		}
		s.dispatch(sess, msg)
	}
}

func (s *Server) dispatch(sess *sessions.Session, msg wshub.ClientMessage) {
	switch msg.Type {
	case "lock":
		s.startRound(sess)
	case "unlock":
		// A mid-round unlock leaves the timer running; clicks simply stop
		// arriving until the pointer is locked again.
	case "mode":
		if config.ValidDuration(msg.Duration) {
			sess.Game.SetDuration(msg.Duration)
		}
	case "click":
		s.handleClick(sess, msg)
	default:
		log.Printf("[WS] Unknown message type %q\n", msg.Type)
	}
}

// startRound performs Idle/Ended -> Active. A lock while already active is
// a no-op (the pointer was re-acquired mid-round).
func (s *Server) startRound(sess *sessions.Session) {
	target := sess.Game.Start(time.Now())
	if target == nil {
		return
	}

	metrics.SessionsStarted.Inc()
	metrics.ActiveSessions.Inc()

	if s.DB != nil {
		recordID, err := s.DB.CreateSession(sess.Code, sess.PlayerID, sess.Game.Duration()*1000)
		if err != nil {
			log.Printf("[DB] CreateSession error: %v\n", err)
		} else {
			sess.SetRecordID(recordID)
		}
	}

	sess.Hub.Broadcast(wshub.ServerMessage{
		Type:   "spawn",
		Target: targetMessage(target),
	})

	go s.runRoundTimer(sess)
}

// runRoundTimer drives the repeating tick the session state machine
// consumes, and pushes the recomputed HUD after each tick.
func (s *Server) runRoundTimer(sess *sessions.Session) {
	ticker := time.NewTicker(game.TickInterval)
	defer ticker.Stop()

	for range ticker.C {
		expired := sess.Game.Tick(time.Now())

		hud := sess.Game.HUD()
		sess.Hub.Broadcast(wshub.ServerMessage{
			Type: "hud",
			HUD: &wshub.HUDMessage{
				TimeLeft: hud.TimeLeft,
				Score:    hud.Score,
				CPS:      hud.CPS,
				Accuracy: hud.Accuracy,
			},
		})

		if expired {
			s.finishRound(sess)
			return
		}
		if sess.Game.State() != game.StateActive {
			// Session was torn down externally
			return
		}
	}
}

func (s *Server) finishRound(sess *sessions.Session) {
	result := sess.Game.Result()

	metrics.SessionsCompleted.Inc()
	metrics.ActiveSessions.Dec()

	// The session releases the pointer lock, not the player
	sess.Hub.Broadcast(wshub.ServerMessage{Type: "unlock"})

	s.Players.RecordSession(sess.PlayerID, result.Score)

	if s.DB != nil {
		recordID := sess.RecordID()
		if recordID != "" {
			if err := s.DB.EndSession(recordID, result.Clicks, result.Hits, result.Score, result.Accuracy, result.CPS, result.BestStreak); err != nil {
				log.Printf("[DB] EndSession error: %v\n", err)
			}
			s.awardBadges(sess, recordID)
		}
	}

	resultsOOB := fmt.Sprintf(`<div id="scene" hx-swap-oob="innerHTML">%s</div>`,
		s.renderFragment("finalStats", finalStatsData(sess, result)))
	sess.Broadcaster.BroadcastOOB("swap", resultsOOB)
}

type finalStats struct {
	ShareCode  string
	Score      int
	Accuracy   int
	CPS        float64
	Clicks     int
	Hits       int
	BestStreak int
}

func finalStatsData(sess *sessions.Session, result game.Result) finalStats {
	return finalStats{
		ShareCode:  sess.Code,
		Score:      result.Score,
		Accuracy:   result.Accuracy,
		CPS:        result.CPS,
		Clicks:     result.Clicks,
		Hits:       result.Hits,
		BestStreak: result.BestStreak,
	}
}

func (s *Server) handleClick(sess *sessions.Session, msg wshub.ClientMessage) {
	dir := geom.Vec3{X: msg.Dir[0], Y: msg.Dir[1], Z: msg.Dir[2]}
	clickedAt := time.Now()

	res := sess.Game.Click(dir, clickedAt)
	if !res.Counted {
		return
	}

	metrics.Clicks.Inc()
	if res.Hit {
		metrics.Hits.Inc()
	}

	if res.Hit {
		sess.Hub.Broadcast(wshub.ServerMessage{Type: "despawn", RemoveID: res.HitTarget.ID})
		sess.Hub.Broadcast(wshub.ServerMessage{Type: "spawn", Target: targetMessage(res.Spawned)})
	}

	s.recordShot(sess, msg, res, clickedAt)
}

// recordShot queues the shot for the batch writer. Non-blocking: analytics
// never stalls gameplay.
func (s *Server) recordShot(sess *sessions.Session, msg wshub.ClientMessage, res game.ClickResult, clickedAt time.Time) {
	if s.ShotBuffer == nil {
		return
	}
	recordID := sess.RecordID()
	if recordID == "" {
		return
	}

	ev := db.ShotEvent{
		SessionID: recordID,
		PlayerID:  sess.PlayerID,
		Hit:       res.Hit,
		DirX:      msg.Dir[0],
		DirY:      msg.Dir[1],
		DirZ:      msg.Dir[2],
		FiredAt:   clickedAt,
	}
	if res.Hit {
		ev.TargetID = res.HitTarget.ID
		ev.TargetX = res.HitTarget.Pos.X
		ev.TargetY = res.HitTarget.Pos.Y
		ev.TargetZ = res.HitTarget.Pos.Z
		ev.TargetRadius = res.HitTarget.Radius
		ev.SpawnedAt = res.HitTarget.SpawnedAt
		ev.ReactionMs = int(clickedAt.Sub(res.HitTarget.SpawnedAt).Milliseconds())
	}

	select {
	case s.ShotBuffer <- ev:
	default:
		log.Println("[DB] Shot buffer full, dropping event")
	}
}

func (s *Server) awardBadges(sess *sessions.Session, recordID string) {
	q := analytics.NewQueries(s.DB)
	stats, err := q.GetSessionStats(recordID)
	if err != nil {
		log.Printf("[DB] GetSessionStats error: %v\n", err)
		return
	}

	for _, b := range analytics.EvaluateSessionBadges(*stats) {
		rID := recordID
		if err := s.DB.AwardBadge(sess.PlayerID, string(b.ID), &rID); err != nil {
			log.Printf("[DB] AwardBadge error: %v\n", err)
		}
	}

	lifeStats, err := q.GetPlayerLifetimeStats(sess.PlayerID)
	if err != nil {
		return
	}
	for _, b := range analytics.EvaluateLifetimeBadges(*lifeStats) {
		if err := s.DB.AwardBadge(sess.PlayerID, string(b.ID), nil); err != nil {
			log.Printf("[DB] AwardBadge error: %v\n", err)
		}
	}
}

func targetMessage(t *targets.Target) *wshub.TargetMessage {
	return &wshub.TargetMessage{
		ID:     t.ID,
		X:      t.Pos.X,
		Y:      t.Pos.Y,
		Z:      t.Pos.Z,
		Radius: t.Radius,
		Color:  t.Color,
	}
}
