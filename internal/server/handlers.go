package server

import (
	"aimtrainer/internal/analytics"
	"aimtrainer/internal/config"
	"aimtrainer/internal/db"
	"aimtrainer/internal/game"
	"aimtrainer/internal/players"
	"aimtrainer/internal/sessions"
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

type Server struct {
	Sessions   *sessions.Store
	Players    *players.Store
	Tmpl       *template.Template
	DB         *db.DB            // nil if no database configured
	ShotBuffer chan db.ShotEvent // nil if no database configured
}

// getSession resolves the current session from the session_code cookie.
func (s *Server) getSession(r *http.Request) *sessions.Session {
	cookie, err := r.Cookie("session_code")
	if err != nil {
		return nil
	}
	return s.Sessions.Get(cookie.Value)
}

type homeData struct {
	Error      string
	PlayerName string
	Player     *players.Player
	Presets    []int
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if sess := s.getSession(r); sess != nil {
		http.Redirect(w, r, "/train", http.StatusSeeOther)
		return
	}

	data := homeData{Presets: config.DurationPresets}
	if nameCookie, err := r.Cookie("player_name"); err == nil {
		data.PlayerName = nameCookie.Value
	}
	if idCookie, err := r.Cookie("player_id"); err == nil {
		data.Player = s.Players.Get(idCookie.Value)
		if data.Player == nil && s.DB != nil {
			// Returning player after a restart: reseed the in-memory profile
			if rec, err := s.DB.GetPlayer(idCookie.Value); err == nil {
				data.Player = s.Players.Add(rec.ID, rec.Name)
			}
		}
	}

	if err := s.Tmpl.ExecuteTemplate(w, "home", data); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering home page", http.StatusInternalServerError)
	}
}

func (s *Server) handleStartTraining(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:StartTraining] Request Received")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = "Anonymous"
	}

	duration, err := strconv.Atoi(r.FormValue("duration"))
	if err != nil || !config.ValidDuration(duration) {
		duration = 0 // store default applies
	}

	playerID := ""
	if idCookie, err := r.Cookie("player_id"); err == nil {
		playerID = idCookie.Value
	}
	if playerID == "" {
		playerID = uuid.New().String()
	}

	player := s.Players.Add(playerID, name)
	if s.DB != nil {
		if err := s.DB.UpsertPlayer(playerID, name, player.Color); err != nil {
			log.Printf("[DB] UpsertPlayer error: %v\n", err)
		}
	}

	sess, err := s.Sessions.Create(playerID, duration)
	if err != nil {
		log.Println(err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "player_id",
		Value:    playerID,
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "player_name",
		Value:    name,
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "session_code",
		Value:    sess.Code,
		Path:     "/",
		HttpOnly: true,
	})

	fmt.Printf("[Handle:StartTraining] Created session %s\n", sess.Code)
	http.Redirect(w, r, "/train", http.StatusSeeOther)
}

type trainData struct {
	ShareCode  string
	Duration   int
	PlayerName string
	Presets    []int
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(r)
	if sess == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := trainData{
		ShareCode: sess.Code,
		Duration:  sess.Game.Duration(),
		Presets:   config.DurationPresets,
	}
	if nameCookie, err := r.Cookie("player_name"); err == nil {
		data.PlayerName = nameCookie.Value
	}

	if err := s.Tmpl.ExecuteTemplate(w, "train", data); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering training view", http.StatusInternalServerError)
	}
}

func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:Quit] Request Received")
	if cookie, err := r.Cookie("session_code"); err == nil {
		s.Sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:   "session_code",
		MaxAge: -1,
		Path:   "/",
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type resultsData struct {
	ShareCode string
	Stats     *analytics.SessionStats
	Badges    []analytics.Badge
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/results/"))
	if code == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := resultsData{ShareCode: code}

	if s.DB != nil {
		q := analytics.NewQueries(s.DB)
		stats, err := q.GetSessionStatsByShareCode(code)
		if err != nil {
			log.Printf("[Results] %v\n", err)
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		data.Stats = stats
		data.Badges = analytics.EvaluateSessionBadges(*stats)
	} else {
		sess := s.Sessions.Get(code)
		if sess == nil || sess.Game.State() != game.StateEnded {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		data.Stats = liveStats(sess)
		data.Badges = analytics.EvaluateSessionBadges(*data.Stats)
	}

	if err := s.Tmpl.ExecuteTemplate(w, "results", data); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering results", http.StatusInternalServerError)
	}
}

// liveStats builds a scorecard from the in-memory session when no database
// is configured. Reaction times are only tracked through the database.
func liveStats(sess *sessions.Session) *analytics.SessionStats {
	res := sess.Game.Result()
	stats := &analytics.SessionStats{
		ShareCode:  sess.Code,
		PlayerID:   sess.PlayerID,
		Duration:   res.Duration,
		Clicks:     res.Clicks,
		Hits:       res.Hits,
		Score:      res.Score,
		Accuracy:   res.Accuracy,
		CPS:        res.CPS,
		BestStreak: res.BestStreak,
	}
	return stats
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(r)
	if sess == nil {
		http.Error(w, "Session not found", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgChan := sess.Broadcaster.Subscribe()
	defer sess.Broadcaster.Unsubscribe(msgChan)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-msgChan:
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			for _, line := range strings.Split(msg.Msg, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s"}`, status)
}

// renderFragment executes a named template into a string for OOB swaps.
func (s *Server) renderFragment(name string, data any) string {
	var buf bytes.Buffer
	if err := s.Tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Println(err)
		return ""
	}
	return buf.String()
}
