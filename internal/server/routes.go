package server

import (
	"aimtrainer/internal/config"
	"aimtrainer/internal/db"
	"aimtrainer/internal/game"
	"aimtrainer/internal/players"
	"aimtrainer/internal/sessions"
	"fmt"
	"log"
	"net/http"
	"text/template"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Run() error {
	appCfg := config.Load()

	gameCfg := game.DefaultConfig()
	gameCfg.Duration = appCfg.RoundDuration
	sessionStore := sessions.NewStore(gameCfg)
	playerStore := players.NewStore()

	tmpl := template.Must(template.New("").ParseFiles(
		"templates/home.html",
		"templates/train.html",
		"templates/results.html",
		"templates/analytics/dashboard.html",
		"templates/analytics/leaderboard.html",
		"templates/analytics/player.html",
	))

	srv := &Server{
		Sessions: sessionStore,
		Players:  playerStore,
		Tmpl:     tmpl,
	}

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			srv.ShotBuffer = make(chan db.ShotEvent, 1000)
			go shotBatchWriter(database, srv.ShotBuffer)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleHome)
	mux.HandleFunc("/train/start", srv.handleStartTraining)
	mux.HandleFunc("/train", srv.handleTrain)
	mux.HandleFunc("/train/ws", srv.handleWS)
	mux.HandleFunc("/train/events", srv.handleEvents)
	mux.HandleFunc("/train/quit", srv.handleQuit)
	mux.HandleFunc("/results/", srv.handleResults)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/analytics", srv.handleAnalyticsDashboard)
	mux.HandleFunc("/analytics/leaderboard", srv.handleAnalyticsLeaderboard)
	mux.HandleFunc("/analytics/player/", srv.handleAnalyticsPlayer)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, mux)
}

func shotBatchWriter(database *db.DB, buffer chan db.ShotEvent) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]db.ShotEvent, 0, 50)

	for {
		select {
		case ev := <-buffer:
			batch = append(batch, ev)
			if len(batch) >= 50 {
				if err := database.BatchRecordShots(batch); err != nil {
					log.Printf("[DB] BatchRecordShots error: %v\n", err)
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := database.BatchRecordShots(batch); err != nil {
					log.Printf("[DB] BatchRecordShots error: %v\n", err)
				}
				batch = batch[:0]
			}
		}
	}
}
