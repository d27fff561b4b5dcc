package server

import (
	"aimtrainer/internal/game"
	"aimtrainer/internal/players"
	"aimtrainer/internal/sessions"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"text/template"
	"time"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Duration = 10
	sessionStore := sessions.NewStore(cfg)

	tmpl := template.Must(template.New("").ParseFiles(
		"../../templates/home.html",
		"../../templates/train.html",
		"../../templates/results.html",
		"../../templates/analytics/dashboard.html",
		"../../templates/analytics/leaderboard.html",
		"../../templates/analytics/player.html",
	))

	srv := &Server{
		Sessions: sessionStore,
		Players:  players.NewStore(),
		Tmpl:     tmpl,
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
	mux.HandleFunc("/analytics", srv.handleAnalyticsDashboard)
	mux.HandleFunc("/analytics/leaderboard", srv.handleAnalyticsLeaderboard)
	mux.HandleFunc("/analytics/player/", srv.handleAnalyticsPlayer)

	ts := httptest.NewServer(mux)
	return srv, ts
}

func newClientWithJar(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// startTraining creates a session via the API and returns the share code
// from the cookie.
func startTraining(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	resp, err := client.PostForm(baseURL+"/train/start", url.Values{
		"name":     {"Alice"},
		"duration": {"10"},
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	u, _ := url.Parse(baseURL)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "session_code" {
			return c.Value
		}
	}
	t.Fatal("session_code cookie not set after start")
	return ""
}

func TestHandleHome(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestHandleStartTraining(t *testing.T) {
	srv, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)

	if len(code) != 6 {
		t.Errorf("session code length = %d, want 6", len(code))
	}

	sess := srv.Sessions.Get(code)
	if sess == nil {
		t.Fatal("session should exist in store")
	}
	if sess.Game.Duration() != 10 {
		t.Errorf("duration = %d, want 10", sess.Game.Duration())
	}
	if sess.Game.State() != game.StateIdle {
		t.Errorf("state = %q, want %q (session starts on pointer lock, not create)", sess.Game.State(), game.StateIdle)
	}
}

func TestHandleStartTraining_RegistersPlayer(t *testing.T) {
	srv, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)

	sess := srv.Sessions.Get(code)
	p := srv.Players.Get(sess.PlayerID)
	if p == nil || p.Name != "Alice" {
		t.Errorf("player = %+v, want registered Alice", p)
	}
}

func TestHandleHome_RedirectsToActiveSession(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	startTraining(t, client, ts.URL)

	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/train" {
		t.Errorf("Location = %q, want /train", loc)
	}
}

func TestHandleTrain_WithoutSession(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	resp, err := client.Get(ts.URL + "/train")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want redirect %d", resp.StatusCode, http.StatusSeeOther)
	}
}

func TestHandleTrain_WithSession(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)

	resp, err := client.Get(ts.URL + "/train")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), code) {
		t.Error("training view should include the share code")
	}
}

func TestHandleQuit(t *testing.T) {
	srv, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)

	resp, err := client.PostForm(ts.URL+"/train/quit", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if srv.Sessions.Get(code) != nil {
		t.Error("session should be deleted after quit")
	}
}

func TestHandleResults_NotFound(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/results/ZZZZZZ")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestHandleResults_EndedSession(t *testing.T) {
	srv, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)

	// Run a round to completion directly
	sess := srv.Sessions.Get(code)
	start := time.Now()
	sess.Game.Start(start)
	sess.Game.Tick(start.Add(11 * time.Second))

	resp, err := http.Get(ts.URL + "/results/" + code)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestHandleResults_ActiveSessionHidden(t *testing.T) {
	srv, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)

	sess := srv.Sessions.Get(code)
	sess.Game.Start(time.Now())

	resp, err := http.Get(ts.URL + "/results/" + code)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d (no results while active)", resp.StatusCode, http.StatusNotFound)
	}
}

func TestHandleHealth(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("body = %s, want ok status", body)
	}
}

func TestHandleWS_WithoutSession(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/train/ws")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleWS_UnregisteredPlayer(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)

	// Valid session cookie, but a player_id the store has never seen
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/train/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: "session_code", Value: code})
	req.AddCookie(&http.Cookie{Name: "player_id", Value: "00000000-0000-0000-0000-000000000000"})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleAnalyticsDashboard_NoDatabase(t *testing.T) {
	srv, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)
	sess := srv.Sessions.Get(code)
	srv.Players.RecordSession(sess.PlayerID, 300)

	resp, err := client.Get(ts.URL + "/analytics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Alice") {
		t.Error("dashboard should list the player with a recorded session")
	}
}

func TestHandleAnalyticsLeaderboard_FullPageAndFragment(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	// Direct visit renders the full page
	resp, err := http.Get(ts.URL + "/analytics/leaderboard")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<html") {
		t.Error("direct visit should render a full page")
	}

	// htmx tab switch gets the bare entries
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/analytics/leaderboard", nil)
	req.Header.Set("HX-Request", "true")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(body), "<html") {
		t.Error("htmx request should render only the entries fragment")
	}
}

func TestHandleAnalyticsPlayer_NoDatabase(t *testing.T) {
	srv, ts := newTestServer(t)
	defer ts.Close()

	client := newClientWithJar(t)
	code := startTraining(t, client, ts.URL)
	sess := srv.Sessions.Get(code)

	resp, err := http.Get(ts.URL + "/analytics/player/" + sess.PlayerID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Alice") {
		t.Error("player page should show the player's stats")
	}
}

func TestHandleAnalyticsPlayer_Unknown(t *testing.T) {
	_, ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/analytics/player/nobody")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
