package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/treasurerun/hunt-api/internal/infrastructure/repository/memory"
	"github.com/treasurerun/hunt-api/internal/platform/cache"
	"github.com/treasurerun/hunt-api/internal/platform/id"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
	"github.com/treasurerun/hunt-api/internal/usecase"
)

type testServer struct {
	router http.Handler
}

func newTestServer(t *testing.T, adminToken string) *testServer {
	t.Helper()

	logger := logging.NewNop()
	teamRepo := memory.NewTeamRepository()
	routeRepo := memory.NewRouteRepository()
	progressRepo := memory.NewProgressRepository()
	catalog := memory.NewCheckpointRepository(memory.SeedCheckpoints())
	activityRepo := memory.NewActivityRepository()

	pool := usecase.NewCheckpointPool(catalog, cache.NewStore(5*time.Minute), "CLG")
	moderation := usecase.NewModerationService(routeRepo, progressRepo, logger)
	leaderboard := usecase.NewLeaderboardService(progressRepo, logger)
	activity := usecase.NewActivityService(activityRepo)

	handler := NewHandler(
		usecase.NewVerificationService(routeRepo, progressRepo, catalog, activityRepo, time.UTC, logger),
		usecase.NewProvisioningService(teamRepo, routeRepo, progressRepo, pool, id.NewRandomGenerator("TR"), "CLG", logger),
		leaderboard,
		moderation,
		activity,
		usecase.NewDashboardService(moderation, leaderboard, activity, logger),
		usecase.NewHealthService(catalog),
		logger,
	)

	return &testServer{
		router: NewRouter(handler, logger, []string{"*"}, adminToken),
	}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestPingAndHealth(t *testing.T) {
	server := newTestServer(t, "")

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := server.do(t, method, "/api/ping", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s /api/ping: status %d", method, rec.Code)
		}
		body := decodeBody[statusResponse](t, rec)
		if body.Status != "ok" {
			t.Fatalf("unexpected ping body: %+v", body)
		}
	}

	rec := server.do(t, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/health: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestProvisionAndScanFlow(t *testing.T) {
	server := newTestServer(t, "")

	rec := server.do(t, http.MethodPost, "/save-locations", `{"team":"Falcons","members":["Asha","Ben"]}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("save-locations: status %d body %s", rec.Code, rec.Body.String())
	}
	provisioned := decodeBody[saveLocationsResponse](t, rec)
	if provisioned.TeamID == "" || len(provisioned.Locations) != 7 {
		t.Fatalf("unexpected provisioning response: %+v", provisioned)
	}
	if provisioned.Locations[0] != "CLG" || provisioned.Locations[6] != "CLG" {
		t.Fatalf("route must start and end at the sentinel: %+v", provisioned.Locations)
	}

	// First scan at the gate locks custody and opens the route.
	rec = server.do(t, http.MethodPost, "/check",
		`{"qrData":"CLG","teamNumber":"Falcons","deviceId":"d1","memberName":"Asha"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start check: status %d body %s", rec.Code, rec.Body.String())
	}
	verdict := decodeBody[checkResponse](t, rec)
	if !verdict.Correct || verdict.NextHint == "" {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}

	// Wrong code is a 400 verdict, not an error.
	rec = server.do(t, http.MethodPost, "/check",
		`{"qrData":"ZZZZ","teamNumber":"Falcons","deviceId":"d1"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong code: status %d", rec.Code)
	}
	verdict = decodeBody[checkResponse](t, rec)
	if verdict.Correct || verdict.Message != "Wrong location" {
		t.Fatalf("unexpected wrong-code verdict: %+v", verdict)
	}

	// A second device is locked out.
	rec = server.do(t, http.MethodPost, "/check",
		`{"qrData":"`+provisioned.Locations[1]+`","teamNumber":"Falcons","deviceId":"d2"}`, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("second device: status %d body %s", rec.Code, rec.Body.String())
	}

	// Walk the route to the end on the locked device.
	for i := 1; i <= 5; i++ {
		rec = server.do(t, http.MethodPost, "/check",
			`{"qrData":"`+provisioned.Locations[i]+`","teamNumber":"Falcons","deviceId":"d1"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("scan %d: status %d body %s", i, rec.Code, rec.Body.String())
		}
	}
	verdict = decodeBody[checkResponse](t, rec)
	if verdict.NextHint != usecase.CompletionHint {
		t.Fatalf("expected completion hint, got %+v", verdict)
	}

	rec = server.do(t, http.MethodGet, "/api/leaderboard", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard: status %d", rec.Code)
	}
	board := decodeBody[leaderboardResponse](t, rec)
	if len(board.Leaderboard) != 1 || board.Leaderboard[0].Progress != 6 || board.Leaderboard[0].Status != usecase.StatusFinished {
		t.Fatalf("unexpected leaderboard: %+v", board.Leaderboard)
	}

	rec = server.do(t, http.MethodGet, "/api/registered", "", nil)
	entries := decodeBody[[]activityEntryResponse](t, rec)
	if len(entries) != 5 {
		t.Fatalf("expected 5 activity entries, got %+v", entries)
	}
}

func TestCheckValidation(t *testing.T) {
	server := newTestServer(t, "")

	rec := server.do(t, http.MethodPost, "/check", `{"teamNumber":"Falcons","deviceId":"d1"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing qrData: status %d", rec.Code)
	}

	rec = server.do(t, http.MethodPost, "/check", `{"qrData":"CLG","teamNumber":"Falcons"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing device: status %d", rec.Code)
	}

	rec = server.do(t, http.MethodPost, "/check", `{"qrData":"CLG","teamNumber":"Ghosts","deviceId":"d1"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown team: status %d", rec.Code)
	}

	rec = server.do(t, http.MethodPost, "/check", `{not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed payload: status %d", rec.Code)
	}
}

func TestRestrictTeamFlow(t *testing.T) {
	server := newTestServer(t, "")

	rec := server.do(t, http.MethodPost, "/save-locations", `{"team":"Falcons","members":["Asha"]}`, nil)
	provisioned := decodeBody[saveLocationsResponse](t, rec)

	rec = server.do(t, http.MethodPost, "/api/restrict-team",
		`{"teamId":"`+provisioned.TeamID+`","restricted":true}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("restrict: status %d body %s", rec.Code, rec.Body.String())
	}

	// Restricted teams cannot scan.
	rec = server.do(t, http.MethodPost, "/check",
		`{"qrData":"CLG","teamNumber":"Falcons","deviceId":"d1"}`, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("restricted scan: status %d", rec.Code)
	}

	// Restricted teams disappear from the leaderboard but stay in the
	// operator list.
	rec = server.do(t, http.MethodGet, "/api/leaderboard", "", nil)
	board := decodeBody[leaderboardResponse](t, rec)
	if len(board.Leaderboard) != 0 {
		t.Fatalf("restricted team leaked into leaderboard: %+v", board.Leaderboard)
	}

	rec = server.do(t, http.MethodGet, "/api/all-teams", "", nil)
	teams := decodeBody[allTeamsResponse](t, rec)
	if len(teams.Teams) != 1 || !teams.Teams[0].Restricted {
		t.Fatalf("unexpected operator team list: %+v", teams.Teams)
	}

	rec = server.do(t, http.MethodPost, "/api/restrict-team", `{"teamId":"Ghosts","restricted":true}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown team restrict: status %d", rec.Code)
	}
}

func TestTeamLocationsAndOverview(t *testing.T) {
	server := newTestServer(t, "")

	server.do(t, http.MethodPost, "/save-locations", `{"team":"Falcons","members":["Asha"]}`, nil)

	rec := server.do(t, http.MethodGet, "/api/team-locations/Falcons", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("team locations: status %d", rec.Code)
	}
	locations := decodeBody[teamLocationsResponse](t, rec)
	if len(locations.Locations) != 7 || locations.Locations["start"] != "CLG" {
		t.Fatalf("unexpected locations: %+v", locations.Locations)
	}

	rec = server.do(t, http.MethodGet, "/api/team-locations/Ghosts", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown team locations: status %d", rec.Code)
	}

	rec = server.do(t, http.MethodGet, "/api/overview", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("overview: status %d", rec.Code)
	}
	overview := decodeBody[overviewResponse](t, rec)
	if len(overview.Teams) != 1 || len(overview.Leaderboard) != 1 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}

func TestAdminTokenGuard(t *testing.T) {
	server := newTestServer(t, "sekrit")

	rec := server.do(t, http.MethodGet, "/api/all-teams", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status %d", rec.Code)
	}

	rec = server.do(t, http.MethodGet, "/api/all-teams", "", map[string]string{"X-Admin-Token": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: status %d", rec.Code)
	}

	rec = server.do(t, http.MethodGet, "/api/all-teams", "", map[string]string{"X-Admin-Token": "sekrit"})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status %d", rec.Code)
	}

	// The public surface stays open.
	rec = server.do(t, http.MethodGet, "/api/leaderboard", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard with admin token configured: status %d", rec.Code)
	}
}

func TestSaveLocationsValidation(t *testing.T) {
	server := newTestServer(t, "")

	rec := server.do(t, http.MethodPost, "/save-locations", `{"team":"","members":["Asha"]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty team: status %d", rec.Code)
	}
	body := decodeBody[errorBody](t, rec)
	if body.Error == "" {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}

	rec = server.do(t, http.MethodPost, "/save-locations", `{"team":"Falcons","members":[]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no members: status %d", rec.Code)
	}

	server.do(t, http.MethodPost, "/save-locations", `{"team":"Falcons","members":["Asha"]}`, nil)
	rec = server.do(t, http.MethodPost, "/save-locations", `{"team":"Falcons","members":["Ben"]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate team: status %d body %s", rec.Code, rec.Body.String())
	}
}
