package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gmmode/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gmmode/internal/platform/id"
	"github.com/riskibarqy/gmmode/internal/platform/logging"
	"github.com/riskibarqy/gmmode/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	franchise := usecase.NewFranchise(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewLineupRepository(),
		id.NewSequenceGenerator("player"),
		nil,
		logger,
	)
	return NewRouter(NewHandler(franchise, logger), logger, []string{"*"})
}

type testEnvelope struct {
	APIVersion string                 `json:"apiVersion"`
	Data       sonic.NoCopyRawMessage `json:"data"`
	Error      *googleErrorBody       `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func decodeData(t *testing.T, env testEnvelope, out any) {
	t.Helper()
	if err := sonic.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("unmarshal data %q: %v", string(env.Data), err)
	}
}

func TestHandler_Healthz(t *testing.T) {
	rec, env := doRequest(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || env.Error != nil {
		t.Fatalf("unexpected healthz response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_CreatePlayer_ClampsFields(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/v1/players",
		`{"first_name":" Jon ","last_name":"Doe","number":150,"position":"XX","overall":"30","salary":"0.1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got playerDTO
	decodeData(t, env, &got)
	want := playerDTO{
		ID:           "player-1",
		FirstName:    "Jon",
		LastName:     "Doe",
		FullName:     "Jon Doe",
		Number:       99,
		Position:     "C",
		Overall:      50,
		ContractTerm: 1,
		Salary:       0.825,
		Lineup:       "unassigned",
	}
	if got != want {
		t.Fatalf("unexpected player:\n got %+v\nwant %+v", got, want)
	}
}

func TestHandler_CreatePlayer_Rejects(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantReason string
	}{
		{name: "missing last name", body: `{"first_name":"Jon","last_name":"  "}`, wantReason: "nameRequired"},
		{name: "unknown field", body: `{"first_name":"Jon","last_name":"Doe","team":"nhl"}`, wantReason: "invalidInput"},
		{name: "malformed json", body: `{"first_name":`, wantReason: "invalidInput"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := doRequest(t, router, http.MethodPost, "/v1/players", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if env.Error == nil || len(env.Error.Errors) != 1 || env.Error.Errors[0].Reason != tc.wantReason {
				t.Fatalf("unexpected error body: %s", rec.Body.String())
			}
		})
	}
}

func TestHandler_AssignViewAndUnassign(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPut, "/v1/lineups/nhl/slots",
		`{"player_id":"demo-c-01","section":"forwards","line":"line1","position":"c"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var view lineupDTO
	decodeData(t, env, &view)
	if view.Team != "nhl" || len(view.Slots) != 20 {
		t.Fatalf("unexpected lineup: team=%s slots=%d", view.Team, len(view.Slots))
	}
	if view.Slots[1].Player == nil || view.Slots[1].Player.ID != "demo-c-01" {
		t.Fatalf("expected demo-c-01 at line1 c, got %+v", view.Slots[1])
	}

	rec, env = doRequest(t, router, http.MethodGet, "/v1/players/demo-c-01/placement", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("placement: expected 200, got %d", rec.Code)
	}
	var placement placementDTO
	decodeData(t, env, &placement)
	want := placementDTO{PlayerID: "demo-c-01", Status: "primary", Team: "nhl", Section: "forwards", Line: "line1", Position: "c"}
	if placement != want {
		t.Fatalf("unexpected placement: %+v", placement)
	}

	rec, env = doRequest(t, router, http.MethodDelete, "/v1/lineups/nhl/slots/forwards/c?line=line1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unassign: expected 200, got %d", rec.Code)
	}
	var cleared lineupDTO
	decodeData(t, env, &cleared)
	if cleared.Slots[1].Player != nil {
		t.Fatalf("expected line1 c to be empty after unassign")
	}

	rec, env = doRequest(t, router, http.MethodGet, "/v1/players/demo-c-01/placement", "")
	var after placementDTO
	decodeData(t, env, &after)
	if rec.Code != http.StatusOK || after.Status != "unassigned" || after.Team != "" {
		t.Fatalf("unexpected placement after unassign: %+v", after)
	}
}

func TestHandler_AssignErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
	}{
		{
			name:     "unknown player",
			path:     "/v1/lineups/nhl/slots",
			body:     `{"player_id":"nobody","section":"forwards","line":"line1","position":"c"}`,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "line out of range",
			path:     "/v1/lineups/nhl/slots",
			body:     `{"player_id":"demo-c-01","section":"forwards","line":"line9","position":"c"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown team",
			path:     "/v1/lineups/echl/slots",
			body:     `{"player_id":"demo-c-01","section":"forwards","line":"line1","position":"c"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown section",
			path:     "/v1/lineups/ahl/slots",
			body:     `{"player_id":"demo-c-01","section":"bench","position":"c"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := doRequest(t, router, http.MethodPut, tc.path, tc.body)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_ListPlayers_FilterAndSort(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/v1/players?position=goalie&sort=number&order=asc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []playerDTO
	decodeData(t, env, &items)

	var ids []string
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	if strings.Join(ids, ",") != "demo-g-03,demo-g-01,demo-g-02" {
		t.Fatalf("unexpected order: %v", ids)
	}

	for _, query := range []string{"order=sideways", "sort=age", "position=QB", "lineup=ECHL"} {
		rec, _ := doRequest(t, router, http.MethodGet, "/v1/players?"+query, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestHandler_UpdateAndDeletePlayer(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPut, "/v1/players/demo-lw-01",
		`{"first_name":"Jonas","last_name":"Eklund","number":"12","position":"RW","overall":"abc","salary":"$5.5M"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated playerDTO
	decodeData(t, env, &updated)
	if updated.Position != "RW" || updated.Overall != 50 || updated.Salary != 5.5 {
		t.Fatalf("unexpected updated player: %+v", updated)
	}

	rec, _ = doRequest(t, router, http.MethodPut, "/v1/players/nobody", `{"first_name":"A","last_name":"B"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update unknown: expected 404, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodDelete, "/v1/players/demo-lw-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec, _ = doRequest(t, router, http.MethodDelete, "/v1/players/demo-lw-01", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
	rec, _ = doRequest(t, router, http.MethodGet, "/v1/players/demo-lw-01", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", rec.Code)
	}
}

func TestHandler_CandidatesAndAvailable(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/v1/lineups/ahl/slots/goalies/starter/candidates", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("candidates: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var goalies []playerDTO
	decodeData(t, env, &goalies)
	if len(goalies) != 3 {
		t.Fatalf("expected 3 goalies, got %d", len(goalies))
	}

	doRequest(t, router, http.MethodPut, "/v1/lineups/ahl/slots", `{"player_id":"demo-g-01","section":"goalies","position":"starter"}`)

	rec, env = doRequest(t, router, http.MethodGet, "/v1/players/available", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("available: expected 200, got %d", rec.Code)
	}
	var available []playerDTO
	decodeData(t, env, &available)
	if len(available) != len(memory.SeedPlayers())-1 {
		t.Fatalf("unexpected available count %d", len(available))
	}
	for _, p := range available {
		if p.ID == "demo-g-01" {
			t.Fatalf("assigned goalie listed as available")
		}
	}
}
