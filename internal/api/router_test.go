package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/zerowaste/connect-share/internal/core/service"
	"github.com/zerowaste/connect-share/internal/infrastructure/db/memory"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	donations := memory.NewDonationRepository()
	users := memory.NewUserRepository()
	clock := service.SystemClock{}

	return NewRouter(Deps{
		Donations:  service.NewDonationService(donations, memory.NewIdempotencyStore(time.Hour), nil, clock, zerolog.Nop()),
		Stats:      service.NewStatsService(donations, users, clock),
		Auth:       service.NewAuthService(users, testSecret, time.Hour, clock),
		JWTSecret:  testSecret,
		Logger:     zerolog.Nop(),
		Registerer: prometheus.NewRegistry(),
	})
}

func do(e *echo.Echo, method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

// signup registers and logs in a user, returning the bearer token.
func signup(t *testing.T, e *echo.Echo, email, name, role string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password1","name":%q,"role":%q}`, email, name, role)
	if rec := do(e, http.MethodPost, "/auth/register", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, rec.Code, rec.Body.String())
	}
	rec := do(e, http.MethodPost, "/auth/login", "", fmt.Sprintf(`{"email":%q,"password":"password1"}`, email))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body.String())
	}
	return decode(t, rec)["token"].(string)
}

func donationBody(expiry time.Time) string {
	return fmt.Sprintf(`{"title":"Pan dulce","quantity":"20 pieces","expiry_time":%q,
		"location":{"address":"Av. Reforma 1","coordinates":{"lat":19.43,"lng":-99.13}}}`,
		expiry.UTC().Format(time.RFC3339))
}

func TestDonationFlow(t *testing.T) {
	e := newTestServer(t)
	donor := signup(t, e, "donor@example.com", "Dina", "donor")
	vol1 := signup(t, e, "v1@example.com", "Vera", "volunteer")
	vol2 := signup(t, e, "v2@example.com", "Viktor", "volunteer")
	admin := signup(t, e, "admin@example.com", "Ada", "admin")

	rec := do(e, http.MethodPost, "/donations", donor, donationBody(time.Now().Add(2*time.Hour)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	id := created["id"].(string)
	if created["status"] != "open" || created["donor_name"] != "Dina" {
		t.Fatalf("unexpected donation: %v", created)
	}
	links := created["_links"].(map[string]any)
	if links["claim"] != "/donations/"+id+"/claim" {
		t.Fatalf("open donation should advertise claim link: %v", links)
	}

	if rec := do(e, http.MethodPost, "/donations/"+id+"/claim", donor, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("donor claim: expected 403, got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/donations/"+id+"/claim", vol1, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("claim: %d %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec); got["status"] != "claimed" || got["volunteer_name"] != "Vera" {
		t.Fatalf("unexpected claimed donation: %v", got)
	}

	if rec := do(e, http.MethodPost, "/donations/"+id+"/claim", vol2, ""); rec.Code != http.StatusConflict {
		t.Fatalf("second claim: expected 409, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/donations/"+id+"/deliver", vol2, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("non-claimant deliver: expected 403, got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/donations/"+id+"/deliver", vol1, "")
	if rec.Code != http.StatusOK || decode(t, rec)["status"] != "delivered" {
		t.Fatalf("deliver: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(e, http.MethodPost, "/donations/"+id+"/deliver", vol1, ""); rec.Code != http.StatusConflict {
		t.Fatalf("second deliver: expected 409, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/donations?status=delivered", vol2, "")
	if rec.Code != http.StatusOK || decode(t, rec)["count"] != float64(1) {
		t.Fatalf("list delivered: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/stats/overview", admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("overview: %d %s", rec.Code, rec.Body.String())
	}
	overview := decode(t, rec)
	if overview["success_rate"] != float64(100) || overview["total_users"] != float64(4) {
		t.Fatalf("unexpected overview: %v", overview)
	}
	if rec := do(e, http.MethodGet, "/stats/overview", donor, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("donor overview: expected 403, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/stats/me", vol1, "")
	if me := decode(t, rec); me["delivered"] != float64(1) || me["role"] != "volunteer" {
		t.Fatalf("unexpected volunteer summary: %v", me)
	}

	rec = do(e, http.MethodGet, "/users", admin, "")
	if rec.Code != http.StatusOK || decode(t, rec)["count"] != float64(4) {
		t.Fatalf("users: %d %s", rec.Code, rec.Body.String())
	}
}

func TestConcurrentClaimsOverHTTP(t *testing.T) {
	e := newTestServer(t)
	donor := signup(t, e, "donor@example.com", "Dina", "donor")

	rec := do(e, http.MethodPost, "/donations", donor, donationBody(time.Now().Add(time.Hour)))
	id := decode(t, rec)["id"].(string)

	const n = 8
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = signup(t, e, fmt.Sprintf("v%d@example.com", i), fmt.Sprintf("Vol %d", i), "volunteer")
	}

	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = do(e, http.MethodPost, "/donations/"+id+"/claim", tokens[i], "").Code
		}(i)
	}
	wg.Wait()

	ok, conflict := 0, 0
	for _, c := range codes {
		switch c {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflict++
		}
	}
	if ok != 1 || conflict != n-1 {
		t.Fatalf("expected exactly one 200 and %d 409s, got %v", n-1, codes)
	}
}

func TestCreateDonation_Errors(t *testing.T) {
	e := newTestServer(t)
	donor := signup(t, e, "donor@example.com", "Dina", "donor")
	vol := signup(t, e, "v@example.com", "Vera", "volunteer")

	if rec := do(e, http.MethodPost, "/donations", "", donationBody(time.Now().Add(time.Hour))); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/donations", vol, donationBody(time.Now().Add(time.Hour))); rec.Code != http.StatusForbidden {
		t.Fatalf("volunteer create: expected 403, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/donations", donor, donationBody(time.Now().Add(-time.Hour))); rec.Code != http.StatusBadRequest {
		t.Fatalf("past expiry: expected 400, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/donations", donor, `{"title":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: expected 400, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/donations?status=pending", donor, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status filter: expected 400, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/donations/missing", donor, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing donation: expected 404, got %d", rec.Code)
	}
}

func TestCreateDonation_IdempotencyKey(t *testing.T) {
	e := newTestServer(t)
	donor := signup(t, e, "donor@example.com", "Dina", "donor")
	body := donationBody(time.Now().Add(time.Hour))

	first := do(e, http.MethodPost, "/donations", donor, body, "Idempotency-Key", "abc")
	second := do(e, http.MethodPost, "/donations", donor, body, "Idempotency-Key", "abc")
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("unexpected codes %d / %d", first.Code, second.Code)
	}
	if decode(t, first)["id"] != decode(t, second)["id"] {
		t.Fatalf("replay returned a different donation")
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected replay header")
	}

	rec := do(e, http.MethodGet, "/donations", donor, "")
	if decode(t, rec)["count"] != float64(1) {
		t.Fatalf("expected a single stored donation: %s", rec.Body.String())
	}
}

func TestAuthErrors(t *testing.T) {
	e := newTestServer(t)
	signup(t, e, "a@example.com", "Ann", "donor")

	if rec := do(e, http.MethodPost, "/auth/register", "", `{"email":"a@example.com","password":"password1","name":"Ann","role":"donor"}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/auth/register", "", `{"email":"b@example.com","password":"password1","name":"B","role":"client"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad role: expected 400, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/auth/login", "", `{"email":"a@example.com","password":"wrong-pass"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/auth/login", "", `{"email":"ghost@example.com","password":"whatever"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	if rec := do(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: %d", rec.Code)
	}
	rec := do(e, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK || decode(t, rec)["status"] != "ok" {
		t.Fatalf("readiness: %d %s", rec.Code, rec.Body.String())
	}
}
