package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jamsturg/bitget-trading-bot/internal/modules/health/service"
)

func TestReadiness(t *testing.T) {
	state := service.NewState()
	srv := httptest.NewServer(NewMux(state))
	defer srv.Close()

	get := func(path string) int {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		return resp.StatusCode
	}

	// процесс жив всегда, готовность — только после старта
	if code := get("/livez"); code != http.StatusOK {
		t.Fatalf("/livez = %d", code)
	}
	if code := get("/readyz"); code != http.StatusServiceUnavailable {
		t.Fatalf("/readyz before startup = %d", code)
	}

	state.SetReady(true)
	if code := get("/readyz"); code != http.StatusOK {
		t.Fatalf("/readyz after startup = %d", code)
	}
	if code := get("/healthz"); code != http.StatusOK {
		t.Fatalf("/healthz = %d", code)
	}
}
