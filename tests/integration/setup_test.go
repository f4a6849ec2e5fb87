package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"roboadvisor/internal/config"
	"roboadvisor/internal/logger"
	"roboadvisor/internal/server"
	"roboadvisor/internal/testutil"
	"roboadvisor/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	*server.App
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
	validator.Register()
}

// backends runs fn once per ledger backend.
func backends(t *testing.T, fn func(t *testing.T, backend string)) {
	for _, backend := range []string{config.LedgerMemory, config.LedgerSQLite} {
		t.Run(backend, func(t *testing.T) { fn(t, backend) })
	}
}

// setupApp creates a full application stack on the given ledger backend with
// the clock frozen at now.
func setupApp(t *testing.T, backend string, now time.Time) *testApp {
	t.Helper()

	cfg := config.Defaults()
	cfg.Env = "test"
	cfg.LedgerBackend = backend
	cfg.SQLiteDSN = fmt.Sprintf("file:integration%d?mode=memory&cache=shared", dbCounter.Add(1))

	app, err := server.New(cfg, server.WithClock(testutil.FixedClock(now)))
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	return &testApp{App: app}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the error code of an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// orderBody renders an order payload.
func orderBody(orderType string, amount float64, key, userID, portfolio string) string {
	return fmt.Sprintf(`{"type":%q,"amount":%v,"idempotencyKey":%q,"userId":%q,"portfolio":%s}`,
		orderType, amount, key, userID, portfolio)
}
