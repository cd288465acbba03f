package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHTTPMiddleware_ObservesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(HTTPMiddleware(zap.NewNop()))
	r.HandleFunc("/api/messages/unread/{userId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(HTTPRequestDuration)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/messages/unread/alice", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/messages/unread/bob", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	// both requests share one series keyed by the template
	assert.Equal(t, before+1, testutil.CollectAndCount(HTTPRequestDuration))
}
