package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rotacheck/pkg/cache"
	"github.com/matzehuels/rotacheck/pkg/engine"
	"github.com/matzehuels/rotacheck/pkg/lineup"
	"github.com/matzehuels/rotacheck/pkg/observability"
)

func TestEngineHooks(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.OnValidate(ctx, true, 0, false, time.Millisecond)
	m.OnValidate(ctx, false, 2, true, time.Microsecond)
	m.OnBounds(ctx, 3, true, false, time.Microsecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues("legal", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues("illegal", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.boundsCalls.WithLabelValues("3", "false")))
}

func TestCacheHooks(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.OnCacheHit(ctx, "validate")
	m.OnCacheMiss(ctx, "validate")
	m.OnCacheMiss(ctx, "bounds")
	m.OnCacheSet(ctx, "bounds", 128)
	m.OnCacheError(ctx, "bounds", errors.New("down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("validate", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("bounds", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("bounds", "error")))
	assert.Equal(t, 128.0, testutil.ToFloat64(m.cacheBytes))
}

func TestHTTPHooks(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.OnRequest(ctx, "POST", "/v1/validate")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))
	m.OnResponse(ctx, "POST", "/v1/validate", 200, time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/v1/validate", "200")))
}

func TestRegisterWiresEngine(t *testing.T) {
	m := New()
	m.Register()
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	e := engine.New(engine.Options{Cache: cache.NewMemoryCache(0)})
	l := lineup.BaseRotation(lineup.RightBack)
	e.Validate(ctx, l)
	e.Validate(ctx, l)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues("legal", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues("legal", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("validate", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("validate", "set")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.OnValidate(context.Background(), true, 0, false, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "rotacheck_engine_validations_total")
	assert.Contains(t, string(body), "go_goroutines")
}
