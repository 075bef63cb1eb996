package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/htmlsaver/pkg/httpserver"
	"github.com/dmitrymomot/htmlsaver/pkg/logger"
	"github.com/dmitrymomot/htmlsaver/pkg/sanitizer"
	"github.com/dmitrymomot/htmlsaver/pkg/saver"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Save(item saver.Document) error {
	return m.Called(item).Error(0)
}

func newTestRouter(sender documentSender, maxBody int64, checks ...httpserver.Check) http.Handler {
	return newRouter(routerDeps{
		log:         logger.Discard(),
		sender:      sender,
		checks:      checks,
		maxBodySize: maxBody,
	})
}

func put(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return rec
}

func TestPutDocument(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}
		sender.On("Save", saver.Document{Key: "reports/2024/q1.html", HTML: "<p>hi</p>"}).Return(nil).Once()

		rec := put(t, newTestRouter(sender, 1024), "/documents/reports/2024/q1.html", "<p>hi</p>")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		var resp acceptedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, acceptedResponse{Name: "reports/2024/q1.html", Status: "queued"}, resp)
		assert.NotEmpty(t, rec.Header().Get(httpserver.RequestIDHeader))
		sender.AssertExpectations(t)
	})

	t.Run("queue full", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}
		sender.On("Save", mock.Anything).Return(saver.ErrEnqueueRejected).Once()

		rec := put(t, newTestRouter(sender, 1024), "/documents/a.html", "x")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		sender.AssertExpectations(t)
	})

	t.Run("unexpected error", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}
		sender.On("Save", mock.Anything).Return(errors.New("boom")).Once()

		rec := put(t, newTestRouter(sender, 1024), "/documents/a.html", "x")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}

		for _, path := range []string{"/documents/", "/documents/dir/"} {
			rec := put(t, newTestRouter(sender, 1024), path, "x")
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		}
		sender.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}

		rec := put(t, newTestRouter(sender, 4), "/documents/big.html", "<p>too big</p>")
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		sender.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("wrong method", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newTestRouter(&mockSender{}, 1024).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/a.html", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHealthRoutes(t *testing.T) {
	t.Parallel()

	failing := httpserver.Check{Name: "redis", Fn: func(context.Context) error { return errors.New("down") }}
	h := newTestRouter(&mockSender{}, 1024, failing)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics, err := saver.NewMetrics("test", reg)
	require.NoError(t, err)

	h, err := saver.New[saver.Document](saver.StorageFunc(func(context.Context, string, []byte, string) error { return nil }),
		saver.WithMetrics(metrics),
		saver.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Shutdown(context.Background()) })

	router := newRouter(routerDeps{
		log:         logger.Discard(),
		sender:      h.Sender(),
		metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		maxBodySize: 1024,
	})

	require.Equal(t, http.StatusAccepted, put(t, router, "/documents/a.html", "<p>a</p>").Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_saver_items_enqueued_total 1")
}

func TestDocumentsReachStorage(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		stored = map[string]string{}
	)
	storage := saver.StorageFunc(func(_ context.Context, key string, content []byte, contentType string) error {
		mu.Lock()
		defer mu.Unlock()
		stored[key] = contentType + "|" + string(content)
		return nil
	})

	h, err := saver.New[saver.Document](storage,
		saver.WithBatchSize(2),
		saver.WithPrefix("site"),
		saver.WithSanitizer(sanitizer.StripScripts),
		saver.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)

	router := newTestRouter(h.Sender(), 1024)
	require.Equal(t, http.StatusAccepted, put(t, router, "/documents/a.html", `<p>a</p><script>x()</script>`).Code)
	require.Equal(t, http.StatusAccepted, put(t, router, "/documents/b.html", `<p>b</p>`).Code)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.Shutdown(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]string{
		"site/a.html": "text/html|<p>a</p>",
		"site/b.html": "text/html|<p>b</p>",
	}, stored)

	rec := put(t, router, "/documents/c.html", "<p>c</p>")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "saves after shutdown are rejected")
}
