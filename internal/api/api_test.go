package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/fridayfun/internal/llm"
	"github.com/abhisek/fridayfun/internal/questiongen"
	"github.com/abhisek/fridayfun/internal/session"
)

func newTestServer(t *testing.T, responses ...llm.MockResponse) *httptest.Server {
	t.Helper()
	gen := questiongen.New(llm.NewMockProvider(responses...), questiongen.DefaultConfig(), nil)
	loop := session.NewLoop(session.NewStore(gen, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()

	srv := httptest.NewServer(NewRouter(&Container{Session: loop}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})
	return srv
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func getState(t *testing.T, srv *httptest.Server) session.Snapshot {
	t.Helper()
	resp, err := http.Get(srv.URL + "/v1/state")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[session.Snapshot](t, resp)
}

func waitIdle(t *testing.T, srv *httptest.Server) session.Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/v1/state")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var snap session.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return false
		}
		return !snap.Loading
	}, 2*time.Second, 10*time.Millisecond)
	return getState(t, srv)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))
}

func TestCategories(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/categories")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cats := decode[[]questiongen.CategoryInfo](t, resp)
	require.Len(t, cats, 4)
	assert.Equal(t, questiongen.CategoryFunny, cats[0].Category)
	assert.Equal(t, "😂", cats[0].Icon)
}

func TestInitialState(t *testing.T) {
	srv := newTestServer(t)
	snap := getState(t, srv)
	assert.Equal(t, session.PhaseIdle, snap.Phase)
	assert.Nil(t, snap.Current)
	assert.Equal(t, questiongen.CategoryFunny, snap.Category)
}

func TestSelectCategory(t *testing.T) {
	srv := newTestServer(t, llm.MockJSON(`{"optionA":"Talk to cats","optionB":"Talk to dogs"}`))

	resp, err := http.Post(srv.URL+"/v1/categories/animal/select", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	accepted := decode[session.Snapshot](t, resp)
	assert.True(t, accepted.Loading)
	assert.Equal(t, questiongen.CategoryAnimal, accepted.Category)

	snap := waitIdle(t, srv)
	require.NotNil(t, snap.Current)
	assert.Equal(t, questiongen.CategoryAnimal, snap.Current.Category)
	assert.Equal(t, "Talk to cats", snap.Current.OptionA)
	assert.Equal(t, session.PhaseLoaded, snap.Phase)
	assert.Len(t, snap.History, 1)
}

func TestSelectUnknownCategory(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/v1/categories/spooky/select", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Contains(t, body["error"], "spooky")

	assert.Equal(t, session.PhaseIdle, getState(t, srv).Phase)
}

func TestRegenerateAfterFailure(t *testing.T) {
	srv := newTestServer(t,
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("network down")}},
		llm.MockJSON(`{"optionA":"Fly","optionB":"Swim"}`),
	)

	resp, err := http.Post(srv.URL+"/v1/regenerate", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	snap := waitIdle(t, srv)
	assert.Equal(t, session.ErrorMessage, snap.Error)
	assert.Equal(t, session.PhaseFailed, snap.Phase)
	assert.NotContains(t, snap.Error, "network down")

	resp, err = http.Post(srv.URL+"/v1/regenerate", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	snap = waitIdle(t, srv)
	assert.Empty(t, snap.Error)
	require.NotNil(t, snap.Current)
	assert.Equal(t, "Fly", snap.Current.OptionA)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/regenerate")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/regenerate", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://classroom.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

type stoppedSession struct{}

func (stoppedSession) SelectCategory(context.Context, questiongen.Category) (session.Snapshot, error) {
	return session.Snapshot{}, session.ErrLoopStopped
}

func (stoppedSession) Regenerate(context.Context) (session.Snapshot, error) {
	return session.Snapshot{}, session.ErrLoopStopped
}

func (stoppedSession) Snapshot(context.Context) (session.Snapshot, error) {
	return session.Snapshot{}, session.ErrLoopStopped
}

func TestSessionUnavailable(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&Container{Session: stoppedSession{}}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/state")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Serve(ctx, ln, NewRouter(&Container{Session: stoppedSession{}}), zap.NewNop())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewHandler(nil, zap.New(core))

	rec := httptest.NewRecorder()
	h.writeJSON(rec, http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	entries := logs.FilterMessage("write response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}

func TestWriteJSON_NoLogOnSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewHandler(nil, zap.New(core))

	rec := httptest.NewRecorder()
	h.writeJSON(rec, http.StatusAccepted, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Zero(t, logs.Len())
}
