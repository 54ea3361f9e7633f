// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisupply/auth-service/internal/config"
)

type recordingReporter struct {
	ready    atomic.Bool
	shutdown atomic.Bool
}

func (r *recordingReporter) SetReady(ready bool) {
	r.ready.Store(ready)
}

func (r *recordingReporter) SetShutdown(shutdown bool) {
	r.shutdown.Store(shutdown)
}

func TestStartMarksReadyAndShutdownDrains(t *testing.T) {
	reporter := &recordingReporter{}

	srv := New(Config{
		ServerConfig: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			IdleTimeout:     time.Second,
			ShutdownTimeout: time.Second,
		},
		HealthHandler: reporter,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	require.Eventually(t, reporter.ready.Load, time.Second, 10*time.Millisecond,
		"readiness must flip when the server starts")

	require.NoError(t, srv.Shutdown(context.Background(), 0))
	assert.True(t, reporter.shutdown.Load())

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}
