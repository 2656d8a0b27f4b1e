package api

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/tickd-io/tickd/internal/adapter/outbound/memory"
	"github.com/tickd-io/tickd/internal/service"
)

func TestTransport_StartAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := memory.NewTodoStore()
	svc := service.NewTodoService(store, nopSink{}, discardLogger())
	handler := NewHandler(
		WithTodoService(svc),
		WithLogger(discardLogger()),
	)

	transport := NewTransport(handler,
		WithAddr("127.0.0.1:0"),
		WithTransportLogger(discardLogger()),
		WithSink(nopSink{}),
		WithItemCount(store.Len),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- transport.Start(ctx)
	}()

	// Give the listener a moment to bind, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("transport did not shut down within 5s")
	}
}

func TestTransport_StartFailsOnBadAddr(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := service.NewTodoService(memory.NewTodoStore(), nopSink{}, discardLogger())
	handler := NewHandler(WithTodoService(svc), WithLogger(discardLogger()))

	transport := NewTransport(handler,
		WithAddr("256.256.256.256:99999"),
		WithTransportLogger(discardLogger()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := transport.Start(ctx); err == nil {
		t.Fatal("Start() succeeded on an unbindable address, want error")
	}
}

func TestTransport_CloseWithoutStart(t *testing.T) {
	t.Parallel()

	svc := service.NewTodoService(memory.NewTodoStore(), nopSink{}, discardLogger())
	handler := NewHandler(WithTodoService(svc), WithLogger(discardLogger()))
	transport := NewTransport(handler)

	if err := transport.Close(); err != nil {
		t.Fatalf("Close() before Start(): %v", err)
	}
}
