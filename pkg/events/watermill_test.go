package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/venue-master/admin-console/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.NewNop()
}

// TestRetryWithBackoff_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryWithBackoff_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestRetryWithBackoff_SuccessAfterRetries verifies retry continues until success.
func TestRetryWithBackoff_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient error")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil after eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestRetryWithBackoff_ExhaustsRetries verifies an error is returned after all retries fail.
func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("permanent error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != maxRetries {
		t.Errorf("expected %d calls, got %d", maxRetries, calls)
	}
}

// TestRetryWithBackoff_ContextCancelled verifies retry stops when context is canceled.
func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, handler, maxRetries, time.Second, nopLogger())
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	// Should have called handler once then exited on ctx.Done
	if calls != 1 {
		t.Errorf("expected 1 call before context cancel, got %d", calls)
	}
}

// TestOTelPropagation_InjectExtract verifies that trace context injected via
// the same propagation path used by Publish/Subscribe round-trips correctly.
func TestOTelPropagation_InjectExtract(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	// Simulate Publish: inject trace context into message metadata.
	msg := message.NewMessage("id", nil)
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	// Simulate Subscribe: extract trace context from message metadata.
	extractCarrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		extractCarrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(context.Background(), extractCarrier)

	gotSpan := trace.SpanFromContext(msgCtx)
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}

func newTestBus(t *testing.T) *EventBus {
	t.Helper()
	bus := NewEventBus(nopLogger())
	bus.retryDelay = time.Millisecond
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

// TestEventBus_PublishSubscribe verifies every subscriber receives the payload.
func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	got := make(chan string, 2)
	for i := 0; i < 2; i++ {
		errCh, err := bus.Subscribe(ctx, "session.logged_in", func(_ context.Context, msg *message.Message) error {
			var body struct{ SessionID string }
			if err := json.Unmarshal(msg.Payload, &body); err != nil {
				return err
			}
			got <- body.SessionID
			return nil
		})
		if err != nil {
			t.Fatalf("Subscribe: %v", err)
		}
		go func() {
			for range errCh {
			}
		}()
	}

	if err := bus.PublishJSON(ctx, "session.logged_in", map[string]string{"SessionID": "s-1"}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case id := <-got:
			if id != "s-1" {
				t.Errorf("session id = %q, want s-1", id)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %d never received the message", i)
		}
	}
}

// TestEventBus_FailingHandlerReportsError verifies exhausted retries reach the error channel
// and the message is not redelivered afterwards.
func TestEventBus_FailingHandlerReportsError(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	var calls atomic.Int32
	errCh, err := bus.Subscribe(ctx, "session.expired", func(context.Context, *message.Message) error {
		calls.Add(1)
		return errors.New("store unavailable")
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := bus.PublishJSON(ctx, "session.expired", map[string]string{}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected handler error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported")
	}

	time.Sleep(50 * time.Millisecond)
	if n := calls.Load(); n != maxRetries {
		t.Errorf("handler calls = %d, want %d", n, maxRetries)
	}
}

// TestEventBus_Close verifies Close is idempotent and rejects further use.
func TestEventBus_Close(t *testing.T) {
	bus := NewEventBus(nopLogger())

	errCh, err := bus.Subscribe(context.Background(), "session.logged_out", func(context.Context, *message.Message) error { return nil })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, ok := <-errCh; ok {
		t.Error("error channel should be closed after Close")
	}
	if err := bus.Ping(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Ping after Close = %v, want ErrClosed", err)
	}
	if err := bus.PublishJSON(context.Background(), "session.logged_out", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Publish after Close = %v, want ErrClosed", err)
	}
}
