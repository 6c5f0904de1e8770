package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopLayoutHooks{}
	h.OnBuildStart(ctx, 100)
	h.OnBuildComplete(ctx, 100, time.Second, nil)
	h.OnLayoutStart(ctx, 100)
	h.OnLayoutComplete(ctx, 100, time.Second, nil)
	h.OnFallback(ctx, 100)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify default is noop
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}

	// Set custom hooks
	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)
	if Layout() != custom {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)

	// Setting nil should be ignored
	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementation
type testLayoutHooks struct{ NoopLayoutHooks }
