package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Engine hooks
	e := NoopEngineHooks{}
	e.OnNormalizeStart(ctx, 100, 150)
	e.OnNormalizeComplete(ctx, 98, 140, 2, nil)
	e.OnSolveStart(ctx, 98, 140)
	e.OnSolveComplete(ctx, 300, 0.0009, time.Second)
	e.OnReconcileComplete(ctx, 98, 140, nil)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnStoreGet(ctx, "redis", "social", true)
	s.OnStorePut(ctx, "file", "social", 1024)
	s.OnStoreError(ctx, "mongo", "get", nil)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg", 98)
	r.OnRenderComplete(ctx, "svg", 4096, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	// Set custom hooks
	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != customEngine {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testEngineHooks{}
	SetEngineHooks(custom)

	// Setting nil should be ignored
	SetEngineHooks(nil)

	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testEngineHooks struct{ NoopEngineHooks }
type testStoreHooks struct{ NoopStoreHooks }
type testRenderHooks struct{ NoopRenderHooks }
