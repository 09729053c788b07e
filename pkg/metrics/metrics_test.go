package metrics

import "testing"

func TestDisabledByDefault(t *testing.T) {
	mu.Lock()
	registry = nil
	construct = nil
	mu.Unlock()

	if IsEnabled() {
		t.Fatal("expected IsEnabled to be false before InitRegistry")
	}
	if New() != nil {
		t.Fatal("expected New to return nil when metrics are disabled")
	}
}

func TestInitRegistryEnables(t *testing.T) {
	InitRegistry(nil)
	defer func() {
		mu.Lock()
		registry = nil
		mu.Unlock()
	}()

	if !IsEnabled() {
		t.Fatal("expected IsEnabled to be true after InitRegistry")
	}
	if GetRegistry() == nil {
		t.Fatal("expected GetRegistry to return a non-nil registry")
	}
}

func TestNewWithoutConstructorReturnsNil(t *testing.T) {
	InitRegistry(nil)
	mu.Lock()
	construct = nil
	mu.Unlock()
	defer func() {
		mu.Lock()
		registry = nil
		mu.Unlock()
	}()

	if New() != nil {
		t.Fatal("expected New to return nil when no constructor has registered")
	}
}
