package tradegains

import (
	"strings"
	"testing"
)

func TestSourceRegistry(t *testing.T) {
	RegisterSource("stub-a", func() (PriceSource, error) { return newStubSource(), nil })
	RegisterSource("stub-b", func() (PriceSource, error) { return newStubSource(), nil })

	t.Run("lookup", func(t *testing.T) {
		src, err := NewSource("stub-a")
		if err != nil {
			t.Fatalf("NewSource() error = %v", err)
		}
		if src == nil {
			t.Fatal("NewSource() returned nil source")
		}
	})

	t.Run("unknown name lists the alternatives", func(t *testing.T) {
		_, err := NewSource("nope")
		if err == nil {
			t.Fatal("NewSource() expected an error")
		}
		if !strings.Contains(err.Error(), "stub-a") || !strings.Contains(err.Error(), "stub-b") {
			t.Errorf("error %q should name the registered sources", err)
		}
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("RegisterSource() should panic on a duplicate name")
			}
		}()
		RegisterSource("stub-a", func() (PriceSource, error) { return newStubSource(), nil })
	})
}
