package registry

import "testing"

func TestRegistry_SetGet(t *testing.T) {
	r := New()
	r.SetGlobal("k", 1)
	v, ok := r.GetGlobal("k")
	if !ok || v != 1 {
		t.Errorf("GetGlobal = %v, %v; want 1, true", v, ok)
	}
}

func TestRegistry_LockedSetPanics(t *testing.T) {
	r := New()
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Fatal("IsLocked = false after Lock")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on SetGlobal of locked key")
		}
	}()
	r.SetGlobal("k", 1)
}

func TestRegistry_UnlockForTesting(t *testing.T) {
	r := New()
	r.Lock("k")
	r.UnlockForTesting("k")
	r.SetGlobal("k", 2)
	if v, _ := r.GetGlobal("k"); v != 2 {
		t.Errorf("GetGlobal = %v, want 2", v)
	}
}
