package cache

import (
	"testing"
	"time"
)

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
	if NewCache() == inst {
		t.Error("NewCache should return an independent instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0, nil)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", time.Nanosecond, nil)
	time.Sleep(2 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get expired key: want false")
	}
}

func TestGetOrDefault(t *testing.T) {
	c := NewCache()
	if got := c.GetOrDefault("k", "default"); got != "default" {
		t.Errorf("GetOrDefault missing = %v, want default", got)
	}
	c.Set("k", "stored", 0, nil)
	if got := c.GetOrDefault("k", "default"); got != "stored" {
		t.Errorf("GetOrDefault found = %v, want stored", got)
	}
}

func TestDeleteMany(t *testing.T) {
	c := NewCache()
	c.Set("dm1", 1, 0, nil)
	c.Set("dm2", 2, 0, nil)
	c.DeleteMany("dm1", "dm2")
	if _, ok := c.Get("dm1"); ok {
		t.Error("DeleteMany: dm1 should be gone")
	}
	if _, ok := c.Get("dm2"); ok {
		t.Error("DeleteMany: dm2 should be gone")
	}
}

func TestSetN_GetN_DeleteN(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"supplier", "S001"}, []string{"I001"}, 0, []string{"items"})
	got, ok := c.GetN("supplier", "S001")
	if !ok || len(got.([]string)) != 1 {
		t.Errorf("GetN = %v, %v; want [I001], true", got, ok)
	}
	c.DeleteN("supplier", "S001")
	if _, ok := c.GetN("supplier", "S001"); ok {
		t.Error("DeleteN: key should be gone")
	}
}

func TestDeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("k1", "v1", 0, []string{"items"})
	c.Set("k2", "v2", 0, []string{"items"})
	c.Set("k3", "v3", 0, []string{"users"})

	if keys := c.GetKeysByTag("items"); len(keys) != 2 {
		t.Errorf("GetKeysByTag = %d keys, want 2", len(keys))
	}
	c.DeleteByTag("items")
	if _, ok := c.Get("k1"); ok {
		t.Error("DeleteByTag: k1 should be gone")
	}
	if _, ok := c.Get("k2"); ok {
		t.Error("DeleteByTag: k2 should be gone")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("DeleteByTag: k3 has another tag and should survive")
	}
}

func TestDelete_RemovesFromTagIndex(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 0, []string{"t2"})
	c.Delete("k")
	if keys := c.GetKeysByTag("t2"); len(keys) != 0 {
		t.Errorf("GetKeysByTag after Delete = %d keys, want 0", len(keys))
	}
}
