package flatfile

import (
	"path/filepath"
	"sync"
)

var locks sync.Map // cleaned absolute path -> *sync.RWMutex

func lockFor(path string) *sync.RWMutex {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	v, _ := locks.LoadOrStore(key, &sync.RWMutex{})
	return v.(*sync.RWMutex)
}
