package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

type availabilityKey struct {
	DoctorID int
	Date     string
}

// AvailabilityCache keeps computed free-slot lists per (doctor, date). Every
// mutation touching a doctor's calendar must invalidate that doctor's entries.
// A nil *AvailabilityCache is a valid no-op cache.
type AvailabilityCache struct {
	entries *lru.Cache[availabilityKey, []string]
	mu      sync.RWMutex
}

func NewAvailabilityCache(size int) (*AvailabilityCache, error) {
	entries, err := lru.New[availabilityKey, []string](size)
	if err != nil {
		return nil, err
	}
	return &AvailabilityCache{entries: entries}, nil
}

func (c *AvailabilityCache) Get(doctorID int, date string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entries.Get(availabilityKey{DoctorID: doctorID, Date: date})
}

func (c *AvailabilityCache) Store(doctorID int, date string, slots []string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(availabilityKey{DoctorID: doctorID, Date: date}, slots)
}

// Invalidate drops every cached date for the doctor.
func (c *AvailabilityCache) Invalidate(doctorID int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.entries.Keys() {
		if key.DoctorID == doctorID {
			c.entries.Remove(key)
		}
	}
}
