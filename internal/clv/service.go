package clv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Rizwan2611/CLV-calculator/internal/obs"
)

const snapshotFile = "customers.json"

// snapshot is the on-disk layout of the customer file.
type snapshot struct {
	Metadata  snapshotMeta `json:"metadata"`
	Customers []Customer   `json:"customers"`
}

type snapshotMeta struct {
	TotalCustomers int    `json:"totalCustomers"`
	LastUpdated    string `json:"lastUpdated"`
}

// Store keeps customers in memory and mirrors them to a JSON snapshot under
// the data directory. Mutations take the exclusive lock; the snapshot write
// is best-effort and never rolls back the in-memory append.
type Store struct {
	mu        sync.RWMutex
	customers []Customer
	index     map[string]int
	path      string
}

// NewStore creates a store rooted at dataDir and loads any existing snapshot.
func NewStore(dataDir string) *Store {
	s := &Store{
		index: make(map[string]int),
		path:  filepath.Join(dataDir, snapshotFile),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			obs.LogError("clv", "read customer snapshot", err)
		}
		return
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		obs.LogError("clv", "decode customer snapshot", err)
		return
	}
	for _, c := range snap.Customers {
		if !c.valid() {
			continue
		}
		if _, ok := s.index[c.ID]; ok {
			continue
		}
		c.CLV = c.Value()
		s.index[c.ID] = len(s.customers)
		s.customers = append(s.customers, c)
	}
}

// Add validates the customer, computes its lifetime value and appends it.
// Duplicate ids are rejected without touching the existing record.
func (s *Store) Add(ctx context.Context, c Customer) (Customer, error) {
	if !c.valid() {
		return Customer{}, ErrInvalidCustomer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[c.ID]; ok {
		return Customer{}, ErrDuplicateID
	}
	c.CLV = c.Value()
	s.index[c.ID] = len(s.customers)
	s.customers = append(s.customers, c)

	if err := s.save(); err != nil {
		obs.LogError("clv", "save customer snapshot", err)
	}
	return c, nil
}

// All returns customers in insertion order. The returned slice is a copy.
func (s *Store) All() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Count reports the number of stored customers.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

// save rewrites the snapshot file. Caller holds the exclusive lock.
func (s *Store) save() error {
	snap := snapshot{
		Metadata: snapshotMeta{
			TotalCustomers: len(s.customers),
			LastUpdated:    time.Now().Format("2006-01-02 15:04:05"),
		},
		Customers: s.customers,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
