package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

// MemoryHistory is a process-local HistoryStore.
type MemoryHistory struct {
	mu          sync.RWMutex
	generations map[string][]models.Generation
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{generations: make(map[string][]models.Generation)}
}

func (m *MemoryHistory) Record(ctx context.Context, g *models.Generation) error {
	prepareGeneration(g)
	m.mu.Lock()
	m.generations[g.ClientID] = append(m.generations[g.ClientID], *g)
	m.mu.Unlock()
	return nil
}

func (m *MemoryHistory) List(ctx context.Context, clientID string, limit int) ([]models.Generation, error) {
	m.mu.RLock()
	out := append([]models.Generation{}, m.generations[clientID]...)
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit = ClampHistoryLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MemoryPreferences is a process-local PreferencesStore.
type MemoryPreferences struct {
	mu    sync.RWMutex
	prefs map[string]models.Preferences
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{prefs: make(map[string]models.Preferences)}
}

func (m *MemoryPreferences) Get(ctx context.Context, clientID string) (*models.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.prefs[clientID]; ok {
		return &p, nil
	}
	return &models.Preferences{ClientID: clientID}, nil
}

func (m *MemoryPreferences) CompleteFirstRun(ctx context.Context, clientID string) (*models.Preferences, error) {
	p := models.Preferences{ClientID: clientID, FirstRunCompleted: true, UpdatedAt: time.Now().UTC()}
	m.mu.Lock()
	m.prefs[clientID] = p
	m.mu.Unlock()
	return &p, nil
}
