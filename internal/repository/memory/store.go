// Package memory provides in-process repositories with the same constraints as the SQL schema:
// unique product names, restrict-on-delete for referenced products, guarded application inserts
// and unique admin usernames.
package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/repository"
)

// Store holds every table behind one lock so cross-table checks are atomic.
type Store struct {
	mu           sync.RWMutex
	insurances   map[string]domain.Insurance
	applications map[string]domain.Application
	admins       map[string]domain.Admin
	seq          int64
	order        map[string]int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		insurances:   map[string]domain.Insurance{},
		applications: map[string]domain.Application{},
		admins:       map[string]domain.Admin{},
		order:        map[string]int64{},
	}
}

// Repositories bundles the repositories backed by one store.
type Repositories struct {
	Insurances   repository.InsuranceRepository
	Applications repository.ApplicationRepository
	Admins       repository.AdminRepository
}

// NewRepositories wires all repositories over a fresh store.
func NewRepositories() Repositories {
	store := NewStore()
	return Repositories{
		Insurances:   &insuranceRepository{store: store},
		Applications: &applicationRepository{store: store},
		Admins:       &adminRepository{store: store},
	}
}

// newID assigns an id and remembers insertion order for stable tie-breaking.
func (s *Store) newID() string {
	id := uuid.NewString()
	s.seq++
	s.order[id] = s.seq
	return id
}

func sortApplications(apps []domain.Application, order map[string]int64, asc bool) {
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if asc {
			return order[a.ID] < order[b.ID]
		}
		return order[a.ID] > order[b.ID]
	})
}
