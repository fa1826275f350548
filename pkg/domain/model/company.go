package model

import (
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Company is one tenant of the system. SLADays is the company's target
// resolution window in calendar days; zero means no SLA is configured.
type Company struct {
	ID           string
	Name         string
	SLADays      int
	SlackChannel string
}

// CompanyRegistry resolves company configuration by ID
type CompanyRegistry struct {
	mu        sync.RWMutex
	companies map[string]*Company
}

func NewCompanyRegistry() *CompanyRegistry {
	return &CompanyRegistry{
		companies: make(map[string]*Company),
	}
}

// Register adds or replaces a company entry
func (r *CompanyRegistry) Register(c *Company) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[c.ID] = c
}

// Get returns the company with the given ID
func (r *CompanyRegistry) Get(id string) (*Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return nil, goerr.New("unknown company", goerr.V("company_id", id))
	}
	return c, nil
}

// Companies returns all registered companies ordered by ID
func (r *CompanyRegistry) Companies() []*Company {
	r.mu.RLock()
	defer r.mu.RUnlock()

	companies := make([]*Company, 0, len(r.companies))
	for _, c := range r.companies {
		companies = append(companies, c)
	}
	sort.Slice(companies, func(i, j int) bool {
		return companies[i].ID < companies[j].ID
	})
	return companies
}
