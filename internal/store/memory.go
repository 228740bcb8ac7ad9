package store

import (
	"sort"
	"sync"

	"github.com/rmartinez-edu/enrollcast/internal/models"
)

// BrandData son los cuatro conjuntos de registros de una marca más el plan
// mensual. Es una copia: los componentes de reporte la consumen sin tocar
// el estado compartido.
type BrandData struct {
	Enrollments []models.Enrollment
	Leads       []models.Lead
	Calendar    []models.CampaignWindow
	Spend       []models.SpendRecord
	Plan        []models.PlanRow
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*BrandData
	seen map[string]struct{} // idempotencia por-record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*BrandData),
		seen: make(map[string]struct{}),
	}
}

// MarkSeen devuelve false si la clave ya fue ingerida.
func (s *MemoryStore) MarkSeen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

func (s *MemoryStore) brand(name string) *BrandData {
	b, ok := s.data[name]
	if !ok {
		b = &BrandData{}
		s.data[name] = b
	}
	return b
}

func (s *MemoryStore) AddEnrollment(e models.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.brand(e.Brand)
	b.Enrollments = append(b.Enrollments, e)
}

func (s *MemoryStore) AddLead(l models.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.brand(l.Brand)
	b.Leads = append(b.Leads, l)
}

func (s *MemoryStore) AddWindow(w models.CampaignWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.brand(w.Brand)
	b.Calendar = append(b.Calendar, w)
}

func (s *MemoryStore) AddSpend(r models.SpendRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.brand(r.Brand)
	b.Spend = append(b.Spend, r)
}

func (s *MemoryStore) AddPlanRow(p models.PlanRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.brand(p.Brand)
	b.Plan = append(b.Plan, p)
}

// Brand devuelve una copia de los datos de la marca; marca desconocida
// produce conjuntos vacíos, nunca nil.
func (s *MemoryStore) Brand(name string) BrandData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[name]
	if !ok {
		return BrandData{
			Enrollments: []models.Enrollment{},
			Leads:       []models.Lead{},
			Calendar:    []models.CampaignWindow{},
			Spend:       []models.SpendRecord{},
			Plan:        []models.PlanRow{},
		}
	}
	out := BrandData{
		Enrollments: make([]models.Enrollment, len(b.Enrollments)),
		Leads:       make([]models.Lead, len(b.Leads)),
		Calendar:    make([]models.CampaignWindow, len(b.Calendar)),
		Spend:       make([]models.SpendRecord, len(b.Spend)),
		Plan:        make([]models.PlanRow, len(b.Plan)),
	}
	copy(out.Enrollments, b.Enrollments)
	copy(out.Leads, b.Leads)
	copy(out.Calendar, b.Calendar)
	copy(out.Spend, b.Spend)
	copy(out.Plan, b.Plan)
	return out
}

// Brands lista las marcas conocidas en orden determinista.
func (s *MemoryStore) Brands() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for name := range s.data {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
