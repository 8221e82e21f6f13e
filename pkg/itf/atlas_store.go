package itf

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/atlas/domain/district"
	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/domain/translation"
)

type (
	languageRow    = language.Language
	districtRow    = district.District
	typeRow        = classification.Type
	valueRow       = classification.Value
	translationRow = translation.Record
)

// assignmentRow carries the tenant id alongside the pair, mirroring the
// denormalized city_id column on the assignments table.
type assignmentRow struct {
	cityID     uuid.UUID
	assignment *classification.Assignment
}

// --- languages ---

type languageRepo struct{ s *Store }

func (s *Store) Languages() language.Repository { return &languageRepo{s} }

func (r *languageRepo) GetByID(_ context.Context, cityID, id uuid.UUID) (*language.Language, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.languages[id]
	if !ok || l.CityID() != cityID {
		return nil, language.ErrLanguageNotFound
	}
	return l, nil
}

func (r *languageRepo) GetBySlug(_ context.Context, cityID uuid.UUID, slug string) (*language.Language, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.languages {
		if l.CityID() == cityID && l.Slug() == slug {
			return l, nil
		}
	}
	return nil, language.ErrLanguageNotFound
}

func (r *languageRepo) List(_ context.Context, cityID uuid.UUID, params *language.FindParams) ([]*language.Language, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*language.Language
	for _, l := range r.s.languages {
		if l.CityID() != cityID {
			continue
		}
		if params != nil && params.Status != "" && l.Status() != params.Status {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder() != out[j].DisplayOrder() {
			return out[i].DisplayOrder() < out[j].DisplayOrder()
		}
		return out[i].Slug() < out[j].Slug()
	})
	if params != nil {
		if params.Offset > 0 {
			if params.Offset >= len(out) {
				return nil, nil
			}
			out = out[params.Offset:]
		}
		if params.Limit > 0 && params.Limit < len(out) {
			out = out[:params.Limit]
		}
	}
	return out, nil
}

func (r *languageRepo) Create(_ context.Context, l *language.Language) (*language.Language, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.languages {
		if existing.CityID() == l.CityID() && existing.Slug() == l.Slug() {
			return nil, uniqueViolation("languages_city_id_slug_key")
		}
	}
	r.s.languages[l.ID()] = l
	return l, nil
}

func (r *languageRepo) Update(_ context.Context, l *language.Language) (*language.Language, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.languages[l.ID()]
	if !ok || existing.CityID() != l.CityID() {
		return nil, language.ErrLanguageNotFound
	}
	for _, other := range r.s.languages {
		if other.ID() != l.ID() && other.CityID() == l.CityID() && other.Slug() == l.Slug() {
			return nil, uniqueViolation("languages_city_id_slug_key")
		}
	}
	r.s.languages[l.ID()] = l
	return l, nil
}

func (r *languageRepo) Delete(_ context.Context, cityID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.languages[id]
	if !ok || l.CityID() != cityID {
		return language.ErrLanguageNotFound
	}
	for _, d := range r.s.districts {
		if d.PrimaryLanguageID() != nil && *d.PrimaryLanguageID() == id {
			return fkViolation("districts_primary_language_id_fkey")
		}
	}
	delete(r.s.languages, id)
	return nil
}

// --- districts ---

type districtRepo struct{ s *Store }

func (s *Store) Districts() district.Repository { return &districtRepo{s} }

func (r *districtRepo) GetByID(_ context.Context, cityID, id uuid.UUID) (*district.District, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.districts[id]
	if !ok || d.CityID() != cityID {
		return nil, district.ErrDistrictNotFound
	}
	return d, nil
}

func (r *districtRepo) GetBySlug(_ context.Context, cityID uuid.UUID, slug string) (*district.District, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.districts {
		if d.CityID() == cityID && d.Slug() == slug {
			return d, nil
		}
	}
	return nil, district.ErrDistrictNotFound
}

func (r *districtRepo) List(_ context.Context, cityID uuid.UUID) ([]*district.District, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*district.District
	for _, d := range r.s.districts {
		if d.CityID() == cityID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder() != out[j].DisplayOrder() {
			return out[i].DisplayOrder() < out[j].DisplayOrder()
		}
		return out[i].Slug() < out[j].Slug()
	})
	return out, nil
}

func (r *districtRepo) Create(_ context.Context, d *district.District) (*district.District, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.districts {
		if existing.CityID() == d.CityID() && existing.Slug() == d.Slug() {
			return nil, uniqueViolation("districts_city_id_slug_key")
		}
	}
	if err := r.checkPrimaryLanguage(d); err != nil {
		return nil, err
	}
	r.s.districts[d.ID()] = d
	return d, nil
}

func (r *districtRepo) Update(_ context.Context, d *district.District) (*district.District, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.districts[d.ID()]
	if !ok || existing.CityID() != d.CityID() {
		return nil, district.ErrDistrictNotFound
	}
	for _, other := range r.s.districts {
		if other.ID() != d.ID() && other.CityID() == d.CityID() && other.Slug() == d.Slug() {
			return nil, uniqueViolation("districts_city_id_slug_key")
		}
	}
	if err := r.checkPrimaryLanguage(d); err != nil {
		return nil, err
	}
	r.s.districts[d.ID()] = d
	return d, nil
}

func (r *districtRepo) checkPrimaryLanguage(d *district.District) error {
	if d.PrimaryLanguageID() == nil {
		return nil
	}
	l, ok := r.s.languages[*d.PrimaryLanguageID()]
	if !ok || l.CityID() != d.CityID() {
		return fkViolation("districts_primary_language_id_fkey")
	}
	return nil
}

func (r *districtRepo) Delete(_ context.Context, cityID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.districts[id]
	if !ok || d.CityID() != cityID {
		return district.ErrDistrictNotFound
	}
	delete(r.s.districts, id)
	return nil
}

func (r *districtRepo) CountByPrimaryLanguage(_ context.Context, cityID, languageID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, d := range r.s.districts {
		if d.CityID() == cityID && d.PrimaryLanguageID() != nil && *d.PrimaryLanguageID() == languageID {
			count++
		}
	}
	return count, nil
}

// --- classification ---

type classificationRepo struct{ s *Store }

func (s *Store) Classifications() classification.Repository { return &classificationRepo{s} }

func (r *classificationRepo) GetTypeByID(_ context.Context, cityID, id uuid.UUID) (*classification.Type, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.types[id]
	if !ok || t.CityID() != cityID {
		return nil, classification.ErrTypeNotFound
	}
	return t, nil
}

func (r *classificationRepo) GetTypeBySlug(_ context.Context, cityID uuid.UUID, slug string) (*classification.Type, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.types {
		if t.CityID() == cityID && t.Slug() == slug {
			return t, nil
		}
	}
	return nil, classification.ErrTypeNotFound
}

func (r *classificationRepo) ListTypes(_ context.Context, cityID uuid.UUID) ([]*classification.Type, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*classification.Type
	for _, t := range r.s.types {
		if t.CityID() == cityID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder() != out[j].DisplayOrder() {
			return out[i].DisplayOrder() < out[j].DisplayOrder()
		}
		return out[i].Slug() < out[j].Slug()
	})
	return out, nil
}

func (r *classificationRepo) CreateType(_ context.Context, t *classification.Type) (*classification.Type, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.types {
		if existing.CityID() == t.CityID() && existing.Slug() == t.Slug() {
			return nil, uniqueViolation("classification_types_city_id_slug_key")
		}
	}
	r.s.types[t.ID()] = t
	return t, nil
}

func (r *classificationRepo) UpdateType(_ context.Context, t *classification.Type) (*classification.Type, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.types[t.ID()]
	if !ok || existing.CityID() != t.CityID() {
		return nil, classification.ErrTypeNotFound
	}
	r.s.types[t.ID()] = t
	return t, nil
}

func (r *classificationRepo) DeleteType(_ context.Context, cityID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.types[id]
	if !ok || t.CityID() != cityID {
		return classification.ErrTypeNotFound
	}
	for _, v := range r.s.values {
		if v.TypeID() == id {
			return fkViolation("classification_values_type_id_fkey")
		}
	}
	delete(r.s.types, id)
	return nil
}

func (r *classificationRepo) GetValueByID(_ context.Context, cityID, id uuid.UUID) (*classification.Value, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.values[id]
	if !ok || !r.valueInCity(v, cityID) {
		return nil, classification.ErrValueNotFound
	}
	return v, nil
}

// valueInCity resolves the tenant through the owning type, the same join the
// SQL repository performs.
func (r *classificationRepo) valueInCity(v *classification.Value, cityID uuid.UUID) bool {
	t, ok := r.s.types[v.TypeID()]
	return ok && t.CityID() == cityID
}

func (r *classificationRepo) ListValues(_ context.Context, cityID, typeID uuid.UUID) ([]*classification.Value, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*classification.Value
	for _, v := range r.s.values {
		if v.TypeID() == typeID && r.valueInCity(v, cityID) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder() != out[j].DisplayOrder() {
			return out[i].DisplayOrder() < out[j].DisplayOrder()
		}
		return out[i].Slug() < out[j].Slug()
	})
	return out, nil
}

func (r *classificationRepo) CreateValue(_ context.Context, cityID uuid.UUID, v *classification.Value) (*classification.Value, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.valueInCity(v, cityID) {
		return nil, fkViolation("classification_values_type_id_fkey")
	}
	for _, existing := range r.s.values {
		if existing.TypeID() == v.TypeID() && existing.Slug() == v.Slug() {
			return nil, uniqueViolation("classification_values_type_id_slug_key")
		}
	}
	r.s.values[v.ID()] = v
	return v, nil
}

func (r *classificationRepo) UpdateValue(_ context.Context, cityID uuid.UUID, v *classification.Value) (*classification.Value, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.values[v.ID()]
	if !ok || !r.valueInCity(existing, cityID) {
		return nil, classification.ErrValueNotFound
	}
	r.s.values[v.ID()] = v
	return v, nil
}

func (r *classificationRepo) DeleteValue(_ context.Context, cityID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.values[id]
	if !ok || !r.valueInCity(v, cityID) {
		return classification.ErrValueNotFound
	}
	for k := range r.s.assignments {
		if k.valueID == id {
			return fkViolation("classification_assignments_value_id_fkey")
		}
	}
	delete(r.s.values, id)
	return nil
}

func (r *classificationRepo) ListAssignments(_ context.Context, cityID, entityID uuid.UUID) ([]*classification.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*classification.Assignment
	for _, row := range r.s.assignments {
		if row.cityID == cityID && row.assignment.EntityID() == entityID {
			out = append(out, row.assignment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValueID().String() < out[j].ValueID().String() })
	return out, nil
}

func (r *classificationRepo) ListAssignedTypeIDs(_ context.Context, cityID, entityID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, row := range r.s.assignments {
		if row.cityID != cityID || row.assignment.EntityID() != entityID {
			continue
		}
		v, ok := r.s.values[row.assignment.ValueID()]
		if !ok || seen[v.TypeID()] {
			continue
		}
		seen[v.TypeID()] = true
		out = append(out, v.TypeID())
	}
	return out, nil
}

func (r *classificationRepo) CreateAssignment(_ context.Context, cityID uuid.UUID, a *classification.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.values[a.ValueID()]; !ok {
		return fkViolation("classification_assignments_value_id_fkey")
	}
	key := assignKey{a.EntityID(), a.ValueID()}
	if _, ok := r.s.assignments[key]; ok {
		return uniqueViolation("classification_assignments_pkey")
	}
	r.s.assignments[key] = &assignmentRow{cityID: cityID, assignment: a}
	return nil
}

func (r *classificationRepo) DeleteAssignment(_ context.Context, cityID, entityID, valueID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := assignKey{entityID, valueID}
	if row, ok := r.s.assignments[key]; ok && row.cityID == cityID {
		delete(r.s.assignments, key)
	}
	return nil
}

func (r *classificationRepo) DeleteAssignmentsOfType(_ context.Context, cityID, entityID, typeID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, row := range r.s.assignments {
		if row.cityID != cityID || row.assignment.EntityID() != entityID {
			continue
		}
		if v, ok := r.s.values[key.valueID]; ok && v.TypeID() == typeID {
			delete(r.s.assignments, key)
		}
	}
	return nil
}

func (r *classificationRepo) DeleteAssignmentsForEntity(_ context.Context, cityID, entityID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, row := range r.s.assignments {
		if row.cityID == cityID && row.assignment.EntityID() == entityID {
			delete(r.s.assignments, key)
		}
	}
	return nil
}

func (r *classificationRepo) CountAssignmentsForValue(_ context.Context, valueID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for key := range r.s.assignments {
		if key.valueID == valueID {
			count++
		}
	}
	return count, nil
}

func (r *classificationRepo) CountAssignmentsForType(_ context.Context, typeID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for key := range r.s.assignments {
		if v, ok := r.s.values[key.valueID]; ok && v.TypeID() == typeID {
			count++
		}
	}
	return count, nil
}

func (r *classificationRepo) CountValuesForType(_ context.Context, typeID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, v := range r.s.values {
		if v.TypeID() == typeID {
			count++
		}
	}
	return count, nil
}

// --- translations ---

type translationRepo struct{ s *Store }

func (s *Store) Translations() translation.Repository { return &translationRepo{s} }

func (r *translationRepo) ListFor(_ context.Context, entityID uuid.UUID) (translation.Set, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	set := translation.Set{}
	for key, record := range r.s.translations {
		if key.entityID == entityID {
			set[key.locale] = record
		}
	}
	return set, nil
}

func (r *translationRepo) Replace(_ context.Context, entityID uuid.UUID, set translation.Set) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key := range r.s.translations {
		if key.entityID == entityID {
			delete(r.s.translations, key)
		}
	}
	for locale, record := range set {
		r.s.translations[translationKey{entityID, locale}] = record
	}
	return nil
}

func (r *translationRepo) DeleteFor(_ context.Context, entityID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key := range r.s.translations {
		if key.entityID == entityID {
			delete(r.s.translations, key)
		}
	}
	return nil
}
