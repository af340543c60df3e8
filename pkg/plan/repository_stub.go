package plan

import (
	"context"
	"sort"
	"sync"

	"cloud.google.com/go/civil"
)

// RepositoryStub is an in-memory Repository used by service tests.
type RepositoryStub struct {
	mu             sync.RWMutex
	meals          map[MealKey]MealRecord
	notes          map[civil.Date]EventNote
	fetchMealsErr  error
	fetchNotesErr  error
	upsertErr      error
	transactionErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		meals: make(map[MealKey]MealRecord),
		notes: make(map[civil.Date]EventNote),
	}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()

	// Snapshot current state for rollback
	originalMeals := make(map[MealKey]MealRecord, len(r.meals))
	for k, v := range r.meals {
		originalMeals[k] = v
	}
	originalNotes := make(map[civil.Date]EventNote, len(r.notes))
	for k, v := range r.notes {
		originalNotes[k] = v
	}
	r.mu.Unlock()

	err := fn(r)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil || r.transactionErr != nil {
		r.meals = originalMeals
		r.notes = originalNotes
		if err != nil {
			return err
		}
		return r.transactionErr
	}
	return nil
}

func (r *RepositoryStub) FetchMeals(ctx context.Context, memberId string, from, to civil.Date) ([]MealRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.fetchMealsErr != nil {
		return nil, r.fetchMealsErr
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	var result []MealRecord
	for _, meal := range r.meals {
		if meal.MemberId == memberId && !meal.Date.Before(from) && !meal.Date.After(to) {
			result = append(result, meal)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Slot < result[j].Slot
	})
	return result, nil
}

func (r *RepositoryStub) FetchNotes(ctx context.Context, from, to civil.Date) ([]EventNote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.fetchNotesErr != nil {
		return nil, r.fetchNotesErr
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	var result []EventNote
	for _, note := range r.notes {
		if !note.Date.Before(from) && !note.Date.After(to) {
			result = append(result, note)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (r *RepositoryStub) UpsertBatch(ctx context.Context, batch WriteBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.upsertErr != nil {
		// Nothing from the batch is applied: commit failed as a whole.
		return r.upsertErr
	}

	for _, meal := range batch.Meals {
		r.meals[meal.Key()] = meal
	}
	for _, note := range batch.Notes {
		r.notes[note.Date] = note
	}
	return nil
}

// Helper methods to inject failures (for testing error paths)

func (r *RepositoryStub) SetFetchMealsError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchMealsErr = err
}

func (r *RepositoryStub) SetFetchNotesError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchNotesErr = err
}

func (r *RepositoryStub) SetUpsertError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertErr = err
}

func (r *RepositoryStub) SetTransactionError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactionErr = err
}

// GetAllMeals returns every stored meal record (useful for test assertions)
func (r *RepositoryStub) GetAllMeals() []MealRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]MealRecord, 0, len(r.meals))
	for _, meal := range r.meals {
		result = append(result, meal)
	}
	return result
}

// Reset clears the stub state (useful between tests)
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.meals = make(map[MealKey]MealRecord)
	r.notes = make(map[civil.Date]EventNote)
	r.fetchMealsErr = nil
	r.fetchNotesErr = nil
	r.upsertErr = nil
	r.transactionErr = nil
}
