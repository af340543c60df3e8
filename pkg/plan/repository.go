package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidRange = errors.New("range start date is after end date")

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// FetchMeals returns all meal records for the member with a date in the
	// inclusive range [from, to].
	FetchMeals(ctx context.Context, memberId string, from, to civil.Date) ([]MealRecord, error)
	// FetchNotes returns all event notes with a date in the inclusive range
	// [from, to].
	FetchNotes(ctx context.Context, from, to civil.Date) ([]EventNote, error)
	// UpsertBatch commits every write in the batch as one transaction: either
	// all records take effect or none do. Existing records at the same
	// identity are overwritten.
	UpsertBatch(ctx context.Context, batch WriteBatch) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepo(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *repositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	// Nested calls join the transaction already in progress
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &repositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *repositoryImpl) FetchMeals(ctx context.Context, memberId string, from, to civil.Date) ([]MealRecord, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	query := `SELECT member_id, date, meal_type, description
			  FROM meal
			  WHERE member_id = $1 AND date >= $2 AND date <= $3
			  ORDER BY date, meal_type`
	rows, err := r.getQueryer().Query(ctx, query, memberId, from.In(time.UTC), to.In(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("could not fetch meals: %w", err)
	}
	defer rows.Close()

	var meals []MealRecord
	for rows.Next() {
		var date time.Time
		var mealType string
		var meal MealRecord
		if err := rows.Scan(&meal.MemberId, &date, &mealType, &meal.Description); err != nil {
			return nil, fmt.Errorf("could not scan meal record: %w", err)
		}
		meal.Date = civil.DateOf(date)
		meal.Slot, err = ParseMealSlot(mealType)
		if err != nil {
			return nil, fmt.Errorf("could not parse meal record: %w", err)
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not fetch meals: %w", err)
	}
	return meals, nil
}

func (r *repositoryImpl) FetchNotes(ctx context.Context, from, to civil.Date) ([]EventNote, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	query := `SELECT date, note
			  FROM event_note
			  WHERE date >= $1 AND date <= $2
			  ORDER BY date`
	rows, err := r.getQueryer().Query(ctx, query, from.In(time.UTC), to.In(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("could not fetch notes: %w", err)
	}
	defer rows.Close()

	var notes []EventNote
	for rows.Next() {
		var date time.Time
		var note EventNote
		if err := rows.Scan(&date, &note.Note); err != nil {
			return nil, fmt.Errorf("could not scan event note: %w", err)
		}
		note.Date = civil.DateOf(date)
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not fetch notes: %w", err)
	}
	return notes, nil
}

func (r *repositoryImpl) UpsertBatch(ctx context.Context, batch WriteBatch) error {
	if batch.Empty() {
		return nil
	}
	return r.WithTransaction(ctx, func(repo Repository) error {
		txRepo := repo.(*repositoryImpl)
		if err := txRepo.upsertMeals(ctx, batch.Meals); err != nil {
			return err
		}
		return txRepo.upsertNotes(ctx, batch.Notes)
	})
}

func (r *repositoryImpl) upsertMeals(ctx context.Context, meals []MealRecord) error {
	if len(meals) == 0 {
		return nil
	}

	var valuesBuilder strings.Builder
	args := make([]any, 0, len(meals)*4)
	placeholder := 1
	for idx, meal := range meals {
		if idx > 0 {
			valuesBuilder.WriteByte(',')
		}
		valuesBuilder.WriteString("(")
		for i := 0; i < 4; i++ {
			if i > 0 {
				valuesBuilder.WriteByte(',')
			}
			fmt.Fprintf(&valuesBuilder, "$%d", placeholder)
			placeholder++
		}
		valuesBuilder.WriteString(")")

		args = append(args,
			meal.MemberId,
			meal.Date.In(time.UTC),
			string(meal.Slot),
			meal.Description,
		)
	}

	query := fmt.Sprintf(`INSERT INTO meal (member_id, date, meal_type, description)
				VALUES %s
				ON CONFLICT (member_id, date, meal_type)
				DO UPDATE SET description = EXCLUDED.description`, valuesBuilder.String())

	if _, err := r.getQueryer().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("could not upsert meals: %w", err)
	}
	return nil
}

func (r *repositoryImpl) upsertNotes(ctx context.Context, notes []EventNote) error {
	query := `INSERT INTO event_note (date, note)
			  VALUES ($1, $2)
			  ON CONFLICT (date)
			  DO UPDATE SET note = EXCLUDED.note`
	for _, note := range notes {
		if _, err := r.getQueryer().Exec(ctx, query, note.Date.In(time.UTC), note.Note); err != nil {
			return fmt.Errorf("could not upsert note for %s: %w", note.Date, err)
		}
	}
	return nil
}
