package plan

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mealweek/mealweek/internal/test_utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, string) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepo(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	memberId := "Family"
	return ctx, repository, memberId
}

func TestRepositoryImpl_FetchMeals(t *testing.T) {
	t.Run("should return meals within the date range", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		weekStart := civil.Date{Year: 2026, Month: time.January, Day: 5}
		meals := []MealRecord{
			{MemberId: memberId, Date: weekStart, Slot: Breakfast, Description: "Idli"},
			{MemberId: memberId, Date: weekStart, Slot: Dinner, Description: "Chapati"},
			{MemberId: memberId, Date: weekStart.AddDays(3), Slot: Lunch, Description: "Rice and sambar"},
			{MemberId: memberId, Date: weekStart.AddDays(7), Slot: Breakfast, Description: "Next week dosa"},
		}
		err := repo.UpsertBatch(ctx, WriteBatch{Meals: meals})
		require.NoError(t, err)

		// when
		fetched, err := repo.FetchMeals(ctx, memberId, weekStart, weekStart.AddDays(6))

		// then
		require.NoError(t, err)
		require.Len(t, fetched, 3)
		require.Equal(t, meals[0], fetched[0])
		require.Equal(t, meals[1], fetched[1])
		require.Equal(t, meals[2], fetched[2])
	})

	t.Run("should not return meals of other members", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.January, Day: 5}
		err := repo.UpsertBatch(ctx, WriteBatch{Meals: []MealRecord{
			{MemberId: memberId, Date: date, Slot: Breakfast, Description: "Idli"},
			{MemberId: "Guests", Date: date, Slot: Breakfast, Description: "Toast"},
		}})
		require.NoError(t, err)

		// when
		fetched, err := repo.FetchMeals(ctx, memberId, date, date)

		// then
		require.NoError(t, err)
		require.Len(t, fetched, 1)
		require.Equal(t, "Idli", fetched[0].Description)
	})

	t.Run("should return nil when the range is empty", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.June, Day: 1}

		// when
		fetched, err := repo.FetchMeals(ctx, memberId, date, date.AddDays(6))

		// then
		require.NoError(t, err)
		require.Nil(t, fetched)
	})

	t.Run("should reject an inverted range", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.June, Day: 1}

		// when
		_, err := repo.FetchMeals(ctx, memberId, date, date.AddDays(-1))

		// then
		require.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestRepositoryImpl_FetchNotes(t *testing.T) {
	t.Run("should return notes within the date range", func(t *testing.T) {
		// given
		ctx, repo, _ := setupTestRepository(t)
		weekStart := civil.Date{Year: 2026, Month: time.January, Day: 5}
		notes := []EventNote{
			{Date: weekStart, Note: "School reopens"},
			{Date: weekStart.AddDays(2), Note: "Guests for dinner"},
			{Date: weekStart.AddDays(9), Note: "Out of range"},
		}
		err := repo.UpsertBatch(ctx, WriteBatch{Notes: notes})
		require.NoError(t, err)

		// when
		fetched, err := repo.FetchNotes(ctx, weekStart, weekStart.AddDays(6))

		// then
		require.NoError(t, err)
		require.Len(t, fetched, 2)
		require.Equal(t, notes[0], fetched[0])
		require.Equal(t, notes[1], fetched[1])
	})

	t.Run("should preserve an empty note", func(t *testing.T) {
		// given
		ctx, repo, _ := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.November, Day: 8}
		err := repo.UpsertBatch(ctx, WriteBatch{Notes: []EventNote{{Date: date, Note: ""}}})
		require.NoError(t, err)

		// when
		fetched, err := repo.FetchNotes(ctx, date, date)

		// then
		require.NoError(t, err)
		require.Len(t, fetched, 1)
		require.Equal(t, "", fetched[0].Note)
	})

	t.Run("should reject an inverted range", func(t *testing.T) {
		// given
		ctx, repo, _ := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.June, Day: 1}

		// when
		_, err := repo.FetchNotes(ctx, date, date.AddDays(-1))

		// then
		require.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestRepositoryImpl_UpsertBatch(t *testing.T) {
	t.Run("should overwrite an existing meal at the same slot", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.January, Day: 5}
		original := MealRecord{MemberId: memberId, Date: date, Slot: Breakfast, Description: "Idli"}
		err := repo.UpsertBatch(ctx, WriteBatch{Meals: []MealRecord{original}})
		require.NoError(t, err)

		// when
		replacement := original
		replacement.Description = "Dosa"
		err = repo.UpsertBatch(ctx, WriteBatch{Meals: []MealRecord{replacement}})

		// then
		require.NoError(t, err)
		fetched, err := repo.FetchMeals(ctx, memberId, date, date)
		require.NoError(t, err)
		require.Len(t, fetched, 1)
		require.Equal(t, "Dosa", fetched[0].Description)
	})

	t.Run("should overwrite an existing note at the same date", func(t *testing.T) {
		// given
		ctx, repo, _ := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.January, Day: 5}
		err := repo.UpsertBatch(ctx, WriteBatch{Notes: []EventNote{{Date: date, Note: "First"}}})
		require.NoError(t, err)

		// when
		err = repo.UpsertBatch(ctx, WriteBatch{Notes: []EventNote{{Date: date, Note: "Second"}}})

		// then
		require.NoError(t, err)
		fetched, err := repo.FetchNotes(ctx, date, date)
		require.NoError(t, err)
		require.Len(t, fetched, 1)
		require.Equal(t, "Second", fetched[0].Note)
	})

	t.Run("should write meals and notes together", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.January, Day: 5}
		batch := WriteBatch{
			Meals: []MealRecord{
				{MemberId: memberId, Date: date, Slot: Breakfast, Description: "Idli"},
				{MemberId: memberId, Date: date, Slot: Lunch, Description: "Curd rice"},
				{MemberId: memberId, Date: date, Slot: Dinner, Description: "Chapati"},
			},
			Notes: []EventNote{{Date: date, Note: "Busy Monday"}},
		}

		// when
		err := repo.UpsertBatch(ctx, batch)

		// then
		require.NoError(t, err)
		meals, err := repo.FetchMeals(ctx, memberId, date, date)
		require.NoError(t, err)
		require.Len(t, meals, 3)
		notes, err := repo.FetchNotes(ctx, date, date)
		require.NoError(t, err)
		require.Len(t, notes, 1)
	})

	t.Run("should be a no-op for an empty batch", func(t *testing.T) {
		// given
		ctx, repo, _ := setupTestRepository(t)

		// when
		err := repo.UpsertBatch(ctx, WriteBatch{})

		// then
		require.NoError(t, err)
	})
}

func TestRepositoryImpl_WithTransaction(t *testing.T) {
	t.Run("should commit transaction on success", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.January, Day: 5}
		meal := MealRecord{MemberId: memberId, Date: date, Slot: Breakfast, Description: "Idli"}

		// when
		err := repo.WithTransaction(ctx, func(txRepo Repository) error {
			return txRepo.UpsertBatch(ctx, WriteBatch{Meals: []MealRecord{meal}})
		})

		// then
		require.NoError(t, err)
		meals, err := repo.FetchMeals(ctx, memberId, date, date)
		require.NoError(t, err)
		require.Len(t, meals, 1)
	})

	t.Run("should rollback transaction on error", func(t *testing.T) {
		// given
		ctx, repo, memberId := setupTestRepository(t)
		date := civil.Date{Year: 2026, Month: time.January, Day: 5}
		meal := MealRecord{MemberId: memberId, Date: date, Slot: Breakfast, Description: "Idli"}

		// when
		err := repo.WithTransaction(ctx, func(txRepo Repository) error {
			if err := txRepo.UpsertBatch(ctx, WriteBatch{Meals: []MealRecord{meal}}); err != nil {
				return err
			}
			return errors.New("intentional error to trigger rollback")
		})

		// then
		require.Error(t, err)
		require.Equal(t, "intentional error to trigger rollback", err.Error())

		meals, err := repo.FetchMeals(ctx, memberId, date, date)
		require.NoError(t, err)
		require.Len(t, meals, 0)
	})
}
