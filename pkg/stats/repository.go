package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Increment(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO site_stat (name, count)
			  VALUES ($1, 1)
			  ON CONFLICT (name)
			  DO UPDATE SET count = site_stat.count + 1
			  RETURNING count`
	var count int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&count); err != nil {
		err := fmt.Errorf("could not increment counter %s: %w", name, err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, name string) (int64, error) {
	query := `SELECT count FROM site_stat WHERE name = $1`
	var count int64
	err := r.db.QueryRow(ctx, query, name).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		err := fmt.Errorf("could not read counter %s: %w", name, err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}
