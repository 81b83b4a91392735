package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Storage implémente Store sur PostgreSQL. Hors transaction q est la base,
// dans InTx q est la transaction courante.
type Storage struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db, q: db}
}

// New ouvre le pool de connexions et vérifie qu'il répond.
func New(addr string, maxOpenConns, maxIdleConns int, maxIdleTime string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", addr)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	duration, err := time.ParseDuration(maxIdleTime)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("invalid max idle time %q: %w", maxIdleTime, err)
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func (s *Storage) InTx(ctx context.Context, fn func(q Queries) error) error {
	if _, nested := s.q.(*sqlx.Tx); nested {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Storage{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Storage) get(ctx context.Context, dest any, query string, args ...any) error {
	return mapError(sqlx.GetContext(ctx, s.q, dest, query, args...))
}

func (s *Storage) list(ctx context.Context, dest any, query string, args ...any) error {
	return mapError(sqlx.SelectContext(ctx, s.q, dest, query, args...))
}

// insert exécute un INSERT ... RETURNING id.
func (s *Storage) insert(ctx context.Context, id *int, query string, args ...any) error {
	return mapError(s.q.QueryRowxContext(ctx, query, args...).Scan(id))
}

// exec renvoie ErrNotFound si aucune ligne n'a été touchée.
func (s *Storage) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	return affected(res)
}

func (s *Storage) execAny(ctx context.Context, query string, args ...any) error {
	_, err := s.q.ExecContext(ctx, query, args...)
	return mapError(err)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
