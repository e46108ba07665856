// Package store implements a generic repository over a single
// gorm-mapped table. Filter, search and update maps are keyed by column
// name and checked against an explicit per-entity whitelist before any
// SQL is built from them.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

var (
	// ErrUnknownColumn is returned when a filter, search or update map
	// names a column outside the entity's whitelist.
	ErrUnknownColumn = errors.New("store: unknown column")

	// ErrMultipleResults is returned by GetOne when the filters match
	// more than one row.
	ErrMultipleResults = errors.New("store: filters matched multiple rows")
)

// DefaultLimit caps GetAll result sets when the caller passes no limit.
const DefaultLimit = 100

// Store is a repository for one entity type backed by its table.
type Store[T any] struct {
	db      *gorm.DB
	columns map[string]struct{}
}

// New builds a store over db restricted to the given column whitelist.
func New[T any](db *gorm.DB, columns []string) *Store[T] {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &Store[T]{db: db, columns: set}
}

// WithDB returns a copy of the store bound to db, typically an open
// transaction.
func (s *Store[T]) WithDB(db *gorm.DB) *Store[T] {
	return &Store[T]{db: db, columns: s.columns}
}

func (s *Store[T]) checkColumn(name string) error {
	if _, ok := s.columns[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return nil
}

// sortedKeys keeps the generated SQL deterministic regardless of map
// iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll fetches rows matching all equality filters and, when
// searchTerms is non-empty, at least one substring match among the
// given columns. An empty result is an empty slice, never an error.
func (s *Store[T]) GetAll(ctx context.Context, filters map[string]any, searchTerms map[string]string, skip, limit int) ([]T, error) {
	q := s.db.WithContext(ctx).Model(new(T))
	for _, col := range sortedKeys(filters) {
		if err := s.checkColumn(col); err != nil {
			return nil, err
		}
		q = q.Where(col+" = ?", filters[col])
	}
	if len(searchTerms) > 0 {
		var or *gorm.DB
		for _, col := range sortedKeys(searchTerms) {
			if err := s.checkColumn(col); err != nil {
				return nil, err
			}
			pattern := "%" + searchTerms[col] + "%"
			if or == nil {
				or = s.db.Where(col+" LIKE ?", pattern)
			} else {
				or = or.Or(col + " LIKE ?", pattern)
			}
		}
		q = q.Where(or)
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := []T{}
	if err := q.Order("id").Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a row by primary key. A missing row is (nil, nil).
func (s *Store[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var e T
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetOne fetches the single row matching all equality filters. A
// missing row is (nil, nil); more than one match is ErrMultipleResults.
func (s *Store[T]) GetOne(ctx context.Context, filters map[string]any) (*T, error) {
	q := s.db.WithContext(ctx).Model(new(T))
	for _, col := range sortedKeys(filters) {
		if err := s.checkColumn(col); err != nil {
			return nil, err
		}
		q = q.Where(col+" = ?", filters[col])
	}
	var rows []T
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, ErrMultipleResults
	}
}

// Create inserts e and fills its generated id and defaults.
func (s *Store[T]) Create(ctx context.Context, e *T) (*T, error) {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies only the columns present in fields to e and returns
// the updated entity. Columns absent from fields are left untouched.
func (s *Store[T]) Update(ctx context.Context, e *T, fields map[string]any) (*T, error) {
	for _, col := range sortedKeys(fields) {
		if err := s.checkColumn(col); err != nil {
			return nil, err
		}
	}
	if err := s.db.WithContext(ctx).Model(e).Updates(fields).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the row with the given id and returns it. A second
// call for the same id returns (nil, nil).
func (s *Store[T]) Delete(ctx context.Context, id uint) (*T, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}
