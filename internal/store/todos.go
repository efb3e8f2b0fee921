package store

import (
	"fmt"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// Todos loads the todo collection.
func (s *Store) Todos() []types.Todo {
	return loadCollection(s, todosFile, (*types.Todo).Backfill)
}

// SaveTodos persists the full todo collection.
func (s *Store) SaveTodos(todos []types.Todo) error {
	return saveCollection(s, todosFile, todos)
}

// AddTodo validates and appends a new todo, allocating its ID and stamping
// both timestamps.
func (s *Store) AddTodo(t types.Todo) (types.Todo, error) {
	now := s.now()
	t.Backfill(now)
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == types.TodoStatusDone && t.CompletedAt == nil {
		done := now
		t.CompletedAt = &done
	}
	if err := t.Validate(); err != nil {
		return types.Todo{}, err
	}

	todos := s.Todos()
	t.ID = s.nextID(todosFile, todoIDs(todos))
	todos = append(todos, t)
	if err := s.SaveTodos(todos); err != nil {
		return types.Todo{}, err
	}
	return t, nil
}

// TodoByID returns the todo with the given ID.
func (s *Store) TodoByID(id int) (types.Todo, error) {
	for _, t := range s.Todos() {
		if t.ID == id {
			return t, nil
		}
	}
	return types.Todo{}, fmt.Errorf("%w: todo %d", types.ErrNotFound, id)
}

// UpdateTodo replaces the stored todo with the same ID. The creation
// timestamp is preserved; the completion timestamp follows the status
// transition (stamped on entering Done, cleared on leaving it).
func (s *Store) UpdateTodo(t types.Todo) (types.Todo, error) {
	todos := s.Todos()
	idx := -1
	for i := range todos {
		if todos[i].ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.Todo{}, fmt.Errorf("%w: todo %d", types.ErrNotFound, t.ID)
	}

	now := s.now()
	old := todos[idx]
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = now
	switch {
	case t.Status != types.TodoStatusDone:
		t.CompletedAt = nil
	case old.Status == types.TodoStatusDone:
		t.CompletedAt = old.CompletedAt
	default:
		done := now
		t.CompletedAt = &done
	}
	if err := t.Validate(); err != nil {
		return types.Todo{}, err
	}

	todos[idx] = t
	if err := s.SaveTodos(todos); err != nil {
		return types.Todo{}, err
	}
	return t, nil
}

// MarkTodoDone transitions the todo to Done, stamping its completion date.
func (s *Store) MarkTodoDone(id int) (types.Todo, error) {
	t, err := s.TodoByID(id)
	if err != nil {
		return types.Todo{}, err
	}
	t.Status = types.TodoStatusDone
	return s.UpdateTodo(t)
}

// RemoveTodo rewrites the collection without the given todo.
func (s *Store) RemoveTodo(id int) error {
	todos := s.Todos()
	kept := todos[:0]
	found := false
	for _, t := range todos {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("%w: todo %d", types.ErrNotFound, id)
	}
	return s.SaveTodos(kept)
}

// ListTodos returns the todos matching the filter, ordered by priority rank
// then ID, or newest first.
func (s *Store) ListTodos(filter query.TodoFilter, newestFirst bool) []types.Todo {
	matched := query.Filter(s.Todos(), filter.Match)
	query.SortTodos(matched, newestFirst)
	return matched
}

func todoIDs(todos []types.Todo) []int {
	ids := make([]int, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	return ids
}
