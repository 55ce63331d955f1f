package todos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskvault/taskvault/internal/shared"
)

// Repository provides PostgreSQL backed persistence. Owner-scoped methods
// filter on owner_id in the query itself so a missing row and a foreign row
// are indistinguishable to the caller.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const todoColumns = `id, title, description, priority, complete, owner_id`

func scanTodo(row pgx.Row) (*Todo, error) {
	var todo Todo
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Priority, &todo.Complete, &todo.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func collectTodos(rows pgx.Rows) ([]Todo, error) {
	defer rows.Close()
	var todos []Todo
	for rows.Next() {
		var todo Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Priority, &todo.Complete, &todo.OwnerID); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

// ListByOwner returns all todos owned by the given user.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]Todo, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+todoColumns+` FROM todos WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectTodos(rows)
}

// ListAll returns every todo regardless of owner.
func (r *Repository) ListAll(ctx context.Context) ([]Todo, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectTodos(rows)
}

// FindByIDAndOwner fetches a todo only when it belongs to the given owner.
func (r *Repository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*Todo, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanTodo(row)
}

// Create inserts a new todo for the owner.
func (r *Repository) Create(ctx context.Context, todo *Todo) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description, priority, complete, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.OwnerID,
	).Scan(&todo.ID)
}

// Update rewrites a todo owned by the given user.
func (r *Repository) Update(ctx context.Context, todo *Todo) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE todos SET title = $3, description = $4, priority = $5, complete = $6
		WHERE id = $1 AND owner_id = $2`,
		todo.ID, todo.OwnerID, todo.Title, todo.Description, todo.Priority, todo.Complete,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrTodoNotFound
	}
	return nil
}

// DeleteByOwner removes a todo owned by the given user.
func (r *Repository) DeleteByOwner(ctx context.Context, id, ownerID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrTodoNotFound
	}
	return nil
}

// DeleteAny removes a todo regardless of owner. Admin only.
func (r *Repository) DeleteAny(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrTodoNotFound
	}
	return nil
}
