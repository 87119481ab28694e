package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eringen/blogpost/blog"
)

const postColumns = `id, title, content, user_id, email, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (blog.Post, error) {
	var p blog.Post
	var created timeValue
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorEmail, &created); err != nil {
		return blog.Post{}, err
	}
	p.CreatedAt = created.t
	return p, nil
}

// ListPosts returns all posts ordered by creation time descending.
func (s *Store) ListPosts(ctx context.Context) ([]blog.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM blogs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []blog.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a single post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (blog.Post, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+postColumns+` FROM blogs WHERE id = ?`), id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return blog.Post{}, blog.ErrNotFound
	}
	return p, err
}

// InsertPost stores a new post and returns it with its id and timestamp.
func (s *Store) InsertPost(ctx context.Context, np blog.NewPost) (blog.Post, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`INSERT INTO blogs (title, content, user_id, email, created_at) VALUES (?, ?, ?, ?, ?) RETURNING `+postColumns),
		np.Title, np.Content, np.AuthorID, np.AuthorEmail, s.timestamp())
	return scanPost(row)
}

// UpdatePost changes title and content. The author is left alone.
func (s *Store) UpdatePost(ctx context.Context, id int64, ch blog.PostChanges) (blog.Post, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`UPDATE blogs SET title = ?, content = ? WHERE id = ? RETURNING `+postColumns),
		ch.Title, ch.Content, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return blog.Post{}, blog.ErrNotFound
	}
	return p, err
}

// DeletePost removes a post by id. Deleting a missing post is not an error.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM blogs WHERE id = ?`), id)
	return err
}
