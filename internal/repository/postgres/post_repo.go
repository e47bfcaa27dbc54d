package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"versepin/internal/domain"
	"versepin/internal/port"
)

type postRepo struct {
	db *sqlx.DB
}

// NewPostRepo creates a new PostgreSQL-backed PostRepository.
func NewPostRepo(db *sqlx.DB) port.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `INSERT INTO posts
		(id, file_name, content_type, size_bytes, s3_bucket, s3_key, status,
		 raw_model_output, model_used, title, description, alt_text, confidence,
		 pin_id, pin_url, error_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.FileName, post.ContentType, post.SizeBytes,
		post.S3Bucket, post.S3Key, post.Status,
		post.RawModelOutput, post.ModelUsed, post.Title, post.Description,
		post.AltText, post.Confidence, post.PinID, post.PinURL, post.ErrorText,
		post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postRepo.Create: %w", err)
	}
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	err := r.db.GetContext(ctx, &post, "SELECT * FROM posts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("postRepo.GetByID: %w", err)
	}
	return &post, nil
}

func (r *postRepo) List(ctx context.Context, status domain.PostStatus, offset, limit int) ([]domain.Post, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM posts "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM posts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var posts []domain.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("postRepo.List: %w", err)
	}
	return posts, total, nil
}

func (r *postRepo) ListAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.SelectContext(ctx, &posts, "SELECT * FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("postRepo.ListAll: %w", err)
	}
	return posts, nil
}

func (r *postRepo) UpdateFormatted(ctx context.Context, post *domain.Post) error {
	post.UpdatedAt = time.Now().UTC()

	query := `UPDATE posts SET
			status = $2, raw_model_output = $3, model_used = $4,
			title = $5, description = $6, alt_text = $7, confidence = $8,
			error_text = $9, formatted_at = $10, updated_at = $11
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		post.ID, post.Status, post.RawModelOutput, post.ModelUsed,
		post.Title, post.Description, post.AltText, post.Confidence,
		post.ErrorText, post.FormattedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postRepo.UpdateFormatted: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *postRepo) UpdatePublishState(ctx context.Context, post *domain.Post) error {
	post.UpdatedAt = time.Now().UTC()

	query := `UPDATE posts SET
			status = $2, pin_id = $3, pin_url = $4, error_text = $5,
			published_at = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		post.ID, post.Status, post.PinID, post.PinURL, post.ErrorText,
		post.PublishedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postRepo.UpdatePublishState: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// ClaimQueued atomically moves up to limit queued posts to processing and
// returns them. SKIP LOCKED keeps concurrent workers from claiming the
// same rows.
func (r *postRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Post, error) {
	query := `UPDATE posts SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM posts
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var posts []domain.Post
	err := r.db.SelectContext(ctx, &posts, query,
		domain.PostStatusProcessing, time.Now().UTC(), domain.PostStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("postRepo.ClaimQueued: %w", err)
	}
	return posts, nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postRepo.Delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
