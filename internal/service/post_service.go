package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"versepin/internal/config"
	"versepin/internal/domain"
	"versepin/internal/export"
	"versepin/internal/pinterest"
	"versepin/internal/pipeline"
	"versepin/internal/port"
)

// UploadInput is the DTO for creating a post from an uploaded image.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// PostService defines the verse-post management contract.
type PostService interface {
	CreateFromUpload(ctx context.Context, input *UploadInput) (*domain.Post, error)
	ProcessPost(ctx context.Context, post *domain.Post)
	Publish(ctx context.Context, id uuid.UUID, force bool) (*domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, status domain.PostStatus, offset, limit int) ([]domain.Post, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportCSV(ctx context.Context, w io.Writer) error
}

type postService struct {
	repo      port.PostRepository
	storage   port.ObjectStorage
	extractor port.VerseExtractor
	publisher port.PinPublisher
	email     port.EmailSender
	pipeline  *pipeline.Pipeline
	s3Cfg     *config.S3Config
	pinCfg    *config.PinterestConfig
}

// NewPostService creates a new PostService implementation.
func NewPostService(
	repo port.PostRepository,
	storage port.ObjectStorage,
	extractor port.VerseExtractor,
	publisher port.PinPublisher,
	email port.EmailSender,
	pl *pipeline.Pipeline,
	s3Cfg *config.S3Config,
	pinCfg *config.PinterestConfig,
) PostService {
	return &postService{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		publisher: publisher,
		email:     email,
		pipeline:  pl,
		s3Cfg:     s3Cfg,
		pinCfg:    pinCfg,
	}
}

func (s *postService) CreateFromUpload(ctx context.Context, input *UploadInput) (*domain.Post, error) {
	if _, ok := domain.AllowedContentTypes[input.ContentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if maxBytes := s.s3Cfg.MaxFileSizeMB << 20; input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	id := uuid.New()
	key := fmt.Sprintf("posts/%s/%s", id, filepath.Base(input.FileName))

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        input.Reader,
		ContentType: input.ContentType,
	}); err != nil {
		log.Printf("postService.CreateFromUpload: upload failed for %s: %v", input.FileName, err)
		return nil, domain.ErrUploadFailed
	}

	post := &domain.Post{
		ID:          id,
		FileName:    filepath.Base(input.FileName),
		ContentType: input.ContentType,
		SizeBytes:   input.Size,
		S3Bucket:    s.s3Cfg.Bucket,
		S3Key:       key,
		Status:      domain.PostStatusQueued,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ProcessPost runs extraction and normalization for one claimed post. It is
// one attempt per claim: any failure marks the post parse_failed and the
// operator decides whether to re-upload. Errors are recorded, not returned.
func (s *postService) ProcessPost(ctx context.Context, post *domain.Post) {
	imageBytes, err := s.storage.Download(ctx, post.S3Bucket, post.S3Key)
	if err != nil {
		s.failParsing(ctx, post, fmt.Sprintf("downloading image: %v", err))
		return
	}

	out, err := s.extractor.Extract(ctx, port.ExtractInput{
		ImageBytes:  imageBytes,
		ContentType: post.ContentType,
	})
	if err != nil {
		s.failParsing(ctx, post, fmt.Sprintf("vision extraction: %v", err))
		return
	}

	post.RawModelOutput = out.RawText
	post.ModelUsed = out.ModelUsed

	formatted, err := s.pipeline.Run(out.RawText)
	if err != nil {
		s.failParsing(ctx, post, fmt.Sprintf("normalizing model output: %v", err))
		return
	}

	now := time.Now().UTC()
	post.Status = domain.PostStatusFormatted
	post.Title = formatted.Title
	post.Description = formatted.Description
	post.AltText = formatted.AltText
	post.Confidence = formatted.Confidence
	post.ErrorText = ""
	post.FormattedAt = &now

	if err := s.repo.UpdateFormatted(ctx, post); err != nil {
		log.Printf("postService.ProcessPost: failed to save results for %s: %v", post.ID, err)
		return
	}
	log.Printf("postService.ProcessPost: post %s formatted (confidence=%s)", post.ID, post.Confidence)
}

func (s *postService) failParsing(ctx context.Context, post *domain.Post, reason string) {
	log.Printf("postService.ProcessPost: post %s parse failed: %s", post.ID, reason)

	post.Status = domain.PostStatusParseFailed
	post.ErrorText = reason
	if err := s.repo.UpdateFormatted(ctx, post); err != nil {
		log.Printf("postService.ProcessPost: failed to record parse failure for %s: %v", post.ID, err)
	}

	if s.email != nil {
		if err := s.email.SendParseFailureNotice(ctx, post.ID.String(), post.FileName, reason); err != nil {
			log.Printf("postService.ProcessPost: parse failure notice for %s: %v", post.ID, err)
		}
	}
}

// Publish validates the formatted post against the pin constraints and
// uploads it. Posts below high confidence are refused unless force is set,
// mirroring the operator confirmation in the original workflow.
func (s *postService) Publish(ctx context.Context, id uuid.UUID, force bool) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.Status == domain.PostStatusPublished {
		return nil, domain.ErrAlreadyPublished
	}
	if post.Status != domain.PostStatusFormatted && post.Status != domain.PostStatusPublishFailed {
		return nil, domain.ErrPostNotFormatted
	}
	if !force && post.Confidence != domain.ConfidenceHigh {
		return nil, domain.ErrLowConfidence
	}

	imageBytes, err := s.storage.Download(ctx, post.S3Bucket, post.S3Key)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}

	imagePath, cleanup, err := writeTempImage(post.FileName, imageBytes)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	record := &pinterest.PinRecord{
		BoardID:     s.pinCfg.BoardID,
		ImagePath:   imagePath,
		Title:       post.Title,
		Description: post.Description,
		AltText:     post.AltText,
		Tags:        append([]string(nil), s.pinCfg.DefaultTags...),
		AccessToken: s.pinCfg.AccessToken,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	result, err := s.publisher.CreatePin(ctx, record)
	if err != nil {
		s.failPublishing(ctx, post, err)
		return nil, err
	}

	now := time.Now().UTC()
	post.Status = domain.PostStatusPublished
	post.PinID = result.ID
	post.PinURL = result.URL
	post.ErrorText = ""
	post.PublishedAt = &now

	if err := s.repo.UpdatePublishState(ctx, post); err != nil {
		return nil, err
	}
	log.Printf("postService.Publish: post %s published as pin %s", post.ID, post.PinID)
	return post, nil
}

func (s *postService) failPublishing(ctx context.Context, post *domain.Post, pubErr error) {
	log.Printf("postService.Publish: post %s publish failed: %v", post.ID, pubErr)

	post.Status = domain.PostStatusPublishFailed
	post.ErrorText = pubErr.Error()
	if err := s.repo.UpdatePublishState(ctx, post); err != nil {
		log.Printf("postService.Publish: failed to record publish failure for %s: %v", post.ID, err)
	}

	if s.email != nil {
		if err := s.email.SendPublishFailureNotice(ctx, post.ID.String(), post.FileName, pubErr.Error()); err != nil {
			log.Printf("postService.Publish: publish failure notice for %s: %v", post.ID, err)
		}
	}
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context, status domain.PostStatus, offset, limit int) ([]domain.Post, int, error) {
	return s.repo.List(ctx, status, offset, limit)
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, post.S3Bucket, post.S3Key); err != nil {
		// The DB row is the source of truth; an orphaned object is logged
		// and left for a cleanup sweep.
		log.Printf("postService.Delete: deleting s3 object for %s: %v", post.ID, err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *postService) ExportCSV(ctx context.Context, w io.Writer) error {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	ew := export.NewWriter(w)
	if err := ew.WriteHeader(); err != nil {
		return err
	}
	for i := range posts {
		if err := ew.WritePost(&posts[i]); err != nil {
			return err
		}
	}
	return ew.Flush()
}

// writeTempImage materializes image bytes as a local file for the pin
// record validator, which checks path existence and readability.
func writeTempImage(fileName string, data []byte) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}
	f, err := os.CreateTemp("", "versepin-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp image: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp image: %w", err)
	}
	return path, cleanup, nil
}

// IsValidationError reports whether err is a pin record validation failure,
// so handlers can map it to a 400 instead of a 500.
func IsValidationError(err error) bool {
	var vErr *pinterest.ValidationError
	return errors.As(err, &vErr)
}
