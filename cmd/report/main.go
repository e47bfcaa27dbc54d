// Command report exports the post history from Postgres as an Excel workbook.
// Usage: go run ./cmd/report [output.xlsx]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"versepin/internal/config"
	"versepin/internal/domain"
	"versepin/internal/repository/postgres"
)

const sheetName = "Posts"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := "posts_report.xlsx"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := postgres.NewPostRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	posts, err := repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing posts: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headers := []string{
		"File Name", "Status", "Title", "Description", "Alt Text",
		"Confidence", "Model", "Pin ID", "Pin URL", "Error",
		"Formatted At", "Published At", "Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for row, post := range posts {
		values := []interface{}{
			post.FileName,
			string(post.Status),
			post.Title,
			post.Description,
			post.AltText,
			string(post.Confidence),
			post.ModelUsed,
			post.PinID,
			post.PinURL,
			post.ErrorText,
			formatTime(post.FormattedAt),
			formatTime(post.PublishedAt),
			post.CreatedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row+2, err)
			}
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	log.Printf("wrote %d posts to %s (published: %d)", len(posts), outPath, countByStatus(posts, domain.PostStatusPublished))
	return nil
}

func countByStatus(posts []domain.Post, status domain.PostStatus) int {
	n := 0
	for _, p := range posts {
		if p.Status == status {
			n++
		}
	}
	return n
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
