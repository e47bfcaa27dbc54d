// Command pin runs the whole flow for a single local image without the
// server: transcribe, format, and optionally publish to Pinterest.
// Usage: go run ./cmd/pin -image verse.jpg [-publish] [-force] [-tags "a,b"]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"versepin/internal/config"
	"versepin/internal/domain"
	"versepin/internal/pinterest"
	"versepin/internal/pipeline"
	"versepin/internal/port"
	"versepin/internal/vision"
	_ "versepin/internal/vision/gemini"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	imagePath := flag.String("image", "", "path to the verse artwork image (required)")
	publish := flag.Bool("publish", false, "publish the pin after formatting")
	force := flag.Bool("force", false, "publish even when confidence is below high, without asking")
	tagsFlag := flag.String("tags", "", "comma-separated pin tags (default from config)")
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		return fmt.Errorf("-image is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	imageBytes, err := os.ReadFile(*imagePath)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	contentType, err := contentTypeForExt(filepath.Ext(*imagePath))
	if err != nil {
		return err
	}

	extractor, err := vision.NewExtractor(&cfg.Vision)
	if err != nil {
		return fmt.Errorf("failed to initialize vision extractor: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("transcribing %s...", *imagePath)
	out, err := extractor.Extract(ctx, port.ExtractInput{
		ImageBytes:  imageBytes,
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("vision extraction: %w", err)
	}

	formatted, err := pipeline.New(pipeline.TrinityBranding()).Run(out.RawText)
	if err != nil {
		log.Printf("raw model output:\n%s", out.RawText)
		return fmt.Errorf("normalizing model output: %w", err)
	}

	fmt.Println("Title:      ", formatted.Title)
	fmt.Println("Description:", formatted.Description)
	fmt.Println("Alt text:   ", formatted.AltText)
	fmt.Println("Confidence: ", formatted.Confidence)

	if !*publish {
		return nil
	}

	if formatted.Confidence != domain.ConfidenceHigh && !*force {
		fmt.Printf("confidence is %s; publish anyway? [y/N] ", formatted.Confidence)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("aborted")
			return nil
		}
	}

	tags := cfg.Pinterest.DefaultTags
	if *tagsFlag != "" {
		tags = nil
		for _, tag := range strings.Split(*tagsFlag, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	record := &pinterest.PinRecord{
		BoardID:     cfg.Pinterest.BoardID,
		ImagePath:   *imagePath,
		Title:       formatted.Title,
		Description: formatted.Description,
		AltText:     formatted.AltText,
		Tags:        tags,
		AccessToken: cfg.Pinterest.AccessToken,
	}
	if err := record.Validate(); err != nil {
		return err
	}

	result, err := pinterest.NewClient(&cfg.Pinterest).CreatePin(ctx, record)
	if err != nil {
		return fmt.Errorf("publishing pin: %w", err)
	}

	fmt.Println("published:", result.URL)
	return nil
}

func contentTypeForExt(ext string) (string, error) {
	ft, ok := domain.AllowedExtensions[strings.TrimPrefix(strings.ToLower(ext), ".")]
	if !ok {
		return "", fmt.Errorf("unsupported image extension %q; allowed: jpg, jpeg, png", ext)
	}
	return domain.AllowedFileTypes[ft], nil
}
