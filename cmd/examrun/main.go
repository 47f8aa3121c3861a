package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/images"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/llm"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/llm/openai"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/pipeline"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/repository"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/storage"
)

// examrun runs one extraction end to end against local image files, using
// the in-memory store. Useful for trying prompts and models without a
// database.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage", "cmd", "examrun <image-file> [more-images...]")
		os.Exit(2)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Error("OPENAI_API_KEY required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo := repository.NewMemoryJobRepository()
	store := storage.NewRetryingStore(storage.NewFSStore("."), logger)
	resolver := images.NewResolver(store, images.NewMemoryCache(), logger)

	models := []string{"gpt-4o", "gpt-4o-mini"}
	invokers := make([]llm.Invoker, 0, len(models))
	for _, m := range models {
		invokers = append(invokers, openai.NewClient(openai.Config{APIKey: apiKey, Model: m}, logger))
	}

	pipe := pipeline.New(repo, resolver, llm.NewCascade(invokers, logger), logger)

	job := &entity.Job{OwnerID: uuid.New(), InputRefs: os.Args[1:]}
	if err := repo.CreateJob(ctx, job); err != nil {
		logger.Error("create job", "error", err)
		os.Exit(1)
	}

	res, err := pipe.Run(ctx, job.ID)
	if err != nil {
		logger.Error("run failed", "job_id", job.ID, "error", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(res, "", "  ")
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
