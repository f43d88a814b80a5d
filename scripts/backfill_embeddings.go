package main

import (
	"context"
	"log"

	"nikhilsahni/resume-radar/internal/config"
	"nikhilsahni/resume-radar/internal/repositories"
	"nikhilsahni/resume-radar/internal/services"
)

// Re-indexes every stored candidate into the Qdrant collection. Useful after
// changing the embedding model or standing up a fresh vector store; the
// relational database remains the source of truth.
func main() {
	log.Println("🚀 Starting candidate embedding backfill...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	jobs, err := jobRepo.FindAll(0, 1000)
	if err != nil {
		log.Fatalf("❌ Failed to list jobs: %v", err)
	}

	successCount := 0
	failCount := 0
	skipCount := 0

	for _, job := range jobs {
		candidates, err := candidateRepo.FindByJobID(job.ID)
		if err != nil {
			log.Printf("⚠️  Failed to list candidates for job %s: %v", job.ID, err)
			continue
		}

		log.Printf("📋 Job %q: %d candidates", job.Title, len(candidates))

		for _, candidate := range candidates {
			resumeText := candidate.Analysis.ResumeText
			if resumeText == "" {
				log.Printf("   ⏭️  Skipping %s: no stored resume text", candidate.ID)
				skipCount++
				continue
			}

			embedding, err := geminiService.GenerateEmbedding(ctx, resumeText)
			if err != nil {
				log.Printf("   ❌ Failed to embed %s: %v", candidate.ID, err)
				failCount++
				continue
			}

			err = qdrantService.UpsertCandidate(
				ctx,
				candidate.ID.String(),
				candidate.JobID.String(),
				candidate.Name,
				embedding,
			)
			if err != nil {
				log.Printf("   ❌ Failed to index %s: %v", candidate.ID, err)
				failCount++
				continue
			}

			successCount++
		}
	}

	log.Printf("✅ Backfill complete: %d indexed, %d failed, %d skipped", successCount, failCount, skipCount)
}
