package main

import (
	"context"
	"log"
	"time"

	"hireflow/ats-matching/internal/config"
	"hireflow/ats-matching/internal/repositories"
	"hireflow/ats-matching/internal/services"
)

// Regenerates embeddings for jobs and candidates that do not have one yet,
// e.g. records created before the vector store existed or left behind by a
// failed write.
func main() {
	log.Println("🚀 Starting embedding backfill...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewQdrantVectorStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	embedder := services.NewEmbeddingService(geminiService)
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)

	ctx := context.Background()

	jobs, err := jobRepo.FindMissingEmbeddings(500)
	if err != nil {
		log.Fatalf("❌ Failed to list jobs: %v", err)
	}

	for _, job := range jobs {
		vector, err := embedder.GenerateJobEmbedding(ctx, &job)
		if err != nil {
			log.Printf("⚠️  Failed to embed job %s: %v\n", job.ID, err)
			continue
		}
		if err := vectorStore.UpsertEmbedding(ctx, services.EntityTypeJob, job.ID, job.CompanyID, vector); err != nil {
			log.Printf("⚠️  Failed to store embedding for job %s: %v\n", job.ID, err)
			continue
		}
		if err := jobRepo.MarkEmbedded(job.ID, time.Now()); err != nil {
			log.Printf("⚠️  Failed to mark job %s embedded: %v\n", job.ID, err)
			continue
		}
		log.Printf("✅ Embedded job %s (%s)\n", job.ID, job.Title)
	}

	candidates, err := candidateRepo.FindMissingEmbeddings(500)
	if err != nil {
		log.Fatalf("❌ Failed to list candidates: %v", err)
	}

	for _, candidate := range candidates {
		// Candidates with no parsed profile yet have nothing to embed
		if services.CanonicalCandidateText(&candidate) == "" {
			continue
		}

		vector, err := embedder.GenerateCandidateEmbedding(ctx, &candidate)
		if err != nil {
			log.Printf("⚠️  Failed to embed candidate %s: %v\n", candidate.ID, err)
			continue
		}
		if err := vectorStore.UpsertEmbedding(ctx, services.EntityTypeCandidate, candidate.ID, candidate.CompanyID, vector); err != nil {
			log.Printf("⚠️  Failed to store embedding for candidate %s: %v\n", candidate.ID, err)
			continue
		}
		if err := candidateRepo.MarkEmbedded(candidate.ID, time.Now()); err != nil {
			log.Printf("⚠️  Failed to mark candidate %s embedded: %v\n", candidate.ID, err)
			continue
		}
		log.Printf("✅ Embedded candidate %s\n", candidate.ID)
	}

	log.Println("🎉 Embedding backfill completed")
}
