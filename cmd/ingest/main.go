// Command ingest populates the knowledge collection from a JSONL corpus.
// Each line is {"text": "...", "category": "...", "approvedBy": "...",
// "source": "..."}; passages are embedded with the document task type so
// they align with query-time embeddings.
//
// The chat flow treats the knowledge index as read-only; this tool is the
// only writer.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/kovaldeepai/server/internal/config"
	"github.com/kovaldeepai/server/internal/database"
	"github.com/kovaldeepai/server/internal/models"
	"github.com/kovaldeepai/server/internal/repository"
	"github.com/kovaldeepai/server/internal/service"
)

const batchSize = 50

type passageLine struct {
	Text       string `json:"text"`
	Category   string `json:"category"`
	ApprovedBy string `json:"approvedBy"`
	Source     string `json:"source"`
}

func main() {
	file := flag.String("file", "", "path to the JSONL corpus (required)")
	flag.Parse()
	if *file == "" {
		log.Fatal("usage: ingest -file corpus.jsonl")
	}

	cfg := config.Load()
	if cfg.ProjectID == "" {
		log.Fatal("GCP_PROJECT_ID is required for ingestion")
	}

	client, ctx, cancel, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancel()
	defer client.Disconnect(ctx)

	repo := repository.NewKnowledgeRepository(client.Database(cfg.DBName))

	embedder, err := service.NewVertexEmbedder(context.Background(), service.VertexEmbedderConfig{
		ProjectID:       cfg.ProjectID,
		Location:        cfg.Location,
		Model:           cfg.EmbedModel,
		TaskType:        service.TaskRetrievalDocument,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}
	defer embedder.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open corpus: %v", err)
	}
	defer f.Close()

	var (
		batch    []models.KnowledgePassage
		total    int
		skipped  int
		scanner  = bufio.NewScanner(f)
		ingestCx = context.Background()
	)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p passageLine
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			log.Printf("Skipping malformed line: %v", err)
			skipped++
			continue
		}
		if len(strings.TrimSpace(p.Text)) < 10 {
			skipped++
			continue
		}

		vec, err := embedder.Embed(ingestCx, p.Text)
		if err != nil {
			log.Printf("Skipping passage (embedding failed): %v", err)
			skipped++
			continue
		}

		approvedBy := p.ApprovedBy
		if approvedBy == "" {
			approvedBy = cfg.KnowledgeApprover
		}
		batch = append(batch, models.KnowledgePassage{
			Text:       p.Text,
			Category:   p.Category,
			ApprovedBy: approvedBy,
			Source:     p.Source,
			Embedding:  vec,
		})

		if len(batch) >= batchSize {
			if err := repo.InsertMany(ingestCx, batch); err != nil {
				log.Fatalf("Insert failed: %v", err)
			}
			total += len(batch)
			log.Printf("Ingested %d passages so far", total)
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed reading corpus: %v", err)
	}

	if len(batch) > 0 {
		if err := repo.InsertMany(ingestCx, batch); err != nil {
			log.Fatalf("Insert failed: %v", err)
		}
		total += len(batch)
	}

	log.Printf("Done: %d passages ingested, %d skipped", total, skipped)
}
