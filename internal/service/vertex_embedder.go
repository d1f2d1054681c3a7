package service

import (
	"context"
	"fmt"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// Embedding task types understood by the Vertex text-embedding models.
// Queries and stored documents must use matching task types so their vectors
// live in the same space.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// VertexEmbedder generates embeddings through the Vertex AI prediction API.
type VertexEmbedder struct {
	client    *aiplatform.PredictionClient
	modelName string
	taskType  string
}

// VertexEmbedderConfig carries the construction parameters; all fields except
// CredentialsFile are required.
type VertexEmbedderConfig struct {
	ProjectID       string
	Location        string
	Model           string // e.g. "text-embedding-005"
	TaskType        string // TaskRetrievalQuery or TaskRetrievalDocument
	CredentialsFile string // empty → ambient credentials
}

// NewVertexEmbedder creates an embedder bound to one model and task type.
// The server uses TaskRetrievalQuery; cmd/ingest uses TaskRetrievalDocument.
func NewVertexEmbedder(ctx context.Context, cfg VertexEmbedderConfig) (*VertexEmbedder, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := aiplatform.NewPredictionClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	modelName := fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
		cfg.ProjectID, cfg.Location, cfg.Model)

	return &VertexEmbedder{
		client:    client,
		modelName: modelName,
		taskType:  cfg.TaskType,
	}, nil
}

// Embed generates an embedding vector for the input text. Empty or
// whitespace-only input short-circuits with ErrEmptyInput before any remote
// call. A single attempt is made; failures propagate to the caller.
func (v *VertexEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	instance, err := structpb.NewStruct(map[string]interface{}{
		"content":   text,
		"task_type": v.taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create instance: %w", err)
	}

	req := &aiplatformpb.PredictRequest{
		Endpoint:  v.modelName,
		Instances: []*structpb.Value{structpb.NewStructValue(instance)},
	}

	resp, err := v.client.Predict(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("no predictions returned")
	}

	prediction := resp.Predictions[0].GetStructValue()
	embeddings := prediction.GetFields()["embeddings"].GetStructValue()
	values := embeddings.GetFields()["values"].GetListValue().GetValues()

	result := make([]float32, len(values))
	for i, val := range values {
		result[i] = float32(val.GetNumberValue())
	}

	return result, nil
}

// Close releases the Vertex AI client resources.
func (v *VertexEmbedder) Close() error {
	return v.client.Close()
}
