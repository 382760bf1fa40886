// Package report uploads status check run reports to object storage.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"order-reconciler/core/storage"
	ordersreconcile "order-reconciler/feature/orders/reconcile"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publisher writes one JSON object per run.
type Publisher struct {
	client storage.Client
	bucket string
	region string
	prefix string
	logger *zap.Logger
}

// NewPublisher creates a publisher for the configured bucket and prefix.
func NewPublisher(client storage.Client, cfg storage.Config, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.ReportPrefix,
		logger: logger,
	}
}

// ObjectName returns the key a report is stored under:
// <prefix>/<started_at as 20060102T150405Z>-<run_id>.json
func (p *Publisher) ObjectName(r *ordersreconcile.RunReport) string {
	name := fmt.Sprintf("%s-%s.json", r.StartedAt.UTC().Format("20060102T150405Z"), r.RunID)
	return path.Join(p.prefix, name)
}

// Publish uploads the report and returns its object name.
func (p *Publisher) Publish(ctx context.Context, r *ordersreconcile.RunReport) (string, error) {
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := storage.EnsureBucket(ctx, p.client, p.bucket, p.region); err != nil {
		return "", err
	}

	name := p.ObjectName(r)
	_, err = p.client.PutObject(ctx, p.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", name, err)
	}

	p.logger.Info("Report uploaded", zap.String("bucket", p.bucket), zap.String("object", name))
	return name, nil
}
