package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"order-reconciler/core/reconcile"
	"order-reconciler/core/storage"
	"order-reconciler/core/storage/mocks"
	ordersreconcile "order-reconciler/feature/orders/reconcile"
	"order-reconciler/feature/report"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReport() *ordersreconcile.RunReport {
	return &ordersreconcile.RunReport{
		RunID:      "run-1",
		StartedAt:  time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		FinishedAt: time.Date(2026, 2, 3, 4, 5, 9, 0, time.UTC),
		Candidates: 2,
		Dispatched: 2,
		Summary: reconcile.Summary{
			Total:    2,
			Outcomes: map[reconcile.Outcome]int{reconcile.OutcomeUpdated: 1, reconcile.OutcomeUnchanged: 1},
		},
	}
}

func TestPublisher_Publish(t *testing.T) {
	client := new(mocks.Client)
	cfg := storage.Config{Bucket: "reports", ReportPrefix: "status-checks"}

	var uploaded []byte
	client.On("BucketExists", mock.Anything, "reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "reports", "status-checks/20260203T040506Z-run-1.json", mock.Anything, mock.Anything, mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/json"
	})).Run(func(args mock.Arguments) {
		uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
	}).Return(minio.UploadInfo{}, nil)

	name, err := report.NewPublisher(client, cfg, nil).Publish(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "status-checks/20260203T040506Z-run-1.json", name)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(uploaded)).Decode(&decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.EqualValues(t, 2, decoded["candidates"])
	outcomes := decoded["summary"].(map[string]any)["outcomes"].(map[string]any)
	assert.EqualValues(t, 1, outcomes["updated"])
	client.AssertExpectations(t)
}

func TestPublisher_CreatesBucket(t *testing.T) {
	client := new(mocks.Client)
	cfg := storage.Config{Bucket: "reports", Region: "eu-central-1", ReportPrefix: "runs"}

	client.On("BucketExists", mock.Anything, "reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "reports", minio.MakeBucketOptions{Region: "eu-central-1"}).Return(nil)
	client.On("PutObject", mock.Anything, "reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	_, err := report.NewPublisher(client, cfg, nil).Publish(context.Background(), sampleReport())
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPublisher_UploadFails(t *testing.T) {
	client := new(mocks.Client)
	cfg := storage.Config{Bucket: "reports", ReportPrefix: "runs"}

	client.On("BucketExists", mock.Anything, "reports").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, errors.New("access denied"))

	_, err := report.NewPublisher(client, cfg, nil).Publish(context.Background(), sampleReport())
	assert.ErrorContains(t, err, "access denied")
}
