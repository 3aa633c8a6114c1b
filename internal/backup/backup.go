// Package backup uploads encrypted inventory snapshots to S3-compatible
// storage on a daily schedule.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/mystock-app/mystock/internal/exchange"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Exporter produces the snapshot payload. *docstore.Store behind
// exchange.Export satisfies it in production.
type Exporter interface {
	Export(ctx context.Context) ([]byte, error)
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context) ([]byte, error)

func (f ExporterFunc) Export(ctx context.Context) ([]byte, error) { return f(ctx) }

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Config holds backup manager configuration.
type Config struct {
	S3 S3Config
	// Passphrase encrypts snapshots when non-empty.
	Passphrase string
	// ScheduleHour is the UTC hour of the daily run.
	ScheduleHour int
	// RetentionDays bounds how long snapshots are kept; 0 means forever.
	RetentionDays int
}

// State represents the backup manager state.
type State string

const (
	StateDisabled State = "disabled"
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State        State      `json:"state"`
	LastSnapshot *time.Time `json:"lastSnapshot,omitempty"`
	LastKey      string     `json:"lastKey,omitempty"`
	Error        string     `json:"error,omitempty"`
	InProgress   bool       `json:"inProgress"`
}

// StatusCallback is called whenever the backup state changes.
type StatusCallback func(Status)

// Manager schedules and runs snapshot uploads.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	status   Status
	callback StatusCallback

	exporter Exporter
	client   s3Client
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a backup manager. It stays disabled until the S3
// configuration is complete.
func NewManager(cfg Config, exporter Exporter, logger *slog.Logger, callback StatusCallback) *Manager {
	m := &Manager{
		cfg:      cfg,
		exporter: exporter,
		logger:   logger,
		callback: callback,
		status:   Status{State: StateDisabled},
	}

	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		m.client = newS3Client(cfg.S3)
		m.status.State = StateIdle
	}

	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Enabled reports whether the manager has a working S3 target.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client != nil
}

// Start begins the scheduled snapshot loop.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.client == nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.checkSchedule(ctx)
			}
		}
	}()
}

// Stop gracefully stops the backup manager.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	if s.LastSnapshot == nil {
		s.LastSnapshot = m.status.LastSnapshot
	}
	if s.LastKey == "" {
		s.LastKey = m.status.LastKey
	}
	m.status = s
	m.mu.Unlock()
	if m.callback != nil {
		m.callback(s)
	}
}

func (m *Manager) checkSchedule(ctx context.Context) {
	now := time.Now().UTC()
	if now.Hour() != m.cfg.ScheduleHour || now.Minute() != 0 {
		return
	}

	if _, err := m.RunNow(ctx); err != nil {
		m.logger.Error("scheduled snapshot failed", "error", err)
	}
	if err := m.Cleanup(ctx); err != nil {
		m.logger.Error("snapshot cleanup failed", "error", err)
	}
}

// RunNow exports, optionally encrypts, and uploads a snapshot immediately.
// It returns the object key of the uploaded snapshot.
func (m *Manager) RunNow(ctx context.Context) (string, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil {
		return "", fmt.Errorf("backup not configured: S3 credentials missing")
	}

	m.setStatus(Status{State: StateRunning, InProgress: true})

	payload, err := m.exporter.Export(ctx)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", fmt.Errorf("export snapshot: %w", err)
	}

	suffix := ".json"
	if cfg.Passphrase != "" {
		payload, err = exchange.Encrypt(payload, cfg.Passphrase)
		if err != nil {
			m.setStatus(Status{State: StateError, Error: err.Error()})
			return "", fmt.Errorf("encrypt snapshot: %w", err)
		}
		suffix = ".json.enc"
	}

	timestamp := time.Now().UTC().Format("2006-01-02T150405Z")
	key := fmt.Sprintf("%ssnapshot-%s-%s%s", keyPrefix(cfg.S3.Prefix), timestamp, uuid.NewString()[:8], suffix)

	backoff := retry.WithMaxRetries(3, retry.NewExponential(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(cfg.S3.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(payload),
			ContentLength: aws.Int64(int64(len(payload))),
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastSnapshot: &now, LastKey: key})
	m.logger.Info("snapshot uploaded", "key", key, "size", humanize.Bytes(uint64(len(payload))))
	return key, nil
}

// Cleanup deletes snapshots older than the retention period.
func (m *Manager) Cleanup(ctx context.Context) error {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()

	if client == nil || cfg.RetentionDays <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.RetentionDays)

	var token *string
	for {
		out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(cfg.S3.Bucket),
			Prefix:            aws.String(keyPrefix(cfg.S3.Prefix)),
			ContinuationToken: token,
		})
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}

		for _, obj := range out.Contents {
			if obj.LastModified == nil || !obj.LastModified.Before(cutoff) {
				continue
			}
			if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(cfg.S3.Bucket),
				Key:    obj.Key,
			}); err != nil {
				m.logger.Error("delete old snapshot failed", "key", aws.ToString(obj.Key), "error", err)
				continue
			}
			m.logger.Info("old snapshot deleted", "key", aws.ToString(obj.Key))
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			return nil
		}
		token = out.NextContinuationToken
	}
}

func keyPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	if prefix[len(prefix)-1] == '/' {
		return prefix
	}
	return prefix + "/"
}
