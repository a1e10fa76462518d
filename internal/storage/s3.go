// Package storage implements the upload transport on top of S3-compatible
// object storage. Each file is sent with a single presigned PUT so progress
// can be observed byte by byte.
package storage

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
	"github.com/dmitrijs2005/reportdrop/internal/netx"
	"github.com/dmitrijs2005/reportdrop/internal/upload"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Config describes the destination container and the scoped credential.
//
//   - Account / AccessToken: access key id and secret of the storage account.
//   - Container: destination bucket.
//   - Region / Endpoint: S3 region and optional custom endpoint (MinIO etc).
//   - PresignExpiry: lifetime of each presigned PUT URL.
//   - Timeout: hard limit for a single file transfer.
type Config struct {
	Account       string
	AccessToken   string
	Container     string
	Region        string
	Endpoint      string
	PresignExpiry time.Duration
	Timeout       time.Duration
}

// S3Transport satisfies upload.Transport.
type S3Transport struct {
	cfg     Config
	presign *s3.PresignClient
	http    *http.Client
	logger  logging.Logger
}

var _ upload.Transport = (*S3Transport)(nil)

// NewS3Transport builds the transport. Missing credentials are not an error
// here; they surface from CheckConfig when an upload is attempted.
func NewS3Transport(ctx context.Context, cfg Config, logger logging.Logger) (*S3Transport, error) {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 15 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	t := &S3Transport{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "s3-transport"),
	}

	if t.CheckConfig() != nil {
		return t, nil
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Account, cfg.AccessToken, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	t.presign = s3.NewPresignClient(client)

	return t, nil
}

// CheckConfig reports missing account, token or container.
func (t *S3Transport) CheckConfig() error {
	var missing []string
	if t.cfg.Account == "" {
		missing = append(missing, "REPORTDROP_ACCOUNT")
	}
	if t.cfg.AccessToken == "" {
		missing = append(missing, "REPORTDROP_ACCESS_TOKEN")
	}
	if t.cfg.Container == "" {
		missing = append(missing, "REPORTDROP_CONTAINER")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: define %s", common.ErrStorageNotConfigured, strings.Join(missing, " and "))
	}
	return nil
}

// Upload streams file to the container under remoteName.
func (t *S3Transport) Upload(ctx context.Context, file models.SelectedFile, remoteName string, onProgress upload.ProgressFunc) error {
	if err := t.CheckConfig(); err != nil {
		return err
	}
	if file.Handle == nil {
		return fmt.Errorf("%s: nothing to read", file.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	contentType := detectContentType(file.Name)

	req, err := presignPutObject(t.presign, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.cfg.Container),
		Key:         aws.String(remoteName),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(t.cfg.PresignExpiry))
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}

	rc, err := file.Handle.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer rc.Close()

	if onProgress == nil {
		onProgress = func(int64, int64) {}
	}
	body := &netx.ProgressReader{Reader: rc, Total: file.SizeBytes, OnUpdate: onProgress}

	t.logger.Debug(ctx, "uploading", "key", remoteName, "bucket", t.cfg.Container, "size", file.SizeBytes)

	if err := netx.PutPresigned(ctx, t.http, req.URL, body, file.SizeBytes, contentType); err != nil {
		return err
	}

	onProgress(file.SizeBytes, file.SizeBytes)
	return nil
}

// detectContentType returns a MIME type based on file extension.
func detectContentType(name string) string {
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}
