package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 resolves library URLs of the form "s3://bucket/key" against an AWS S3
// bucket, for teams that publish their flow library as objects rather than
// files on disk.
type S3 struct {
	client *s3.Client
}

// NewS3 constructs an S3 provider, loading AWS credentials and region from
// the environment the same way the AWS CLI does.
func NewS3(ctx context.Context) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider: load AWS config: %w", err)
	}
	return &S3{client: s3.NewFromConfig(cfg)}, nil
}

func (p *S3) Resolve(ctx context.Context, url string) (string, string, []byte, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return "", "", nil, err
	}

	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", "", nil, fmt.Errorf("provider: get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, out.Body); err != nil {
		return "", "", nil, fmt.Errorf("provider: read s3://%s/%s: %w", bucket, key, err)
	}

	mimeType := ""
	if out.ContentType != nil {
		mimeType = *out.ContentType
	}
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(key))
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return url, mimeType, buf.Bytes(), nil
}

func parseS3URL(url string) (bucket, key string, err error) {
	const prefix = "s3://"
	if !strings.HasPrefix(url, prefix) {
		return "", "", fmt.Errorf("provider: not an s3 url: %q", url)
	}
	rest := strings.TrimPrefix(url, prefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("provider: malformed s3 url: %q", url)
	}
	return parts[0], parts[1], nil
}
