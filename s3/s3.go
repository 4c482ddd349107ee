// Package s3 publishes uploaded media to an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fwojciec/ministry"
	"github.com/google/uuid"
)

// Ensure Uploader implements ministry.MediaUploader.
var _ ministry.MediaUploader = (*Uploader)(nil)

const (
	// DefaultCacheControl marks uploads as immutable; keys are never reused.
	DefaultCacheControl = "public, max-age=31536000, immutable"

	// MaxSourceBytes caps media downloaded from a source URL.
	MaxSourceBytes = 512 << 20
)

// PutObjectAPI is the part of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Config holds the bucket and client settings. Empty values fall back to the
// standard AWS configuration chain.
type Config struct {
	Bucket  string
	Region  string
	Profile string

	// Endpoint targets an S3-compatible provider instead of AWS.
	Endpoint     string
	UsePathStyle bool

	// BaseURL is the public URL that object keys are appended to. Defaults
	// to the bucket's virtual-hosted AWS URL.
	BaseURL string
}

// audioTypes covers audio extensions missing from Go's builtin MIME table.
var audioTypes = map[string]string{
	".mp3": "audio/mpeg",
	".m4a": "audio/mp4",
	".wav": "audio/wav",
	".ogg": "audio/ogg",
}

// Uploader implements ministry.MediaUploader over S3 PutObject.
type Uploader struct {
	client  PutObjectAPI
	bucket  string
	baseURL string

	// HTTPClient downloads media given by source URL.
	HTTPClient *http.Client

	CacheControl string
}

// NewUploader loads AWS configuration and returns an Uploader for cfg.Bucket.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ministry.Errorf(ministry.EINVALID, "s3 bucket required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, awsCfg.Region)
	}
	return NewUploaderWithClient(client, cfg.Bucket, baseURL), nil
}

// NewUploaderWithClient returns an Uploader using an existing client.
func NewUploaderWithClient(client PutObjectAPI, bucket, baseURL string) *Uploader {
	return &Uploader{
		client:       client,
		bucket:       bucket,
		baseURL:      strings.TrimRight(baseURL, "/"),
		HTTPClient:   &http.Client{Timeout: 2 * time.Minute},
		CacheControl: DefaultCacheControl,
	}
}

// Upload stores the media under <folder>/<public id><ext> and returns its
// public URL. A missing public id is generated.
func (u *Uploader) Upload(ctx context.Context, m *ministry.Media) (string, error) {
	if m == nil {
		return "", ministry.Errorf(ministry.EINVALID, "media required")
	}
	if err := m.Validate(); err != nil {
		return "", err
	}

	data, contentType, filename := m.Data, m.ContentType, m.Filename
	if len(data) == 0 {
		var err error
		if data, contentType, filename, err = u.download(ctx, m); err != nil {
			return "", err
		}
	}

	ext := extension(m.Kind, filename, contentType)
	if contentType == "" {
		contentType = audioTypes[ext]
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	publicID := m.PublicID
	if publicID == "" {
		publicID = uuid.NewString()
	}
	key := path.Join(strings.Trim(m.Folder, "/"), publicID+ext)

	in := &awss3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if u.CacheControl != "" {
		in.CacheControl = aws.String(u.CacheControl)
	}
	if _, err := u.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return u.baseURL + "/" + key, nil
}

// download fetches m.SourceURL, returning its body, content type and a
// filename taken from the URL path.
func (u *Uploader) download(ctx context.Context, m *ministry.Media) ([]byte, string, string, error) {
	src, err := url.Parse(m.SourceURL)
	if err != nil || (src.Scheme != "http" && src.Scheme != "https") {
		return nil, "", "", ministry.Errorf(ministry.EINVALID, "invalid media source URL %q", m.SourceURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.String(), nil)
	if err != nil {
		return nil, "", "", err
	}
	resp, err := u.HTTPClient.Do(req)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to download %s: %w", m.SourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, m.SourceURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSourceBytes+1))
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read %s: %w", m.SourceURL, err)
	}
	if len(data) > MaxSourceBytes {
		return nil, "", "", ministry.Errorf(ministry.EINVALID, "media at %s is too large", m.SourceURL)
	}
	if len(data) == 0 {
		return nil, "", "", ministry.Errorf(ministry.EINVALID, "media at %s is empty", m.SourceURL)
	}

	contentType := m.ContentType
	if contentType == "" {
		contentType, _, _ = mime.ParseMediaType(resp.Header.Get("Content-Type"))
	}
	filename := m.Filename
	if filename == "" {
		filename = path.Base(src.Path)
	}
	return data, contentType, filename, nil
}

// extension picks the object key extension from the filename, then the
// content type. Audio without either is stored as mp3.
func extension(kind, filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && ext != "." {
		return ext
	}
	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	if kind == ministry.MediaAudio {
		return ".mp3"
	}
	return ""
}
