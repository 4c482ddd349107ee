package s3_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fwojciec/ministry"
	"github.com/fwojciec/ministry/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records PutObject calls.
type fakeClient struct {
	input *awss3.PutObjectInput
	body  []byte
	err   error
}

func (c *fakeClient) PutObject(ctx context.Context, in *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	c.body = body
	return &awss3.PutObjectOutput{}, nil
}

func TestUploader_Upload(t *testing.T) {
	t.Parallel()

	t.Run("stores bytes under folder and public id", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{}
		u := s3.NewUploaderWithClient(client, "ministry-media", "https://cdn.example/")

		url, err := u.Upload(context.Background(), &ministry.Media{
			Kind:        ministry.MediaAudio,
			Folder:      "podcasts",
			PublicID:    "episode-12",
			Filename:    "Episode 12.MP3",
			ContentType: "audio/mpeg",
			Data:        []byte("ID3data"),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/podcasts/episode-12.mp3", url)
		require.NotNil(t, client.input)
		assert.Equal(t, "ministry-media", aws.ToString(client.input.Bucket))
		assert.Equal(t, "podcasts/episode-12.mp3", aws.ToString(client.input.Key))
		assert.Equal(t, "audio/mpeg", aws.ToString(client.input.ContentType))
		assert.Equal(t, int64(7), aws.ToInt64(client.input.ContentLength))
		assert.Equal(t, s3.DefaultCacheControl, aws.ToString(client.input.CacheControl))
		assert.Equal(t, []byte("ID3data"), client.body)
	})

	t.Run("generates public id when missing", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{}
		u := s3.NewUploaderWithClient(client, "b", "https://cdn.example")

		first, err := u.Upload(context.Background(), &ministry.Media{Folder: "images", Filename: "a.png", Data: []byte{1}})
		require.NoError(t, err)
		second, err := u.Upload(context.Background(), &ministry.Media{Folder: "images", Filename: "a.png", Data: []byte{1}})
		require.NoError(t, err)

		assert.Regexp(t, `^https://cdn\.example/images/[0-9a-f-]{36}\.png$`, first)
		assert.NotEqual(t, first, second)
	})

	t.Run("audio without extension is stored as mp3", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{}
		u := s3.NewUploaderWithClient(client, "b", "https://cdn.example")

		url, err := u.Upload(context.Background(), &ministry.Media{
			Kind:     ministry.MediaAudio,
			Folder:   "podcasts",
			PublicID: "talk",
			Filename: "talk",
			Data:     []byte{1},
		})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/podcasts/talk.mp3", url)
		assert.Equal(t, "audio/mpeg", aws.ToString(client.input.ContentType))
	})

	t.Run("rejects invalid media", func(t *testing.T) {
		t.Parallel()

		u := s3.NewUploaderWithClient(&fakeClient{}, "b", "https://cdn.example")

		_, err := u.Upload(context.Background(), &ministry.Media{Folder: "images"})

		assert.Equal(t, ministry.EINVALID, ministry.ErrorCode(err))
	})

	t.Run("wraps client error", func(t *testing.T) {
		t.Parallel()

		u := s3.NewUploaderWithClient(&fakeClient{err: errors.New("AccessDenied")}, "b", "https://cdn.example")

		_, err := u.Upload(context.Background(), &ministry.Media{Folder: "images", PublicID: "x", Filename: "x.png", Data: []byte{1}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "images/x.png")
		assert.Contains(t, err.Error(), "AccessDenied")
	})
}

func TestUploader_UploadFromSourceURL(t *testing.T) {
	t.Parallel()

	t.Run("downloads and stores remote media", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "audio/mpeg; charset=binary")
			_, _ = w.Write([]byte("remote-audio"))
		}))
		defer server.Close()

		client := &fakeClient{}
		u := s3.NewUploaderWithClient(client, "b", "https://cdn.example")
		u.HTTPClient = server.Client()

		url, err := u.Upload(context.Background(), &ministry.Media{
			Kind:      ministry.MediaAudio,
			Folder:    "podcasts",
			PublicID:  "migrated",
			SourceURL: server.URL + "/files/old-episode.mp3",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/podcasts/migrated.mp3", url)
		assert.Equal(t, []byte("remote-audio"), client.body)
		assert.Equal(t, "audio/mpeg", aws.ToString(client.input.ContentType))
	})

	t.Run("fails on non-2xx source", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := &fakeClient{}
		u := s3.NewUploaderWithClient(client, "b", "https://cdn.example")
		u.HTTPClient = server.Client()

		_, err := u.Upload(context.Background(), &ministry.Media{Folder: "images", SourceURL: server.URL + "/gone.png"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
		assert.Nil(t, client.input)
	})

	t.Run("rejects non-http source", func(t *testing.T) {
		t.Parallel()

		u := s3.NewUploaderWithClient(&fakeClient{}, "b", "https://cdn.example")

		_, err := u.Upload(context.Background(), &ministry.Media{Folder: "images", SourceURL: "file:///etc/passwd"})

		assert.Equal(t, ministry.EINVALID, ministry.ErrorCode(err))
	})
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := s3.NewUploader(context.Background(), s3.Config{})

	assert.Equal(t, ministry.EINVALID, ministry.ErrorCode(err))
}
