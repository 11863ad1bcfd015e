package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func writeStatus(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pht_ctoi_statuses.csv")
	require.NoError(t, os.WriteFile(p, []byte("TIC ID,CTOI\n1,1001.01\n"), 0644))
	return p
}

func TestPublish(t *testing.T) {
	fake := &fakeS3{}
	p := NewPublisherWithClient(fake, Options{Bucket: "pht", Region: "us-east-1", Prefix: "ctoi/latest"})

	loc, err := p.Publish(context.Background(), writeStatus(t))
	require.NoError(t, err)
	assert.Equal(t, "s3://pht/ctoi/latest/pht_ctoi_statuses.csv", loc)
	assert.Equal(t, "pht", aws.StringValue(fake.input.Bucket))
	assert.Equal(t, "ctoi/latest/pht_ctoi_statuses.csv", aws.StringValue(fake.input.Key))
	assert.Equal(t, "text/csv", aws.StringValue(fake.input.ContentType))
	assert.Equal(t, "TIC ID,CTOI\n1,1001.01\n", fake.body)
}

func TestPublishWithoutPrefix(t *testing.T) {
	p := NewPublisherWithClient(&fakeS3{}, Options{Bucket: "pht"})
	assert.Equal(t, "pht_ctoi_statuses.csv", p.Key())
}

func TestPublishErrors(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	p := NewPublisherWithClient(fake, Options{Bucket: "pht"})

	_, err := p.Publish(context.Background(), writeStatus(t))
	assert.ErrorIs(t, err, ErrPublish)

	_, err = p.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrMissingStatus)

	_, err = NewPublisher(Options{Bucket: "pht"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
