// Package publish uploads the status table to S3.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/pht-ctoi/ctoistatus/internal/statusstore"
	"github.com/rs/zerolog/log"
)

var (
	ErrPublish       apperrors.Error = apperrors.New("unable to publish status table").SetStatusCode(http.StatusBadGateway)
	ErrNotConfigured apperrors.Error = ErrPublish.New("publishing is not configured").SetStatusCode(http.StatusBadRequest)
	ErrMissingStatus apperrors.Error = ErrPublish.New("status table not found").SetStatusCode(http.StatusNotFound)
)

const contentType = "text/csv"

type Options struct {
	Bucket string
	Region string
	Prefix string
}

// Publisher puts the status CSV at <prefix>/pht_ctoi_statuses.csv in a bucket.
type Publisher struct {
	client s3iface.S3API
	opts   Options
}

// NewPublisher creates a publisher using the default AWS credential chain.
func NewPublisher(opts Options) (*Publisher, error) {
	if opts.Bucket == "" || opts.Region == "" {
		return nil, ErrNotConfigured.Msg("publish bucket and region are required")
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(opts.Region),
	})
	if err != nil {
		return nil, ErrPublish.MsgErr("unable to create AWS session", err)
	}
	return NewPublisherWithClient(s3.New(sess), opts), nil
}

func NewPublisherWithClient(client s3iface.S3API, opts Options) *Publisher {
	return &Publisher{client: client, opts: opts}
}

// Key is the object key of the published table.
func (p *Publisher) Key() string {
	return path.Join(p.opts.Prefix, statusstore.StatusFilename)
}

// Publish uploads the file at localPath and returns its s3:// location.
func (p *Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	body, err := os.ReadFile(localPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrMissingStatus.Err(err)
		}
		return "", ErrPublish.MsgErr("unable to read "+localPath, err)
	}

	key := p.Key()
	_, err = p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", ErrPublish.Err(err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.opts.Bucket, key)
	log.Ctx(ctx).Info().Str("location", location).Int("bytes", len(body)).Msg("published status table")
	return location, nil
}
