package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrFetchFailed apperrors.Error = apperrors.New("download failed").SetStatusCode(http.StatusBadGateway)

// HTTPError is returned for non-2xx responses
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Options configures a Downloader
type Options struct {
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
	Transport     http.RoundTripper
}

// Downloader fetches remote files into a local cache directory.
type Downloader struct {
	client   *http.Client
	attempts uint
	delay    time.Duration
	now      func() time.Time
}

func NewDownloader(opts Options) *Downloader {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	return &Downloader{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		attempts: opts.RetryAttempts,
		delay:    opts.RetryDelay,
		now:      time.Now,
	}
}

// Fetch returns the local path of url saved as downloadDir/localFilename,
// downloading it unless a cached copy satisfies policy.
func (d *Downloader) Fetch(ctx context.Context, url, localFilename, downloadDir string, policy CachePolicy) (string, error) {
	localPath := filepath.Join(downloadDir, localFilename)
	logger := log.Ctx(ctx).With().Str("url", url).Str("path", localPath).Logger()

	if info, err := os.Stat(localPath); err == nil {
		if !policy.IsStale(info.ModTime(), d.now()) {
			logger.Debug().Str("cache_policy", policy.String()).Msg("using cached file")
			return localPath, nil
		}
		logger.Info().Str("cache_policy", policy.String()).Time("modified", info.ModTime()).Msg("cached file is stale")
	} else if !os.IsNotExist(err) {
		return "", ErrFetchFailed.MsgErr("unable to stat cached file", err)
	}

	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return "", ErrFetchFailed.MsgErr("unable to create download directory", errors.Wrap(err, downloadDir))
	}

	err := retry.Do(func() error {
		return d.download(ctx, url, localPath)
	},
		retry.Context(ctx),
		retry.Attempts(d.attempts),
		retry.Delay(d.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn().Err(err).Uint("attempt", n+1).Msg("download failed, retrying")
		}))
	if err != nil {
		return "", ErrFetchFailed.MsgErr(fmt.Sprintf("unable to download %s", url), err)
	}
	logger.Info().Msg("downloaded")
	return localPath, nil
}

func (d *Downloader) download(ctx context.Context, url, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return retry.Unrecoverable(err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return retry.Unrecoverable(herr)
		}
		return herr
	}

	// write next to the target so the rename stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(localPath), filepath.Base(localPath)+".*.part")
	if err != nil {
		return retry.Unrecoverable(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return errors.Wrap(err, "reading response body")
	}
	if err := tmp.Close(); err != nil {
		return retry.Unrecoverable(err)
	}
	if err := os.Rename(tmp.Name(), localPath); err != nil {
		return retry.Unrecoverable(err)
	}
	return nil
}
