// Package skypos resolves TIC identifiers to J2000 sky coordinates.
package skypos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrLookupFailed apperrors.Error = apperrors.New("coordinate lookup failed").SetStatusCode(http.StatusBadGateway)

// Coordinate is the J2000 position of a TIC target, in degrees.
type Coordinate struct {
	TICID int64   `json:"tic_id"`
	RA    float64 `json:"ra"`
	Dec   float64 `json:"dec"`
}

// Resolver maps TIC identifiers to coordinates.
type Resolver interface {
	ResolveCoordinates(ctx context.Context, ticIDs []int64) ([]Coordinate, error)
}

const ticService = "Mast.Catalogs.Filtered.Tic"

// MASTOptions configures a MASTClient
type MASTOptions struct {
	URL           string
	BatchSize     int
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
}

// MASTClient looks up TIC coordinates through the MAST invoke API.
type MASTClient struct {
	opts   MASTOptions
	client *http.Client
}

var _ Resolver = (*MASTClient)(nil)

func NewMASTClient(opts MASTOptions) *MASTClient {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	return &MASTClient{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// ResolveCoordinates returns one coordinate per distinct identifier found in the TIC.
// Identifiers unknown to MAST are absent from the result.
func (c *MASTClient) ResolveCoordinates(ctx context.Context, ticIDs []int64) ([]Coordinate, error) {
	ids := slices.Clone(ticIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var coords []Coordinate
	for start := 0; start < len(ids); start += c.opts.BatchSize {
		end := min(start+c.opts.BatchSize, len(ids))
		batch, err := c.queryBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		coords = append(coords, batch...)
	}
	log.Ctx(ctx).Debug().Int("requested", len(ids)).Int("resolved", len(coords)).Msg("resolved TIC coordinates")
	return coords, nil
}

func buildRequest(ids []int64) ([]byte, error) {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = strconv.FormatInt(id, 10)
	}
	req, err := sjson.SetBytes(nil, "service", ticService)
	if err != nil {
		return nil, err
	}
	req, err = sjson.SetBytes(req, "format", "json")
	if err != nil {
		return nil, err
	}
	req, err = sjson.SetBytes(req, "pagesize", len(ids))
	if err != nil {
		return nil, err
	}
	req, err = sjson.SetBytes(req, "params.columns", "ID,ra,dec")
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(req, "params.filters", []map[string]any{
		{"paramName": "ID", "values": values},
	})
}

// parseResponse keeps only the identifier and position of each returned row.
func parseResponse(body []byte) ([]Coordinate, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON response")
	}
	if status := gjson.GetBytes(body, "status").String(); strings.EqualFold(status, "ERROR") {
		return nil, fmt.Errorf("MAST error: %s", gjson.GetBytes(body, "msg").String())
	}
	rows := gjson.GetBytes(body, "data").Array()
	coords := make([]Coordinate, 0, len(rows))
	for _, row := range rows {
		id := row.Get("ID")
		ra := row.Get("ra")
		dec := row.Get("dec")
		if !id.Exists() || !ra.Exists() || !dec.Exists() {
			return nil, fmt.Errorf("row missing ID, ra or dec: %s", row.Raw)
		}
		coords = append(coords, Coordinate{
			TICID: id.Int(),
			RA:    ra.Float(),
			Dec:   dec.Float(),
		})
	}
	return coords, nil
}

func (c *MASTClient) queryBatch(ctx context.Context, ids []int64) ([]Coordinate, error) {
	reqBody, err := buildRequest(ids)
	if err != nil {
		return nil, ErrLookupFailed.MsgErr("unable to build request", err)
	}
	form := url.Values{"request": {string(reqBody)}}

	var body []byte
	err = retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, strings.NewReader(form.Encode()))
		if err != nil {
			return retry.Unrecoverable(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			herr := fmt.Errorf("MAST returned %s", resp.Status)
			if resp.StatusCode < 500 {
				return retry.Unrecoverable(herr)
			}
			return herr
		}
		body = b
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(c.opts.RetryAttempts),
		retry.Delay(c.opts.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n+1).Msg("MAST query failed, retrying")
		}))
	if err != nil {
		return nil, ErrLookupFailed.Err(err)
	}

	coords, err := parseResponse(body)
	if err != nil {
		return nil, ErrLookupFailed.MsgErr("unable to read MAST response", err)
	}
	return coords, nil
}
