package sectors

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pht-ctoi/ctoistatus/internal/csvtable"
	"github.com/pht-ctoi/ctoistatus/internal/skypos"
	"github.com/rs/zerolog/log"
)

// FootprintOptions configures a FootprintClient
type FootprintOptions struct {
	URL           string
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
}

// FootprintClient asks a remote footprint service which detector pixels each
// coordinate falls on. The request body is a CSV of tic_id,ra,dec and the
// response a CSV of tic_id,sector,camera,ccd,column,row.
type FootprintClient struct {
	opts   FootprintOptions
	client *http.Client
}

var _ Resolver = (*FootprintClient)(nil)

var placementHeader = []string{"tic_id", "sector", "camera", "ccd", "column", "row"}

func NewFootprintClient(opts FootprintOptions) *FootprintClient {
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Minute
	}
	return &FootprintClient{opts: opts, client: &http.Client{Timeout: opts.Timeout}}
}

func (c *FootprintClient) ResolvePlacements(ctx context.Context, coords []skypos.Coordinate) ([]Placement, error) {
	if len(coords) == 0 {
		return nil, nil
	}
	rows := make([][]string, len(coords))
	for i, co := range coords {
		rows[i] = []string{
			strconv.FormatInt(co.TICID, 10),
			strconv.FormatFloat(co.RA, 'f', -1, 64),
			strconv.FormatFloat(co.Dec, 'f', -1, 64),
		}
	}
	var body bytes.Buffer
	if err := csvtable.Write(&body, []string{"tic_id", "ra", "dec"}, rows); err != nil {
		return nil, ErrFootprintFailed.MsgErr("unable to encode request", err)
	}

	var table *csvtable.Table
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader(body.Bytes()))
		if err != nil {
			return retry.Unrecoverable(err)
		}
		req.Header.Set("Content-Type", "text/csv")
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			herr := fmt.Errorf("footprint service returned %s", resp.Status)
			if resp.StatusCode < 500 {
				return retry.Unrecoverable(herr)
			}
			return herr
		}
		t, err := csvtable.Read(resp.Body)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		table = t
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(c.opts.RetryAttempts),
		retry.Delay(c.opts.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n+1).Msg("footprint request failed, retrying")
		}))
	if err != nil {
		return nil, ErrFootprintFailed.Err(err)
	}

	placements, err := parsePlacements(table)
	if err != nil {
		return nil, ErrFootprintFailed.MsgErr("unable to read footprint response", err)
	}
	log.Ctx(ctx).Debug().Int("targets", len(coords)).Int("placements", len(placements)).Msg("computed footprints")
	return placements, nil
}

func parsePlacements(t *csvtable.Table) ([]Placement, error) {
	for _, col := range placementHeader {
		if !t.Has(col) {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	out := make([]Placement, 0, t.Len())
	for i := range t.Rows {
		var p Placement
		var err error
		if p.TICID, err = strconv.ParseInt(t.Value(i, "tic_id"), 10, 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if p.Sector, err = strconv.Atoi(t.Value(i, "sector")); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if p.Camera, err = strconv.Atoi(t.Value(i, "camera")); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if p.CCD, err = strconv.Atoi(t.Value(i, "ccd")); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if p.Column, err = strconv.ParseFloat(t.Value(i, "column"), 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if p.Row, err = strconv.ParseFloat(t.Value(i, "row"), 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		out = append(out, p)
	}
	return out, nil
}
