package export

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
)

const (
	graphqlPath = "/graphql"

	// shortLinkEdge is how many characters of each end of a link ShortLink keeps.
	shortLinkEdge = 15
)

// Receipt identifies the remotely stored copy of a scan.
type Receipt struct {
	// Path is the resource path returned by the server
	Path string `json:"path"`

	// URL is Path resolved against the server URL
	URL string `json:"url"`
}

// ShortLink returns URL abbreviated to its first and last characters.
func (r Receipt) ShortLink() string {
	return common.Shorten(r.URL, shortLinkEdge)
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data *struct {
		AddEvents *string `json:"addEvents"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// Submitter posts scan results to a GraphQL server exposing the addEvents mutation.
type Submitter struct {
	client    *resty.Client
	serverURL string
	log       *logger.Logger
}

// NewSubmitter creates a submitter for cfg.ServerURL. Submissions are never retried.
func NewSubmitter(cfg config.ExportConfig, log *logger.Logger) *Submitter {
	serverURL := strings.TrimRight(cfg.ServerURL, "/")

	client := resty.New().
		SetBaseURL(serverURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout.Duration)

	return &Submitter{
		client:    client,
		serverURL: serverURL,
		log:       log,
	}
}

// Submit stores events collected from endpoint over r on the server.
// Every failure is returned as a *SubmissionError.
func (s *Submitter) Submit(
	ctx context.Context,
	endpoint string,
	r scanner.BlockRange,
	events []scanner.NormalizedEvent,
) (*Receipt, error) {
	url := s.serverURL + graphqlPath

	mutation, err := BuildMutation(endpoint, r, events)
	if err != nil {
		SubmissionFinished(outcomeBuild, 0)
		return nil, &SubmissionError{URL: url, Reason: "build mutation", Err: err}
	}

	PayloadBytes.Observe(float64(len(mutation)))

	start := time.Now()
	receipt, outcome, err := s.post(ctx, url, mutation)
	SubmissionFinished(outcome, time.Since(start))

	if err != nil {
		s.log.Warnw("event submission failed",
			"url", url,
			"start_block", r.Start,
			"end_block", r.End,
			"error", err,
		)
		return nil, err
	}

	s.log.Infow("events stored on server",
		"url", receipt.URL,
		"events", len(events),
		"duration", time.Since(start),
	)

	return receipt, nil
}

func (s *Submitter) post(ctx context.Context, url, mutation string) (*Receipt, string, error) {
	var result graphqlResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(graphqlRequest{Query: mutation}).
		SetResult(&result).
		ForceContentType("application/json").
		Post(graphqlPath)
	if err != nil {
		return nil, outcomeTransport, &SubmissionError{URL: url, Reason: "request failed", Err: err}
	}

	if resp.IsError() {
		return nil, outcomeHTTPStatus, &SubmissionError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Reason:     "unexpected status",
			Err:        errors.New(strings.TrimSpace(resp.String())),
		}
	}

	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			messages = append(messages, e.Message)
		}
		return nil, outcomeGraphQL, &SubmissionError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Reason:     "server rejected mutation",
			Err:        errors.New(strings.Join(messages, "; ")),
		}
	}

	if result.Data == nil || result.Data.AddEvents == nil {
		return nil, outcomeEmptyPayload, &SubmissionError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Reason:     "response has no " + MutationName + " result",
		}
	}

	path := strings.TrimLeft(*result.Data.AddEvents, "/")

	return &Receipt{
		Path: path,
		URL:  s.serverURL + "/" + path,
	}, outcomeStored, nil
}
