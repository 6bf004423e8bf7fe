package sinks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"gratia-output/internal/models"
	"gratia-output/internal/stores"
)

const (
	collectorPath     = "/gratia-servlets/rmi"
	maxCollectorReply = 64 * 1024

	commandHandshake   = "handshake"
	commandMultiUpdate = "multiupdate"
)

// collectorTransport speaks the Gratia collector servlet protocol: form-encoded POSTs whose
// reply body starts with "OK" on success.
type collectorTransport struct {
	endpoint string
	client   *http.Client
	compress bool
	now      func() time.Time
}

func NewCollectorTransport(baseURL string, timeout time.Duration, compress bool) Transport {
	return &collectorTransport{
		endpoint: strings.TrimRight(baseURL, "/") + collectorPath,
		client:   &http.Client{Timeout: timeout},
		compress: compress,
		now:      time.Now,
	}
}

func (t *collectorTransport) Name() string { return TransportCollector }

func (t *collectorTransport) Handshake(ctx context.Context, details *ProbeDetails) error {
	doc, err := marshalProbeDetails(details)
	if err != nil {
		return fmt.Errorf("failed to marshal probe details: %w", err)
	}

	form := url.Values{}
	form.Set("command", commandHandshake)
	form.Set("from", details.ProbeName)
	form.Set("arg1", string(doc))
	return t.post(ctx, form)
}

func (t *collectorTransport) Send(ctx context.Context, probe string, records []*models.UsageRecord) error {
	docs := make([]string, 0, len(records))
	for _, record := range records {
		id, err := stores.RecordID(record)
		if err != nil {
			return err
		}
		doc, err := marshalUsageRecord(record, probe+":"+id, t.now())
		if err != nil {
			return fmt.Errorf("failed to marshal usage record: %w", err)
		}
		docs = append(docs, string(doc))
	}

	form := url.Values{}
	form.Set("command", commandMultiUpdate)
	form.Set("from", probe)
	form.Set("bundlesize", strconv.Itoa(len(records)))
	form.Set("arg1", strings.Join(docs, "\n"))
	return t.post(ctx, form)
}

func (t *collectorTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

func (t *collectorTransport) post(ctx context.Context, form url.Values) error {
	body, err := t.encodeBody(form.Encode())
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if t.compress {
		req.Header.Set("Content-Encoding", "gzip")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("collector request failed: %w", err)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(io.LimitReader(resp.Body, maxCollectorReply))
	if err != nil {
		return fmt.Errorf("failed to read collector reply: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrCollectorRejected, resp.StatusCode, strings.TrimSpace(string(reply)))
	}
	if !strings.HasPrefix(strings.TrimSpace(string(reply)), "OK") {
		return fmt.Errorf("%w: %s", ErrCollectorRejected, strings.TrimSpace(string(reply)))
	}
	return nil
}

func (t *collectorTransport) encodeBody(payload string) ([]byte, error) {
	if !t.compress {
		return []byte(payload), nil
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(payload)); err != nil {
		return nil, fmt.Errorf("failed to compress collector request: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress collector request: %w", err)
	}
	return buf.Bytes(), nil
}
