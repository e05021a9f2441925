// Package diagnose talks to the external plant-disease inference service
// and keeps a local history of analyses.
package diagnose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/agromarket/agromarket-go/internal/observability"
	"github.com/agromarket/agromarket-go/internal/transport"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// InferenceResult is the raw service response: a class label of the form
// "<plant>___<condition>" and a base64 JPEG annotated by the model.
type InferenceResult struct {
	Prediction     string `json:"prediction"`
	AnnotatedImage string `json:"image"`
}

// InferenceClient uploads images to the inference origin. The service is a
// black box; no auth, separate origin from the marketplace API.
type InferenceClient struct {
	httpClient *http.Client
	url        string
}

func NewInferenceClient(url string, timeout time.Duration) *InferenceClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &InferenceClient{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		url: strings.TrimRight(url, "/") + "/predict/",
	}
}

func (c *InferenceClient) Analyze(ctx context.Context, fileName string, image io.Reader) (*InferenceResult, error) {
	if image == nil {
		return nil, transport.NewInputError("no image file provided")
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, transport.NewInputError(fmt.Sprintf("build upload form: %v", err))
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, transport.NewInputError(fmt.Sprintf("read image: %v", err))
	}
	if err := w.Close(); err != nil {
		return nil, transport.NewInputError(fmt.Sprintf("finish upload form: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, buf)
	if err != nil {
		return nil, transport.NewInputError(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordAnalysis("network_error")
		return nil, transport.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.RecordAnalysis("network_error")
		return nil, transport.NewNetworkError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.RecordAnalysis("server_error")
		return nil, transport.NewServerError(resp.StatusCode, transport.DecodeEnvelope(body, false))
	}

	var result InferenceResult
	if err := json.Unmarshal(body, &result); err != nil || result.Prediction == "" {
		observability.RecordAnalysis("bad_response")
		return nil, transport.NewServerError(resp.StatusCode, nil)
	}
	observability.RecordAnalysis("success")
	return &result, nil
}
