package foodlens

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Analyzer submits an image for analysis.
// This interface is implemented by *Client and can be used for testing.
type Analyzer interface {
	Analyze(ctx context.Context, upload Upload) (Analysis, error)
}

// Ensure Client implements Analyzer at compile time.
var _ Analyzer = (*Client)(nil)

// Upload is the image part sent to the service.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	// DefaultAPIURL is the hosted analysis service.
	DefaultAPIURL = "https://food-lens-api.onrender.com"
	// AnalyzePath is appended to the configured base URL.
	AnalyzePath = "/analyze-food"
	// FormField is the multipart field name carrying the image.
	FormField = "image"

	defaultUserAgent = "foodlens/0.1"
	defaultFileName  = "image"
)

// Client talks to the food analysis HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero leaves the transport default in place.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient builds a Client for the service at apiURL. An empty value uses
// DefaultAPIURL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		log:       quiet,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the absolute analyze URL.
func (c *Client) Endpoint() string {
	return c.baseURL.JoinPath(AnalyzePath).String()
}

// Analyze posts the image and decodes the analysis envelope. Every failure is
// an *Error whose Kind tells transport, server and decode problems apart.
func (c *Client) Analyze(ctx context.Context, upload Upload) (Analysis, error) {
	if c == nil {
		return Analysis{}, fmt.Errorf("client is nil")
	}
	if len(upload.Data) == 0 {
		return Analysis{}, NewValidationError(ErrNoImage)
	}

	body, contentType, err := encodeMultipart(upload)
	if err != nil {
		return Analysis{}, newTransportError(err)
	}

	requestID := uuid.NewString()
	logger := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"file":       upload.Name,
		"bytes":      len(upload.Data),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), body)
	if err != nil {
		return Analysis{}, newTransportError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Warn("analysis request failed")
		return Analysis{}, newTransportError(fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	logger = logger.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.Warn("analysis service returned non-success status")
		return Analysis{}, newServerError(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Warn("reading analysis response failed")
		return Analysis{}, newTransportError(fmt.Errorf("read response: %w", err))
	}

	analysis, err := Decode(raw)
	if err != nil {
		logger.WithError(err).WithField("body", clip(string(raw), 200)).Warn("analysis response could not be decoded")
		return Analysis{}, err
	}

	logger.WithField("food_name", analysis.FoodName).Info("analysis complete")
	return analysis, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(upload Upload) (*bytes.Buffer, string, error) {
	name := strings.TrimSpace(upload.Name)
	if name == "" {
		name = defaultFileName
	}
	contentType := strings.TrimSpace(upload.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FormField, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", fmt.Errorf("write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		scheme := "https://"
		if isLoopback(trimmed) {
			scheme = "http://"
		}
		trimmed = scheme + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func isLoopback(hostport string) bool {
	for _, prefix := range []string{"localhost", "127.", "[::1]"} {
		if strings.HasPrefix(hostport, prefix) {
			return true
		}
	}
	return false
}
