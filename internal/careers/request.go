package careers

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	requestIDHeader = "X-Request-ID"
	maxLogLength    = 300
)

type requestIDKey struct{}

// WithRequestID attaches an id that is sent as X-Request-ID with every request made under ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// StatusError is returned when the service answers with a non-success status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status: %s", e.Status)
	}
	return fmt.Sprintf("bad status: %s: %s", e.Status, e.Body)
}

func (c *Client) postJSON(ctx context.Context, url string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("request payload",
		zap.String("url", url),
		zap.String("payload", utils.TruncateForLog(string(body), maxLogLength)),
	)

	return c.do(req, target)
}

func (c *Client) postFile(ctx context.Context, url, field, filename string, content io.Reader) (map[string]any, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(part, content); err != nil {
		return nil, err
	}

	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var raw map[string]any
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

func (c *Client) do(req *http.Request, target any) error {
	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   utils.TruncateForLog(string(data), maxLogLength),
		}
	}

	c.logger.Debug("got response",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
	)

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request",
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	if id := RequestID(req.Context()); id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	return req
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	return io.ReadAll(reader)
}

// decode maps a loosely typed JSON object onto out. One malformed field never
// fails the whole payload: numbers sent as strings are accepted, and values of
// the wrong shape decode as absent (nil pointers) or zero values.
func decode(input any, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       lenientValues,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func lenientValues(from, to reflect.Type, data any) (any, error) {
	target := to
	for target.Kind() == reflect.Ptr {
		target = target.Elem()
	}

	switch {
	case isNumber(target.Kind()):
		if n, ok := number(from, data, target); ok {
			return n, nil
		}
	case target.Kind() == reflect.Struct:
		if from.Kind() == reflect.Map || from == target {
			return data, nil
		}
	case target.Kind() == reflect.Slice:
		elem := target.Elem()
		for elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}

		switch {
		case from.Kind() == reflect.Slice, from.Kind() == reflect.Array:
			return data, nil
		// A lone string becomes a one-item string list.
		case from.Kind() == reflect.String && elem.Kind() == reflect.String:
			return data, nil
		// A lone object becomes a one-item list of that object.
		case from.Kind() == reflect.Map && elem.Kind() == reflect.Struct:
			return data, nil
		}
	case target.Kind() == reflect.String:
		switch from.Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
		default:
			return data, nil
		}
	default:
		return data, nil
	}

	if to.Kind() == reflect.Ptr {
		return nil, nil
	}
	return reflect.Zero(to).Interface(), nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// number reads data as a float that target can hold. Booleans, objects,
// lists and out-of-range values are not numbers.
func number(from reflect.Type, data any, target reflect.Type) (float64, bool) {
	v := reflect.ValueOf(data)

	var f float64
	switch from.Kind() {
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case reflect.Float32, reflect.Float64:
		f = v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(v.Uint())
	default:
		return 0, false
	}

	switch target.Kind() {
	case reflect.Float32, reflect.Float64:
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		limit := math.Ldexp(1, target.Bits()-1)
		return f, f >= -limit && f < limit
	default:
		return f, f >= 0 && f < math.Ldexp(1, target.Bits())
	}
}
