// Package shadow replays read-only requests against the legacy roster service
// and this API, then reports where status codes or payloads diverge.
package shadow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

// Target is one endpoint to compare.
type Target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []Target `json:"targets"`
}

// Comparison is the outcome for a single target.
type Comparison struct {
	Target         Target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Diff           string
	Err            error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

// Outcome classifies a comparison as OK, DIFF or ERROR.
func (c Comparison) Outcome() string {
	switch {
	case c.Err != nil:
		return "ERROR"
	case !c.StatusMatch || !c.BodyMatch:
		return "DIFF"
	default:
		return "OK"
	}
}

// Report aggregates a run.
type Report struct {
	Comparisons []Comparison
	Breaking    int
	Optional    int
}

// LoadTargets reads a {"targets": [...]} JSON file.
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

// Comparer issues each target against both base URLs.
type Comparer struct {
	client     *http.Client
	goBase     string
	legacyBase string
	logger     *zap.Logger
}

// NewComparer builds a Comparer. A nil client gets a 5 second timeout.
func NewComparer(client *http.Client, goBase, legacyBase string, logger *zap.Logger) *Comparer {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparer{client: client, goBase: goBase, legacyBase: legacyBase, logger: logger}
}

// Run compares every target in order and tallies breaking and optional diffs.
func (c *Comparer) Run(ctx context.Context, targets []Target) Report {
	var report Report
	for _, t := range targets {
		comp := c.Compare(ctx, t)
		if comp.Outcome() != "OK" {
			if t.Critical {
				report.Breaking++
			} else if comp.Err == nil {
				report.Optional++
			}
		}
		c.logger.Debug("shadow target compared",
			zap.String("method", t.Method),
			zap.String("path", t.Path),
			zap.String("outcome", comp.Outcome()),
		)
		report.Comparisons = append(report.Comparisons, comp)
	}
	return report
}

// Compare fetches one target from both sides.
func (c *Comparer) Compare(ctx context.Context, t Target) Comparison {
	comp := Comparison{Target: t}

	goStatus, goBody, goDur, err := c.fetch(ctx, c.goBase, t)
	comp.DurationGo = goDur
	if err != nil {
		comp.Err = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	legacyStatus, legacyBody, legacyDur, err := c.fetch(ctx, c.legacyBase, t)
	comp.DurationLegacy = legacyDur
	if err != nil {
		comp.Err = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.Diff = BodyDiff(goBody, legacyBody)
	comp.BodyMatch = comp.Diff == ""
	return comp
}

func (c *Comparer) fetch(ctx context.Context, base string, t Target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(t.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := t.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// BodyDiff returns an empty string when the payloads are equivalent. The Go
// side answers inside a {"data": ...} envelope; it is unwrapped before
// comparing. Non-JSON bodies are compared byte for byte after trimming.
func BodyDiff(goBody, legacyBody []byte) string {
	goText := strings.TrimSpace(string(goBody))
	legacyText := strings.TrimSpace(string(legacyBody))
	if goText == legacyText {
		return ""
	}

	goValue, goErr := decode(goBody)
	legacyValue, legacyErr := decode(legacyBody)
	if goErr != nil || legacyErr != nil {
		return cmp.Diff(legacyText, goText)
	}
	return cmp.Diff(legacyValue, unwrapEnvelope(goValue))
}

var errEmptyBody = errors.New("empty body")

func decode(raw []byte) (interface{}, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errEmptyBody
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

func unwrapEnvelope(v interface{}) interface{} {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	data, ok := obj["data"]
	if !ok {
		return v
	}
	for key := range obj {
		if key != "data" && key != "meta" {
			return v
		}
	}
	return data
}

// normalize folds integral floats to int64 so 1 and 1.0 compare equal.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return v
	}
}

// WriteReport prints a human readable summary.
func WriteReport(w io.Writer, report Report) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "======================")
	for _, res := range report.Comparisons {
		fmt.Fprintf(w, "[%s] %s %s\n", res.Outcome(), res.Target.Method, res.Target.Path)
		fmt.Fprintf(w, "  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Fprintf(w, "  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Err != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Err)
			continue
		}
		fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		if res.Diff != "" {
			fmt.Fprintf(w, "  Diff (-legacy +go):\n%s\n", res.Diff)
		}
	}
	fmt.Fprintf(w, "Breaking diffs: %d, Optional diffs: %d\n", report.Breaking, report.Optional)
}
