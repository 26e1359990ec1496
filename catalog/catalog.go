package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/skosovsky/geminikit"
)

const (
	defaultTTL = 5 * time.Minute
	// maxPages bounds pagination of the model listing.
	maxPages = 20
)

// ErrUnknownKind is returned by PickList for kinds outside Kinds.
var ErrUnknownKind = errors.New("catalog: unknown model kind")

// Kind selects a model pick-list.
type Kind string

// Model pick-list kinds.
const (
	KindText      Kind = "text"
	KindVision    Kind = "vision"
	KindEmbedding Kind = "embedding"
)

// Kinds lists every model pick-list kind.
var Kinds = []Kind{KindText, KindVision, KindEmbedding}

// Choice is one selectable option.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// versionMarker matches a "." or "-" followed by a digit, as in "gemini-1.5-pro"
// or "embedding-001".
var versionMarker = regexp.MustCompile(`[.-]\d`)

// detachCancel returns a context that survives cancellation of parent but keeps
// its deadline, so a shared fetch is not aborted by the first caller leaving.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx)
}

// Catalog lists models through a Transport and caches the listing with a TTL.
// Safe for concurrent use.
type Catalog struct {
	transport geminikit.Transport
	ttl       time.Duration
	logger    logrus.FieldLogger
	now       func() time.Time

	mu        sync.RWMutex
	models    []geminikit.Model
	expiresAt time.Time
	loaded    bool
	sf        singleflight.Group
}

// New creates a Catalog. Panics if t is nil.
func New(t geminikit.Transport, opts ...Option) *Catalog {
	if t == nil {
		panic("catalog: Transport must not be nil")
	}
	c := &Catalog{
		transport: t,
		ttl:       defaultTTL,
		logger:    logrus.StandardLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) cached(now time.Time) ([]geminikit.Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded || (c.ttl > 0 && !now.Before(c.expiresAt)) {
		return nil, false
	}
	return c.models, true
}

// Models returns every model whose name carries a version marker. The listing
// is fetched once per TTL; concurrent misses share one fetch.
func (c *Catalog) Models(ctx context.Context) ([]geminikit.Model, error) {
	if models, ok := c.cached(c.now()); ok {
		return slices.Clone(models), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err, _ := c.sf.Do("models", func() (any, error) {
		if models, ok := c.cached(c.now()); ok {
			return models, nil
		}
		fetchCtx, cancel := detachCancel(ctx)
		defer cancel()
		models, err := c.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.models = models
		c.loaded = true
		c.expiresAt = c.now().Add(c.ttl)
		c.mu.Unlock()
		return models, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]geminikit.Model)), nil
}

func (c *Catalog) fetch(ctx context.Context) ([]geminikit.Model, error) {
	var out []geminikit.Model
	path := geminikit.ModelsPath
	for page := 0; page < maxPages; page++ {
		var list geminikit.ModelList
		if err := c.transport.Get(ctx, path, &list); err != nil {
			return nil, fmt.Errorf("catalog: list models: %w", err)
		}
		for _, m := range list.Models {
			if versionMarker.MatchString(m.Name) {
				out = append(out, m)
			}
		}
		if list.NextPageToken == "" {
			break
		}
		path = geminikit.ModelsPath + "?pageToken=" + url.QueryEscape(list.NextPageToken)
	}
	c.logger.WithField("models", len(out)).Debug("catalog: model listing refreshed")
	return out, nil
}

// PickList returns the models of kind as choices labelled by display name.
func (c *Catalog) PickList(ctx context.Context, kind Kind) ([]Choice, error) {
	if !slices.Contains(Kinds, kind) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	models, err := c.Models(ctx)
	if err != nil {
		return nil, err
	}
	return Partition(models, kind), nil
}

// Ping performs an uncached model listing to verify connectivity and credentials.
func (c *Catalog) Ping(ctx context.Context) error {
	var list geminikit.ModelList
	if err := c.transport.Get(ctx, geminikit.ModelsPath, &list); err != nil {
		return fmt.Errorf("catalog: ping: %w", err)
	}
	return nil
}

// Evict drops the cached listing. Safe for concurrent use.
func (c *Catalog) Evict() {
	c.mu.Lock()
	c.models = nil
	c.loaded = false
	c.mu.Unlock()
}

// Partition filters models into the pick-list of kind. Substring rules apply to
// the display name and name concatenated:
//   - text excludes "latest", "vision" and "embed", and drops duplicates;
//   - vision excludes "1.0", "vision" and "embed";
//   - embedding keeps only "embed".
func Partition(models []geminikit.Model, kind Kind) []Choice {
	out := make([]Choice, 0, len(models))
	for _, m := range models {
		if !accepts(kind, m.DisplayName+m.Name) {
			continue
		}
		choice := Choice{Label: m.DisplayName, Value: m.Name}
		if kind == KindText && slices.Contains(out, choice) {
			continue
		}
		out = append(out, choice)
	}
	return out
}

func accepts(kind Kind, id string) bool {
	has := func(s string) bool { return strings.Contains(id, s) }
	switch kind {
	case KindText:
		return !has("latest") && !has("vision") && !has("embed")
	case KindVision:
		return !has("1.0") && !has("vision") && !has("embed")
	case KindEmbedding:
		return has("embed")
	default:
		return false
	}
}
