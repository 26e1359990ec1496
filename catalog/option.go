package catalog

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Catalog (functional options pattern).
type Option func(*Catalog)

// WithTTL sets how long a model listing is reused. Default is 5 minutes.
// TTL <= 0 means the listing never expires.
func WithTTL(d time.Duration) Option {
	return func(c *Catalog) {
		c.ttl = d
	}
}

// WithLogger sets the logger. If l is nil, the default is left unchanged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}
