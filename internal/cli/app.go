package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/action"
	"github.com/skosovsky/geminikit/catalog"
	"github.com/skosovsky/geminikit/config"
	"github.com/skosovsky/geminikit/genaitransport"
	"github.com/skosovsky/geminikit/httptransport"
	"github.com/skosovsky/geminikit/internal/logx"
	"github.com/skosovsky/geminikit/mediafetch"
)

// app holds the collaborators built from one config file.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	registry *action.Registry
	catalog  *catalog.Catalog
}

func loadApp(ctx context.Context, path string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := logx.New(logx.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})
	if err != nil {
		return nil, err
	}
	tr, err := newTransport(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	client := action.New(tr,
		action.WithLogger(logger),
		action.WithImageFetcher(mediafetch.New(mediafetch.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))),
	)
	defs, err := cfg.Definitions()
	if err != nil {
		return nil, err
	}
	reg, err := action.NewRegistry(client, defs...)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		catalog:  catalog.New(tr, catalog.WithTTL(cfg.Catalog.TTL), catalog.WithLogger(logger)),
	}, nil
}

func newTransport(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (geminikit.Transport, error) {
	hc := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Transport {
	case config.TransportGenAI:
		return genaitransport.New(ctx,
			genaitransport.WithAPIKey(cfg.APIKey),
			genaitransport.WithBaseURL(cfg.BaseURL),
			genaitransport.WithHTTPClient(hc),
		)
	case config.TransportHTTP:
		return httptransport.New(cfg.BaseURL,
			httptransport.WithCredentials(httptransport.APIKey(cfg.APIKey)),
			httptransport.WithHTTPClient(hc),
			httptransport.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("%w: transport %q", config.ErrInvalidConfig, cfg.Transport)
	}
}
