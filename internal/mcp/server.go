package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"nomadgraph/internal/config"
	"nomadgraph/internal/nomad"
	"nomadgraph/internal/reconstruct"
	"nomadgraph/internal/store"
)

// Remote is the slice of the archive client the tool surface needs.
type Remote interface {
	reconstruct.Extractor
	ListDatasets(ctx context.Context, max int) ([]nomad.Dataset, error)
}

type Server struct {
	cfg    *config.ProjectConfig
	remote Remote
	db     store.Store
	logger *zap.Logger
	mcp    *sdk.Server
}

func NewServer(cfg *config.ProjectConfig, remote Remote, db store.Store, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		remote: remote,
		db:     db,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "nomadgraph",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
