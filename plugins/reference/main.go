package main

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/hashicorp/go-plugin"

	providerrpc "pagepulse/internal/modules/provider/adapter/out/rpc"
)

// server is a deterministic synthetic audit provider: it derives a stable
// measurement from the URL so repeated audits of the same page agree. Useful
// for exercising the plugin host without network access.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *providerrpc.Empty) (*providerrpc.Metadata, error) {
	return &providerrpc.Metadata{
		Name:       "reference",
		Version:    "1.0.0",
		Strategies: []string{"mobile", "desktop"},
	}, nil
}

func (s *server) Audit(_ context.Context, in *providerrpc.AuditRequest) (*providerrpc.AuditResponse, error) {
	if in.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	seed := seedFor(in.URL, in.Strategy)

	// Spread the seed across plausible ranges per metric.
	score := 0.35 + float64(seed%60)/100.0
	fcp := 0.8 + float64(seed%28)/10.0
	lcp := fcp + 0.4 + float64(seed%15)/10.0
	tti := fcp + 1.0 + float64(seed%40)/10.0
	tbt := float64(seed % 900)
	cls := float64(seed%40) / 100.0

	return &providerrpc.AuditResponse{
		Score: &score,
		Audits: map[string]string{
			"first-contentful-paint":   fmt.Sprintf("%.1f s", fcp),
			"largest-contentful-paint": fmt.Sprintf("%.1f s", lcp),
			"interactive":              fmt.Sprintf("%.1f s", tti),
			"total-blocking-time":      fmt.Sprintf("%.0f ms", tbt),
			"cumulative-layout-shift":  fmt.Sprintf("%.2f", cls),
		},
	}, nil
}

func seedFor(url, strategy string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(url))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(strategy))
	return h.Sum64()
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: providerrpc.HandshakeConfig,
		Plugins:         providerrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
