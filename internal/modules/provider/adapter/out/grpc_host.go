package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	providerrpc "pagepulse/internal/modules/provider/adapter/out/rpc"
	"pagepulse/internal/modules/provider/domain"
	providerout "pagepulse/internal/modules/provider/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 90 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() providerout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, 5*time.Second)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Strategies: meta.Strategies}, nil
}

func (h *GRPCHost) Audit(ctx context.Context, manifest domain.Manifest, url, strategy string) (domain.AuditPayload, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.AuditPayload{}, err
	}
	defer closeFn()

	// A real measurement loads the page, so the call timeout is generous.
	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Audit(callCtx, &providerrpc.AuditRequest{URL: url, Strategy: strategy})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.AuditPayload{}, fmt.Errorf("%w: %s", domain.ErrProviderTimeout, manifest.Name)
		}
		return domain.AuditPayload{}, fmt.Errorf("provider audit: %w", err)
	}
	return domain.AuditPayload{Score: response.Score, Audits: response.Audits}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (providerrpc.AuditProviderClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  providerrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          providerrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start provider plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(providerrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense provider plugin: %w", err)
	}
	typed, ok := raw.(providerrpc.AuditProviderClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("provider rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
