package out

import (
	"context"
	"fmt"

	"pagepulse/internal/modules/analysis/domain"
	analysisout "pagepulse/internal/modules/analysis/port/out"
	providerdto "pagepulse/internal/modules/provider/dto"
	providerin "pagepulse/internal/modules/provider/port/in"
)

// PluginProvider adapts a named out-of-process provider plugin to the
// analysis module's AuditProvider port.
type PluginProvider struct {
	name      string
	providers providerin.Usecase
}

func NewPluginProvider(name string, providers providerin.Usecase) analysisout.AuditProvider {
	return &PluginProvider{name: name, providers: providers}
}

func (p *PluginProvider) Audit(ctx context.Context, url string, strategy domain.Strategy) (domain.RawAudit, error) {
	out, err := p.providers.Audit(ctx, providerdto.AuditInput{
		Provider: p.name,
		URL:      url,
		Strategy: string(strategy),
	})
	if err != nil {
		return domain.RawAudit{}, fmt.Errorf("%w: %v", domain.ErrProviderRequest, err)
	}
	audits := out.Audits
	if audits == nil {
		audits = map[string]string{}
	}
	return domain.RawAudit{Score: out.Score, Audits: audits}, nil
}
