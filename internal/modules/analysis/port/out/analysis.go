package out

import (
	"context"

	"pagepulse/internal/modules/analysis/domain"
)

// AuditProvider is the opaque request/response dependency that measures a
// page. Implementations wrap the hosted PageSpeed API or a provider plugin.
type AuditProvider interface {
	Audit(ctx context.Context, url string, strategy domain.Strategy) (domain.RawAudit, error)
}
