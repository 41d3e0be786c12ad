package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "pagepulse"
	serviceName       = "pagepulse.provider.v1.AuditProvider"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodAudit       = "/" + serviceName + "/Audit"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PAGEPULSE_PROVIDER",
	MagicCookieValue: "pagepulse",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Strategies []string `json:"strategies"`
}

type AuditRequest struct {
	URL      string `json:"url"`
	Strategy string `json:"strategy"`
}

// AuditResponse carries the provider's raw measurement: the 0-1 performance
// score (nil when the provider could not compute one) and audit display
// values keyed by audit id.
type AuditResponse struct {
	Score  *float64          `json:"score"`
	Audits map[string]string `json:"audits"`
}

type AuditProviderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Audit(ctx context.Context, in *AuditRequest) (*AuditResponse, error)
}

type AuditProviderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Audit(ctx context.Context, in *AuditRequest) (*AuditResponse, error)
}

type auditProviderClient struct {
	conn *grpc.ClientConn
}

func NewAuditProviderClient(conn *grpc.ClientConn) AuditProviderClient {
	return &auditProviderClient{conn: conn}
}

func (c *auditProviderClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auditProviderClient) Audit(ctx context.Context, in *AuditRequest) (*AuditResponse, error) {
	out := &AuditResponse{}
	if err := c.conn.Invoke(ctx, methodAudit, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterAuditProviderServer(server grpc.ServiceRegistrar, impl AuditProviderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AuditProviderServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Audit",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &AuditRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Audit(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAudit}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*AuditRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Audit(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/provider-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AuditProviderServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAuditProviderServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAuditProviderClient(conn), nil
}

func PluginMap(impl AuditProviderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
