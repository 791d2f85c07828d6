package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/mmynk/wispgen/internal/document"
	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/storage"
	"github.com/mmynk/wispgen/pkg/logging"
)

// WispServiceName is the fully-qualified name of the RPC service.
const WispServiceName = "wispgen.v1.WispService"

// Procedure paths.
const (
	ListWispsProcedure  = "/" + WispServiceName + "/ListWisps"
	GetWispProcedure    = "/" + WispServiceName + "/GetWisp"
	DeleteWispProcedure = "/" + WispServiceName + "/DeleteWisp"
	RenderWispProcedure = "/" + WispServiceName + "/RenderWisp"
)

// VariantHeader selects the document variant of RenderWisp.
const VariantHeader = "Wisp-Variant"

// WispService implements the Connect WispService over well-known types.
type WispService struct {
	wisps *Wisps
}

// NewWispService creates a new WispService.
func NewWispService(wisps *Wisps) *WispService {
	return &WispService{wisps: wisps}
}

// Handler returns the mount path and handler for all procedures.
func (s *WispService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(ListWispsProcedure, connect.NewUnaryHandler(ListWispsProcedure, s.ListWisps, opts...))
	mux.Handle(GetWispProcedure, connect.NewUnaryHandler(GetWispProcedure, s.GetWisp, opts...))
	mux.Handle(DeleteWispProcedure, connect.NewUnaryHandler(DeleteWispProcedure, s.DeleteWisp, opts...))
	mux.Handle(RenderWispProcedure, connect.NewUnaryHandler(RenderWispProcedure, s.RenderWisp, opts...))
	return "/" + WispServiceName + "/", mux
}

// ListWisps returns a summary of every plan, most recently updated first.
func (s *WispService) ListWisps(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[structpb.ListValue], error) {
	list, err := s.wisps.List(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	values := make([]*structpb.Value, 0, len(list))
	for _, w := range list {
		summary, err := structpb.NewStruct(summaryFields(w))
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		values = append(values, structpb.NewStructValue(summary))
	}

	logging.FromContext(ctx).Debug("ListWisps successful", "count", len(list))
	return connect.NewResponse(&structpb.ListValue{Values: values}), nil
}

// GetWisp returns a plan with its answers.
func (s *WispService) GetWisp(ctx context.Context, req *connect.Request[wrapperspb.StringValue]) (*connect.Response[structpb.Struct], error) {
	w, err := s.wisps.Get(ctx, req.Msg.GetValue())
	if err != nil {
		return nil, toConnectError(err)
	}

	fields := summaryFields(w)
	fields["answers"] = answerFields(w.Answers)
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

// DeleteWisp removes a plan.
func (s *WispService) DeleteWisp(ctx context.Context, req *connect.Request[wrapperspb.StringValue]) (*connect.Response[emptypb.Empty], error) {
	id := req.Msg.GetValue()
	if err := s.wisps.Delete(ctx, id); err != nil {
		return nil, toConnectError(err)
	}
	logging.FromContext(ctx).Info("Wisp deleted", "wisp_id", id)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// RenderWisp returns the PDF for a plan. The variant comes from the
// Wisp-Variant request header.
func (s *WispService) RenderWisp(ctx context.Context, req *connect.Request[wrapperspb.StringValue]) (*connect.Response[wrapperspb.BytesValue], error) {
	var variant document.Variant
	if name := req.Header().Get(VariantHeader); name != "" {
		v, err := document.ParseVariant(name)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		variant = v
	}

	out, err := s.wisps.Render(ctx, req.Msg.GetValue(), variant)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := connect.NewResponse(wrapperspb.Bytes(out.PDF))
	resp.Header().Set("Wisp-Filename", out.Filename)
	return resp, nil
}

func summaryFields(w *models.Wisp) map[string]any {
	return map[string]any{
		"id":           w.ID,
		"company_name": w.CompanyName,
		"created_at":   w.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":   w.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func answerFields(a models.Answers) map[string]any {
	out := make(map[string]any, len(a))
	for name, v := range a {
		switch v.Kind {
		case models.KindString:
			out[name] = v.Str
		case models.KindBool:
			out[name] = v.Bool
		}
	}
	return out
}

func toConnectError(err error) error {
	var renderErr *document.RenderError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &renderErr):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
