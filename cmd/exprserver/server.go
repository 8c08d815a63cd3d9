package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/funvibe/exprlang/pkg/activation"
	"github.com/funvibe/exprlang/pkg/declfile"
	"github.com/funvibe/exprlang/pkg/exprjson"
)

func decodeActivationFields(data []byte) (map[string]exprjson.Value, error) {
	var fields map[string]exprjson.Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// evaluatorHandler backs the EvaluatorService's Evaluate method (SPEC_FULL.md
// §B): each call is a single, independent, single-threaded Check+Plan+Eval
// against a fresh Environment built from the request's declaration file —
// this is explicitly a remote-procedure facade over the core pipeline, not
// a distributed evaluator, so there is no cross-request Program cache.
//
// Grounded on the teacher's FunxyGrpcHandler.HandleUnary
// (internal/evaluator/builtins_grpc.go): decode the request into a
// dynamic.Message, do the work, encode the response into another
// dynamic.Message. Here "the work" is this module's pipeline instead of a
// Funxy function call.
type evaluatorHandler struct {
	sd *desc.ServiceDescriptor
}

func (h *evaluatorHandler) methodDescriptor() *desc.MethodDescriptor {
	return h.sd.FindMethodByName(methodName)
}

func (h *evaluatorHandler) HandleUnary(ctx context.Context, dec func(interface{}) error) (interface{}, error) {
	md := h.methodDescriptor()

	inMsg := dynamic.NewMessage(md.GetInputType())
	if err := dec(inMsg); err != nil {
		return nil, err
	}
	in := md.GetInputType()

	declsYAML := asString(inMsg.GetField(in.FindFieldByName("decls_yaml")))
	exprData := asBytes(inMsg.GetField(in.FindFieldByName("expr_json")))
	activationData := asBytes(inMsg.GetField(in.FindFieldByName("activation_json")))

	outMsg := dynamic.NewMessage(md.GetOutputType())
	if err := evaluate(ctx, declsYAML, exprData, activationData, outMsg); err != nil {
		return nil, err
	}
	return outMsg, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBytes(v interface{}) []byte {
	b, _ := v.([]byte)
	return b
}

// evaluate runs the Check/Plan/Eval pipeline and populates resp. Checker
// issues are always reported. An error-severity issue blocks evaluation
// (checker.Result.IsValid), while warnings can appear alongside a
// successful evaluation; a successful evaluation fills result_json and
// eval_id.
func evaluate(ctx context.Context, declsYAML string, exprData, activationData []byte, resp *dynamic.Message) error {
	e, err := declfile.Parse([]byte(declsYAML))
	if err != nil {
		return fmt.Errorf("parsing decls: %w", err)
	}

	expr, err := exprjson.DecodeExpr(exprData)
	if err != nil {
		return fmt.Errorf("decoding expression: %w", err)
	}

	respDesc := resp.GetMessageDescriptor()
	issuesField := respDesc.FindFieldByName("issues")
	resultField := respDesc.FindFieldByName("result_json")
	evalIDField := respDesc.FindFieldByName("eval_id")

	result := e.Check(expr)
	for _, iss := range result.Issues {
		if err := resp.TryAddRepeatedField(issuesField, iss.String()); err != nil {
			return fmt.Errorf("appending issue: %w", err)
		}
	}
	if !result.IsValid() {
		return nil
	}

	act, err := decodeActivation(activationData)
	if err != nil {
		return fmt.Errorf("decoding activation: %w", err)
	}

	prog := e.Plan(result.Checked)
	evalResult, err := e.NewEvaluator().Eval(ctx, prog.Program, act)
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}

	resultJSON := []byte(fmt.Sprintf("%q", evalResult.Value.String()))
	if err := resp.TrySetField(resultField, resultJSON); err != nil {
		return fmt.Errorf("setting result_json: %w", err)
	}
	if err := resp.TrySetField(evalIDField, evalResult.EvalID); err != nil {
		return fmt.Errorf("setting eval_id: %w", err)
	}
	return nil
}

func decodeActivation(data []byte) (*activation.Map, error) {
	m := activation.NewMap()
	if len(data) == 0 {
		return m, nil
	}
	fields, err := decodeActivationFields(data)
	if err != nil {
		return nil, err
	}
	for name, vj := range fields {
		v, err := vj.ToValue()
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		m.Set(name, v)
	}
	return m, nil
}

// registerEvaluatorService wires the hand-built service descriptor into a
// grpc.Server using a manual grpc.ServiceDesc, exactly the construction the
// teacher's builtinGrpcRegister uses for a service with no protoc-generated
// stubs: one grpc.MethodDesc per descriptor method, each Handler decoding
// into a dynamic.Message via the codec's dec callback.
func registerEvaluatorService(server *grpc.Server, sd *desc.ServiceDescriptor) {
	h := &evaluatorHandler{sd: sd}

	gsd := &grpc.ServiceDesc{
		ServiceName: sd.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Metadata:    sd.GetFile().GetName(),
	}
	for _, method := range sd.GetMethods() {
		gsd.Methods = append(gsd.Methods, grpc.MethodDesc{
			MethodName: method.GetName(),
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*evaluatorHandler).HandleUnary(ctx, dec)
			},
		})
	}
	server.RegisterService(gsd, h)
}
