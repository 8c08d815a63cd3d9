package main

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/builder"
)

const (
	servicePackage = "exprlang"
	serviceName    = "EvaluatorService"
	methodName     = "Evaluate"
)

// buildServiceDescriptor builds the EvaluatorService descriptor
// programmatically, the same way internal/hoststruct builds struct
// schemas with desc/builder instead of parsing a .proto file: this
// module has no protoc-generated stubs, so the request/response message
// shapes and the service/method descriptor are all constructed in code
// and driven directly as dynamic.Message values, mirroring the teacher's
// internal/evaluator/builtins_grpc.go grpcRegister (which builds a
// grpc.ServiceDesc by hand from a *desc.ServiceDescriptor rather than
// from generated Go bindings).
//
// EvalRequest carries a declaration file, a JSON-encoded expression
// (pkg/exprjson), and an optional JSON-encoded activation object.
// EvalResponse carries the checker's issues (if any), plus the resulting
// value and evaluation id when checking succeeded.
func buildServiceDescriptor() (*desc.ServiceDescriptor, error) {
	reqMsg := builder.NewMessage("EvalRequest")
	if err := addFields(reqMsg,
		field("decls_yaml", builder.FieldTypeString()),
		field("expr_json", builder.FieldTypeBytes()),
		field("activation_json", builder.FieldTypeBytes()),
	); err != nil {
		return nil, err
	}

	respMsg := builder.NewMessage("EvalResponse")
	if err := addFields(respMsg,
		field("result_json", builder.FieldTypeBytes()),
		field("eval_id", builder.FieldTypeString()),
		repeatedField("issues", builder.FieldTypeString()),
	); err != nil {
		return nil, err
	}

	method := builder.NewMethod(methodName,
		builder.RpcTypeMessage(reqMsg, false),
		builder.RpcTypeMessage(respMsg, false),
	)

	svc := builder.NewService(serviceName)
	if err := svc.TryAddMethod(method); err != nil {
		return nil, fmt.Errorf("exprserver: adding method %s: %w", methodName, err)
	}

	fb := builder.NewFile("exprlang_evaluator.proto").SetPackageName(servicePackage)
	if err := fb.TryAddService(svc); err != nil {
		return nil, fmt.Errorf("exprserver: adding service %s: %w", serviceName, err)
	}
	fd, err := fb.Build()
	if err != nil {
		return nil, fmt.Errorf("exprserver: building service descriptor: %w", err)
	}
	sd := fd.FindService(servicePackage + "." + serviceName)
	if sd == nil {
		return nil, fmt.Errorf("exprserver: service %s vanished after build", serviceName)
	}
	return sd, nil
}

func field(name string, ft *builder.FieldType) *builder.FieldBuilder {
	return builder.NewField(name, ft)
}

func repeatedField(name string, ft *builder.FieldType) *builder.FieldBuilder {
	return builder.NewField(name, ft).SetRepeated()
}

func addFields(mb *builder.MessageBuilder, fields ...*builder.FieldBuilder) error {
	for _, fb := range fields {
		if err := mb.TryAddField(fb); err != nil {
			return fmt.Errorf("exprserver: adding field: %w", err)
		}
	}
	return nil
}
