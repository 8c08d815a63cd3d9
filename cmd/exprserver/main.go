// Command exprserver exposes the Check/Plan/Eval pipeline as a gRPC
// service (SPEC_FULL.md §B): an EvaluatorService.Evaluate RPC runs one
// sequential evaluation per call. It is a thin network facade over
// pkg/env and pkg/declfile, not a distributed evaluator — no program
// cache, no cross-call state.
//
// Grounded on the teacher's internal/evaluator/builtins_grpc.go
// (grpcServer/grpcRegister/grpcServe), adapted from a Funxy builtin
// callable from scripts into a standalone binary, since this module has
// no general-purpose host language to call grpcServer() from.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
)

func main() {
	addr := flag.String("addr", ":50051", "address to listen on")
	flag.Parse()

	sd, err := buildServiceDescriptor()
	if err != nil {
		log.Fatalf("exprserver: %v", err)
	}

	server := grpc.NewServer()
	registerEvaluatorService(server, sd)

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("exprserver: listening on %s: %v", *addr, err)
	}

	fmt.Printf("exprserver: serving %s on %s\n", sd.GetFullyQualifiedName(), *addr)
	if err := server.Serve(lis); err != nil {
		log.Fatalf("exprserver: %v", err)
	}
}
