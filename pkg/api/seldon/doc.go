// Package seldon holds the generated types and gRPC bindings of the
// io.seldon.api.rpc.Seldon service.
package seldon

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative seldon.proto
