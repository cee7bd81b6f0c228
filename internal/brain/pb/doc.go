// Package pb holds the generated robotsystemcommunication messages and the
// BrainServer service stubs.
//
// Regenerate from this directory with:
//
//	protoc --go_out=. --go_opt=paths=source_relative \
//	  --go-grpc_out=. --go-grpc_opt=paths=source_relative \
//	  RobotSystemCommunication.proto
package pb

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative RobotSystemCommunication.proto
