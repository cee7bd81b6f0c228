// Package brain is the boundary to the remote decision policy.
//
// It speaks the robotsystemcommunication.BrainServer/GetAction unary RPC
// using the generated messages in package pb.
// Key types: Action, Client, StubPolicy.
package brain
