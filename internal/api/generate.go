// Package api holds the HTTP contract: openapi.yaml and the server code
// generated from it.
package api

//go:generate go tool oapi-codegen -config oapi-codegen.yaml openapi.yaml
