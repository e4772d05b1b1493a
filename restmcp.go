// Package restmcp exposes server-side resource actions as a discoverable
// MCP tool catalog served over JSON-RPC.
//
// # Overview
//
// restmcp turns a set of declared resources, each with CRUD-style and
// custom actions, into Model Context Protocol (MCP) tools. Tool names,
// titles, descriptions and JSON Schemas are derived from the resource's
// field graph at registration time, so the catalog an automated caller
// discovers through 'tools/list' always matches what 'tools/call' accepts.
//
// # Organization
//
//   - github.com/tidewater-labs/restmcp/resource: resource, field graph and
//     handler declarations plus throttling
//   - github.com/tidewater-labs/restmcp/schema: JSON Schema generation and
//     input validation
//   - github.com/tidewater-labs/restmcp/server: the tool registry, the
//     JSON-RPC engine and the HTTP endpoint
//   - github.com/tidewater-labs/restmcp/auth: authentication and
//     permission interfaces with bearer-token and JWKS implementations
//   - github.com/tidewater-labs/restmcp/protocol: wire types
//
// # Basic Usage
//
//	import (
//	  "github.com/tidewater-labs/restmcp/resource"
//	  "github.com/tidewater-labs/restmcp/server"
//	)
//
//	res := &resource.Resource{
//	  Name: "customer",
//	  Fields: []resource.Field{
//	    {Name: "name", Kind: resource.KindString, Required: true},
//	    {Name: "email", Kind: resource.KindString, Format: resource.FormatEmail},
//	  },
//	  Handlers: map[string]resource.HandlerFunc{
//	    "list":     listCustomers,
//	    "retrieve": getCustomer,
//	  },
//	}
//
//	srv := server.NewServer("customer-api")
//	if err := srv.RegisterResource(res); err != nil {
//	  log.Fatal(err)
//	}
//	log.Fatal(srv.ListenAndServe(":8080"))
package restmcp

// Version is the library version reported by servers that do not set one.
const Version = "1.0.0"
