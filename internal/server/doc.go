// Package server implements the MCP (Model Context Protocol) server for the
// color conversion, halftoning, hashing and compositing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the colorspace,
// halftone, phash and composite packages through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image and Registry Information:
//   - image_load: Load image and report dimensions, format and color mode
//   - image_modes: List modes, families, conversion edges, dither methods and resamplers
//   - image_conversion_path: Shortest chain of conversions between two modes
//
// Color Space Conversion:
//   - image_convert: Convert an image to another mode
//
// Halftoning:
//   - image_quantize: Reduce to N evenly spaced levels
//   - image_dither: Error-diffusion, ordered or random dithering to N levels
//
// Perceptual Hashing:
//   - image_average_hash: Average hash of an image
//   - image_compare_hash: Normalized Hamming distance between two hashes
//
// Compositing:
//   - image_composite: Porter-Duff source-over onto an image or solid color
//
// Optional arguments left at their zero value take their defaults from the
// config.Config the server was created with.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images keyed by path.
// Every tool call converts a fresh copy of the cached pixels, so results never
// alias each other.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.NewWithConfig(cfg, cfg.NewLogger(os.Stderr))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
