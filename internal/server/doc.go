// Package server implements the MCP (Model Context Protocol) server for blob
// labeling tools.
//
// This package provides a JSON-RPC 2.0 server that exposes connected-component
// labeling and contour extraction through the MCP protocol. It's designed to
// work with Claude and other MCP-compatible clients, enabling AI systems to
// segment and measure binary image content with precision.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_threshold: Preview the binarized mask
//
// Blob Operations:
//   - blob_find: Label blobs and extract contours
//   - blob_render_labels: Color visualization of the label buffer
//   - blob_stats: Per-blob measurements and area statistics
//   - blob_export_svg: Contours as an SVG document
//
// Every blob tool shares the same binarization parameters (threshold,
// blur_radius) and an optional region of interest (x, y, width, height).
// Regions reaching past the image edge are clamped; contour points are
// always reported in full-image coordinates.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
