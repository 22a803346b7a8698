// Package server implements the MCP (Model Context Protocol) server for image-to-text conversion.
//
// This package provides a JSON-RPC 2.0 server that exposes the OCR and text
// formatting pipeline through the MCP protocol, so MCP clients can read the
// text in screenshots, scans and photos.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Text Extraction:
//   - image_to_text: OCR a file or base64 image and format the text
//   - image_ocr_region: OCR and format a rectangular region
//   - format_text: Format text without OCR
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Engine:
//   - ocr_info: Engine availability and version
//
// # Progress
//
// A tools/call whose params carry _meta.progressToken receives
// notifications/progress messages while recognition runs. Progress is
// reported in [0, 1] with total 1, and the message is the engine status
// ("loading language traineddata", "recognizing text", ...).
//
// # Image Caching
//
// image_load and image_ocr_region keep decoded images in memory keyed by
// path, so recognizing several regions of one image decodes it once. The
// cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (invalid params),
//     -32601 (unknown method) or -32700 (unparseable request)
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "ocr processing failed: recognize: ..."
//
// # Usage
//
//	conv := imagetotext.NewTesseract(cfg.OCR.Config)
//	srv := server.New(conv, server.WithConfig(cfg), server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
