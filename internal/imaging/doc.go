// Package imaging validates, decodes and crops the images handed to the OCR engine.
//
// The package never alters pixel content. It answers three questions before
// any recognition work starts: is this buffer an image at all, which format is
// it, and how large is it. It also crops regions for region-based OCR.
//
// # Supported Formats
//
// Decoders are registered for PNG, JPEG and GIF (standard library) and for
// BMP, TIFF and WebP (golang.org/x/image). Format detection is based on file
// contents, not extensions.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. For
// regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
//
// # Error Handling
//
// Buffers that match no registered decoder fail with ErrUnsupportedFormat.
// Recognized but corrupt headers fail with a wrapped decoder error.
package imaging
