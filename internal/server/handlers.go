package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-to-text/internal/format"
	"github.com/ironsheep/image-to-text/internal/imaging"
	"github.com/ironsheep/image-to-text/internal/logging"
	"github.com/ironsheep/image-to-text/internal/ocr"
	"github.com/ironsheep/image-to-text/pkg/imagetotext"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_to_text", "format_text").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional progress token.
	Meta *RequestMeta `json:"_meta,omitempty"`
}

// RequestMeta is the MCP request metadata object.
type RequestMeta struct {
	// ProgressToken, when present, asks for notifications/progress messages.
	// It is echoed back as-is, so it may be a string or a number.
	ProgressToken interface{} `json:"progressToken,omitempty"`
}

// ProgressParams are the params of a notifications/progress message.
type ProgressParams struct {
	ProgressToken interface{} `json:"progressToken"`
	Progress      float64     `json:"progress"`
	Total         float64     `json:"total"`
	Message       string      `json:"message,omitempty"`
}

// errInvalidArguments marks argument errors so they map to -32602.
var errInvalidArguments = errors.New("invalid arguments")

// toolCall is one tools/call invocation.
type toolCall struct {
	ctx      context.Context
	jobID    string
	args     json.RawMessage
	progress ocr.ProgressFunc
	logger   zerolog.Logger
}

func (c *toolCall) decode(v interface{}) error {
	if len(c.args) == 0 {
		return nil
	}
	if err := json.Unmarshal(c.args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000;
// malformed arguments return -32602.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	jobID := uuid.NewString()
	logger := s.logger.With().Str("job_id", jobID).Str("tool", params.Name).Logger()

	call := &toolCall{
		ctx:    ctx,
		jobID:  jobID,
		args:   params.Arguments,
		logger: logger,
	}
	call.progress = logging.Chain(logging.ProgressObserver(logger), s.progressNotifier(params.Meta))

	start := time.Now()
	result, err := s.executeTool(call, params.Name)
	elapsed := time.Since(start)

	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", elapsed).Msg("tool failed")
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	logger.Info().Dur("elapsed", elapsed).Msg("tool completed")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// progressNotifier returns a ProgressFunc that sends notifications/progress
// for meta's token, or nil when the client did not ask for progress.
//
// Progress is reported as the overall value in [0, 1] and never decreases.
func (s *Server) progressNotifier(meta *RequestMeta) ocr.ProgressFunc {
	if meta == nil || meta.ProgressToken == nil {
		return nil
	}
	token := meta.ProgressToken
	last := 0.0

	return func(p ocr.Progress) {
		overall, ok := p.Overall()
		if !ok {
			return
		}
		if overall < last {
			overall = last
		}
		last = overall

		s.send(&MCPNotification{
			JSONRPC: "2.0",
			Method:  "notifications/progress",
			Params: ProgressParams{
				ProgressToken: token,
				Progress:      overall,
				Total:         1,
				Message:       p.Status,
			},
		})
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(call *toolCall, name string) (interface{}, error) {
	switch name {
	// Text Extraction
	case "image_to_text":
		return s.handleImageToText(call)
	case "image_ocr_region":
		return s.handleImageOCRRegion(call)
	case "format_text":
		return s.handleFormatText(call)

	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(call)
	case "image_dimensions":
		return s.handleImageDimensions(call)

	// Engine
	case "ocr_info":
		return ocr.EngineInfo(s.cfg.OCR.Config), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// options builds conversion options from tool arguments layered over the
// configured defaults.
func (s *Server) options(call *toolCall, langs ocr.Languages, ov format.Overrides) imagetotext.Options {
	if len(langs) == 0 {
		langs = s.cfg.OCR.Languages
	}
	return imagetotext.Options{
		Languages:  langs,
		OnProgress: call.progress,
		Format:     s.cfg.Format.Merge(ov),
	}
}

// TextResult is the tool result of image_to_text and image_ocr_region.
type TextResult struct {
	JobID string `json:"job_id"`

	*ocr.Result
}

// === Text Extraction Handlers ===

type imageToTextArgs struct {
	Path     string           `json:"path"`
	Data     string           `json:"data"`
	Language ocr.Languages    `json:"language"`
	Format   format.Overrides `json:"format"`
}

func (s *Server) handleImageToText(call *toolCall) (interface{}, error) {
	var a imageToTextArgs
	if err := call.decode(&a); err != nil {
		return nil, err
	}
	opts := s.options(call, a.Language, a.Format)

	var (
		result *ocr.Result
		err    error
	)
	if a.Path != "" {
		result, err = s.conv.FileToText(call.ctx, a.Path, opts)
	} else {
		data, derr := base64.StdEncoding.DecodeString(a.Data)
		if derr != nil {
			return nil, fmt.Errorf("%w: data is not valid base64: %v", errInvalidArguments, derr)
		}
		result, err = s.conv.ImageToText(call.ctx, data, opts)
	}
	if err != nil {
		return nil, err
	}

	call.logger.Debug().
		Str("language", result.Language).
		Float64("confidence", result.Confidence).
		Int("words", len(result.Words)).
		Msg("text extracted")

	return &TextResult{JobID: call.jobID, Result: result}, nil
}

type imageOCRRegionArgs struct {
	Path     string           `json:"path"`
	X1       int              `json:"x1"`
	Y1       int              `json:"y1"`
	X2       int              `json:"x2"`
	Y2       int              `json:"y2"`
	Language ocr.Languages    `json:"language"`
	Format   format.Overrides `json:"format"`
}

func (s *Server) handleImageOCRRegion(call *toolCall) (interface{}, error) {
	var a imageOCRRegionArgs
	if err := call.decode(&a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, ocr.ErrNoImageData
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	// Not image.Rect, which would silently swap inverted corners.
	region := image.Rectangle{Min: image.Pt(a.X1, a.Y1), Max: image.Pt(a.X2, a.Y2)}

	result, err := s.conv.RegionToText(call.ctx, img, region, s.options(call, a.Language, a.Format))
	if err != nil {
		return nil, err
	}
	return &TextResult{JobID: call.jobID, Result: result}, nil
}

type formatTextArgs struct {
	Text   string           `json:"text"`
	Format format.Overrides `json:"format"`
}

func (s *Server) handleFormatText(call *toolCall) (interface{}, error) {
	var a formatTextArgs
	if err := call.decode(&a); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"text": imagetotext.FormatText(a.Text, s.cfg.Format.Merge(a.Format)),
	}, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(call *toolCall) (interface{}, error) {
	var a imageLoadArgs
	if err := call.decode(&a); err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(a.Path)
	if err != nil {
		return nil, err
	}
	// Warm the cache for image_ocr_region on the same path.
	if _, err := s.cache.Load(a.Path); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *Server) handleImageDimensions(call *toolCall) (interface{}, error) {
	var a imageLoadArgs
	if err := call.decode(&a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(a.Path)
}
