package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// formatSchema describes the per-request formatter overrides. Omitted fields
// keep their configured or default values.
func formatSchema() map[string]interface{} {
	flag := func(desc string, def bool) map[string]interface{} {
		return map[string]interface{}{
			"type":        "boolean",
			"description": desc,
			"default":     def,
		}
	}
	return map[string]interface{}{
		"type":        "object",
		"description": "Text formatting options",
		"properties": map[string]interface{}{
			"trim":                    flag("Strip leading and trailing whitespace", true),
			"remove_extra_spaces":     flag("Collapse runs of whitespace into one space", true),
			"preserve_line_breaks":    flag("Keep line breaks instead of joining lines", false),
			"add_paragraphs":          flag("Start a new paragraph after '.', '!' and '?'", true),
			"capitalize_first_letter": flag("Uppercase the first letter of each paragraph", true),
		},
	}
}

func languageSchema() map[string]interface{} {
	return map[string]interface{}{
		"description": "Tesseract language code, e.g. 'eng', 'eng+fra', or a list such as ['eng', 'ben'] (default from configuration, 'eng')",
		"oneOf": []interface{}{
			map[string]interface{}{"type": "string"},
			map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Text Extraction
		{
			Name:        "image_to_text",
			Description: "Extract text from an image with OCR and return it cleaned up: whitespace collapsed, paragraphs split at sentence ends, first letters capitalized. Pass either a file path or base64 image data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP). Used when path is empty.",
					},
					"language": languageSchema(),
					"format":   formatSchema(),
				},
			},
		},
		{
			Name:        "image_ocr_region",
			Description: "Extract and format text from a specific rectangular region of the image. Word bounds are reported in full-image coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1":       map[string]interface{}{"type": "integer"},
					"y1":       map[string]interface{}{"type": "integer"},
					"x2":       map[string]interface{}{"type": "integer"},
					"y2":       map[string]interface{}{"type": "integer"},
					"language": languageSchema(),
					"format":   formatSchema(),
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "format_text",
			Description: "Apply the OCR text formatter to text you already have.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Raw text to format",
					},
					"format": formatSchema(),
				},
				"required": []string{"text"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Keeps the decoded image for later region OCR.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Engine
		{
			Name:        "ocr_info",
			Description: "Report whether the OCR engine is available, its version and the tessdata location.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
