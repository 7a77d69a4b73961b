package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc,
	}
}

// halftoneProperties are shared by image_quantize and image_dither.
func halftoneProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty("Absolute path to the image file"),
		"levels": map[string]interface{}{
			"type":        "integer",
			"description": "Number of output levels per channel (default: 2)",
			"minimum":     2,
			"maximum":     65536,
		},
		"per_channel": map[string]interface{}{
			"type":        "boolean",
			"description": "Process R, G and B independently instead of converting to gray first (default: false)",
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Invert intensities before processing (default: false)",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	dither := halftoneProperties()
	dither["method"] = map[string]interface{}{
		"type":        "string",
		"description": "Dithering method: floyd-steinberg, nearest, random, ordered, philips, sierra, stucki. Unknown names fall back to floyd-steinberg (default: floyd-steinberg)",
	}

	return []Tool{
		// Image and Registry Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color mode. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_modes",
			Description: "List the supported color modes, color-space families, conversion edges, dithering methods and resampling filters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_conversion_path",
			Description: "Find the shortest chain of color-space conversions between two modes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": map[string]interface{}{
						"type":        "string",
						"description": "Source mode name (e.g., RGBA, L, CMYK)",
					},
					"target": map[string]interface{}{
						"type":        "string",
						"description": "Target mode name",
					},
				},
				"required": []string{"source", "target"},
			},
		},

		// Color Space Conversion
		{
			Name:        "image_convert",
			Description: "Convert an image to another color mode and return it as base64-encoded PNG with per-channel statistics. Modes without a direct PNG rendering (CMYK, LAB, XYZ, HSV) are previewed through RGB.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"target": map[string]interface{}{
						"type":        "string",
						"description": "Target mode name (e.g., L, 1, F, RGB, RGBA, CMYK, LAB, XYZ, HSV)",
					},
				},
				"required": []string{"path", "target"},
			},
		},

		// Halftoning
		{
			Name:        "image_quantize",
			Description: "Quantize an image to a fixed number of evenly spaced levels without dithering.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": halftoneProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_dither",
			Description: "Dither an image to a fixed number of levels using error diffusion, ordered or random dithering.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": dither,
				"required":   []string{"path"},
			},
		},

		// Perceptual Hashing
		{
			Name:        "image_average_hash",
			Description: "Compute the average hash of an image: the image is resized to hash_size x hash_size gray pixels and each bit records whether a pixel is brighter than the mean.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"hash_size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of the hash grid; the hash has hash_size^2 bits (default: 8)",
						"minimum":     1,
						"maximum":     64,
					},
					"resampler": map[string]interface{}{
						"type":        "string",
						"description": "Resampling filter: lanczos, box, bilinear, nearest, mitchell, cubic (default: lanczos)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_compare_hash",
			Description: "Compare two images by average hash. Each side is given as an image path or a hex hash. Distance is 0 for identical hashes and 2 for complementary ones.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path1": pathProperty("First image file (ignored if hash1 is set)"),
					"path2": pathProperty("Second image file (ignored if hash2 is set)"),
					"hash1": map[string]interface{}{
						"type":        "string",
						"description": "First hash as hex, as returned by image_average_hash",
					},
					"hash2": map[string]interface{}{
						"type":        "string",
						"description": "Second hash as hex",
					},
					"hash_size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of the hash grid (default: 8)",
						"minimum":     1,
						"maximum":     64,
					},
					"resampler": map[string]interface{}{
						"type":        "string",
						"description": "Resampling filter used when hashing files (default: lanczos)",
					},
				},
			},
		},

		// Compositing
		{
			Name:        "image_composite",
			Description: "Composite an image over another image or over a solid background color using Porter-Duff source-over.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"front_path": pathProperty("Absolute path to the foreground image"),
					"back_path":  pathProperty("Absolute path to the background image; must have the same dimensions"),
					"background": map[string]interface{}{
						"type":        "array",
						"description": "Background color [r, g, b] in 0-255, used when back_path is not set (default: [255, 255, 255])",
						"items":       map[string]interface{}{"type": "integer"},
						"minItems":    3,
						"maxItems":    3,
					},
				},
				"required": []string{"front_path"},
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
