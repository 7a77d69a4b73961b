package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-halftone-mcp/internal/colorspace"
	"github.com/ironsheep/image-halftone-mcp/internal/composite"
	"github.com/ironsheep/image-halftone-mcp/internal/config"
	"github.com/ironsheep/image-halftone-mcp/internal/halftone"
	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
	"github.com/ironsheep/image-halftone-mcp/internal/phash"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_dither").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for optional parameters
//  3. Loads images from cache and converts them to the mode it needs
//  4. Calls the colorspace/halftone/phash/composite function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	s.logger.Debug("tool call", "tool", name)
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image and registry information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_modes":
		return s.handleImageModes(args)
	case "image_conversion_path":
		return s.handleConversionPath(args)

	// Color space conversion
	case "image_convert":
		return s.handleImageConvert(args)

	// Halftoning
	case "image_quantize":
		return s.handleImageQuantize(args)
	case "image_dither":
		return s.handleImageDither(args)

	// Perceptual hashing
	case "image_average_hash":
		return s.handleAverageHash(args)
	case "image_compare_hash":
		return s.handleCompareHash(args)

	// Compositing
	case "image_composite":
		return s.handleImageComposite(args)

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

var errMissingPath = errors.New("path is required")

// loadAs loads path and converts it to the named mode.
func (s *Server) loadAs(path, mode string) (*imaging.Buffer, error) {
	if path == "" {
		return nil, errMissingPath
	}
	buf, loaded, err := s.cache.LoadBuffer(path)
	if err != nil {
		return nil, err
	}
	return colorspace.Convert(buf, loaded, mode)
}

// channelStats summarizes one channel of a result buffer.
type channelStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

func stats(b *imaging.Buffer) []channelStats {
	out := make([]channelStats, b.Channels)
	for c := range out {
		out[c] = channelStats{Min: math.Inf(1), Max: math.Inf(-1)}
	}
	for i, v := range b.Data {
		st := &out[i%b.Channels]
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
		st.Mean += v
	}
	for c := range out {
		if b.Pixels() == 0 {
			out[c] = channelStats{}
			continue
		}
		out[c].Mean /= float64(b.Pixels())
	}
	return out
}

// render encodes b as PNG. Gray, bool, RGB and RGBA modes render directly;
// other families are converted to RGB first and previewMode reports that.
func render(b *imaging.Buffer, mode string) (enc *imaging.EncodedImage, previewMode string, err error) {
	m, err := colorspace.Lookup(mode)
	if err != nil {
		return nil, "", err
	}
	switch m.Family {
	case colorspace.FamilyGray, colorspace.FamilyBool, colorspace.FamilyRGB, colorspace.FamilyRGBA:
		enc, err = imaging.EncodePNG(b, m.Name, m.Min, m.Max)
		return enc, "", err
	}
	rgb, err := colorspace.Convert(b, m.Name, "RGB")
	if err != nil {
		return nil, "", err
	}
	enc, err = imaging.EncodePNG(rgb, m.Name, 0, 255)
	return enc, "RGB", err
}

// === Image and Registry Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type modesResult struct {
	Modes         []colorspace.ColorMode `json:"modes"`
	Families      []string               `json:"families"`
	Edges         [][2]string            `json:"edges"`
	DitherMethods []halftone.Method      `json:"dither_methods"`
	Resamplers    []string               `json:"resamplers"`
}

func (s *Server) handleImageModes(json.RawMessage) (interface{}, error) {
	return &modesResult{
		Modes:         colorspace.Modes(),
		Families:      colorspace.Families(),
		Edges:         colorspace.DefaultGraph().Edges(),
		DitherMethods: halftone.Methods(),
		Resamplers:    phash.Resamplers(),
	}, nil
}

type conversionPathArgs struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type conversionPathResult struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Path   []string `json:"path"`
	Steps  int      `json:"steps"`
}

func (s *Server) handleConversionPath(args json.RawMessage) (interface{}, error) {
	var a conversionPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	path, err := colorspace.ShortestPath(a.Source, a.Target)
	if err != nil {
		return nil, err
	}
	return &conversionPathResult{Source: a.Source, Target: a.Target, Path: path, Steps: len(path) - 1}, nil
}

// === Color Space Conversion Handlers ===

type imageConvertArgs struct {
	Path   string `json:"path"`
	Target string `json:"target"`
}

type imageResult struct {
	imaging.EncodedImage
	Channels    []channelStats `json:"channels"`
	PreviewMode string         `json:"preview_mode,omitempty"`
}

type convertResult struct {
	imageResult
	SourceMode string   `json:"source_mode"`
	Path       []string `json:"path"`
}

func (s *Server) handleImageConvert(args json.RawMessage) (interface{}, error) {
	var a imageConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	buf, loaded, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	path, err := colorspace.ShortestPath(loaded, a.Target)
	if err != nil {
		return nil, err
	}
	out, err := colorspace.Convert(buf, loaded, a.Target)
	if err != nil {
		return nil, err
	}
	target, _ := colorspace.Lookup(a.Target)
	enc, preview, err := render(out, target.Name)
	if err != nil {
		return nil, err
	}
	return &convertResult{
		imageResult: imageResult{EncodedImage: *enc, Channels: stats(out), PreviewMode: preview},
		SourceMode:  loaded,
		Path:        path,
	}, nil
}

// === Halftoning Handlers ===

type halftoneArgs struct {
	Path       string `json:"path"`
	Method     string `json:"method"`
	Levels     int    `json:"levels"`
	PerChannel bool   `json:"per_channel"`
	Invert     bool   `json:"invert"`
}

type halftoneResult struct {
	imageResult
	Method   halftone.Method `json:"method,omitempty"`
	Levels   int             `json:"levels"`
	Fallback bool            `json:"fallback,omitempty"`
}

// prepareHalftone loads the image as float gray ("F") or, for per-channel
// requests, as RGB(A) with color normalized to 0..1, and applies the optional
// inversion. Alpha stays in 0..255 so that it remains a valid sample of the
// integer level storage the halftone ops produce.
func (s *Server) prepareHalftone(a *halftoneArgs) (*imaging.Buffer, error) {
	if a.Levels == 0 {
		a.Levels = s.cfg.Levels
	}
	if a.Levels < 2 || a.Levels > config.MaxLevels {
		return nil, &imaging.InvalidParameterError{
			Op:     "halftone",
			Param:  "levels",
			Reason: fmt.Sprintf("must be between 2 and %d, got %d", config.MaxLevels, a.Levels),
		}
	}
	if !a.PerChannel {
		buf, err := s.loadAs(a.Path, "F")
		if err != nil {
			return nil, err
		}
		if a.Invert {
			buf = imaging.Invert(buf, 1)
		}
		return buf, nil
	}

	if a.Path == "" {
		return nil, errMissingPath
	}
	buf, loaded, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	mode := "RGB"
	if buf.Channels == 2 || buf.Channels == 4 {
		mode = "RGBA"
	}
	rgb, err := colorspace.Convert(buf, loaded, mode)
	if err != nil {
		return nil, err
	}
	norm := rgb.Clone()
	norm.Storage = imaging.Float
	for p := 0; p < norm.Pixels(); p++ {
		for _, c := range imaging.ColorChannels(norm) {
			norm.Data[p*norm.Channels+c] /= 255
		}
	}
	if a.Invert {
		inv, err := imaging.ApplyPerChannel(norm, func(c *imaging.Buffer) (*imaging.Buffer, error) {
			return imaging.Invert(c, 1), nil
		})
		if err != nil {
			return nil, err
		}
		norm = inv
	}
	return norm, nil
}

// finishHalftone turns level indices back into displayable intensities and
// encodes the result. Alpha, when present, is in 0..255.
func finishHalftone(levels *imaging.Buffer, n int) (*imageResult, error) {
	color := imaging.ColorChannels(levels)
	display := levels.Clone()
	display.Storage = imaging.Float
	for p := 0; p < display.Pixels(); p++ {
		for _, c := range color {
			display.Data[p*display.Channels+c] /= float64(n - 1)
		}
		if display.Channels == 4 {
			display.Data[p*4+3] /= 255
		}
	}
	mode := "F"
	switch display.Channels {
	case 3:
		mode = "RGB"
	case 4:
		mode = "RGBA"
	}
	m, _ := colorspace.Lookup(mode)
	enc, err := imaging.EncodePNG(display, m.Name, 0, 1)
	if err != nil {
		return nil, err
	}
	return &imageResult{EncodedImage: *enc, Channels: stats(levels)}, nil
}

func (s *Server) handleImageQuantize(args json.RawMessage) (interface{}, error) {
	var a halftoneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.prepareHalftone(&a)
	if err != nil {
		return nil, err
	}
	levels, err := imaging.ApplyPerChannel(buf, func(c *imaging.Buffer) (*imaging.Buffer, error) {
		return halftone.Quantize(c, a.Levels, 1)
	})
	if err != nil {
		return nil, err
	}
	res, err := finishHalftone(levels, a.Levels)
	if err != nil {
		return nil, err
	}
	return &halftoneResult{imageResult: *res, Levels: a.Levels}, nil
}

func (s *Server) handleImageDither(args json.RawMessage) (interface{}, error) {
	var a halftoneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	method := s.cfg.Dither
	if a.Method != "" {
		method = halftone.ParseMethod(a.Method)
	}
	buf, err := s.prepareHalftone(&a)
	if err != nil {
		return nil, err
	}
	run := halftone.Resolve(method, s.logger)
	levels, err := imaging.ApplyPerChannel(buf, func(c *imaging.Buffer) (*imaging.Buffer, error) {
		return halftone.Dither(c, run, a.Levels, 1, halftone.WithLogger(s.logger))
	})
	if err != nil {
		return nil, err
	}
	res, err := finishHalftone(levels, a.Levels)
	if err != nil {
		return nil, err
	}
	return &halftoneResult{
		imageResult: *res,
		Method:      method,
		Levels:      a.Levels,
		Fallback:    !method.Known(),
	}, nil
}

// === Perceptual Hashing Handlers ===

type averageHashArgs struct {
	Path      string `json:"path"`
	HashSize  int    `json:"hash_size"`
	Resampler string `json:"resampler"`
}

type averageHashResult struct {
	Hash      string `json:"hash"`
	HashSize  int    `json:"hash_size"`
	Bits      int    `json:"bits"`
	Resampler string `json:"resampler"`
}

func (s *Server) hashOptions(size int, resampler string) (int, string, []phash.Option, error) {
	if size == 0 {
		size = s.cfg.HashSize
	}
	if size < 1 || size > config.MaxHashSize {
		return 0, "", nil, &imaging.InvalidParameterError{
			Op:     "hash",
			Param:  "hash_size",
			Reason: fmt.Sprintf("must be between 1 and %d, got %d", config.MaxHashSize, size),
		}
	}
	if resampler == "" {
		resampler = s.cfg.Resampler
	}
	fn, err := phash.LookupResampler(resampler)
	if err != nil {
		return 0, "", nil, err
	}
	return size, resampler, []phash.Option{phash.WithResampler(fn)}, nil
}

func (s *Server) hashFile(path string, size int, opts []phash.Option) (phash.Hash, error) {
	if path == "" {
		return phash.Hash{}, errMissingPath
	}
	buf, mode, err := s.cache.LoadBuffer(path)
	if err != nil {
		return phash.Hash{}, err
	}
	return phash.AverageHash(buf, mode, size, opts...)
}

func (s *Server) handleAverageHash(args json.RawMessage) (interface{}, error) {
	var a averageHashArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	size, resampler, opts, err := s.hashOptions(a.HashSize, a.Resampler)
	if err != nil {
		return nil, err
	}
	h, err := s.hashFile(a.Path, size, opts)
	if err != nil {
		return nil, err
	}
	return &averageHashResult{Hash: h.String(), HashSize: h.Size(), Bits: h.Len(), Resampler: resampler}, nil
}

type compareHashArgs struct {
	Path1     string `json:"path1"`
	Path2     string `json:"path2"`
	Hash1     string `json:"hash1"`
	Hash2     string `json:"hash2"`
	HashSize  int    `json:"hash_size"`
	Resampler string `json:"resampler"`
}

type compareHashResult struct {
	Hash1     string  `json:"hash1"`
	Hash2     string  `json:"hash2"`
	HashSize  int     `json:"hash_size"`
	Distance  float64 `json:"distance"`
	Identical bool    `json:"identical"`
}

// resolveHash returns the hash given as hex, or hashes the file at path.
func (s *Server) resolveHash(hex, path string, size int, opts []phash.Option) (phash.Hash, error) {
	if hex != "" {
		return phash.ParseHash(hex, size)
	}
	return s.hashFile(path, size, opts)
}

func (s *Server) handleCompareHash(args json.RawMessage) (interface{}, error) {
	var a compareHashArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	size, _, opts, err := s.hashOptions(a.HashSize, a.Resampler)
	if err != nil {
		return nil, err
	}
	h1, err := s.resolveHash(a.Hash1, a.Path1, size, opts)
	if err != nil {
		return nil, fmt.Errorf("first image: %w", err)
	}
	h2, err := s.resolveHash(a.Hash2, a.Path2, size, opts)
	if err != nil {
		return nil, fmt.Errorf("second image: %w", err)
	}
	d, err := phash.Distance(h1, h2)
	if err != nil {
		return nil, err
	}
	return &compareHashResult{
		Hash1:     h1.String(),
		Hash2:     h2.String(),
		HashSize:  size,
		Distance:  d,
		Identical: d == 0,
	}, nil
}

// === Compositing Handlers ===

type imageCompositeArgs struct {
	FrontPath  string `json:"front_path"`
	BackPath   string `json:"back_path"`
	Background []int  `json:"background"`
}

func (s *Server) handleImageComposite(args json.RawMessage) (interface{}, error) {
	var a imageCompositeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	front, err := s.loadAs(a.FrontPath, "RGBA")
	if err != nil {
		return nil, fmt.Errorf("front: %w", err)
	}

	var out *imaging.Buffer
	if a.BackPath != "" {
		back, err := s.loadAs(a.BackPath, "RGBA")
		if err != nil {
			return nil, fmt.Errorf("back: %w", err)
		}
		out, err = composite.Over(front, back)
		if err != nil {
			return nil, err
		}
	} else {
		bg := [3]float64{255, 255, 255}
		if len(a.Background) != 0 && len(a.Background) != 3 {
			return nil, fmt.Errorf("background must have 3 components, got %d", len(a.Background))
		}
		for i, v := range a.Background {
			bg[i] = float64(v)
		}
		out, err = composite.OverColor(front, bg[0], bg[1], bg[2])
		if err != nil {
			return nil, err
		}
	}

	enc, err := imaging.EncodePNG(out, "RGBA", 0, 255)
	if err != nil {
		return nil, err
	}
	return &imageResult{EncodedImage: *enc, Channels: stats(out)}, nil
}
