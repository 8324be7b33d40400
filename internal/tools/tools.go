// Package tools exposes the taxonomy store as MCP tools. Handlers translate
// between tool arguments and taxonomy queries; unknown-key misses come back
// as normal payloads with an error field, never as protocol failures.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dmarsters/satellite-imagery-aesthetics/internal/taxonomy"
)

const (
	ServerName    = "satellite-imagery-aesthetics"
	ServerVersion = "1.0.0"
)

// Service wires the taxonomy store to MCP tool handlers.
type Service struct {
	tax *taxonomy.Taxonomy
	log *zap.Logger
}

// NewService creates a tool service over a loaded taxonomy.
func NewService(tax *taxonomy.Taxonomy, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{tax: tax, log: log}
}

// NewServer builds an MCP server with every taxonomy tool registered.
func NewServer(tax *taxonomy.Taxonomy, log *zap.Logger) *server.MCPServer {
	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
	)
	NewService(tax, log).Register(srv)
	return srv
}

// Register adds all seven taxonomy tools to the server.
func (s *Service) Register(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("list_imagery_types",
		mcp.WithDescription("List all available satellite imagery types."),
	), s.ListImageryTypes)

	srv.AddTool(mcp.NewTool("get_imagery_profile",
		mcp.WithDescription("Layer 1: Retrieve complete profile data for an imagery type."),
		mcp.WithString("imagery_type", mcp.Required(),
			mcp.Description("Imagery type id, e.g. true_color_rgb")),
	), s.GetImageryProfile)

	srv.AddTool(mcp.NewTool("list_altitude_perspectives",
		mcp.WithDescription("List all available altitude perspectives for composition."),
	), s.ListAltitudePerspectives)

	srv.AddTool(mcp.NewTool("list_feature_emphasis_options",
		mcp.WithDescription("List all available feature emphasis types."),
	), s.ListFeatureEmphasisOptions)

	srv.AddTool(mcp.NewTool("list_aesthetic_strengths",
		mcp.WithDescription("List all available aesthetic strength levels."),
	), s.ListAestheticStrengths)

	srv.AddTool(mcp.NewTool("map_satellite_parameters",
		mcp.WithDescription("Layer 2: Deterministic mapping of parameters (zero LLM cost)."),
		mcp.WithString("imagery_type", mcp.Required(),
			mcp.Description("Imagery type id, e.g. false_color_infrared")),
		mcp.WithString("altitude", mcp.Required(),
			mcp.Description("Altitude perspective id, e.g. orbital")),
		mcp.WithString("feature_emphasis_type", mcp.Required(),
			mcp.Description("Feature emphasis id, e.g. natural")),
		mcp.WithString("strength", mcp.Required(),
			mcp.Description("Aesthetic strength id: subtle, balanced, or strong")),
	), s.MapSatelliteParameters)

	srv.AddTool(mcp.NewTool("get_enhancement_guidance",
		mcp.WithDescription("Get human-readable guidance for enhancement parameters."),
		mcp.WithString("imagery_type", mcp.Required(),
			mcp.Description("Imagery type id, e.g. thermal_infrared")),
		mcp.WithString("altitude", mcp.Required(),
			mcp.Description("Altitude perspective id, e.g. high_altitude")),
		mcp.WithString("feature_emphasis_type", mcp.Required(),
			mcp.Description("Feature emphasis id, e.g. urban")),
		mcp.WithString("strength", mcp.Required(),
			mcp.Description("Aesthetic strength id: subtle, balanced, or strong")),
	), s.GetEnhancementGuidance)
}

type imageryTypesPayload struct {
	ImageryTypes []string `json:"imagery_types"`
	Count        int      `json:"count"`
}

type imageryProfilePayload struct {
	ImageryType string                  `json:"imagery_type"`
	Profile     taxonomy.ImageryProfile `json:"profile"`
}

type unknownTypePayload struct {
	Error     string   `json:"error"`
	Available []string `json:"available"`
}

type perspectivesPayload struct {
	Perspectives []string                                `json:"perspectives"`
	Details      map[string]taxonomy.AltitudePerspective `json:"details"`
}

type emphasisPayload struct {
	Options []string                            `json:"options"`
	Details map[string]taxonomy.FeatureEmphasis `json:"details"`
}

type strengthsPayload struct {
	Strengths []string                              `json:"strengths"`
	Details   map[string]taxonomy.AestheticStrength `json:"details"`
}

type validationPayload struct {
	Errors []string `json:"errors"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// ListImageryTypes returns all imagery-type ids in declaration order.
func (s *Service) ListImageryTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types := s.tax.ImageryTypes()
	return jsonResult(imageryTypesPayload{
		ImageryTypes: types,
		Count:        len(types),
	})
}

// GetImageryProfile returns the full record for one imagery type. An unknown
// type yields an error payload listing the valid ids.
func (s *Service) GetImageryProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.Params.Arguments["imagery_type"].(string)
	if !ok || raw == "" {
		return mcp.NewToolResultError("imagery_type is required"), nil
	}

	id, profile, found := s.tax.Profile(raw)
	if !found {
		s.log.Debug("imagery type miss", zap.String("input", raw), zap.String("normalized", id))
		return jsonResult(unknownTypePayload{
			Error:     fmt.Sprintf("Unknown imagery type: %s", raw),
			Available: s.tax.ImageryTypes(),
		})
	}

	return jsonResult(imageryProfilePayload{ImageryType: id, Profile: profile})
}

// ListAltitudePerspectives returns all altitude ids with their records.
func (s *Service) ListAltitudePerspectives(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(perspectivesPayload{
		Perspectives: s.tax.AltitudeTypes(),
		Details:      s.tax.AltitudePerspectives(),
	})
}

// ListFeatureEmphasisOptions returns all feature-emphasis ids with records.
func (s *Service) ListFeatureEmphasisOptions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(emphasisPayload{
		Options: s.tax.EmphasisTypes(),
		Details: s.tax.FeatureEmphases(),
	})
}

// ListAestheticStrengths returns all strength ids with their records.
func (s *Service) ListAestheticStrengths(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(strengthsPayload{
		Strengths: s.tax.StrengthTypes(),
		Details:   s.tax.AestheticStrengths(),
	})
}

// MapSatelliteParameters performs the deterministic four-way mapping. All
// invalid inputs are reported together so the caller can fix everything in
// one round trip.
func (s *Service) MapSatelliteParameters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imageryType, altitude, emphasis, strength, errResult := fourParams(req)
	if errResult != nil {
		return errResult, nil
	}

	mapped, errs := s.tax.MapParameters(imageryType, altitude, emphasis, strength)
	if len(errs) > 0 {
		s.log.Debug("mapping rejected", zap.Strings("errors", errs))
		return jsonResult(validationPayload{Errors: errs})
	}

	return jsonResultIndent(mapped)
}

// GetEnhancementGuidance renders the guidance text block. Only an unknown
// imagery type is an error payload; other misses degrade inside the text.
func (s *Service) GetEnhancementGuidance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imageryType, altitude, emphasis, strength, errResult := fourParams(req)
	if errResult != nil {
		return errResult, nil
	}

	text, err := s.tax.EnhancementGuidance(imageryType, altitude, emphasis, strength)
	if err != nil {
		return jsonResult(errorPayload{Error: err.Error()})
	}
	return mcp.NewToolResultText(text), nil
}

// fourParams extracts the four taxonomy arguments shared by the mapping and
// guidance tools.
func fourParams(req mcp.CallToolRequest) (imageryType, altitude, emphasis, strength string, errResult *mcp.CallToolResult) {
	var ok bool
	if imageryType, ok = req.Params.Arguments["imagery_type"].(string); !ok || imageryType == "" {
		return "", "", "", "", mcp.NewToolResultError("imagery_type is required")
	}
	if altitude, ok = req.Params.Arguments["altitude"].(string); !ok || altitude == "" {
		return "", "", "", "", mcp.NewToolResultError("altitude is required")
	}
	if emphasis, ok = req.Params.Arguments["feature_emphasis_type"].(string); !ok || emphasis == "" {
		return "", "", "", "", mcp.NewToolResultError("feature_emphasis_type is required")
	}
	if strength, ok = req.Params.Arguments["strength"].(string); !ok || strength == "" {
		return "", "", "", "", mcp.NewToolResultError("strength is required")
	}
	return imageryType, altitude, emphasis, strength, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func jsonResultIndent(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
