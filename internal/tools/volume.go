package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
)

// RevolveTool computes volumes of revolution with the washer method
type RevolveTool struct {
	engines types.EngineProvider
}

// NewRevolveTool creates a new revolve tool
func NewRevolveTool(engines types.EngineProvider) *RevolveTool {
	return &RevolveTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *RevolveTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolRevolve,
		mcp.WithDescription("Compute the volume of the solid formed by revolving the region between two functions of x "+
			"on [a, b] about the horizontal line y = axis. For a vertical axis, rewrite the functions in terms of y."),
		mcp.WithString("top", mcp.Required(), mcp.Description("Outer function. "+expressionDescription)),
		mcp.WithString("bottom", mcp.Description("Inner function, defaults to \"0\". "+expressionDescription)),
		mcp.WithString("a", mcp.Required(), mcp.Description("Lower bound. "+boundDescription)),
		mcp.WithString("b", mcp.Required(), mcp.Description("Upper bound. "+boundDescription)),
		mcp.WithString("axis", mcp.Description("Height of the axis of revolution, defaults to 0. "+boundDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *RevolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	top, err := ParseExpression(req, "top")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bottom, err := ParseOptionalExpression(req, "bottom", "0")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := ParseNumber(ctx, req, "a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := ParseNumber(ctx, req, "b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	axis, err := ParseOptionalNumber(ctx, req, "axis", 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	topFn, releaseTop := bind(ctx, top)
	defer releaseTop()
	bottomFn, releaseBottom := bind(ctx, bottom)
	defer releaseBottom()

	volume := t.engines.Engine().Revolve(a, b, axis, topFn, bottomFn)
	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.RevolveToolResult{
		Message: fmt.Sprintf("Revolving the region between %s and %s on [%s, %s] about y = %s gives a volume of %s.",
			top, bottom, formatNumber(a), formatNumber(b), formatNumber(axis), formatNumber(volume)),
		Arguments: results.RevolveToolArgs{
			Top:    top.String(),
			Bottom: bottom.String(),
			A:      results.Number(a),
			B:      results.Number(b),
			Axis:   results.Number(axis),
		},
		Volume: results.Number(volume),
	}
	return marshalResult(toolResult)
}

// CrossSectionTool computes volumes of solids with known cross-sections
type CrossSectionTool struct {
	engines types.EngineProvider
}

// NewCrossSectionTool creates a new cross-section tool
func NewCrossSectionTool(engines types.EngineProvider) *CrossSectionTool {
	return &CrossSectionTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *CrossSectionTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolCrossSection,
		mcp.WithDescription("Compute the volume of a solid on [a, b] whose cross-sections perpendicular to the x-axis "+
			"are known shapes with their base spanning bottom(x) to top(x). "+
			"Alternatively pass integrand, the cross-sectional area as a function of x."),
		mcp.WithString("top", mcp.Description("Upper edge of the base. "+expressionDescription)),
		mcp.WithString("bottom", mcp.Description("Lower edge of the base, defaults to \"0\". "+expressionDescription)),
		mcp.WithString("type", mcp.Description("Cross-section shape: 0 square, 1 equilateral_triangle, "+
			"2 isosceles_triangle, 3 right_triangle or 4 semicircle")),
		mcp.WithString("integrand", mcp.Description("Cross-sectional area as a function of x, used instead of top, bottom and type")),
		mcp.WithString("a", mcp.Required(), mcp.Description("Lower bound. "+boundDescription)),
		mcp.WithString("b", mcp.Required(), mcp.Description("Upper bound. "+boundDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *CrossSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := ParseNumber(ctx, req, "a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := ParseNumber(ctx, req, "b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	engine := t.engines.Engine()
	args := results.CrossSectionToolArgs{A: results.Number(a), B: results.Number(b)}

	var volume float64
	if _, ok := req.GetArguments()["integrand"]; ok {
		integrand, err := ParseExpression(req, "integrand")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f, release := bind(ctx, integrand)
		defer release()

		args.Integrand = integrand.String()
		volume = engine.CrossSectionIntegrand(a, b, f)
	} else {
		top, err := ParseExpression(req, "top")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		bottom, err := ParseOptionalExpression(req, "bottom", "0")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rawType, ok := req.GetArguments()["type"]
		if !ok {
			return mcp.NewToolResultError("type parameter is required when integrand is not given"), nil
		}
		shape, err := calculus.ParseCrossSectionType(cast.ToString(rawType))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		topFn, releaseTop := bind(ctx, top)
		defer releaseTop()
		bottomFn, releaseBottom := bind(ctx, bottom)
		defer releaseBottom()

		args.Top = top.String()
		args.Bottom = bottom.String()
		args.Shape = shape.String()
		volume, err = engine.CrossSection(a, b, topFn, bottomFn, shape)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.CrossSectionToolResult{
		Message: fmt.Sprintf("The solid on [%s, %s] has a volume of %s.",
			formatNumber(a), formatNumber(b), formatNumber(volume)),
		Arguments: args,
		Volume:    results.Number(volume),
	}
	return marshalResult(toolResult)
}

// PolarAreaTool computes areas swept by polar curves
type PolarAreaTool struct {
	engines types.EngineProvider
}

// NewPolarAreaTool creates a new polar area tool
func NewPolarAreaTool(engines types.EngineProvider) *PolarAreaTool {
	return &PolarAreaTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *PolarAreaTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolPolarArea,
		mcp.WithDescription("Compute the area swept by the polar curve r(θ) between θ = a and θ = b. "+
			"Write r as an expression in x, where x stands for θ."),
		mcp.WithString("expression", mcp.Required(), mcp.Description(expressionDescription)),
		mcp.WithString("a", mcp.Required(), mcp.Description("Start angle in radians. "+boundDescription)),
		mcp.WithString("b", mcp.Required(), mcp.Description("End angle in radians. "+boundDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *PolarAreaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := ParseExpression(req, "expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := ParseNumber(ctx, req, "a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := ParseNumber(ctx, req, "b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, release := bind(ctx, e)
	defer release()

	area := t.engines.Engine().PolarArea(a, b, f)
	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.PolarAreaToolResult{
		Message: fmt.Sprintf("The area swept by r = %s from θ = %s to θ = %s is %s.",
			e, formatNumber(a), formatNumber(b), formatNumber(area)),
		Arguments: results.PolarAreaToolArgs{
			Expression: e.String(),
			A:          results.Number(a),
			B:          results.Number(b),
		},
		Area: results.Number(area),
	}
	return marshalResult(toolResult)
}
