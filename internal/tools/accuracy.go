package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/averycrespi/calculatte-mcp/internal/metrics"
	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
)

// GetAccuracyTool reports the accuracy configuration tool calls evaluate against
type GetAccuracyTool struct {
	engines types.EngineProvider
}

// NewGetAccuracyTool creates a new get accuracy tool
func NewGetAccuracyTool(engines types.EngineProvider) *GetAccuracyTool {
	return &GetAccuracyTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *GetAccuracyTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolGetAccuracy,
		mcp.WithDescription("Show the current accuracy configuration: sample count, derivative and limit offsets "+
			"and tolerances, infinity thresholds and the decimal places of each operation"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *GetAccuracyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolResult := results.AccuracyToolResult{
		Message:  "Current accuracy configuration.",
		Accuracy: results.NewAccuracy(t.engines.Engine().Config()),
	}
	return marshalResult(toolResult)
}

// SetAccuracyTool changes the accuracy configuration for subsequent tool calls
type SetAccuracyTool struct {
	engines types.EngineProvider
	metrics *metrics.Metrics
}

// NewSetAccuracyTool creates a new set accuracy tool. m may be nil.
func NewSetAccuracyTool(engines types.EngineProvider, m *metrics.Metrics) *SetAccuracyTool {
	return &SetAccuracyTool{engines: engines, metrics: m}
}

// Numeric knobs accepted by set_accuracy, in the order they are applied
var accuracyKnobs = []struct {
	name        string
	description string
	option      func(float64) calculus.Option
}{
	{"derivative_step", "Finite-difference step H", calculus.WithDerivativeStep},
	{"derivative_offset", "Offset of the one-sided derivatives", calculus.WithDerivativeOffset},
	{"derivative_tolerance", "Largest allowed left/right derivative discrepancy", calculus.WithDerivativeTolerance},
	{"limit_offset", "Offset of the one-sided limits", calculus.WithLimitOffset},
	{"limit_tolerance", "Largest allowed left/right limit discrepancy", calculus.WithLimitTolerance},
	{"limit_infinity_probe", "Magnitude used to probe limits at infinity", calculus.WithLimitInfinityProbe},
	{"positive_infinity", "Rounded values above this become +Inf", func(v float64) calculus.Option {
		return func(c *calculus.Config) { c.PositiveInfinity = v }
	}},
	{"negative_infinity", "Rounded values below this become -Inf", func(v float64) calculus.Option {
		return func(c *calculus.Config) { c.NegativeInfinity = v }
	}},
}

// GetTool returns the MCP tool definition
func (t *SetAccuracyTool) GetTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Change the accuracy configuration used by subsequent tool calls. " +
			"Only the given settings change; pass reset to start from the configuration the server was started with. " +
			"Invalid settings are rejected and leave the configuration unchanged."),
		mcp.WithBoolean("reset", mcp.Description("Restore the startup configuration before applying other settings")),
		mcp.WithNumber("sample_count", mcp.Min(2), mcp.Description("Number of Simpson's rule sample points")),
	}
	for _, knob := range accuracyKnobs {
		opts = append(opts, mcp.WithString(knob.name, mcp.Description(knob.description+". "+boundDescription)))
	}
	opts = append(opts,
		mcp.WithNumber("decimal_places", mcp.Min(calculus.NoRounding),
			mcp.Description("Decimal places for every operation; -1 disables rounding")),
		mcp.WithObject("precision", mcp.Description("Decimal places per operation, keyed by "+
			strings.Join(calculus.Families(), ", ")+"; applied after decimal_places")),
		mcp.WithDestructiveHintAnnotation(false),
	)
	return mcp.NewTool(ToolSetAccuracy, opts...)
}

// Handle processes the tool request
func (t *SetAccuracyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var options []calculus.Option
	var changed []string

	if v, ok := args["sample_count"]; ok {
		n, err := toInt("sample_count", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		options = append(options, calculus.WithSampleCount(n))
		changed = append(changed, "sample_count")
	}

	for _, knob := range accuracyKnobs {
		v, ok := args[knob.name]
		if !ok {
			continue
		}
		value, err := toNumber(ctx, knob.name, v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		options = append(options, knob.option(value))
		changed = append(changed, knob.name)
	}

	if v, ok := args["decimal_places"]; ok {
		places, err := toInt("decimal_places", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		options = append(options, calculus.WithAllPrecision(places))
		changed = append(changed, "decimal_places")
	}

	if v, ok := args["precision"]; ok {
		families, err := cast.ToStringMapE(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("precision parameter must be an object: %v", err)), nil
		}
		option, names, err := precisionOption(families)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		options = append(options, option)
		changed = append(changed, names...)
	}

	reset := mcp.ParseBoolean(req, "reset", false)
	if !reset && len(options) == 0 {
		return mcp.NewToolResultError("at least one accuracy setting or reset is required"), nil
	}

	var engine *calculus.Engine
	var err error
	if reset {
		engine, err = t.engines.Reset(options...)
	} else {
		engine, err = t.engines.Reconfigure(options...)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to set accuracy: %v", err)), nil
	}
	if t.metrics != nil {
		t.metrics.Reconfigurations.Inc()
	}

	message := "Accuracy configuration updated."
	if reset {
		message = "Accuracy configuration reset."
		if len(changed) > 0 {
			message = "Accuracy configuration reset and updated."
		}
	}

	toolResult := results.AccuracyToolResult{
		Message:  message,
		Changed:  changed,
		Accuracy: results.NewAccuracy(engine.Config()),
	}
	return marshalResult(toolResult)
}

// precisionOption builds an option setting the named families, returning the applied
// family names in sorted order
func precisionOption(families map[string]any) (calculus.Option, []string, error) {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)

	type update struct {
		set    func(p *calculus.Precision, places int)
		places int
	}
	updates := make([]update, 0, len(names))
	changed := make([]string, 0, len(names))
	for _, name := range names {
		places, err := toInt("precision."+name, families[name])
		if err != nil {
			return nil, nil, err
		}
		set, err := calculus.PrecisionSetter(name)
		if err != nil {
			return nil, nil, err
		}
		updates = append(updates, update{set: set, places: places})
		changed = append(changed, "precision."+name)
	}

	return func(c *calculus.Config) {
		for _, u := range updates {
			u.set(&c.Precision, u.places)
		}
	}, changed, nil
}
