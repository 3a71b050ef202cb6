package synopsis

import (
	"github.com/rs/zerolog"

	"github.com/aleister1102/synopse/internal/differ"
	"github.com/aleister1102/synopse/internal/models"
)

// Generator pairs the diff engine with the renderer: it compares two
// versions of one text field and produces the annotated synopsis.
type Generator struct {
	processor       *differ.DiffProcessor
	renderer        *Renderer
	statsCalculator *differ.DiffStatsCalculator
	logger          zerolog.Logger
}

// GeneratorBuilder provides a fluent interface for creating a Generator
type GeneratorBuilder struct {
	diffConfig differ.DiffConfig
	logger     zerolog.Logger
}

// NewGeneratorBuilder creates a new builder
func NewGeneratorBuilder(logger zerolog.Logger) *GeneratorBuilder {
	return &GeneratorBuilder{
		diffConfig: differ.DefaultDiffConfig(),
		logger:     logger.With().Str("component", "SynopsisGenerator").Logger(),
	}
}

// WithDiffConfig sets the diff engine configuration
func (b *GeneratorBuilder) WithDiffConfig(cfg differ.DiffConfig) *GeneratorBuilder {
	b.diffConfig = cfg
	return b
}

// Build creates a new Generator instance
func (b *GeneratorBuilder) Build() *Generator {
	return &Generator{
		processor:       differ.NewDiffProcessor(b.diffConfig),
		renderer:        NewRenderer(),
		statsCalculator: differ.NewDiffStatsCalculator(),
		logger:          b.logger,
	}
}

// NewGenerator creates a Generator with the default diff configuration
func NewGenerator(logger zerolog.Logger) *Generator {
	return NewGeneratorBuilder(logger).Build()
}

// Generate compares two versions of a text and renders them into the
// two-sided annotated synopsis. It is a pure transform: any pair of texts,
// including empty and identical ones, yields a valid result.
func (g *Generator) Generate(oldText, newText string) models.SynopsisResult {
	diffs := g.processor.Compare(oldText, newText)
	stats := g.statsCalculator.CalculateStats(diffs)

	g.logger.Debug().
		Int("operations", len(diffs)).
		Int("chars_inserted", stats.CharsInserted).
		Int("chars_deleted", stats.CharsDeleted).
		Msg("Generated synopsis")

	return models.SynopsisResult{
		Synopsis: g.renderer.Render(diffs),
		Stats:    stats,
	}
}
