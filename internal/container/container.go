// Package container provides dependency injection for the lease-audit application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"

	"fjacquet/lease-audit/internal/categorizer"
	"fjacquet/lease-audit/internal/clause"
	"fjacquet/lease-audit/internal/comparison"
	"fjacquet/lease-audit/internal/config"
	"fjacquet/lease-audit/internal/extraction"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/report"
	"fjacquet/lease-audit/internal/store"
	"fjacquet/lease-audit/internal/textextract"
	"fjacquet/lease-audit/internal/violation"
)

// Option customizes a container before its components are built.
type Option func(*options)

type options struct {
	logger   logging.Logger
	aiClient extraction.AIClient
	text     textextract.Extractor
}

// WithLogger replaces the logger built from configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithAIClient replaces the Gemini client. The client is used regardless of ai.enabled.
func WithAIClient(client extraction.AIClient) Option {
	return func(o *options) { o.aiClient = client }
}

// WithTextExtractor replaces the file-based text extractor.
func WithTextExtractor(text textextract.Extractor) Option {
	return func(o *options) { o.text = text }
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	text        textextract.Extractor
	aiClient    extraction.AIClient
	extractor   extraction.Extractor
	categorizer *categorizer.Categorizer
	locator     *clause.Locator
	checker     *violation.Checker
	engine      *comparison.Engine
	store       *store.DocumentStore
	generator   *report.Generator
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	text := o.text
	if text == nil {
		text = textextract.NewFileExtractor(textextract.NewPDFExtractor(cfg.Extraction.MaxPages, logger), logger)
	}

	cat := categorizer.NewCategorizer(logger)

	aiClient := o.aiClient
	if aiClient == nil && cfg.AI.Active() {
		gemini, err := extraction.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		aiClient = gemini
	}

	heuristic := extraction.NewHeuristicExtractor(cat, logger)
	var extractor extraction.Extractor = heuristic
	if aiClient != nil {
		ai := extraction.NewAIExtractor(aiClient, cat, cfg.AI.MaxInputChars, logger)
		extractor = extraction.NewFallbackExtractor(ai, heuristic, logger)
		logger.Info("AI extraction enabled", logging.F(logging.FieldModel, aiClient.Name()))
	} else {
		logger.Info("AI extraction disabled, using heuristic extraction")
	}

	locator := clause.NewLocator()
	checker := violation.NewChecker(locator)
	engine := comparison.NewEngine(checker, cat, logger)

	generator := report.NewGenerator(report.Options{
		Currency:       cfg.Report.Currency,
		MaxDescription: cfg.Report.MaxDescription,
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldStrategy, extractor.Name()),
		logging.F("ai_enabled", aiClient != nil))

	return &Container{
		logger:      logger,
		config:      cfg,
		text:        text,
		aiClient:    aiClient,
		extractor:   extractor,
		categorizer: cat,
		locator:     locator,
		checker:     checker,
		engine:      engine,
		store:       store.NewDocumentStore(logger),
		generator:   generator,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTextExtractor returns the document text extractor.
func (c *Container) GetTextExtractor() textextract.Extractor {
	return c.text
}

// GetAIClient returns the AI client, or nil when AI is not enabled.
func (c *Container) GetAIClient() extraction.AIClient {
	return c.aiClient
}

// GetLeaseExtractor returns the extractor for lease documents.
func (c *Container) GetLeaseExtractor() extraction.LeaseExtractor {
	return c.extractor
}

// GetInvoiceExtractor returns the extractor for invoices.
func (c *Container) GetInvoiceExtractor() extraction.InvoiceExtractor {
	return c.extractor
}

// GetExtractorName names the extraction strategy in use, e.g. "ai+heuristic".
func (c *Container) GetExtractorName() string {
	return c.extractor.Name()
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetLocator returns the clause locator.
func (c *Container) GetLocator() *clause.Locator {
	return c.locator
}

// GetChecker returns the violation checker.
func (c *Container) GetChecker() *violation.Checker {
	return c.checker
}

// GetEngine returns the comparison engine.
func (c *Container) GetEngine() *comparison.Engine {
	return c.engine
}

// GetStore returns the document store for saved terms and items.
func (c *Container) GetStore() *store.DocumentStore {
	return c.store
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// Close releases the AI client, if it holds resources.
func (c *Container) Close() error {
	if closer, ok := c.aiClient.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
