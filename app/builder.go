package app

import (
	"errors"
	"fmt"

	"github.com/feedchain/backend/config"
	"go.uber.org/fx"
)

type AppBuilder struct {
	config    *config.Config
	fxOptions []fx.Option
	errors    []error
}

func NewApp() *AppBuilder {
	return &AppBuilder{}
}

func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	if cfg == nil {
		b.errors = append(b.errors, errors.New("config cannot be nil"))
		return b
	}
	b.config = cfg
	return b
}

// WithAutoConfig loads the configuration from .env and the environment.
func (b *AppBuilder) WithAutoConfig() *AppBuilder {
	cfg := &config.Config{}
	if err := config.LoadConfig(cfg); err != nil {
		b.errors = append(b.errors, fmt.Errorf("failed to load config: %w", err))
		return b
	}
	b.config = cfg
	return b
}

// WithFxOptions appends options after the application modules, e.g.
// fx.Decorate or fx.Replace in tests.
func (b *AppBuilder) WithFxOptions(opts ...fx.Option) *AppBuilder {
	b.fxOptions = append(b.fxOptions, opts...)
	return b
}

func (b *AppBuilder) Build() (*App, error) {
	if b.config == nil && len(b.errors) == 0 {
		b.WithAutoConfig()
	}
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("configuration errors: %w", errors.Join(b.errors...))
	}
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{config: b.config}

	options := []fx.Option{
		fx.NopLogger,
		config.NewProvider(b.config),
		Modules(),
	}
	options = append(options, b.fxOptions...)
	options = append(options, fx.Populate(&app.logger, &app.db, &app.server))

	app.fx = fx.New(options...)
	if err := app.fx.Err(); err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	return app, nil
}
