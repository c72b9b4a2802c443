package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/nyumbanet/portal-cli/internal/adapters/api"
	sessionstore "github.com/nyumbanet/portal-cli/internal/adapters/session"
	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/ports"
)

type config struct {
	BaseURL     string        `env:"PORTAL_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	LoginField  string        `env:"PORTAL_LOGIN_FIELD" envDefault:"username"`
	LogLevel    string        `env:"PORTAL_LOG_LEVEL" envDefault:"warn"`
	HTTPTimeout time.Duration `env:"PORTAL_HTTP_TIMEOUT" envDefault:"30s"`
}

type app struct {
	service *application.Service
	store   ports.SessionStore
	logger  zerolog.Logger
	now     func() time.Time
}

func wireApp() (*app, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	store, err := sessionstore.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	// The API client pulls its bearer token from the service, which in turn
	// talks through the client; the closure breaks the construction cycle.
	var service *application.Service
	client := api.NewClient(api.Config{
		BaseURL:    cfg.BaseURL,
		LoginField: cfg.LoginField,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Token: func() string {
			if service == nil {
				return ""
			}
			return service.Token()
		},
		Logger: logger,
	})
	service = application.NewService(client, store, ports.SystemClock{}, logger)

	return &app{
		service: service,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}, nil
}
