package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Properties struct {
		LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
		Environment string `env:"ENVIRONMENT" envDefault:"development"`

		Auth     AuthProperties       `envPrefix:"AUTH_"`
		Mongo    MongoProperties      `envPrefix:"MONGO_"`
		S3       S3Properties         `envPrefix:"S3_"`
		Server   HttpServerProperties `envPrefix:"HTTP_"`
		Frontend FrontendProperties   `envPrefix:"FRONTEND_"`
	}

	AuthProperties struct {
		GoogleClientID     string        `env:"GOOGLE_CLIENT_ID"`
		GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET"`
		RedirectURL        string        `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
		JWTSecret          string        `env:"JWT_SECRET"`
		CookieName         string        `env:"COOKIE_NAME" envDefault:"jwt_token"`
		TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	}

	HttpServerProperties struct {
		Name        string        `env:"NAME" envDefault:"photoserv"`
		Port        string        `env:"PORT" envDefault:"8080"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	}

	FrontendProperties struct {
		Origin      string `env:"ORIGIN" envDefault:"http://localhost:3000"`
		ProfilePath string `env:"PROFILE_PATH" envDefault:"/profile"`
	}

	MongoProperties struct {
		URI            string        `env:"URI" envDefault:"mongodb://localhost:27017"`
		Database       string        `env:"DATABASE" envDefault:"photoserv"`
		ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	}

	S3Properties struct {
		Host      string `env:"HOST" envDefault:"localhost:9000"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"photos"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
		// PublicURL is the base under which stored objects are reachable,
		// e.g. https://media.example.com. Falls back to the host endpoint.
		PublicURL string `env:"PUBLIC_URL"`
	}
)

func ReadProperties() *Properties {
	config := &Properties{}

	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("read config error: %w", err))
	}
	return config
}

func (p *Properties) IsProduction() bool {
	return p.Environment == "production"
}
