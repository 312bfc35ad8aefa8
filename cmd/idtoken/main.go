// Command idtoken mints an ID token for the local identity provider so a
// development client can call POST /auth/session without a hosted sign-in.
//
//	go run ./cmd/idtoken -email ada@school.edu
//	curl -c jar -H 'Content-Type: application/json' \
//	  -d "{\"idToken\":\"$TOKEN\"}" localhost:8080/auth/session
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/careerportal/internal/config"
	"github.com/yigit/careerportal/internal/pkg/auth"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Error().Err(err).Msg("Failed to mint ID token")
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("idtoken", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", filepath.Join("configs", "config.yaml"), "path to the YAML config")
	uid := fs.String("uid", "", "identity uid (random when empty)")
	email := fs.String("email", "", "email claim")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.IsProduction() {
		return errors.New("refusing to mint ID tokens in production mode")
	}
	if cfg.Identity.Provider != config.ProviderLocal {
		return fmt.Errorf("identity provider is %q; ID tokens come from the hosted sign-in", cfg.Identity.Provider)
	}

	if *uid == "" {
		*uid = uuid.NewString()
	}
	provider := auth.NewJWTProvider(auth.JWTConfig{
		SessionSecret: cfg.Session.Secret,
		IDTokenSecret: cfg.Identity.IDTokenSecret,
		TokenIssuer:   cfg.Identity.Issuer,
	})
	token, err := provider.IssueIDToken(*uid, *email, *ttl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
