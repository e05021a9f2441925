package cli

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agromarket/agromarket-go/internal/api"
	"github.com/agromarket/agromarket-go/internal/config"
	"github.com/agromarket/agromarket-go/internal/diagnose"
	"github.com/agromarket/agromarket-go/internal/observability"
	"github.com/agromarket/agromarket-go/internal/security"
	"github.com/agromarket/agromarket-go/internal/session"
	"github.com/agromarket/agromarket-go/internal/storage"
	"github.com/agromarket/agromarket-go/internal/transport"
	"github.com/agromarket/agromarket-go/internal/cli/ui"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// cipherSalt is fixed; the per-installation secret provides the entropy.
var cipherSalt = []byte("agromarket-client-store")

// app wires config, storage tiers, the session manager, the request
// pipeline and the domain client for one CLI invocation.
type app struct {
	cfg       *config.Config
	client    *api.Client
	inference *diagnose.InferenceClient
	history   *diagnose.History
	runtime   *observability.Runtime

	closers []func() error
}

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	runtime, err := observability.InitRuntime(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, runtime: runtime}

	cipher, err := loadCipher(cfg.DataDir)
	if err != nil {
		a.close()
		return nil, err
	}

	sqliteStore, err := storage.NewSQLiteStore(filepath.Join(cfg.DataDir, "client.db"))
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, sqliteStore.Close)

	var durable storage.Store = sqliteStore
	if cfg.RedisAddr != "" {
		redisStore := storage.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.RedisPrefix)
		a.closers = append(a.closers, redisStore.Close)
		durable = redisStore
	}

	sessions := session.NewManager(durable, storage.NewMemoryStore(), session.WithCipher(cipher))
	pipe := transport.NewPipeline(cfg.BaseURL, sessions, cfg.RequestTimeout, cfg.RefreshLead, runtime.Logger)

	redirect := func() {
		runtime.Logger.Warn("signed out; run `agromarket login` to sign in again")
	}
	a.client = api.NewClient(pipe, cfg.UploadsURL, runtime.Logger, redirect)

	if cfg.InferenceURL != "" {
		a.inference = diagnose.NewInferenceClient(cfg.InferenceURL, 0)
	}
	a.history, err = diagnose.NewHistory(sqliteStore.DB())
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	for _, closeFn := range a.closers {
		_ = closeFn()
	}
	if a.runtime != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.runtime.Shutdown(ctx)
	}
}

// loadCipher derives the token-at-rest key from a per-installation secret,
// created on first run.
func loadCipher(dataDir string) (*security.TokenCipher, error) {
	path := filepath.Join(dataDir, "client.secret")
	secret, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		secret = make([]byte, 32)
		if _, rerr := rand.Read(secret); rerr != nil {
			return nil, fmt.Errorf("generate install secret: %w", rerr)
		}
		if werr := os.WriteFile(path, secret, 0o600); werr != nil {
			return nil, fmt.Errorf("write install secret: %w", werr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read install secret: %w", err)
	}
	return security.NewTokenCipher(secret, cipherSalt)
}

// run executes one CLI action, with the spinner UI unless --plain is set,
// and prints the detail lines in plain mode.
func run(cmd *cobra.Command, title string, fn func(context.Context, *app) ([]string, error)) error {
	plain, _ := cmd.Flags().GetBool("plain")

	wrapped := func(ctx context.Context) ([]string, error) {
		a, err := buildApp(ctx)
		if err != nil {
			return nil, err
		}
		defer a.close()
		return fn(ctx, a)
	}

	if plain {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		details, err := wrapped(ctx)
		for _, line := range details {
			fmt.Println(line)
		}
		return err
	}

	_, err := ui.Run(title, wrapped)
	return err
}
