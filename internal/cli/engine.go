package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/phanxgames/wisp"
	"github.com/spf13/cobra"
)

// engineFlags are shared by every command that builds the stock page.
type engineFlags struct {
	config    string
	seed      uint64
	width     float64
	height    float64
	store     string
	redisAddr string
	image     string
}

func (f *engineFlags) register(cmd *cobra.Command, width, height float64) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "configuration file (.toml, .yaml)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (overrides the config)")
	cmd.Flags().Float64Var(&f.width, "width", width, "viewport width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", height, "viewport height in pixels")
	cmd.Flags().StringVar(&f.store, "store", "memory", "image store: memory, gdata or redis")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "localhost:6379", "redis address for --store=redis")
	cmd.Flags().StringVar(&f.image, "image", "", "image to upload to the about card")
}

func loadConfig(path string, seed uint64) (wisp.Config, error) {
	cfg := wisp.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = wisp.LoadConfig(path); err != nil {
			return wisp.Config{}, err
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

// session is a built engine with the stock page and its about card.
type session struct {
	engine *wisp.Engine
	page   *wisp.PageHandles
	card   *wisp.Card
	store  wisp.BlobStore
}

// Close disposes the engine and releases the image store.
func (s *session) Close() {
	s.engine.Dispose()
	closeStore(s.store)
}

// storeOpener is swapped out in tests.
var storeOpener = openStore

func buildSession(ctx context.Context, f *engineFlags, opts ...wisp.Option) (_ *session, err error) {
	logger := loggerFromContext(ctx)
	cfg, err := loadConfig(f.config, f.seed)
	if err != nil {
		return nil, err
	}
	if logger.GetLevel() <= log.DebugLevel {
		cfg.Debug = true
	}
	opts = append([]wisp.Option{wisp.WithLogger(logger.WithPrefix("wisp"))}, opts...)
	e, err := wisp.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	page, err := wisp.BuildPage(e, wisp.DefaultPage(f.width, f.height))
	if err != nil {
		return nil, err
	}

	store, err := storeOpener(ctx, f)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			closeStore(store)
		}
	}()
	card := wisp.NewCard(wisp.LayerAboutVisual, page.AboutVisual, store, logger)
	if ok, err := card.Restore(); err != nil {
		logger.Warn("restore card", "err", err)
	} else if ok {
		logger.Debug("restored card image", "size", card.Size)
	}
	if f.image != "" {
		data, err := os.ReadFile(f.image)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		// A persistence failure is already logged by the card and is not
		// fatal.
		if err := card.Upload(data); err != nil && !errors.Is(err, wisp.ErrPersistence) {
			return nil, err
		}
	}

	if err := e.Start(); err != nil {
		return nil, err
	}
	return &session{engine: e, page: page, card: card, store: store}, nil
}

func closeStore(store wisp.BlobStore) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}

func openStore(ctx context.Context, f *engineFlags) (wisp.BlobStore, error) {
	switch f.store {
	case "", "memory":
		return wisp.NewMemoryStore(0), nil
	case "gdata":
		return wisp.OpenGdataStore("wisp")
	case "redis":
		return wisp.DialRedisStore(ctx, f.redisAddr, "wisp:")
	}
	return nil, fmt.Errorf("unknown store %q", f.store)
}
