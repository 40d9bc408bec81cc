// Package hanto wires the hanto command: configuration and the loop that
// feeds placements from a script into a game.
package hanto

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/corentings/hanto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	FormatText   = "text"
	FormatSVG    = "svg"
	FormatRecord = "record"
)

// Config holds hanto command configuration.
type Config struct {
	First   string `env:"HANTO_FIRST"   envDefault:"blue"`
	Format  string `env:"HANTO_FORMAT"  envDefault:"text"`
	Input   string `env:"HANTO_INPUT"`
	Verbose bool   `env:"HANTO_VERBOSE"`
}

// ParseConfig loads defaults from env and then parses flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.First, "first", cfg.First, "player that moves first (blue or red)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: text, svg or record")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "placement script to read instead of stdin")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every placement")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run plays the placements read from the script (cfg.Input, or in when
// it is empty) and writes the final board to out.
//
// A script holds placement tokens such as "B@0,0", any number per line;
// "#" starts a comment. Run stops at the first rejected placement.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	first, ok := hanto.ParseColor(cfg.First)
	if !ok {
		return fmt.Errorf("unknown first player %q", cfg.First)
	}
	switch cfg.Format {
	case FormatText, FormatSVG, FormatRecord:
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}

	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	if in == nil {
		return errors.New("no input")
	}

	logger := newLogger(errOut, cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	game := hanto.NewGame(first)
	if err := play(ctx, game, in, logger); err != nil {
		return err
	}
	logger.Info("finished",
		zap.Stringer("result", game.Outcome()),
		zap.Int("placements", len(game.Placements())),
	)

	return write(out, game, cfg.Format)
}

// newLogger logs to w without timestamps; verbose enables the per
// placement debug entries.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:    "level",
		MessageKey:  "msg",
		EncodeLevel: zapcore.CapitalLevelEncoder,
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

func play(ctx context.Context, game *hanto.Game, in io.Reader, logger *zap.Logger) error {
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		for _, tok := range strings.Fields(text) {
			t, to, err := hanto.ParsePlacement(tok)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			player := game.Turn()
			res, err := game.Place(t, to)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			logger.Debug("placement",
				zap.Int("line", line),
				zap.Stringer("player", player),
				zap.Stringer("piece", t),
				zap.Stringer("to", to),
				zap.Stringer("result", res),
			)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func write(out io.Writer, game *hanto.Game, format string) error {
	switch format {
	case FormatSVG:
		return hanto.WriteSVG(out, game.Board())
	case FormatRecord:
		_, err := fmt.Fprintln(out, game.String())
		return err
	}
	_, err := io.WriteString(out, game.Board().Draw())
	return err
}
