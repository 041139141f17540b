package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"divina/common"
	"divina/config"
	"divina/manifest"
	"divina/state"
)

// Read is the action of read subcommand: story is opened, script is played
// against it and events are printed to STDOUT.
func Read(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("read")

	var script []Command
	if fname := cmd.String("script-file"); fname != "" {
		f, err := os.Open(fname)
		if err != nil {
			return fmt.Errorf("unable to open script: %w", err)
		}
		defer f.Close()
		if script, err = Parse(f); err != nil {
			return fmt.Errorf("script %s: %w", filepath.Base(fname), err)
		}
	}
	if text := cmd.String("script"); text != "" {
		inline, err := ParseString(text)
		if err != nil {
			return err
		}
		script = append(script, inline...)
	}
	if env.Rpt != nil && len(script) > 0 {
		var sb strings.Builder
		for _, c := range script {
			sb.WriteString(c.String())
			sb.WriteByte('\n')
		}
		env.Rpt.StoreData("trace/script.txt", []byte(sb.String()))
	}

	if f := cmd.String("format"); f != "" {
		env.EventFormat = f
	}
	p, err := open(cmd, env, os.Stdout, log)
	if err != nil {
		return err
	}
	defer func() {
		if env.Rpt != nil {
			env.Rpt.StoreData("trace/events.txt", p.Trace())
			env.Rpt.StoreData("trace/tree.txt", []byte(p.Tree(true)))
		}
		if er := p.Close(); er != nil {
			log.Warn("Unable to close reader cleanly", zap.Error(er))
		}
	}()

	defer func(start time.Time) {
		log.Info("Reading completed", zap.Int("commands", len(script)), zap.Duration("virtual", p.Elapsed()), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return p.Play(ctx, script)
}

// Dump is the action of tree subcommand: story is opened in requested mode,
// initial loads are waited for and composition tree is printed.
func Dump(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("tree")

	p, err := open(cmd, env, nil, log)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.Settle(ctx); err != nil {
		return err
	}
	_, err = io.WriteString(os.Stdout, p.Tree(cmd.Bool("scene")))
	return err
}

func open(cmd *cli.Command, env *state.LocalEnv, out io.Writer, log *zap.Logger) (*Player, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, errors.New("no story source has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	// reader configuration is adjusted by command line, keep loaded one intact
	cfg := env.Cfg.Reader
	cfg.Tags = maps.Clone(cfg.Tags)
	if cfg.Tags == nil {
		cfg.Tags = make(map[string]string)
	}
	if err := applyFlags(cmd, env, &cfg); err != nil {
		return nil, err
	}

	st, err := manifest.Load(src, log)
	if err != nil {
		return nil, err
	}
	log.Info("Opening story", zap.String("source", src), zap.String("title", st.Title), zap.Int("links", len(st.Links)),
		zap.Stringer("viewport", sizeStringer(env.Viewport)))

	if env.Rpt != nil {
		switch ext := strings.ToLower(filepath.Ext(src)); ext {
		case ".yaml", ".yml", ".json":
			env.Rpt.Store("story/manifest"+ext, src)
		}
	}
	return Open(st, &cfg, Options{
		Viewport: env.Viewport,
		Format:   env.EventFormat,
		Session:  env.Session,
		Out:      out,
	}, env.Log)
}

func applyFlags(cmd *cli.Command, env *state.LocalEnv, cfg *config.ReaderConfig) error {
	if m := cmd.String("mode"); m != "" {
		mode, err := common.ParseReadingMode(m)
		if err != nil {
			return fmt.Errorf("bad reading mode: %w", err)
		}
		cfg.Navigation.ReadingMode = mode
	}
	if v := cmd.String("viewport"); v != "" {
		size, err := ParseSize(v)
		if err != nil {
			return fmt.Errorf("bad viewport: %w", err)
		}
		env.Viewport = size
	}
	if t := cmd.String("tags"); t != "" {
		tags, err := ParseTags(t)
		if err != nil {
			return err
		}
		maps.Copy(cfg.Tags, tags)
	}
	return nil
}

type sizeStringer common.Size

func (s sizeStringer) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
