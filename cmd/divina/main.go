package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"divina/common"
	"divina/config"
	"divina/misc"
	"divina/player"
	"divina/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()), zap.Stringer("session", env.Session))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	// log is synced now, errors must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Subcommands return regular errors, cli.Exit() is not used.
var errWasHandled bool

// called before appContext is destroyed, so error could still be logged
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

const sourceHelp = `
SOURCE:
    story to read, following sources are supported:
        path to a directory with manifest (manifest.yaml, manifest.json) or with images only
        path to an archive (.cbz, .zip) with manifest or with images only
        path to a manifest file, resources are resolved relative to its directory
`

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	modes := "reading `MODE` (" + strings.Join(common.ReadingModeNames(), ", ") + "), story may restrict available modes"
	storyFlags := []cli.Flag{
		&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: modes},
		&cli.StringFlag{Name: "viewport", Aliases: []string{"vp"}, Usage: "viewport `SIZE` as WIDTHxHEIGHT (default 1080x1920)"},
		&cli.StringFlag{Name: "tags", Usage: "resource variant `TAGS` as key=value[,key=value...]"},
	}

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "headless reader for divina (comics and webtoon) stories",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "read",
				Usage:        "Opens story and plays gesture script against it printing reader events",
				OnUsageError: usageErrorHandler,
				Action:       player.Read,
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "script", Aliases: []string{"s"}, Usage: "inline `SCRIPT`, commands separated by ';'"},
					&cli.StringFlag{Name: "script-file", Aliases: []string{"sf"}, Usage: "read script from `FILE`, played before inline script"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "event line `TEMPLATE` (text/template with sprig functions)"},
				}, storyFlags...),
				ArgsUsage: "SOURCE",
				CustomHelpTemplate: fmt.Sprintf(`%s%s
SCRIPT:
    next, prev, first, last       step through story
    go WAY                        forward, backward, left, right, up, down
    page INDEX [PROGRESS]         go to page, progress in [0,1]
    link INDEX, href PATH         go to page showing link
    drag DX DY PERCENT, release [VX VY]
                                  drag gesture, dragging past page edge scrubs page transition
    wheel DX DY                   wheel scroll
    zoom [X Y], pinch X Y FACTOR  toggle or continuous zoom
    percent P                     move camera of current page
    mode MODE, tags K=V[,K=V]     change reading mode or resource variants
    resize WxH                    change viewport
    wait DURATION                 let animations run (virtual time)
    tree                          print composition tree

    Engine is settled (animations finished, loads completed) after every
    command but drag.
`, cli.CommandHelpTemplate, sourceHelp),
			},
			{
				Name:         "tree",
				Usage:        "Opens story and prints its composition tree",
				OnUsageError: usageErrorHandler,
				Action:       player.Dump,
				Flags: append([]cli.Flag{
					&cli.BoolFlag{Name: "scene", Usage: "print scene graph as well"},
				}, storyFlags...),
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// log is either not set yet or already closed
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
