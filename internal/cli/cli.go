package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/babarot/trash/internal/config"
	"github.com/babarot/trash/internal/env"
	"github.com/babarot/trash/internal/trash"
	"github.com/babarot/trash/internal/ui"
	"github.com/babarot/trash/internal/utils/debug"
	"github.com/babarot/trash/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/rs/xid"
)

type Option struct {
	Verbose bool   `short:"v" long:"verbose" description:"Explain what is being done"`
	Force   bool   `short:"f" long:"force" description:"Overwrite existing files and never prompt"`
	All     bool   `short:"a" long:"all" description:"Treat info arguments as patterns matching many entries"`
	Config  string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	manager *trash.Manager

	stdout  io.Writer
	stderr  io.Writer
	confirm func(prompt string) bool
	pick    func([]*trash.Entry) ([]*trash.Entry, error)
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] <put|restore|empty|info> [files...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(os.Stdout, v.Print())
		return nil
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	switch opt.Meta.Debug {
	case "live":
		return debug.Logs(os.Stdout, cfg.Logging, true)
	case "full":
		return debug.Logs(os.Stdout, cfg.Logging, false)
	}

	closeLog := setupLogger(cfg.Logging)
	defer closeLog()

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	manager, err := trash.NewManager("", trash.WithOutput(os.Stdout))
	if err != nil {
		return fmt.Errorf("failed to initialize trash: %w", err)
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		manager: manager,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		confirm: ui.Confirm,
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		cli.pick = ui.Pick
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

// setupLogger installs the default slog logger. Logs are discarded unless
// enabled in the config, in which case they go to a rotating file.
func setupLogger(cfg config.LoggingConfig) func() {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if cfg.Enabled && env.TRASH_LOG_PATH != "" {
		rw, err := log.NewRotateWriter(env.TRASH_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
		if err == nil {
			w = rw
			closeFn = func() { rw.Close() }
		} else {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		}
	}

	logger := log.New(
		log.UseOutput(w),
		log.UseLevel(log.ParseLevel(cfg.Level)),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.DateTime),
		log.UseFormatter(log.TextFormatter),
	)
	slog.SetDefault(logger.With("run_id", runID()))
	return closeFn
}

func (c CLI) options() trash.Options {
	return trash.Options{
		Verbose: c.option.Verbose || c.config.Core.Verbose,
		Force:   c.option.Force,
	}
}

func (c CLI) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a method is required: %s", methodNames)
	}
	method, err := ParseMethod(args[0])
	if err != nil {
		return err
	}
	files := args[1:]
	slog.Debug("cli.run", "method", method, "files", len(files))

	switch method {
	case MethodPut:
		return c.Put(files)
	case MethodRestore:
		return c.Restore(files)
	case MethodEmpty:
		return c.Empty()
	case MethodInfo:
		return c.Info(files)
	}
	return nil
}
