package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/blockday/blockday/internal/cli"
	"github.com/blockday/blockday/internal/cli/backups"
	"github.com/blockday/blockday/internal/cli/system"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/keyring"
	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/storage"
	syncpkg "github.com/blockday/blockday/internal/sync"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path (.db for SQLite, .json for flat-file storage)." type:"path" default:"~/.config/blockday/blockday.db"`
	Debug   bool   `help:"Enable verbose logging."`

	Init      system.InitCmd    `cmd:"" help:"Initialize blockday storage."`
	Migrate   system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Commit    cli.CommitCmd     `cmd:"" help:"Commit a day's time blocks."`
	Day       cli.DayCmd        `cmd:"" help:"Show a day's committed blocks."`
	Answer    cli.AnswerCmd     `cmd:"" help:"Answer completion for elapsed blocks."`
	Clear     cli.ClearCmd      `cmd:"" help:"Clear an uncommitted or unfinalized day."`
	Conflicts cli.ConflictsCmd  `cmd:"" help:"Detect schedule conflicts for a day."`
	Routines  cli.RoutinesCmd   `cmd:"" help:"Analyze recurring identities in the history."`
	Stats     cli.StatsCmd      `cmd:"" help:"Adherence analytics."`
	Events    cli.EventsCmd     `cmd:"" help:"Manage imported calendar events."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the sync connection string in the OS keyring."`
		Show   system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Clear  system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage sync credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Schedule commitment and adherence analytics for identity-based time blocks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
	}

	store := storage.NewProvider(CLI.Config)

	// A stored connection string enables the remote commit mirror. Its
	// absence, or an unreachable keyring, just means local-only mode.
	var notifier syncpkg.Notifier = syncpkg.Noop{}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("keyring lookup failed", "error", err)
		}
		connStr = os.Getenv("BLOCKDAY_SYNC_DSN")
	}
	if connStr != "" {
		pg, pgErr := syncpkg.NewPostgres(connStr)
		if pgErr != nil {
			logger.Warn("sync mirror unavailable, continuing local-only", "error", pgErr)
		} else {
			notifier = pg
			defer pg.Close()
		}
	}

	appCtx := &cli.Context{
		Store:    store,
		Notifier: notifier,
	}

	// Init and migrate handle their own loading.
	selected := ""
	if ctx.Selected() != nil {
		selected = ctx.Selected().Name
	}
	if selected != "init" && selected != "migrate" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if settings, err := store.GetSettings(); err == nil {
			appCtx.Timezone = settings.Timezone
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
