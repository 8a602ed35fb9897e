// Package cli implements the lunar command-line interface: four-pillar
// charts, lunar conversion, Ten-God lookups and almanac maintenance.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunar-api/internal/almanac"
	"github.com/zapponejosh/lunar-api/internal/calendar"
	"github.com/zapponejosh/lunar-api/internal/database"
	"github.com/zapponejosh/lunar-api/internal/lunar"
)

// CLI holds the command tree's shared state.
type CLI struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	verbose     bool
	almanacFile string
	dbPath      string
	lunarTable  string
}

// New returns a CLI writing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{out: out, errOut: errOut, now: time.Now}
}

// Execute runs the lunar CLI with os.Args.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lunar",
		Short:         "Sexagenary and lunar calendar tools",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if c.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(c.errOut, level)))
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.almanacFile, "almanac", "", "almanac text file to read solar terms from")
	flags.StringVar(&c.dbPath, "db", "", "SQLite almanac database to read solar terms from")
	flags.StringVar(&c.lunarTable, "lunar-table", "", "TOML lunar year table replacing the built-in one")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.tenGodCommand())
	root.AddCommand(c.almanacCommand())

	return root
}

// engine assembles a calendar engine from the persistent flags. The
// returned cleanup closes any database it opened.
func (c *CLI) engine(ctx context.Context) (*calendar.Engine, func(), error) {
	logger := loggerFromContext(ctx)
	cleanup := func() {}

	table, err := c.table()
	if err != nil {
		return nil, cleanup, err
	}

	var source almanac.Source
	switch {
	case c.almanacFile != "" && c.dbPath != "":
		return nil, cleanup, errors.New("--almanac and --db are mutually exclusive")
	case c.almanacFile != "":
		logger.Debug("reading almanac", "file", c.almanacFile)
		fs, err := almanac.LoadFile(c.almanacFile)
		if err != nil {
			return nil, cleanup, err
		}
		source = fs
	case c.dbPath != "":
		db, err := c.openDB(ctx)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { db.Close() }
		source = database.NewAlmanacSource(db)
	default:
		logger.Debug("computing solar terms astronomically")
		source = almanac.NewGenerator()
	}

	engine := calendar.NewEngine(table, source,
		calendar.WithClock(c.now),
		calendar.WithLogger(slogFrom(logger)),
	)
	return engine, cleanup, nil
}

func (c *CLI) table() (*lunar.Table, error) {
	if c.lunarTable != "" {
		return lunar.LoadFile(c.lunarTable)
	}
	return lunar.Default()
}

func (c *CLI) openDB(ctx context.Context) (*database.DB, error) {
	db, err := database.Open(database.DefaultConfig(c.dbPath), slogFrom(loggerFromContext(ctx)))
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
