package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rawbytedev/cstr"
	"github.com/rawbytedev/cstr/pkg/strtab"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	prettyLogs bool
	logLevel   string
	minLen     int
	printOnly  bool
	escape     bool
	compress   bool
	outPath    string
	jsonOutput bool

	logger zerolog.Logger
	cfg    config
)

var rootCmd = &cobra.Command{
	Use:           "cstrings",
	Short:         "Inspect and pack nul-terminated strings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr())
		cstr.SetLogger(logger)

		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg)
		return cfg.validate()
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan FILE",
	Short: "List the C strings found in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		matches := scan(data, cfg)
		logger.Debug().Str("file", args[0]).Int("size", len(data)).Int("matches", len(matches)).Msg("scanned")
		return writeMatches(cmd.OutOrStdout(), matches, cfg.Escape)
	},
}

var packCmd = &cobra.Command{
	Use:   "pack [FILE...]",
	Short: "Build a string table from input lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outPath == "" {
			return fmt.Errorf("pack: --output is required")
		}
		tab := strtab.New()
		if len(args) == 0 {
			if err := packLines(tab, cmd.InOrStdin(), "stdin"); err != nil {
				return err
			}
		}
		for _, name := range args {
			if err := packFile(tab, name); err != nil {
				return err
			}
		}
		frame, err := tab.Encode(strtab.Options{Compress: cfg.Compress, Level: cfg.Level})
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, frame, 0o644); err != nil {
			return err
		}
		logger.Info().
			Str("output", outPath).
			Int("strings", tab.Len()).
			Int("table_bytes", tab.Size()).
			Int("frame_bytes", len(frame)).
			Msg("packed string table")
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the strings of a packed table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tab, err := strtab.Decode(frame)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return dump(cmd.OutOrStdout(), tab, cfg.Escape, jsonOutput)
	},
}

func packFile(tab *strtab.Table, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return packLines(tab, f, name)
}

func dump(w io.Writer, tab *strtab.Table, escape, asJSON bool) error {
	enc := json.NewEncoder(w)
	for off, s := range tab.All() {
		if asJSON {
			if err := enc.Encode(dumpEntry{Offset: off, Value: s.String(), Escaped: s.GoString()}); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", off, render(s, escape)); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(w io.Writer) zerolog.Logger {
	var output io.Writer = w
	if prettyLogs {
		output = zerolog.ConsoleWriter{Out: w}
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, c *config) {
	flags := cmd.Flags()
	if flags.Changed("min-len") {
		c.MinLen = minLen
	}
	if flags.Changed("printable") {
		c.Printable = printOnly
	}
	if flags.Changed("escape") {
		c.Escape = escape
	}
	if flags.Changed("compress") {
		c.Compress = compress
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a cstrings.toml config file")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", false, "Use pretty console logging instead of structured JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&escape, "escape", true, "Escape non-printable bytes in output")

	scanCmd.Flags().IntVarP(&minLen, "min-len", "n", 4, "Minimum string length to report")
	scanCmd.Flags().BoolVar(&printOnly, "printable", true, "Only report strings made of printable ASCII")

	packCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file for the packed table")
	packCmd.Flags().BoolVar(&compress, "compress", true, "Compress the table with zstd")

	dumpCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print one JSON object per string")

	rootCmd.AddCommand(scanCmd, packCmd, dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Error().Err(err).Msg("cstrings failed")
		os.Exit(1)
	}
}
