package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, watermark, behavior, display, and utility.
// Negated flags (e.g. --no-verify) are applied after Parse so Config defaults
// (and persisted/env values) hold unless set.

import (
	"flag"
	"fmt"
	"os"
)

// version is shown in --version and help; override at build time with -ldflags "-X ...config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, bad value).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("docswap", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that values loaded from the persisted config or env hold unless the
	// user passes the flag.
	var negated negatedFlags

	definePathFlags(fs, cfg)
	defineWatermarkFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "docswap v"+version)
		os.Exit(0)
	}

	// Remaining positional args are candidate files, in given order.
	cfg.Candidates = fs.Args()
	cfg.TargetDir = NormalizeDirArg(cfg.TargetDir)
	cfg.ArchiveDir = NormalizeDirArg(cfg.ArchiveDir)
	cfg.SourceDir = NormalizeDirArg(cfg.SourceDir)
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noVerify -> VerifyCopies=false) or
// trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noVerify    bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers --target, --archive, --from.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.TargetDir, "target", cfg.TargetDir, "Target directory holding the documents to replace")
	fs.StringVar(&cfg.TargetDir, "t", cfg.TargetDir, "Same as --target")
	fs.StringVar(&cfg.ArchiveDir, "archive", cfg.ArchiveDir, "Archive directory for displaced versions")
	fs.StringVar(&cfg.ArchiveDir, "a", cfg.ArchiveDir, "Same as --archive")
	fs.StringVar(&cfg.SourceDir, "from", cfg.SourceDir, "Discover candidate documents from this directory")
}

// defineWatermarkFlags registers --watermark-text, --automation-tool, --automation-timeout, --no-watermark.
func defineWatermarkFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.WatermarkText, "watermark-text", cfg.WatermarkText, "Text stamped onto outgoing documents")
	fs.StringVar(&cfg.WatermarkText, "w", cfg.WatermarkText, "Same as --watermark-text")
	fs.StringVar(&cfg.AutomationTool, "automation-tool", cfg.AutomationTool, "External office automation binary")
	fs.DurationVar(&cfg.AutomationTimeout, "automation-timeout", cfg.AutomationTimeout, "Per-file budget for the automation tool")
	fs.BoolVar(&cfg.NoWatermark, "no-watermark", false, "Skip the watermark step entirely")
}

// defineBehaviorFlags registers dry-run, verify, source cleanup, prefix matching and config persistence.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not copy, stamp or archive")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.noVerify, "no-verify", false, "Skip SHA-256 verification after the replace copy")
	fs.BoolVar(&cfg.RemoveSources, "remove-sources", false, "Delete source files after successful processing")
	fs.IntVar(&cfg.MatchPrefix, "match-prefix", cfg.MatchPrefix, "Match the outgoing version by the first N name characters (0 = exact)")
	fs.BoolVar(&cfg.SaveConfig, "save-config", false, "Persist target/archive directories after the run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log, --report.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.StringVar(&cfg.ReportFile, "report", "", "Write the final report as JSON to file")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noVerify {
		cfg.VerifyCopies = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "docswap v" + version + " - batch document replace, stamp and archive"},
		{"", ""},
		{"  docswap [OPTIONS] <file>...", ""},
		{"  docswap [OPTIONS] --from <dir>", ""},
		{"", ""},
		{"Paths", ""},
		{"  -t, --target <dir>", "Target directory (persisted; default: ~/Desktop)"},
		{"  -a, --archive <dir>", "Archive directory (persisted; default: ~/Desktop/Archive)"},
		{"  --from <dir>", "Discover candidate documents from a directory"},
		{"", ""},
		{"Watermark", ""},
		{"  -w, --watermark-text <s>", "Stamp text (default: UNGÜLTIG)"},
		{"  --automation-tool <bin>", "Office automation binary (default: soffice)"},
		{"  --automation-timeout <d>", "Automation budget per file (default: 90s)"},
		{"  --no-watermark", "Skip the watermark step"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not copy, stamp or archive"},
		{"  --no-verify", "Skip SHA-256 copy verification"},
		{"  --remove-sources", "Delete source files after successful processing"},
		{"  --match-prefix <n>", "Match outgoing version by first N characters (0 = exact)"},
		{"  --save-config", "Persist target/archive directories after the run"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --report <path>", "Write the final report as JSON"},
		{"  -c, --check", "System diagnostics (automation tool, directories)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
