package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/wilbur182/arbor/internal/app"
	"github.com/wilbur182/arbor/internal/config"
	"github.com/wilbur182/arbor/internal/keymap"
	"github.com/wilbur182/arbor/internal/picker"
	"github.com/wilbur182/arbor/internal/tree"
	"github.com/wilbur182/arbor/internal/vfs/local"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath  = flag.String("config", "", "path to config file")
	rootFlag    = flag.String("root", "", "explorer root directory (overrides config for this session)")
	debugFlag   = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("arbor version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "arbor requires an interactive terminal")
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// A -root flag overrides the persisted root for this session only.
	if *rootFlag != "" {
		abs, err := filepath.Abs(*rootFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve root: %v\n", err)
			os.Exit(1)
		}
		cfg.Explorer.Root = abs
	}

	store := config.NewStore(cfg, path)
	fs := local.New(logger)
	folderPicker := picker.NewTerminal(fs, "", logger)

	// With no root configured, run the folder picker before the host
	// program so the selection persists ahead of the first listing.
	if store.Root() == "" {
		chosen, err := folderPicker.PickFolder()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Folder selection failed: %v\n", err)
			os.Exit(1)
		}
		if chosen == "" {
			fmt.Fprintln(os.Stderr, "No folder selected")
			os.Exit(0)
		}
		if err := store.SetRoot(chosen); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}
	}

	source := tree.NewSource(fs, store, folderPicker, logger)

	km := keymap.NewRegistry()
	model := app.New(fs, source, store, km, folderPicker, logger)

	// User overrides apply after the defaults registered by the model.
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	return cfg, path, err
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: arbor [options]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal file explorer with live change tracking.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
