// Command dragsort shows lines of text in a terminal list that can be
// reordered with the mouse: hold a line until it lifts, drag it to its new
// place and let go. The final order is printed when the program exits.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	log "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/help"
	"github.com/xqrs/dragsort/internal/config"
)

var (
	cfgFile   string
	itemsFile string
	inPlace   bool
	copyOrder bool
	appConfig config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dragsort [item...]",
		Short: "Reorder lines by dragging them with the mouse",
		Long: `dragsort shows the given items, or the lines of --file, as a list.
Press and hold a row until it lifts, drag it to its new place and release.
Without items or --file, piped stdin is read instead.
The resulting order is printed to stdout on exit. Changes to the config
file are applied while the list is shown.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE:              run,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/dragsort/dragsort.yaml)")
	cmd.Flags().StringVarP(&itemsFile, "file", "f", "", "read items from file, one per line (- for stdin)")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "write the new order back to --file")
	cmd.Flags().BoolVar(&copyOrder, "copy", false, "also copy the new order to the clipboard")
	cmd.Flags().Float64("alpha", 0, "opacity of a lifted row")
	cmd.Flags().Duration("press-duration", 0, "how long a row must be held before it lifts")
	cmd.Flags().Int("row-height", 0, "lines per row")
	cmd.Flags().Bool("border", true, "draw a border around the list")
	cmd.PersistentFlags().String("log-file", "", "write the log to this file")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newConfigCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var path *string
	if cfgFile != "" {
		path = &cfgFile
	}
	c, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	appConfig = c
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if inPlace && (itemsFile == "" || itemsFile == "-") {
		return errors.New("--in-place needs a --file to write to")
	}

	file := itemsFile
	if len(args) == 0 && file == "" && stdinPiped(cmd.InOrStdin()) {
		file = "-"
	}
	items, err := readItems(args, file, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errors.New("nothing to sort: pass items as arguments or use --file")
	}

	closeLog, err := setupLogging(appConfig.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	list := dragsort.NewReorderList().SetItems(items...)
	if err := applyConfig(list, appConfig); err != nil {
		return err
	}

	bar := help.New()
	root := newLayout(list, bar)
	list.SetListener(newStatusListener(list, bar))

	app := dragsort.NewApplication().SetRoot(root)
	list.SetScheduler(app)
	watchConfig(cmd, app, list)

	log.Info("starting", "items", len(items), "press", appConfig.Gesture.PressDuration, "rows", appConfig.List.RowHeight)
	if err := app.Run(); err != nil {
		return err
	}

	order := list.Items()
	log.Info("finished", "order", strings.Join(order, ", "))
	if copyOrder {
		if err := clipboard.WriteAll(strings.Join(order, "\n")); err != nil {
			log.Warn("could not copy to clipboard", "err", err)
		}
	}
	if inPlace {
		return writeItems(itemsFile, order)
	}
	return printItems(cmd.OutOrStdout(), order)
}

// applyConfig sets the list up from c. The drag configuration is rejected
// while a drag is in progress.
func applyConfig(list *dragsort.ReorderList, c config.Config) error {
	dragConfig, err := c.DragConfig()
	if err != nil {
		return err
	}
	if err := list.SetDragConfig(dragConfig); err != nil {
		return err
	}
	list.SetRowHeight(c.List.RowHeight).SetLongPressDuration(c.Gesture.PressDuration)
	if c.List.Border {
		list.SetBorders(dragsort.BordersAll).SetBorderSet(dragsort.BorderSetRound()).SetTitle(" dragsort ")
	} else {
		list.SetBorders(dragsort.BordersNone).SetTitle("")
	}
	return nil
}

// watchConfig reapplies the config file to list whenever it is saved.
func watchConfig(cmd *cobra.Command, app *dragsort.Application, list *dragsort.ReorderList) {
	var path *string
	if cfgFile != "" {
		path = &cfgFile
	}
	file, err := config.WatchConfig(cmd, config.Defaults(), path, func(c config.Config, err error) {
		if err != nil {
			log.Warn("could not reload config", "err", err)
			return
		}
		app.QueueUpdateDraw(func() {
			if err := applyConfig(list, c); err != nil {
				log.Warn("config change not applied", "err", err)
				return
			}
			log.Info("config reloaded")
		})
	})
	if err != nil {
		log.Warn("could not watch config", "err", err)
		return
	}
	if file != "" {
		log.Debug("watching config", "file", file)
	}
}

// stdinPiped reports whether r is a file that is not a terminal, such as a
// pipe or a redirected file.
func stdinPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// readItems returns args if there are any, otherwise the lines of file.
func readItems(args []string, file string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		if file != "" {
			return nil, errors.New("pass items as arguments or with --file, not both")
		}
		return args, nil
	}
	if file == "" {
		return nil, nil
	}

	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			items = append(items, line)
		}
	}
	return items, scanner.Err()
}

func printItems(w io.Writer, items []string) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}

func writeItems(path string, items []string) error {
	return os.WriteFile(path, []byte(strings.Join(items, "\n")+"\n"), 0o644)
}

// setupLogging points the global logger at the configured file. The
// terminal is owned by the list while it runs, so without a file the log is
// discarded.
func setupLogging(c config.Log) (func() error, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if c.File == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return f.Close, nil
}
