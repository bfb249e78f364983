package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"scentlog/internal/bulkimport"
	"scentlog/internal/catalog"
	"scentlog/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Bulk import usage logs from free-text journal notes",
		Long: `Import parses loosely formatted journal text into usage logs.

Weekday lines ("Lunes 29", "Monday 14") set the date for the entries below
them. Every other line names a fragrance, optionally followed by a colon and
context; time-of-day and weather keywords (English or Spanish) and a trailing
1-10 enjoyment rating are picked up automatically, and the remaining name is
matched against your catalog.

Text is read from the given file, or from stdin when no file is given.
Parsed entries are shown for review before anything is saved; entries without
a resolved fragrance or a date are kept visible but never saved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(ctx, cmd, args, assumeYes)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Save all valid entries without interactive review")
	return cmd
}

func runImport(cmdCtx *commandContext, cmd *cobra.Command, args []string, assumeYes bool) error {
	logger, err := cmdCtx.ensureLogger("import")
	if err != nil {
		return err
	}
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	fromFile := len(args) == 1
	text, err := readImportText(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to import: input is empty")
	}

	return cmdCtx.withImportLock(func() error {
		return cmdCtx.withStore(func(st *store.Store) error {
			options, err := st.LogOptions(cmd.Context())
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			parser := bulkimport.NewParser(bulkimport.Options{
				MatchThreshold: cfg.Import.MatchThreshold,
				RatingAnywhere: !cfg.Import.RatingTrailingOnly,
			})
			session := bulkimport.NewSession(parser)
			session.SetRawText(text)
			if err := session.Parse(options); err != nil {
				return err
			}

			entries := session.Entries()
			valid := session.ValidEntries()
			logger.Info("parsed journal text",
				slog.Int("entries", len(entries)),
				slog.Int("valid", len(valid)))

			labels := catalogLabels(options)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderEntriesTable(entries, labels))
			if len(valid) < len(entries) {
				fmt.Fprintf(out, "%d of %d entries cannot be saved yet (no match or no date).\n",
					len(entries)-len(valid), len(entries))
			}

			interactive := fromFile && !assumeYes && isatty.IsTerminal(os.Stdin.Fd())
			if interactive {
				proceed, err := reviewLoop(cmd, session, options)
				if err != nil {
					return err
				}
				if !proceed {
					fmt.Fprintln(out, "Import aborted; nothing was saved.")
					return nil
				}
			}

			return saveEntries(cmd, session, st, logger)
		})
	})
}

func readImportText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(cmd.OutOrStdout(), "Paste your journal text, then press Ctrl-D:")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// reviewLoop lets the user edit, delete, and inspect parsed entries before
// committing. It returns false when the user backs out.
func reviewLoop(cmd *cobra.Command, session *bulkimport.Session, options []catalog.Entry) (bool, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, `Review the entries above. Type "help" for commands.`)

	labels := catalogLabels(options)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "review> ")
		if !scanner.Scan() {
			return false, scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "help":
			printReviewHelp(out)
		case "list":
			fmt.Fprintln(out, renderEntriesTable(session.Entries(), labels))
		case "delete":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: delete <n>")
				continue
			}
			entry, ok := entryByNumber(session, fields[1])
			if !ok {
				fmt.Fprintln(out, "no such entry")
				continue
			}
			session.DeleteEntry(entry.ID)
			fmt.Fprintln(out, renderEntriesTable(session.Entries(), labels))
		case "edit":
			if len(fields) < 3 {
				fmt.Fprintln(out, "usage: edit <n> field=value ...")
				continue
			}
			entry, ok := entryByNumber(session, fields[1])
			if !ok {
				fmt.Fprintln(out, "no such entry")
				continue
			}
			edits, err := parseFieldEdits(session.Matcher(), options, editArgs(line))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := session.UpdateEntry(entry.ID, edits...); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, renderEntriesTable(session.Entries(), labels))
		case "save":
			if len(session.ValidEntries()) == 0 {
				fmt.Fprintln(out, "no valid entries to save; fix them first or quit")
				continue
			}
			return true, nil
		case "back", "quit":
			session.Reset()
			return false, nil
		default:
			fmt.Fprintf(out, "unknown command %q; type \"help\"\n", fields[0])
		}
	}
}

func printReviewHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  list                      show the parsed entries
  edit <n> field=value ...  edit entry n; fields: date, name, time, weather,
                            enjoyment, notes. Use "-" to clear a field.
                            Editing name re-matches it against your catalog.
  delete <n>                remove entry n
  save                      save all valid entries
  back                      discard entries and abort
  quit                      abort without saving
`)
}

// editArgs returns the field=value tokens of an edit command, keeping
// everything after "notes=" as a single value.
func editArgs(line string) []string {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil
	}
	args := fields[2:]
	for i, arg := range args {
		if strings.HasPrefix(arg, "notes=") {
			idx := strings.Index(line, "notes=")
			return append(args[:i], line[idx:])
		}
	}
	return args
}

func entryByNumber(session *bulkimport.Session, raw string) (bulkimport.ParsedEntry, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return bulkimport.ParsedEntry{}, false
	}
	entries := session.Entries()
	if n < 1 || n > len(entries) {
		return bulkimport.ParsedEntry{}, false
	}
	return entries[n-1], true
}

// parseFieldEdits converts field=value tokens into validated field edits.
// A name edit re-resolves the new name against the catalog so the match and
// confidence always correspond to the visible name.
func parseFieldEdits(matcher *catalog.Matcher, options []catalog.Entry, args []string) ([]bulkimport.FieldEdit, error) {
	var edits []bulkimport.FieldEdit
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		value = strings.TrimSpace(value)
		clear := value == "-"

		switch key {
		case "date":
			if clear {
				edits = append(edits, bulkimport.DateEdit{})
				continue
			}
			date, err := parseDateFlag(value)
			if err != nil {
				return nil, err
			}
			edits = append(edits, bulkimport.DateEdit{Date: &date})
		case "name":
			if clear || value == "" {
				return nil, errors.New("name cannot be cleared")
			}
			edits = append(edits,
				bulkimport.NameEdit{Name: value},
				bulkimport.MatchEdit{Match: matcher.Match(value, options)})
		case "time":
			if clear {
				edits = append(edits, bulkimport.TimeOfDayEdit{})
				continue
			}
			timeOfDay, ok := bulkimport.ParseTimeOfDay(value)
			if !ok {
				return nil, fmt.Errorf("time must be day or night, got %q", value)
			}
			edits = append(edits, bulkimport.TimeOfDayEdit{Value: &timeOfDay})
		case "weather":
			if clear {
				edits = append(edits, bulkimport.WeatherEdit{})
				continue
			}
			weather, ok := bulkimport.ParseWeather(value)
			if !ok {
				return nil, fmt.Errorf("weather must be hot, cold, or mild, got %q", value)
			}
			edits = append(edits, bulkimport.WeatherEdit{Value: &weather})
		case "enjoyment":
			if clear {
				edits = append(edits, bulkimport.EnjoymentEdit{})
				continue
			}
			rating, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("enjoyment must be a number, got %q", value)
			}
			edits = append(edits, bulkimport.EnjoymentEdit{Value: &rating})
		case "notes":
			if clear {
				edits = append(edits, bulkimport.NotesEdit{})
				continue
			}
			edits = append(edits, bulkimport.NotesEdit{Value: &value})
		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}
	return edits, nil
}

func saveEntries(cmd *cobra.Command, session *bulkimport.Session, st *store.Store, logger *slog.Logger) error {
	valid := session.ValidEntries()
	if len(valid) == 0 {
		return errors.New("no valid entries to save; fix them in review or correct the source text")
	}
	session.GoToStep(bulkimport.StepSaving)

	out := cmd.OutOrStdout()
	showLive := isatty.IsTerminal(os.Stdout.Fd())

	create := func(ctx context.Context, req bulkimport.LogRequest) error {
		_, err := st.CreateLog(ctx, storeLogFromRequest(req))
		return err
	}
	report := func(progress bulkimport.SaveProgress) {
		session.UpdateProgress(progress)
		if showLive {
			fmt.Fprintf(out, "\rsaving %d/%d (failed %d)",
				progress.Completed+progress.Failed, progress.Total, progress.Failed)
		}
	}

	executor := bulkimport.NewExecutor(create, report, logger)
	progress := executor.Run(cmd.Context(), valid)
	if showLive {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Saved %d of %d entries.\n", progress.Completed, progress.Total)
	if progress.Failed > 0 {
		fmt.Fprintln(out, renderErrorTable(valid, progress.Errors))
		return fmt.Errorf("%d of %d entries failed to save", progress.Failed, progress.Total)
	}
	return nil
}

func storeLogFromRequest(req bulkimport.LogRequest) store.NewLog {
	log := store.NewLog{
		FragranceID:     req.FragranceID,
		UserFragranceID: req.UserFragranceID,
		LogDate:         req.LogDate,
	}
	if req.TimeOfDay != nil {
		log.TimeOfDay = string(*req.TimeOfDay)
	}
	if req.Weather != nil {
		log.Weather = string(*req.Weather)
	}
	if req.Enjoyment != nil {
		log.Enjoyment = *req.Enjoyment
	}
	if req.Notes != nil {
		log.Notes = *req.Notes
	}
	return log
}

// catalogLabels maps ownership ids to display labels for the review table.
func catalogLabels(options []catalog.Entry) map[int64]string {
	labels := make(map[int64]string, len(options))
	for _, option := range options {
		labels[option.UserFragranceID] = option.Label()
	}
	return labels
}

func renderEntriesTable(entries []bulkimport.ParsedEntry, labels map[int64]string) string {
	headers := []string{"#", "Status", "Date", "Name", "Match", "Conf", "Time", "Weather", "Enjoy", "Notes"}
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		matched := ""
		if entry.MatchedUserFragranceID != nil {
			matched = labels[*entry.MatchedUserFragranceID]
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			entryStatus(entry),
			orDash(entry.DateString()),
			orDash(entry.FragranceName),
			orDash(matched),
			formatConfidence(entry.MatchConfidence),
			formatOptional(entry.TimeOfDay),
			formatOptional(entry.Weather),
			formatEnjoyment(entry.Enjoyment),
			formatNotes(entry.Notes),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}

func renderErrorTable(entries []bulkimport.ParsedEntry, errs []bulkimport.EntryError) string {
	lineByID := make(map[string]string, len(entries))
	for _, entry := range entries {
		lineByID[entry.ID] = entry.RawLine
	}
	headers := []string{"Entry", "Error"}
	rows := make([][]string, 0, len(errs))
	for _, entryErr := range errs {
		rows = append(rows, []string{orDash(lineByID[entryErr.EntryID]), entryErr.Message})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft})
}
