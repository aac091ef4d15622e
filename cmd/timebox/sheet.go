package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"timebox/internal/bootstrap"
	sheetdto "timebox/internal/modules/sheet/dto"
	"timebox/internal/ui/theme"
	sheetview "timebox/internal/ui/views/sheet"
)

func newSheetCmd(configPath *string) *cobra.Command {
	sheet := &cobra.Command{Use: "sheet", Short: "Manage daily sheets"}

	run := withSession(configPath)

	sheet.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sheets, newest day first",
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, _ []string) error {
			sheets, err := s.SheetCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			printSheets(cmd.OutOrStdout(), sheets)
			return nil
		}),
	})

	sheet.AddCommand(&cobra.Command{
		Use:   "new [day]",
		Short: "Create the sheet for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			out, err := s.SheetCLI.New(cmd.Context(), dayArg(args))
			if err != nil {
				return err
			}
			if out.Existed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exists %s\n", out.Sheet.Date)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%d slots)\n", out.Sheet.Date, len(out.Sheet.Hours))
			return nil
		}),
	})

	sheet.AddCommand(&cobra.Command{
		Use:   "show [day]",
		Short: "Show a sheet (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			out, err := s.SheetCLI.Show(cmd.Context(), dayArg(args))
			if err != nil {
				return err
			}
			printSheet(cmd, s, out)
			return nil
		}),
	})

	var yes bool
	rm := &cobra.Command{
		Use:   "rm <day>",
		Short: "Delete a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			if !yes {
				target, err := s.SheetCLI.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				ok, err := confirm(cmd, fmt.Sprintf("¿Eliminar TimeBox del %s?", target.FormattedDate))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kept %s\n", target.Date)
					return nil
				}
			}
			out, err := s.SheetCLI.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", out.Date)
			return nil
		}),
	}
	rm.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	sheet.AddCommand(rm)

	var exportDir string
	export := &cobra.Command{
		Use:   "export <day>",
		Short: "Write a sheet as markdown with YAML frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			out, err := s.SheetCLI.Export(cmd.Context(), args[0], exportDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Path)
			return nil
		}),
	}
	export.Flags().StringVar(&exportDir, "dir", ".", "output directory")
	sheet.AddCommand(export)

	sheet.AddCommand(newPriorityCmd(run), newSlotCmd(run), newDumpCmd(run))
	return sheet
}

type sessionRunner func(fn func(cmd *cobra.Command, s *bootstrap.Session, args []string) error) func(*cobra.Command, []string) error

// withSession opens a session for each command run and closes it afterwards.
func withSession(configPath *string) sessionRunner {
	return func(fn func(cmd *cobra.Command, s *bootstrap.Session, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			return fn(cmd, s, args)
		}
	}
}

func newPriorityCmd(run sessionRunner) *cobra.Command {
	priority := &cobra.Command{Use: "priority", Short: "Edit the priority list (numbered from 1)"}

	priority.AddCommand(&cobra.Command{
		Use:   "add <day>",
		Short: "Append an empty priority",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			out, err := s.SheetCLI.AddPriority(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d priorities\n", len(out.Priorities))
			return nil
		}),
	})

	priority.AddCommand(&cobra.Command{
		Use:   "rm <day> <n>",
		Short: "Remove priority n",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			n, err := position(args[1])
			if err != nil {
				return err
			}
			out, err := s.SheetCLI.RemovePriority(cmd.Context(), args[0], n-1)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d priorities\n", len(out.Priorities))
			return nil
		}),
	})

	priority.AddCommand(&cobra.Command{
		Use:   "set <day> <n> <text>...",
		Short: "Set the text of priority n",
		Args:  cobra.MinimumNArgs(3),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			n, err := position(args[1])
			if err != nil {
				return err
			}
			_, err = s.SheetCLI.SetPriority(cmd.Context(), args[0], n-1, strings.Join(args[2:], " "))
			return err
		}),
	})
	return priority
}

func newSlotCmd(run sessionRunner) *cobra.Command {
	slot := &cobra.Command{Use: "slot", Short: "Edit half-hour slots (indexes as shown by sheet show)"}

	var notes string
	set := &cobra.Command{
		Use:   "set <day> <index> [task]...",
		Short: "Set the task (and optionally notes) of a slot",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("slot index %q: %w", args[1], err)
			}
			var notesArg *string
			if cmd.Flags().Changed("notes") {
				notesArg = &notes
			}
			_, err = s.SheetCLI.SetSlot(cmd.Context(), args[0], index, strings.Join(args[2:], " "), notesArg)
			return err
		}),
	}
	set.Flags().StringVar(&notes, "notes", "", "slot notes")
	slot.AddCommand(set)
	return slot
}

func newDumpCmd(run sessionRunner) *cobra.Command {
	dump := &cobra.Command{Use: "dump", Short: "Edit the brain dump"}
	dump.AddCommand(&cobra.Command{
		Use:   "set <day> [text]...",
		Short: "Replace the brain dump; \"-\" reads it from stdin",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, args []string) error {
			text := strings.Join(args[1:], " ")
			if text == "-" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimRight(string(raw), "\n")
			}
			_, err := s.SheetCLI.SetBrainDump(cmd.Context(), args[0], text)
			return err
		}),
	})
	return dump
}

// confirm asks a yes/no question on the terminal. Aborting counts as no.
var confirm = func(cmd *cobra.Command, title string) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Sí").Negative("No").Value(&ok),
	)).WithInput(cmd.InOrStdin()).WithOutput(cmd.ErrOrStderr()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func dayArg(args []string) string {
	if len(args) == 0 {
		return "today"
	}
	return args[0]
}

func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("position %q must be a number from 1", arg)
	}
	return n, nil
}

func printSheets(w io.Writer, sheets []sheetdto.Sheet) {
	if len(sheets) == 0 {
		_, _ = fmt.Fprintln(w, "no sheets")
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.AddRow("DATE", "LABEL", "PRIORITIES", "SLOTS", "UPDATED")
	for _, s := range sheets {
		changed := s.UpdatedAt
		if changed.IsZero() {
			changed = s.CreatedAt
		}
		tbl.AddRow(
			s.Date,
			s.FormattedDate,
			fmt.Sprintf("%d/%d", countFilled(s.Priorities), len(s.Priorities)),
			fmt.Sprintf("%d/%d", countTasks(s.Hours), len(s.Hours)),
			humanize.Time(changed),
		)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printSheet(cmd *cobra.Command, s *bootstrap.Session, sheet sheetdto.Sheet) {
	prefs := s.PrefsCLI.Get(cmd.Context())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), sheetview.Render(sheet, prefs, theme.For(prefs.Theme)))
}

func countFilled(items []string) int {
	n := 0
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			n++
		}
	}
	return n
}

func countTasks(slots []sheetdto.Slot) int {
	n := 0
	for _, slot := range slots {
		if strings.TrimSpace(slot.Task) != "" {
			n++
		}
	}
	return n
}
