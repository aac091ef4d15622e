package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"timebox/internal/bootstrap"
	prefsdto "timebox/internal/modules/preferences/dto"
)

func newPrefsCmd(configPath *string) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Day window, notifications and theme"}
	run := withSession(configPath)

	prefs.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show preferences",
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, _ []string) error {
			printPrefs(cmd.OutOrStdout(), s.PrefsCLI.Get(cmd.Context()), s.PrefsCLI.CanPersist())
			return nil
		}),
	})

	var (
		start, end    int
		notifications bool
		themeName     string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change preferences (signed-in sessions only)",
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, _ []string) error {
			flags := cmd.Flags()
			out, err := s.PrefsCLI.Update(cmd.Context(), func(p *prefsdto.Preferences) {
				if flags.Changed("start") {
					p.StartHour = start
				}
				if flags.Changed("end") {
					p.EndHour = end
				}
				if flags.Changed("notifications") {
					p.Notifications = notifications
				}
				if flags.Changed("theme") {
					p.Theme = themeName
				}
			})
			if err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), out, true)
			return nil
		}),
	}
	set.Flags().IntVar(&start, "start", 8, "first hour of the day grid (0-23)")
	set.Flags().IntVar(&end, "end", 18, "last hour of the day grid (0-23)")
	set.Flags().BoolVar(&notifications, "notifications", true, "show success toasts")
	set.Flags().StringVar(&themeName, "theme", "system", "system, light or dark")
	prefs.AddCommand(set)

	prefs.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit preferences in a form",
		RunE: run(func(cmd *cobra.Command, s *bootstrap.Session, _ []string) error {
			if !s.PrefsCLI.CanPersist() {
				return fmt.Errorf("guest sessions cannot save preferences; configure remote.url and credentials")
			}
			current := s.PrefsCLI.Get(cmd.Context())
			next, err := editPrefs(current)
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			out, err := s.PrefsCLI.Update(cmd.Context(), func(p *prefsdto.Preferences) { *p = next })
			if err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), out, true)
			return nil
		}),
	})
	return prefs
}

func editPrefs(current prefsdto.Preferences) (prefsdto.Preferences, error) {
	start := strconv.Itoa(current.StartHour)
	end := strconv.Itoa(current.EndHour)
	notifications := current.Notifications
	themeName := current.Theme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start hour (0-23)").Value(&start).Validate(validHour),
			huh.NewInput().Title("End hour (0-23)").Value(&end).Validate(validHour),
		).Title("Day window"),
		huh.NewGroup(
			huh.NewConfirm().Title("Notifications").Value(&notifications),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("System", "system"),
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
				).Value(&themeName),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	if err := form.Run(); err != nil {
		return prefsdto.Preferences{}, err
	}
	next := current
	next.StartHour, _ = strconv.Atoi(start)
	next.EndHour, _ = strconv.Atoi(end)
	next.Notifications = notifications
	next.Theme = themeName
	return next, nil
}

func validHour(s string) error {
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return errors.New("enter an hour from 0 to 23")
	}
	return nil
}

func printPrefs(w io.Writer, p prefsdto.Preferences, persistent bool) {
	tbl := uitable.New()
	tbl.AddRow("start_hour", p.StartHour)
	tbl.AddRow("end_hour", p.EndHour)
	tbl.AddRow("notifications", p.Notifications)
	tbl.AddRow("theme", p.Theme)
	if !persistent {
		tbl.AddRow("", "(guest defaults, not saved)")
	}
	_, _ = fmt.Fprintln(w, tbl)
}
