package main

import (
	"github.com/spf13/cobra"

	"timebox/internal/bootstrap"
)

func newPickCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a day on a week calendar and create its sheet",
		RunE: withSession(configPath)(func(cmd *cobra.Command, s *bootstrap.Session, _ []string) error {
			out, ok, err := bootstrap.RunPicker(cmd.Context(), s)
			if err != nil || !ok {
				return err
			}
			printSheet(cmd, s, out.Sheet)
			return nil
		}),
	}
}

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse sheets full screen",
		RunE: withSession(configPath)(func(cmd *cobra.Command, s *bootstrap.Session, _ []string) error {
			return bootstrap.RunBrowser(cmd.Context(), s)
		}),
	}
}
