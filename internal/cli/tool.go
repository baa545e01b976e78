package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"golocate/internal/tools"
)

func init() {
	rootCmd.AddCommand(toolCmd, toolsCmd, gopathCmd)
	toolCmd.Flags().String("project", "", "project directory (default: git root or working directory)")
}

var toolCmd = &cobra.Command{
	Use:   "tool NAME",
	Short: "Print the path of a Go tool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		name := args[0]
		p, ok := a.FindTool(ctx, name, resolveProject(ctx, a, mustString(cmd, "project")))
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		}
		msg := fmt.Sprintf("tool %q not found (strategy %s)", name, tools.StrategyFor(name))
		if _, known := tools.Lookup(name); !known {
			if s := tools.Suggest(name, 3); len(s) > 0 {
				msg += "; did you mean: " + strings.Join(s, ", ")
			}
		}
		return errors.New(msg)
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List known tools and where each is expected to live",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, t := range tools.Tools {
			line := fmt.Sprintf("%-14s %s", t.Name, styleMuted.Render(string(t.Strategy)))
			if t.ImportPath != "" {
				line += "  " + stylePath.Render(t.ImportPath)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

var gopathCmd = &cobra.Command{
	Use:   "gopath",
	Short: "Print the expanded GOPATH",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()
		gp, ok := a.GoPath()
		if !ok {
			return errors.New("GOPATH is not set")
		}
		fmt.Fprintln(cmd.OutOrStdout(), gp)
		return nil
	},
}
