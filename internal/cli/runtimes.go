package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"golocate/internal/app"
	"golocate/internal/runtime"
)

func init() {
	rootCmd.AddCommand(runtimesCmd, runtimeCmd, candidatesCmd)
	runtimesCmd.Flags().String("project", "", "project directory (default: git root or working directory)")
	runtimesCmd.Flags().StringP("output", "o", "text", "output format: text|json|yaml")
	runtimesCmd.Flags().Bool("refresh", false, "discard the cache and probe again")
	runtimeCmd.Flags().String("project", "", "project directory (default: git root or working directory)")
	runtimeCmd.Flags().StringP("output", "o", "text", "output format: text|json|yaml")
}

var runtimesCmd = &cobra.Command{
	Use:   "runtimes",
	Short: "List discovered Go runtimes, most preferred first",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(mustString(cmd, "output"))
		if err != nil {
			return err
		}
		a, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
			a.ResetRuntimes()
		}
		project := resolveProject(ctx, a, mustString(cmd, "project"))
		rts, err := a.Runtimes(ctx, project)
		if err != nil {
			return err
		}
		if format != formatText {
			if rts == nil {
				rts = []runtime.Runtime{}
			}
			return writeStructured(cmd.OutOrStdout(), format, rts)
		}
		out := cmd.OutOrStdout()
		if len(rts) == 0 {
			fmt.Fprintln(out, styleMissing.Render("no go runtime found"))
			return nil
		}
		newest := runtime.Newest(rts)
		for i, rt := range rts {
			var badges []string
			if i == 0 {
				badges = append(badges, "preferred")
			}
			if i == newest && len(rts) > 1 {
				badges = append(badges, "newest")
			}
			line := fmt.Sprintf("%s  %s", styleName.Render(rt.Name), stylePath.Render(rt.Path))
			if len(badges) > 0 {
				line += "  " + styleBadge.Render("("+strings.Join(badges, ", ")+")")
			}
			fmt.Fprintln(out, line)
			if root := rt.Root(); root != "" {
				fmt.Fprintln(out, styleMuted.Render("    GOROOT="+root))
			}
		}
		return nil
	},
}

var runtimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Print the runtime used for a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(mustString(cmd, "output"))
		if err != nil {
			return err
		}
		a, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		rt, err := a.RuntimeForProject(ctx, resolveProject(ctx, a, mustString(cmd, "project")))
		if errors.Is(err, app.ErrNoRuntime) {
			return fmt.Errorf("%w (searched: %s)", err, strings.Join(a.Locator.Candidates(""), ", "))
		}
		if err != nil {
			return err
		}
		if format != formatText {
			return writeStructured(cmd.OutOrStdout(), format, rt)
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.Path)
		return nil
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List candidate go executables in rank order, without probing",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()
		for _, c := range a.Locator.Candidates("") {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
