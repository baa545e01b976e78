package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"golocate/internal/executor"
)

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().String("cwd", "", "working directory")
	execCmd.Flags().String("stdin", "", "text piped to the command")
	execCmd.Flags().Duration("timeout", 0, "kill the command after this long")
}

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- CMD [ARGS...]",
	Short: "Run a command through the golocate executor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		timeout, _ := cmd.Flags().GetDuration("timeout")
		res, err := a.Exec(cmd.Context(), executor.Options{
			Command: args[0],
			Args:    args[1:],
			Dir:     mustString(cmd, "cwd"),
			Input:   mustString(cmd, "stdin"),
			Timeout: timeout,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
		fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
		if res.Err != nil {
			return fmt.Errorf("exit status %d: %w", res.ExitStatus, res.Err)
		}
		if res.ExitStatus != 0 {
			return fmt.Errorf("exit status %d", res.ExitStatus)
		}
		return nil
	},
}
