package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"golocate/internal/runtime"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of `golocate runtimes -o json`",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := runtime.MarshalSchema(runtime.RuntimeListSchema())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}
