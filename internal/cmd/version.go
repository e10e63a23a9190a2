package cmd

import (
	"fmt"
	goruntime "runtime"

	"github.com/lazyvibe/failbell/internal/ui/styles"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			styles.Brand.Render("failbell"),
			styles.VersionStyle.Render(fmt.Sprintf("%s (%s/%s)", version, goruntime.GOOS, goruntime.GOARCH)))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
