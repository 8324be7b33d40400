package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarsters/satellite-imagery-aesthetics/internal/tools"
)

var build = "unknown"

// SetBuild sets the build string from main
func SetBuild(b string) {
	build = b
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("satellite-aesthetics %s (%s)\n", tools.ServerVersion, build)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
