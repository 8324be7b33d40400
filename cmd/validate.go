package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarsters/satellite-imagery-aesthetics/internal/taxonomy"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a taxonomy dataset file",
	Long: `validate loads a taxonomy dataset and runs the same structural checks
the server applies at startup. With no argument it checks the dataset
embedded in the binary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tax *taxonomy.Taxonomy
		var err error
		if len(args) == 1 {
			tax, err = taxonomy.LoadFile(args[0])
		} else {
			tax, err = taxonomy.Load()
		}
		if err != nil {
			return err
		}

		imagery, altitudes, emphases, strengths := tax.Counts()
		fmt.Printf("dataset OK: %d imagery profiles, %d altitude perspectives, %d feature emphasis options, %d aesthetic strengths (%d combinations)\n",
			imagery, altitudes, emphases, strengths, imagery*altitudes*emphases*strengths)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
