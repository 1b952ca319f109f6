package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

// keyDeps are the dependencies worth surfacing when debugging a crawl,
// since site breakage usually traces back to one of them.
var keyDeps = map[string]bool{
	"github.com/go-rod/rod":          true,
	"github.com/go-resty/resty/v2":   true,
	"github.com/PuerkitoBio/goquery": true,
	"github.com/xuri/excelize/v2":    true,
	"modernc.org/sqlite":             true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the module version and its key dependencies.",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("build info unavailable")
			return
		}
		fmt.Printf("%s %s (%s)\n", info.Main.Path, info.Main.Version, info.GoVersion)
		for _, dep := range info.Deps {
			if keyDeps[dep.Path] {
				fmt.Printf("  %s %s\n", dep.Path, dep.Version)
			}
		}
	},
}
