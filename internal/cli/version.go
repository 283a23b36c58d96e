package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BIGmindz/ChainBridge-sub011/internal/tri"
)

const version = "1.0.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is a struct, not a map, so field order stays fixed like
// every other JSON surface in this repo.
type versionInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	ModelVersion string `json:"model_version"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := versionInfo{
			Name:         "triwatch",
			Version:      version,
			ModelVersion: tri.ModelVersion,
		}
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	},
}
