package commands

import (
	"runtime"
	"strings"

	"github.com/leapstack-labs/ensvar/pkg/adapter"
	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string   `json:"version" yaml:"version"`
	Commit    string   `json:"commit" yaml:"commit"`
	BuildDate string   `json:"build_date" yaml:"build_date"`
	GoVersion string   `json:"go_version" yaml:"go_version"`
	Adapters  []string `json:"adapters" yaml:"adapters"`
	Entities  int      `json:"entities" yaml:"entities"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the ensvar version, build metadata, compiled-in adapters and the number of mapped entities.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)

			info := build
			info.GoVersion = runtime.Version()
			info.Adapters = adapter.ListAdapters()
			info.Entities = cc.Registry.Len()

			r := cc.Renderer
			if r.Structured() {
				return r.Data(info)
			}
			r.Printf("ensvar v%s\n", info.Version)
			r.Println("Typed access to Ensembl-style variation databases")
			r.Printf("commit %s, built %s, %s\n", info.Commit, info.BuildDate, info.GoVersion)
			r.Printf("adapters: %s\n", strings.Join(info.Adapters, ", "))
			r.Printf("entities: %d\n", info.Entities)
			return nil
		},
	}
}
