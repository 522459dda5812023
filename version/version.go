//nolint
package version

import "fmt"

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit         string
	TendermintRelease string

	Version string
)

const NodeVersion = "0.1.0"

func init() {
	Version = fmt.Sprintf("Ledger Release: %s;", NodeVersion)
	if GitCommit != "" {
		Version += fmt.Sprintf(" Ledger Commit: %s;", GitCommit)
	}
	if TendermintRelease != "" {
		Version += fmt.Sprintf(" Tendermint Release: %s;", TendermintRelease)
	}
}
