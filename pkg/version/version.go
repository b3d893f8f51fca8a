// Package version holds build metadata set with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/cfoust/tactilink/pkg/version.Version=v1.0.0"
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
