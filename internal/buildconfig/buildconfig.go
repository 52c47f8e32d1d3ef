// Package buildconfig exposes values injected at link time:
//
//	go build -ldflags "-X github.com/Harshitk-cp/caes/internal/buildconfig.version=v1.2.0 \
//	  -X github.com/Harshitk-cp/caes/internal/buildconfig.commit=$(git rev-parse --short HEAD)"
package buildconfig

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
)

type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func Version() string { return version }
func Commit() string  { return commit }

func Get() Info {
	return Info{Version: version, Commit: commit}
}

// String is the one-line form printed by `caes --version`.
func (i Info) String() string {
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}
