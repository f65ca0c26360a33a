// Package buildinfo holds release metadata set at link time:
//
//	go build -ldflags "-X github.com/aidanlsb/ontoq/internal/buildinfo.Version=v0.3.0"
//
// Local builds leave every value empty.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
