package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ontoq/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/ontoq"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ontoq version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		details := versionDetails(info)
		fmt.Printf("ontoq %s\n", info.Version)
		fmt.Print(details)
		return nil
	},
}

// versionDetails renders the build details below the version line.
func versionDetails(info versionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module: %s\n", info.ModulePath)
	if info.Commit != "" {
		fmt.Fprintf(&b, "commit: %s\n", info.Commit)
	}
	if info.CommitTime != "" {
		fmt.Fprintf(&b, "commit_time: %s\n", info.CommitTime)
	}
	fmt.Fprintf(&b, "go: %s\nplatform: %s\nmodified: %t\n", info.GoVersion, info.Platform, info.Modified)
	return b.String()
}

// currentVersionInfo reads module build info, falling back to the values
// injected with -ldflags into internal/buildinfo.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}

		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		if v := settings["GOOS"]; v != "" {
			goos = v
		}
		if v := settings["GOARCH"]; v != "" {
			goarch = v
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}
	info.Platform = goos + "/" + goarch

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = buildinfo.Version
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
