package cli

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/aidanlsb/ontoq/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prev })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main:      debug.Module{Path: "github.com/aidanlsb/ontoq", Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-02-14T17:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "GOOS", Value: "windows"},
			{Key: "GOARCH", Value: "amd64"},
		},
	})

	info := currentVersionInfo()

	if info.Version != "v1.2.3" {
		t.Fatalf("Version = %q, want %q", info.Version, "v1.2.3")
	}
	if info.Commit != "abc123" {
		t.Fatalf("Commit = %q, want %q", info.Commit, "abc123")
	}
	if info.CommitTime != "2026-02-14T17:00:00Z" {
		t.Fatalf("CommitTime = %q", info.CommitTime)
	}
	if !info.Modified {
		t.Fatal("Modified = false, want true")
	}
	if info.GoVersion != "go1.23.4" {
		t.Fatalf("GoVersion = %q, want %q", info.GoVersion, "go1.23.4")
	}
	if info.Platform != "windows/amd64" {
		t.Fatalf("Platform = %q, want windows/amd64", info.Platform)
	}
}

func TestCurrentVersionInfoFallsBackToLdflags(t *testing.T) {
	stubBuildInfo(t, nil)
	prevVersion, prevCommit := buildinfo.Version, buildinfo.Commit
	t.Cleanup(func() { buildinfo.Version, buildinfo.Commit = prevVersion, prevCommit })

	info := currentVersionInfo()
	if info.Version != "devel" || info.ModulePath != defaultModulePath {
		t.Fatalf("got %s %s, want devel %s", info.Version, info.ModulePath, defaultModulePath)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Fatalf("Platform = %q", info.Platform)
	}

	buildinfo.Version, buildinfo.Commit = "v0.3.0", "feedface"
	info = currentVersionInfo()
	if info.Version != "v0.3.0" || info.Commit != "feedface" {
		t.Fatalf("ldflags not applied: %+v", info)
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main:      debug.Module{Path: "github.com/aidanlsb/ontoq", Version: "(devel)"},
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})

	out, err := runCommand(t, "version", "--json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}

	var resp struct {
		OK   bool        `json:"ok"`
		Data versionInfo `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK || resp.Data.Version != "devel" || resp.Data.Commit != "deadbeef" {
		t.Fatalf("unexpected response: %s", out)
	}
}
