package benchmark

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Language is the runtime identifier recorded in every row.
const Language = "go"

// SystemInfo captures the environment a run executed in. Only Language and
// LanguageVersion are written to result rows; the rest is for `bench env`.
type SystemInfo struct {
	Language        string   `json:"language" yaml:"language" toml:"language"`
	LanguageVersion string   `json:"language_version" yaml:"language_version" toml:"language_version"`
	OS              string   `json:"os" yaml:"os" toml:"os"`
	Arch            string   `json:"arch" yaml:"arch" toml:"arch"`
	CPUs            int      `json:"cpus" yaml:"cpus" toml:"cpus"`
	CPUFeatures     []string `json:"cpu_features,omitempty" yaml:"cpu_features,omitempty" toml:"cpu_features,omitempty"`
	Hostname        string   `json:"hostname,omitempty" yaml:"hostname,omitempty" toml:"hostname,omitempty"`
	GitCommit       string   `json:"git_commit,omitempty" yaml:"git_commit,omitempty" toml:"git_commit,omitempty"`
}

// GetSystemInfo captures current system information.
func GetSystemInfo() SystemInfo {
	info := SystemInfo{
		Language:        Language,
		LanguageVersion: runtime.Version(),
		OS:              runtime.GOOS,
		Arch:            runtime.GOARCH,
		CPUs:            runtime.NumCPU(),
		CPUFeatures:     cpuFeatures(),
	}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}
	if commit, err := getGitCommit(); err == nil {
		info.GitCommit = commit
	}

	return info
}

// cpuFeatures lists the SIMD and bit-manipulation extensions that can change
// how a sort performs on this host.
func cpuFeatures() []string {
	var features []string
	add := func(has bool, name string) {
		if has {
			features = append(features, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasPOPCNT, "popcnt")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return features
}

// getGitCommit returns the current git commit hash.
func getGitCommit() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
