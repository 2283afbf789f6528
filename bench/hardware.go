// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Hardware describes the machine a run executed on.
type Hardware struct {
	OS         string   `yaml:"os" json:"os"`
	Arch       string   `yaml:"arch" json:"arch"`
	NumCPU     int      `yaml:"num_cpu" json:"num_cpu"`
	GOMAXPROCS int      `yaml:"gomaxprocs" json:"gomaxprocs"`
	GoVersion  string   `yaml:"go_version" json:"go_version"`
	Features   []string `yaml:"features,omitempty" json:"features,omitempty"`
}

// DetectHardware gathers information about the current system.
func DetectHardware() Hardware {
	return Hardware{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		GoVersion:  runtime.Version(),
		Features:   cpuFeatures(),
	}
}

// cpuFeatures lists the SIMD features that affect the kernel's throughput.
// x/sys/cpu reports false for every flag of a foreign architecture.
func cpuFeatures() []string {
	var features []string
	add := func(has bool, name string) {
		if has {
			features = append(features, name)
		}
	}

	add(cpu.X86.HasSSE2, "sse2")
	add(cpu.X86.HasAVX, "avx")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasFMA, "fma")
	add(cpu.X86.HasAVX512F, "avx512f")

	add(cpu.ARM64.HasASIMD, "asimd")
	add(cpu.ARM64.HasFPHP, "fphp")
	add(cpu.ARM64.HasSVE, "sve")
	add(cpu.ARM64.HasSVE2, "sve2")

	return features
}
