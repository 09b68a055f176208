package main

import (
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	CPUModel     string
	LogicalCores int
	TotalRAMGB   float64
}

// getHostInfo queries the CPU and memory of the host
func getHostInfo() (HostInfo, error) {
	var info HostInfo

	cpuInfo, err := cpu.Info()
	if err != nil {
		return info, err
	}
	if len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}

	cores, err := cpu.Counts(true)
	if err != nil {
		return info, err
	}
	info.LogicalCores = cores

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, err
	}
	info.TotalRAMGB = float64(memInfo.Total) / (1024 * 1024 * 1024)

	return info, nil
}

// logHostInfo logs the host description, or why it could not be read
func logHostInfo(logger core.Logger) {
	info, err := getHostInfo()
	if err != nil {
		logger.Printf("Could not query host info: %v\n", err)
		return
	}
	logger.Printf("Host: %s, %d logical cores, %.1f GB RAM\n", info.CPUModel, info.LogicalCores, info.TotalRAMGB)
}
