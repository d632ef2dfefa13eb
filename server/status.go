// server/status.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"net/http"
	"runtime"
	"text/template"
	"time"

	"github.com/shirou/gopsutil/cpu"
)

type serverStats struct {
	Uptime           time.Duration
	AllocMemory      uint64
	TotalAllocMemory uint64
	SysMemory        uint64
	NumGC            uint32
	NumGoRoutines    int
	CPUUsage         int
	BuildID          string
}

var statusTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html>
<head>
<title>dispatchd</title>
</head>
<style>
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #dddddd; padding: 8px; text-align: left; }
</style>
<body>
<h1>Dispatch Planner Status</h1>
<ul>
  <li>Build: {{.BuildID}}</li>
  <li>Uptime: {{.Uptime}}</li>
  <li>CPU usage: {{.CPUUsage}}%</li>
  <li>Allocated memory: {{.AllocMemory}} MB</li>
  <li>Total allocated memory: {{.TotalAllocMemory}} MB</li>
  <li>System memory: {{.SysMemory}} MB</li>
  <li>Garbage collection passes: {{.NumGC}}</li>
  <li>Running goroutines: {{.NumGoRoutines}}</li>
</ul>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage, _ := cpu.Percent(100*time.Millisecond, false)
	cpuPct := 0
	if len(usage) > 0 {
		cpuPct = int(usage[0])
	}

	stats := serverStats{
		Uptime:           time.Since(s.StartTime).Round(time.Second),
		AllocMemory:      m.Alloc / (1024 * 1024),
		TotalAllocMemory: m.TotalAlloc / (1024 * 1024),
		SysMemory:        m.Sys / (1024 * 1024),
		NumGC:            m.NumGC,
		NumGoRoutines:    runtime.NumGoroutine(),
		CPUUsage:         cpuPct,
		BuildID:          BuildID,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = statusTemplate.Execute(w, stats)
}

func (s *Server) handleUID(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(BuildID))
}
