package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// framesPerWorker: число полноразмерных буферов одного воркера,
// кадр, слой размытия и буфер пайпа ffmpeg.
const framesPerWorker = 3

// RecommendWorkers подбирает число параллельных сегментов: по логическим
// ядрам, но так, чтобы буферы кадров помещались в половину свободной памяти.
func RecommendWorkers(width, height int) int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return max(1, n)
	}
	return workersFor(n, vm.Available, width, height)
}

func workersFor(cores int, available uint64, width, height int) int {
	perWorker := uint64(width*height*4) * framesPerWorker
	if perWorker > 0 {
		if byMem := int(available / 2 / perWorker); byMem < cores {
			cores = byMem
		}
	}
	return max(1, cores)
}

// HostReport: строка для отчёта -stats.
type HostReport struct {
	Cores       int
	TotalMemory uint64
	UsedPercent float64
	ProcessRSS  uint64
}

func ReadHostReport() HostReport {
	var r HostReport
	if n, err := cpu.Counts(true); err == nil {
		r.Cores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.TotalMemory = vm.Total
		r.UsedPercent = vm.UsedPercent
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			r.ProcessRSS = mi.RSS
		}
	}
	return r
}

func (r HostReport) String() string {
	return fmt.Sprintf("Cores: %d | RAM: %.1f GiB (%.0f%% used) | RSS: %.0f MiB",
		r.Cores, float64(r.TotalMemory)/(1<<30), r.UsedPercent, float64(r.ProcessRSS)/(1<<20))
}
