package main

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

const samplingInterval = 10 * time.Millisecond

var rssBytesFunc = rssBytes

// measurement describes one run of a computation.
type measurement struct {
	Duration time.Duration
	// PeakRSS is the highest resident set size seen while it ran, in bytes.
	PeakRSS float64
	// Allocated is the number of heap bytes it allocated.
	Allocated float64
}

// measure runs fn while sampling the resident set size in the background.
func measure(fn func()) measurement {
	baseline := rssBytesFunc()
	var (
		mu   sync.Mutex
		peak = baseline
	)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(samplingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				current := rssBytesFunc()
				mu.Lock()
				if current > peak {
					peak = current
				}
				mu.Unlock()
			case <-stop:
				return
			}
		}
	}()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	close(stop)
	wg.Wait()

	return measurement{
		Duration:  elapsed,
		PeakRSS:   peak,
		Allocated: float64(after.TotalAlloc - before.TotalAlloc),
	}
}

// rssBytes reads the current resident set size from procfs. It returns 0
// where procfs is unavailable.
func rssBytes() float64 {
	if runtime.GOOS != "linux" {
		return 0
	}
	if v := rssFromStatm(); v > 0 {
		return v
	}
	return rssFromStatus()
}

func rssFromStatm() float64 {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return float64(pages * uint64(os.Getpagesize()))
}

func rssFromStatus() float64 {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rest, ok := strings.CutPrefix(scanner.Text(), "VmRSS:")
		if !ok {
			continue
		}
		parts := strings.Fields(rest)
		if len(parts) == 0 {
			return 0
		}
		kb, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0
		}
		return float64(kb * 1024)
	}
	return 0
}
