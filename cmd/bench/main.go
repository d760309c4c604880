package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/jogojapan/sufex"
	"github.com/jogojapan/sufex/sufexwork"
)

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{})}
	go func() {
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(text []byte, threads, blockSize int) (time.Duration, uint64, uint64, []uint32, error) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	pool := sufexwork.New(threads)
	defer pool.Close()
	sa, err := sufex.MakeSuffixArray[uint32, byte](text,
		sufex.WithThreads(threads),
		sufex.WithBlockSize(blockSize),
		sufex.WithWorkerPool(pool),
	)
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, sa, err
}

func randomText(n int, r *rand.Rand, density densityType, commonLen int) []byte {
	text := make([]byte, n)
	for i := range text {
		text[i] = byte(r.Intn(26) + 'a')
	}
	if density == densityHigh && commonLen > 0 && commonLen < n {
		common := make([]byte, commonLen)
		for i := range common {
			common[i] = byte(r.Intn(26) + 'a')
		}
		copy(text[(n-commonLen)/2:], common)
	}
	return text
}

func runBenchmark(n, threads, blockSize, runs int, density densityType) {
	bar := progressbar.Default(int64(runs), "building suffix arrays")
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		text := randomText(n, r, density, n/20+1)
		dur, peak, alloc, sa, err := measureBuild(text, threads, blockSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d,%s,%d,%d,%.0f,%s,%s,%d\n",
			n, density, threads, blockSize,
			float64(dur.Nanoseconds()), humanize.Bytes(peak), humanize.Bytes(alloc), len(sa))
		_ = bar.Add(1)
	}
}

func main() {
	n := flag.Int("n", 0, "Text length N")
	threads := flag.Int("threads", 4, "Worker pool size")
	blockSize := flag.Int("blocksize", sufex.DefaultBlockSize, "Block array directory block size")
	runs := flag.Int("runs", 3, "Number of runs, each reported on its own line")
	d := flag.String("d", "low", "Density: low or high")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *n <= 0 {
		fmt.Println("Usage: go run main.go -n=<N> [-threads=<threads>] [-blocksize=<blocksize>] [-d=<density>] [-runs=<runs>]")
		os.Exit(1)
	}

	runBenchmark(*n, *threads, *blockSize, *runs, densityType(*d))
}
