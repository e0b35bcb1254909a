package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"landmass/internal/heightmap"
	"landmass/internal/world"
)

type job struct {
	template string
	seed     string
}

type scenarioResult struct {
	job
	stats world.Stats
	took  time.Duration
	err   error
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type templateReport struct {
	id        string
	runs      int
	failures  int
	landShare []float64
	lakes     []float64
	rivers    []float64
	islands   []float64
}

func main() {
	seeds := flag.Int("seeds", 8, "seeds generated per template")
	base := flag.Int("base", 1, "first numeric seed")
	only := flag.String("templates", "", "comma-separated template ids, empty for all")
	points := flag.Int("points", 10000, "desired point count")
	width := flag.Int("w", 1920, "map width")
	height := flag.Int("h", 1080, "map height")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	var overrides kvList
	flag.Var(&overrides, "set", "option override in key=value form (repeatable)")
	flag.Parse()

	cfg := make(map[string]string, len(overrides))
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		cfg[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	baseOpts := world.FromMap(cfg)
	baseOpts.Width = *width
	baseOpts.Height = *height
	baseOpts.Points = *points
	if err := baseOpts.Validate(); err != nil {
		log.Fatalf("options: %v", err)
	}

	var ids []string
	if *only != "" {
		for _, id := range strings.Split(*only, ",") {
			t, err := heightmap.Lookup(strings.TrimSpace(id))
			if err != nil {
				log.Fatalf("template: %v", err)
			}
			ids = append(ids, t.ID)
		}
	} else {
		for _, t := range heightmap.Templates() {
			ids = append(ids, t.ID)
		}
	}

	var all []job
	for _, id := range ids {
		for i := 0; i < *seeds; i++ {
			all = append(all, job{template: id, seed: strconv.Itoa(*base + i)})
		}
	}

	fmt.Printf("Sweeping %d templates x %d seeds (%d workers, %d points)\n", len(ids), *seeds, *workers, *points)

	jobs := make(chan job)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runScenario(baseOpts, j)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range all {
			jobs <- j
		}
		close(jobs)
	}()

	start := time.Now()
	reports := make(map[string]*templateReport, len(ids))
	for _, id := range ids {
		reports[id] = &templateReport{id: id}
	}
	var slowest scenarioResult
	for res := range results {
		r := reports[res.template]
		r.runs++
		if res.err != nil {
			r.failures++
			fmt.Printf("%s seed %s failed: %v\n", res.template, res.seed, res.err)
			continue
		}
		r.landShare = append(r.landShare, res.stats.LandShare)
		r.lakes = append(r.lakes, float64(res.stats.Lakes))
		r.rivers = append(r.rivers, float64(res.stats.Rivers))
		r.islands = append(r.islands, float64(res.stats.Islands))
		if res.took > slowest.took {
			slowest = res
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("\n%-14s %5s %14s %12s %12s %12s\n", "template", "runs", "land%", "islands", "lakes", "rivers")
	for _, id := range ids {
		r := reports[id]
		if len(r.landShare) == 0 {
			fmt.Printf("%-14s %5d %14s\n", id, r.runs, "all failed")
			continue
		}
		land, landSD := stat.MeanStdDev(r.landShare, nil)
		fmt.Printf("%-14s %5d %8.1f ±%4.1f %12.1f %12.1f %12.1f\n",
			id, r.runs-r.failures, land*100, landSD*100, stat.Mean(r.islands, nil), stat.Mean(r.lakes, nil), stat.Mean(r.rivers, nil))
	}

	ranked := make([]*templateReport, 0, len(reports))
	for _, r := range reports {
		if len(r.rivers) > 0 {
			ranked = append(ranked, r)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return stat.Mean(ranked[i].rivers, nil) > stat.Mean(ranked[j].rivers, nil)
	})
	if len(ranked) > 0 {
		fmt.Printf("\nMost rivers: %s (%.1f per map)\n", ranked[0].id, stat.Mean(ranked[0].rivers, nil))
	}
	fmt.Printf("Slowest map: %s seed %s in %s (elapsed %s)\n",
		slowest.template, slowest.seed, slowest.took.Round(time.Millisecond), elapsed.Round(time.Millisecond))
}

func runScenario(base world.Options, j job) scenarioResult {
	opts := base
	opts.Seed = j.seed
	opts.Template = j.template
	opts.Recipe = ""

	start := time.Now()
	m, err := world.Generate(opts)
	if err != nil {
		return scenarioResult{job: j, err: err}
	}
	return scenarioResult{job: j, stats: m.Stats(), took: time.Since(start)}
}
