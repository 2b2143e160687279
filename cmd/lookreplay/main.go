// Command lookreplay runs pointer traces through the look integrator and
// prints the state after every step.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cluehunt/ecs/entity"
	"github.com/milk9111/cluehunt/look"
	"github.com/milk9111/cluehunt/prefabs"
	"gopkg.in/yaml.v3"
)

type sample struct {
	DX      float64 `yaml:"dx"`
	DY      float64 `yaml:"dy"`
	Enabled *bool   `yaml:"enabled"`
}

func (s sample) enabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type trace struct {
	Sensitivity *float64 `yaml:"sensitivity"`
	Smoothing   *float64 `yaml:"smoothing"`
	Samples     []sample `yaml:"samples"`
}

type row struct {
	step        int
	enabled     bool
	frame       mgl64.Vec2
	accumulated mgl64.Vec2
	out         look.Orientation
}

func main() {
	tracePath := flag.String("trace", "", "yaml trace of {dx, dy, enabled} samples")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for player.yaml before the embedded copy")
	sens := flag.Float64("sens", 0, "override sensitivity")
	smooth := flag.Float64("smooth", 0, "override smoothing factor")
	dx := flag.Float64("dx", 1, "sweep: raw x per step")
	dy := flag.Float64("dy", 0, "sweep: raw y per step")
	steps := flag.Int("steps", 10, "sweep: number of steps")
	flag.Parse()

	prefabs.SetDiskDir(*prefabDir)

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatalf("lookreplay: %v", err)
	}
	cfg := entity.LookConfig(spec.Look)

	var samples []sample
	if *tracePath != "" {
		tr, err := loadTrace(*tracePath)
		if err != nil {
			log.Fatalf("lookreplay: %v", err)
		}
		cfg = overrideConfig(cfg, tr.Sensitivity, tr.Smoothing)
		samples = tr.Samples
	} else {
		samples = sweep(*dx, *dy, *steps)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg = overrideConfig(cfg, flagValue(set, "sens", *sens), flagValue(set, "smooth", *smooth))

	rows, err := replay(cfg, samples)
	if err != nil {
		log.Fatalf("lookreplay: %v", err)
	}
	if cfg.Overshoots() {
		log.Printf("lookreplay: smoothing %.2f < 1 overshoots the raw input", cfg.SmoothingFactor)
	}
	printRows(os.Stdout, cfg, rows)
}

func loadTrace(path string) (trace, error) {
	var tr trace
	data, err := os.ReadFile(path)
	if err != nil {
		return tr, fmt.Errorf("read trace %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return tr, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return tr, nil
}

// overrideConfig replaces the tunables that are non-nil. Explicit zeros
// are kept so the integrator rejects them.
func overrideConfig(cfg look.Config, sens, smooth *float64) look.Config {
	if sens != nil {
		cfg.Sensitivity = *sens
	}
	if smooth != nil {
		cfg.SmoothingFactor = *smooth
	}
	return cfg
}

func flagValue(set map[string]bool, name string, v float64) *float64 {
	if !set[name] {
		return nil
	}
	return &v
}

func sweep(dx, dy float64, steps int) []sample {
	out := make([]sample, 0, steps)
	for i := 0; i < steps; i++ {
		out = append(out, sample{DX: dx, DY: dy})
	}
	return out
}

func replay(cfg look.Config, samples []sample) ([]row, error) {
	it, err := look.NewIntegrator(cfg)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(samples))
	for i, s := range samples {
		out := it.Step(mgl64.Vec2{s.DX, s.DY}, s.enabled())
		rows = append(rows, row{
			step:        i + 1,
			enabled:     s.enabled(),
			frame:       it.FrameVelocity(),
			accumulated: it.AccumulatedVelocity(),
			out:         out,
		})
	}
	return rows, nil
}

func printRows(w io.Writer, cfg look.Config, rows []row) {
	fmt.Fprintf(w, "sensitivity=%g smoothing=%g\n", cfg.Sensitivity, cfg.SmoothingFactor)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "step\ton\tframe\taccumulated\tpitch\tyaw")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%t\t(%.4f, %.4f)\t(%.4f, %.4f)\t%.4f\t%.4f\n",
			r.step, r.enabled,
			r.frame.X(), r.frame.Y(),
			r.accumulated.X(), r.accumulated.Y(),
			r.out.PitchDeg, r.out.YawDeg)
	}
	_ = tw.Flush()
}
