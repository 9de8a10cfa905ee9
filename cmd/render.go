package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/molfile"
	"github.com/ziadkadry99/molview/internal/progress"
	"github.com/ziadkadry99/molview/internal/render"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
)

var renderCmd = &cobra.Command{
	Use:   "render [molecule|file]",
	Short: "Render a molecule to PNG, or a turntable GIF with --frames",
	Long: `Renders a catalog molecule or a molecule-string file. With --frames the
camera orbits the molecule and an animated GIF is written. With --glob every
matching molecule file under --root is rendered into --out-dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("out", "o", "", "output file (default <name>.png or <name>.gif)")
	renderCmd.Flags().Int("width", 0, "image width (default from config)")
	renderCmd.Flags().Int("height", 0, "image height (default from config)")
	renderCmd.Flags().Int("frames", 0, "write a turntable GIF with this many frames")
	renderCmd.Flags().Bool("quantum", false, "run a simulation and render the quantum overlay")
	renderCmd.Flags().String("method", "", "simulation method for --quantum (vqe, hf, dft)")
	renderCmd.Flags().Int("hover", interaction.NoHover, "atom index to render as hovered")
	renderCmd.Flags().String("glob", "", "render every molecule file matching this pattern")
	renderCmd.Flags().String("root", ".", "directory searched by --glob")
	renderCmd.Flags().String("out-dir", "renders", "output directory for --glob")
	rootCmd.AddCommand(renderCmd)
}

type renderJob struct {
	mol     molecule.Molecule
	catalog bool
	out     string
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	if width <= 0 {
		width = cfg.Viewer.Width
	}
	if height <= 0 {
		height = cfg.Viewer.Height
	}
	frames, _ := cmd.Flags().GetInt("frames")
	quantum, _ := cmd.Flags().GetBool("quantum")
	method, _ := cmd.Flags().GetString("method")
	hover, _ := cmd.Flags().GetInt("hover")
	glob, _ := cmd.Flags().GetString("glob")
	out, _ := cmd.Flags().GetString("out")

	if method != "" && !simulation.ValidMethod(method) {
		return fmt.Errorf("unknown method %q", method)
	}

	ext := ".png"
	if frames > 0 {
		ext = ".gif"
	}

	var jobs []renderJob
	switch {
	case glob != "":
		root, _ := cmd.Flags().GetString("root")
		outDir, _ := cmd.Flags().GetString("out-dir")
		files, err := molfile.Walk(molfile.Config{RootDir: root, Include: []string{glob}})
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no molecule files match %q under %s", glob, root)
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", outDir, err)
		}
		seen := make(map[string]string)
		for _, f := range files {
			if prev, ok := seen[f.ContentHash]; ok {
				if verbose {
					fmt.Fprintf(os.Stderr, "Skipping %s (same content as %s)\n", f.RelPath, prev)
				}
				continue
			}
			seen[f.ContentHash] = f.RelPath
			name := strings.ReplaceAll(strings.TrimSuffix(f.RelPath, filepath.Ext(f.RelPath)), "/", "_")
			jobs = append(jobs, renderJob{mol: f.Molecule, out: filepath.Join(outDir, molfile.Stem(name)+ext)})
		}
	case len(args) == 1:
		m, catalog, err := resolveMolecule(args[0])
		if err != nil {
			return err
		}
		if out == "" {
			out = m.Name + ext
		}
		jobs = append(jobs, renderJob{mol: m, catalog: catalog, out: out})
	default:
		return fmt.Errorf("a molecule or --glob is required")
	}

	ctx := context.Background()
	client := newClient(cfg)
	if quantum && cfg.Backend.Enabled {
		if err := client.Wake(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; rendering demo overlay\n", err)
		}
	}

	composer := scene.Composer{MaxBondDistance: cfg.Viewer.BondThreshold}
	batch := progress.Reporter(progress.Nop{})
	if len(jobs) > 1 {
		batch = progress.NewReporter("Rendering molecules")
		batch.Start(len(jobs))
	}

	start := time.Now()
	for i, job := range jobs {
		var overlay *simulation.Overlay
		if quantum {
			overlay = client.Simulate(ctx, simulation.Request{Molecule: job.mol.Name, Atoms: job.mol.Atoms, Method: method})
			if !job.catalog && overlay.Source == simulation.SourceDemo {
				overlay.AtomData = nil
			}
		}

		if frames > 0 {
			err = writeTurntable(ctx, job, overlay, render.TurntableOptions{
				Frames:   frames,
				Width:    width,
				Height:   height,
				Composer: composer,
				Progress: progress.NewReporter("Rendering " + job.mol.Name),
			})
		} else {
			err = writePNG(job, composer.Compose(job.mol, overlay, hoverSnapshot(hover)), width, height)
		}
		if err != nil {
			return err
		}
		batch.Update(i+1, job.out)
		if len(jobs) == 1 {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", job.out)
		}
	}
	batch.Finish()

	if len(jobs) > 1 {
		fmt.Fprintf(os.Stderr, "Rendered %d molecules in %s\n", len(jobs), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func hoverSnapshot(i int) interaction.Snapshot {
	view := interaction.Idle()
	view.Hovered = i
	return view
}

func writePNG(job renderJob, s scene.Scene, width, height int) error {
	data, err := render.PNG(s, width, height)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", job.mol.Name, err)
	}
	if err := os.WriteFile(job.out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", job.out, err)
	}
	return nil
}

func writeTurntable(ctx context.Context, job renderJob, o *simulation.Overlay, opts render.TurntableOptions) error {
	f, err := os.Create(job.out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", job.out, err)
	}
	if err := render.Turntable(ctx, f, job.mol, o, opts); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", job.mol.Name, err)
	}
	return f.Close()
}
