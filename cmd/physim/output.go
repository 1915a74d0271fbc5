package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/export"
	"github.com/san-kum/physim/internal/viz"
)

var csvColumns = map[experiment.Kind][]string{
	experiment.KindProjectile: {"time", "x", "y"},
	experiment.KindPendulum:   {"time", "theta", "omega"},
}

// emit writes the run in the configured format to --out, or stdout.
func emit(cmd *cobra.Command, cfg *config.Config, run *experiment.Run) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, ferr := os.Create(outPath)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch name := strings.ToLower(cfg.Render.Format); name {
	case "csv":
		err = export.WriteCSV(w, run.Trajectory, csvColumns[run.Kind])
	case "json":
		err = export.WriteJSON(w, exportMeta(cfg, run), run.Trajectory)
	default:
		var r viz.Renderer
		r, err = viz.NewRenderer(name, cfg.Render.Width, cfg.Render.Height)
		if err != nil {
			return err
		}
		err = r.Render(w, run.Figure())
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		logger.Info("output written", zap.String("path", outPath), zap.String("format", cfg.Render.Format))
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	}
	return nil
}

func exportMeta(cfg *config.Config, run *experiment.Run) export.Meta {
	meta := export.Meta{
		Model:      string(run.Kind),
		Integrator: run.Integrator,
		Dt:         run.Dt,
		Params: map[string]float64{
			"gravity": cfg.Physics.Gravity,
		},
		Summary: make(map[string]float64, len(run.Summary)),
	}
	switch run.Kind {
	case experiment.KindProjectile:
		meta.Params["speed"] = cfg.Projectile.Speed
		meta.Params["angle"] = cfg.Projectile.Angle
		meta.Params["height"] = cfg.Projectile.Height
	case experiment.KindPendulum:
		meta.Params["length"] = cfg.Physics.Length
		meta.Params["drag"] = cfg.Physics.Drag
		meta.Params["theta"] = cfg.Pendulum.Theta
		meta.Params["omega"] = cfg.Pendulum.Omega
		meta.Params["duration"] = cfg.Pendulum.Duration
	}
	for _, s := range run.Summary {
		meta.Summary[strings.ReplaceAll(s.Name, " ", "_")] = s.Value
	}
	return meta
}
