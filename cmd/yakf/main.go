package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/PREDICT-EPFL/yakf/internal/scenario"
	"github.com/PREDICT-EPFL/yakf/internal/viz"
	"github.com/PREDICT-EPFL/yakf/models"
	"github.com/PREDICT-EPFL/yakf/ode"
)

var (
	step       float64
	span       float64
	method     string
	state      []float64
	params     []string
	samples    int
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "yakf",
		Short: "fixed-step ODE integration lab",
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and plot the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")

	compareCmd := &cobra.Command{
		Use:   "compare [model]",
		Short: "compare euler and rk4 on the same model",
		Args:  cobra.ExactArgs(1),
		RunE:  compareMethods,
	}
	addRunFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "integrate with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range models.List() {
				fmt.Println(name)
			}
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [path]",
		Short: "write a starter scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scenario.Save(args[0], scenario.Default())
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, liveCmd, modelsCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&step, "dt", scenario.DefaultStep, "step size")
	cmd.Flags().Float64Var(&span, "span", scenario.DefaultSpan, "integration time span")
	cmd.Flags().StringVar(&method, "method", "rk4", "integration method (euler|rk4)")
	cmd.Flags().Float64SliceVar(&state, "state", nil, "initial state (default: model default)")
	cmd.Flags().StringSliceVar(&params, "param", nil, "model parameter overrides (name=value)")
	cmd.Flags().IntVar(&samples, "samples", scenario.DefaultSamples, "trajectory sample count")
}

// buildIntegrator assembles the model and integrator the flags (and an
// optional scenario file) describe.
func buildIntegrator(cmd *cobra.Command, name string) (models.System, *ode.Integrator[ode.Vec[float64], float64], ode.Vec[float64], error) {
	if configFile != "" {
		sc, err := scenario.Load(configFile)
		if err != nil {
			return nil, nil, nil, err
		}
		applyScenario(cmd, sc)
	}

	sys, err := models.New(name)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := applyParams(sys, params); err != nil {
		return nil, nil, nil, err
	}

	m, err := ode.ParseMethod(method)
	if err != nil {
		return nil, nil, nil, err
	}
	integ, err := ode.New[ode.Vec[float64], float64](sys, step, m)
	if err != nil {
		return nil, nil, nil, err
	}

	x0 := sys.DefaultState()
	if len(state) > 0 {
		x0 = ode.Vec[float64](state).Clone()
	}
	return sys, integ, x0, nil
}

func applyScenario(cmd *cobra.Command, sc *scenario.Scenario) {
	// CLI flags override scenario values.
	if !cmd.Flags().Changed("dt") {
		step = sc.Step
	}
	if !cmd.Flags().Changed("span") {
		span = sc.Span
	}
	if !cmd.Flags().Changed("method") {
		method = sc.Method
	}
	if !cmd.Flags().Changed("samples") {
		samples = sc.Samples
	}
	if !cmd.Flags().Changed("state") && len(sc.State) > 0 {
		state = sc.State
	}
	if !cmd.Flags().Changed("param") {
		params = params[:0]
		for k, v := range sc.Params {
			params = append(params, fmt.Sprintf("%s=%v", k, v))
		}
	}
}

func applyParams(sys models.System, kvs []string) error {
	if len(kvs) == 0 {
		return nil
	}
	cfg, ok := sys.(models.Configurable)
	if !ok {
		return fmt.Errorf("model has no adjustable parameters")
	}
	for _, kv := range kvs {
		name, raw, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("invalid param %q, expected name=value", kv)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid param %q: %w", kv, err)
		}
		if err := cfg.SetParam(name, value); err != nil {
			return err
		}
	}
	return nil
}

// sampleTrajectory records the state at sample boundaries by chaining
// independent Integrate calls, one per sample interval.
func sampleTrajectory(integ *ode.Integrator[ode.Vec[float64], float64], x0 ode.Vec[float64], totalSpan float64, n int) ([]ode.Vec[float64], error) {
	traj := make([]ode.Vec[float64], 0, n+1)
	traj = append(traj, x0.Clone())

	x := x0
	sampleSpan := totalSpan / float64(n)
	for i := 0; i < n; i++ {
		next, err := integ.Integrate(sampleSpan, x)
		if err != nil {
			return traj, err
		}
		x = next
		traj = append(traj, x.Clone())
	}
	return traj, nil
}

func runModel(cmd *cobra.Command, args []string) error {
	_, integ, x0, err := buildIntegrator(cmd, args[0])
	if err != nil {
		return err
	}

	traj, err := sampleTrajectory(integ, x0, span, samples)
	if err != nil {
		return err
	}
	final := traj[len(traj)-1]

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "model\t%s\n", args[0])
	fmt.Fprintf(w, "method\t%s\n", method)
	fmt.Fprintf(w, "dt\t%g\n", step)
	fmt.Fprintf(w, "span\t%g\n", span)
	fmt.Fprintf(w, "steps\t%d\n", samples*integ.Steps(span/float64(samples)))
	for i, v := range final {
		fmt.Fprintf(w, "x[%d]\t%+.8f\n", i, v)
	}
	w.Flush()
	fmt.Println()

	for dim := range final {
		data := make([]float64, len(traj))
		for i, x := range traj {
			data[i] = x[dim]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x[%d]", dim)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	name := args[0]

	type row struct {
		label string
		final ode.Vec[float64]
	}
	var rows []row

	// rk4 at dt/8 serves as the reference solution.
	for _, cfg := range []struct {
		label  string
		method ode.Method
		h      float64
	}{
		{"euler", ode.Euler, step},
		{"rk4", ode.RungeKutta, step},
		{"reference", ode.RungeKutta, step / 8},
	} {
		sys, err := models.New(name)
		if err != nil {
			return err
		}
		if err := applyParams(sys, params); err != nil {
			return err
		}
		integ, err := ode.New[ode.Vec[float64], float64](sys, cfg.h, cfg.method)
		if err != nil {
			return err
		}

		x0 := sys.DefaultState()
		if len(state) > 0 {
			x0 = ode.Vec[float64](state).Clone()
		}
		final, err := integ.Integrate(span, x0)
		if err != nil {
			return err
		}
		rows = append(rows, row{cfg.label, final})
	}

	ref := rows[len(rows)-1].final
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "method\tfinal x[0]\terror vs reference")
	for _, r := range rows[:len(rows)-1] {
		fmt.Fprintf(w, "%s\t%+.8f\t%.3e\n", r.label, r.final[0], r.final.Sub(ref).Norm())
	}
	fmt.Fprintf(w, "%s\t%+.8f\t(dt/8)\n", "reference", ref[0])
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	_, integ, x0, err := buildIntegrator(cmd, args[0])
	if err != nil {
		return err
	}
	return viz.Run(args[0], integ, x0, span/float64(samples), span)
}
