// Command gimbal runs camera rigs headlessly: it can replay frame scripts
// against a rig definition and print a rig's node tree.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/gimbal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	rigPath string

	opts   gimbal.RuntimeOptions
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gimbal",
	Short: "Evaluate camera rigs without a renderer",
	Long: `gimbal loads YAML rig definitions and evaluates them frame by frame.

Environment:
  GIMBAL_DEBUG       development logging
  GIMBAL_LOG_LEVEL   zap level (default info)
  GIMBAL_SEED        seed for noise-driven nodes (0 picks one)
  GIMBAL_FIXED_DT    frame time in seconds when a script sets none`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if opts, err = gimbal.LoadRuntimeOptions(); err != nil {
			return err
		}
		if logger, err = opts.NewLogger(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Replay a frame script against a rig",
	Long: `Runs every frame of a JSON frame script against the rig and logs
the resulting pose of each frame.

Example:
  gimbal sim --rig testdata/follow.yaml --script testdata/orbit.json`,
	RunE: runSim,
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print a rig's node tree",
	RunE:  runTree,
}

var scriptPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&rigPath, "rig", "", "rig definition (YAML)")
	_ = rootCmd.MarkPersistentFlagRequired("rig")
	simCmd.Flags().StringVar(&scriptPath, "script", "", "frame script (JSON)")
	_ = simCmd.MarkFlagRequired("script")
	rootCmd.AddCommand(simCmd, treeCmd)
}

func loadRig() (*gimbal.Rig, error) {
	def, err := gimbal.LoadRigDef(rigPath)
	if err != nil {
		return nil, err
	}
	return def.NewRig(opts.Rand(), gimbal.WithLogger(logger))
}

func runSim(cmd *cobra.Command, args []string) error {
	rig, err := loadRig()
	if err != nil {
		return err
	}
	script, err := gimbal.LoadFrameScript(scriptPath)
	if err != nil {
		return err
	}
	dt := script.DeltaTime()
	if dt <= 0 {
		dt = opts.FixedDeltaTime
	}

	out := cmd.OutOrStdout()
	for frame := 0; !script.Done(); frame++ {
		result := script.Step(rig, dt)
		loc := result.Pose.Location
		rot := result.Pose.Rotation
		fmt.Fprintf(out, "%4d loc=(%.3f, %.3f, %.3f) rot=(p%.2f y%.2f r%.2f) fov=%.2f cut=%t shake=%.2f\n",
			frame, loc[0], loc[1], loc[2], rot.Pitch, rot.Yaw, rot.Roll,
			result.FieldOfView, result.IsCameraCut, rig.ShakeTimeLeft())
	}
	logger.Info("simulation finished", zap.String("rig", rig.Name), zap.Int("nodes", rig.NodeCount()))
	return nil
}

func runTree(cmd *cobra.Command, args []string) error {
	rig, err := loadRig()
	if err != nil {
		return err
	}
	rig.Build()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rig %s (%d nodes)\n", rig.Name, rig.NodeCount())
	for _, line := range gimbal.DumpTree(rig.Root()) {
		fmt.Fprintln(out, line)
	}
	if shake := rig.ShakeRoot(); shake != nil {
		fmt.Fprintln(out, "shake")
		for _, line := range gimbal.DumpTree(shake) {
			fmt.Fprintln(out, "  "+line)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
