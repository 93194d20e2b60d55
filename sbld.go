package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sbld/pkg/linker"
	"sbld/pkg/utils"
)

func main() {
	var output string
	var verbose bool

	cmd := &cobra.Command{
		Use:           "sbld <object file>",
		Short:         "Reconstruct sBPF assembly from a compiled object file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := linker.NewContext()
			ctx.Args.Output = output

			if verbose {
				log, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer func() { _ = log.Sync() }()
				ctx.Log = log
			}

			file, err := linker.NewFile(args[0])
			if err != nil {
				return err
			}

			prog, err := linker.ParseBytecode(ctx, file)
			if err != nil {
				return err
			}

			out := os.Stdout
			if ctx.Args.Output != "" {
				out, err = os.Create(ctx.Args.Output)
				if err != nil {
					return err
				}
				defer out.Close()
			}

			return prog.Render(out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write assembly to this file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		utils.Fatal(err)
	}
}
