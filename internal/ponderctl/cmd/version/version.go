package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
	"github.com/kiosk404/ponder/pkg/utils/json"
	"github.com/kiosk404/ponder/pkg/version"
)

type Options struct {
	Short  bool
	Output string

	genericclioptions.IOStreams
}

func NewCmdVersion(ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := &Options{IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the ponderctl version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run()
		},
	}
	cmd.Flags().BoolVar(&o.Short, "short", o.Short, "Print just the version number.")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "One of '' or 'json'.")
	return cmd
}

func (o *Options) Run() error {
	info := version.Get()
	switch o.Output {
	case "":
		if o.Short {
			fmt.Fprintf(o.Out, "%s\n", info.GitVersion)
			return nil
		}
		fmt.Fprintf(o.Out, "Version: %s\nGitCommit: %s\nBuildDate: %s\nGoVersion: %s\nPlatform: %s\n",
			info.GitVersion, info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(o.Out, "%s\n", data)
	default:
		return fmt.Errorf("invalid output format %q, must be '' or 'json'", o.Output)
	}
	return nil
}
