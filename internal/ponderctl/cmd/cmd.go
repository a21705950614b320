package cmd

import (
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk404/ponder/internal/pkg/config"
	"github.com/kiosk404/ponder/internal/pkg/options"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/batch"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/chat"
	ctxcmd "github.com/kiosk404/ponder/internal/ponderctl/cmd/context"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/exec"
	cmdutil "github.com/kiosk404/ponder/internal/ponderctl/cmd/util"
	"github.com/kiosk404/ponder/internal/ponderctl/cmd/version"
	"github.com/kiosk404/ponder/pkg/cli/genericclioptions"
	"github.com/kiosk404/ponder/pkg/logger"
)

// NewDefaultPonderCtlCommand creates the `ponderctl` command with default arguments.
func NewDefaultPonderCtlCommand() *cobra.Command {
	return NewPonderCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

// NewPonderCtlCommand creates the `ponderctl` command tree. fopts customize
// the session factory.
func NewPonderCtlCommand(in io.Reader, out, err io.Writer, fopts ...cmdutil.FactoryOption) *cobra.Command {
	opts := options.NewOptions()
	v := viper.New()
	var cfgFile string

	// Parent command to which all subcommands are added.
	cmds := &cobra.Command{
		Use:   "ponderctl",
		Short: "ponderctl chats with a model that thinks out loud and reads your workspace",
		Long: heredoc.Docf(`%s
			ponderctl talks to an OpenAI-compatible chat model in thinking mode: every
			reply shows the model's reasoning first, then its final answer.

			The model may call two workspace tools, list_dir and read_file, by writing
			TOOL:<name>(...) in its reply. Calls are executed locally and their results
			are folded into the conversation for the next turn.

			Configuration is read from $HOME/.ponder/ponderctl.yaml (or --config),
			PONDER_* environment variables and flags, in increasing priority.`, Banner()),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run:           runHelp,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}
			return cmdutil.LoadOptions(v, cmd.Root().PersistentFlags(), cfgFile, opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.FlushLog()
		},
	}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(err)

	flags := cmds.PersistentFlags()
	flags.StringVarP(&cfgFile, config.FlagConfig, "c", "", "Read configuration from this file instead of $HOME/.ponder/ponderctl.yaml.")
	opts.AddFlags(flags)

	ioStreams := genericclioptions.IOStreams{In: in, Out: out, ErrOut: err}
	f := cmdutil.NewFactory(opts, fopts...)

	cmds.AddCommand(chat.NewCmdChat(f, ioStreams))
	cmds.AddCommand(batch.NewCmdBatch(f, ioStreams))
	cmds.AddCommand(exec.NewCmdExec(f, ioStreams))
	cmds.AddCommand(ctxcmd.NewCmdContext(f, ioStreams))

	versionCmd := version.NewCmdVersion(ioStreams)
	versionCmd.Annotations = map[string]string{skipConfigAnnotation: "true"}
	cmds.AddCommand(versionCmd)

	return cmds
}

const skipConfigAnnotation = "ponderctl/skip-config"

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}
