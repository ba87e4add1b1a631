package cli

import "github.com/spf13/cobra"

// StringFlag declares a string-valued flag on a leaf command.
type StringFlag struct {
	Name    string
	Usage   string
	Default string
}

// BoolFlag declares an on/off flag on a leaf command.
type BoolFlag struct {
	Name    string
	Usage   string
	Default bool
}

// LeafCommand describes a runnable command together with the flags it
// accepts. Each command file declares one and calls Build.
type LeafCommand struct {
	Use       string
	Short     string
	Args      cobra.PositionalArgs
	BoolFlags []BoolFlag
	StrFlags  []StringFlag
	RunE      func(cmd *cobra.Command, args []string) error
}

// Build assembles the cobra command and registers the declared flags.
func (lc LeafCommand) Build() *cobra.Command {
	cmd := &cobra.Command{
		Use:   lc.Use,
		Short: lc.Short,
		Args:  lc.Args,
		RunE:  lc.RunE,
	}
	for _, f := range lc.StrFlags {
		cmd.Flags().String(f.Name, f.Default, f.Usage)
	}
	for _, f := range lc.BoolFlags {
		cmd.Flags().Bool(f.Name, f.Default, f.Usage)
	}
	return cmd
}

// GroupCommand describes a command that exists only to group subcommands.
type GroupCommand struct {
	Use         string
	Short       string
	Subcommands []*cobra.Command
}

// Build assembles the group and attaches its subcommands.
func (gc GroupCommand) Build() *cobra.Command {
	cmd := &cobra.Command{
		Use:   gc.Use,
		Short: gc.Short,
	}
	for _, sub := range gc.Subcommands {
		cmd.AddCommand(sub)
	}
	return cmd
}
