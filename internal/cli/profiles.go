package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/gwrite"
)

const infoWidth = 48

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the available gwrite profiles",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t := table{
			header:    []string{"NAME", "UNIT", "HOOKS", "INFO"},
			maxWidths: []int{0, 0, 0, infoWidth},
		}
		for _, name := range gwrite.ProfileNames(cfg) {
			p := cfg.Profiles[name]
			label := name
			if name == cfg.DefaultProfile {
				label += " *"
			}
			t.rows = append(t.rows, []string{
				label,
				p.Unit,
				fmt.Sprint(len(p.Templates)),
				firstLine(p.Info),
			})
		}
		return t.write(cmd.OutOrStdout())
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect gwrite profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [NAME]",
	Short: "Print a resolved profile as YAML",
	Long: `Print the profile called NAME, or the default profile when NAME is
omitted, after merging the bundled and user configuration.`,
	Args: maximumArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		p, err := gwrite.Resolve(name, cfg)
		if err != nil {
			return err
		}
		return gwrite.WriteProfileYAML(cmd.OutOrStdout(), p)
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profilesCmd, profileCmd)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
