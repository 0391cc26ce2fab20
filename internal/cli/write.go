package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/gwrite"
	"github.com/bjaus/gwrite/vector"
)

const stdio = "-"

var (
	profileName string
	defaults    []string
)

var writeCmd = &cobra.Command{
	Use:   "write INPUT OUTPUT",
	Short: "Write a document using a gwrite profile",
	Long: `Render the YAML document INPUT with a gwrite profile and write the result
to OUTPUT. Use "-" for standard input or output.

Variables missing from the document and layer metadata can be given with
--default key=value; the profile's default_values are consulted last.`,
	Example: `  gwrite write drawing.yaml out.gcode
  gwrite write -p gcode_relative -d feed=1500 drawing.yaml -`,
	Args: exactArgs(2),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVarP(&profileName, "profile", "p", "", "gwrite profile from the configuration")
	writeCmd.Flags().StringArrayVarP(&defaults, "default", "d", nil,
		"default value for a variable not found as a property (key=value, repeatable)")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	userDefaults, err := parseDefaults(defaults)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	profile, err := gwrite.Resolve(profileName, cfg)
	if err != nil {
		return err
	}
	slog.Debug("Resolved profile", "profile", profile.Name)

	doc, err := readDocument(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	opts := gwrite.Options{
		Defaults: userDefaults,
		Info:     cmd.ErrOrStderr(),
		Logger:   slog.Default(),
	}
	if args[1] == stdio {
		opts.Filename = "<stdout>"
		return gwrite.Write(cmd.OutOrStdout(), doc, profile, opts)
	}

	out := &lazyFile{path: args[1]}
	writeErr := gwrite.Write(out, doc, profile, opts)
	closeErr := out.Close(writeErr == nil)
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

func parseDefaults(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: --default expects key=value, got %q", ErrUsage, pair)
		}
		out[key] = value
	}
	return out, nil
}

func readDocument(stdin io.Reader, path string) (*vector.Document, error) {
	if path == stdio {
		return vector.Decode(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := vector.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// lazyFile creates its file on first write, so that errors detected before
// any output leave no file behind.
type lazyFile struct {
	path string
	f    *os.File
}

// Name reports the path, exposed to templates as {filename}.
func (l *lazyFile) Name() string { return l.path }

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return 0, err
		}
		l.f = f
	}
	return l.f.Write(p)
}

// Close closes the file. With create set, an empty file is created when
// nothing was written.
func (l *lazyFile) Close(create bool) error {
	if l.f == nil {
		if !create {
			return nil
		}
		f, err := os.Create(l.path)
		if err != nil {
			return err
		}
		l.f = f
	}
	return l.f.Close()
}
