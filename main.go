// twinec — Twine catalog compiler: generates type-checked Go formatting
// functions from Twine INI translation files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IMI-eRnD-Be/twine-go/config"
	"github.com/IMI-eRnD-Be/twine-go/gen"
	"github.com/IMI-eRnD-Be/twine-go/i18n"
	"github.com/IMI-eRnD-Be/twine-go/langmeta"
	"github.com/IMI-eRnD-Be/twine-go/printf"
	"github.com/IMI-eRnD-Be/twine-go/twinefile"
	"github.com/IMI-eRnD-Be/twine-go/validate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "twinec",
		Short: "Twine catalog compiler: type-checked Go translations",
		Long: `twinec — Twine catalog compiler.

Reads Twine INI translation catalogs ([key] sections with per-locale
strings), validates that every key covers the same languages with
matching printf signatures, and generates a Go source file with a Lang
type and one typed formatting function per key. Typos in key names or
wrong argument types become compile errors in the consuming package.

Run it from a go:generate directive ahead of your build:

  //go:generate twinec generate --in translations.ini --out i18n_gen.go

Commands:
  generate    Compile catalogs into a Go source file
  check       Validate catalogs and report every violation
  status      Show catalog inventory: keys, languages, signatures
  fmt         Rewrite catalogs in canonical form`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory (where .twine.yaml lives)")

	root.AddCommand(
		newGenerateCmd(),
		newCheckCmd(),
		newStatusCmd(),
		newFmtCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Option resolution (flags override .twine.yaml)
// ---------------------------------------------------------------------------

type buildOptions struct {
	inputs []string
	output string
	pkg    string
}

// resolveOptions merges command-line flags with the optional
// .twine.yaml in rootDir. Flags win field by field; cfg may be nil.
func resolveOptions(cfg *config.File, rootDir string, flagIn []string, flagOut, flagPkg string) (buildOptions, error) {
	opts := buildOptions{
		inputs: flagIn,
		output: flagOut,
		pkg:    flagPkg,
	}

	if cfg != nil {
		cfgInputs, cfgOutput := cfg.Resolve(rootDir)
		if len(opts.inputs) == 0 {
			opts.inputs = cfgInputs
		}
		if opts.output == "" {
			opts.output = cfgOutput
		}
		if opts.pkg == "" {
			opts.pkg = cfg.Package
		}
	}
	if opts.pkg == "" {
		opts.pkg = "i18n"
	}

	if len(opts.inputs) == 0 {
		return buildOptions{}, fmt.Errorf("%s", i18n.T("no catalog inputs: pass --in or declare inputs in .twine.yaml"))
	}
	return opts, nil
}

func loadOptions(flagIn []string, flagOut, flagPkg string) (buildOptions, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return buildOptions{}, err
	}
	return resolveOptions(cfg, rootDir, flagIn, flagOut, flagPkg)
}

// loadCatalog parses and merges the inputs, then runs the full
// validation pass. Every violation is logged; a non-nil error means
// generation must not proceed.
func loadCatalog(inputs []string) (*twinefile.Catalog, error) {
	cat, err := twinefile.Load(inputs...)
	if err != nil {
		return nil, err
	}

	if errs := validate.Check(cat); len(errs) > 0 {
		for _, verr := range errs {
			logError("%v", verr)
		}
		return nil, fmt.Errorf(i18n.N("%d validation error", "%d validation errors", len(errs)), len(errs))
	}
	return cat, nil
}

// baseNames shortens input paths for the generated file header.
func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

// fileExists reports whether path is an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// isGenerated reports whether the file starts with the standard
// generated-code header, so a hand-written file is never silently
// clobbered.
func isGenerated(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 256)
	n, _ := f.Read(buf)
	return strings.HasPrefix(string(buf[:n]), "// Code generated by twinec")
}

// ---------------------------------------------------------------------------
// generate (compile catalogs to Go source)
// ---------------------------------------------------------------------------

func newGenerateCmd() *cobra.Command {
	var (
		inputs []string
		output string
		pkg    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile catalogs into a Go source file",
		Long: `Parse, validate and compile the Twine catalogs into one Go file.

The output contains the Lang type with one constructor per language and
one formatting function per key, typed after the key's printf
signature. On any validation error nothing is written at all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(inputs, output, pkg)
			if err != nil {
				return err
			}
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "in", "i", nil, "Catalog file (repeatable, later files override keys)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Generated file path, or \"-\" for stdout")
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "Generated package name (default i18n)")

	return cmd
}

func runGenerate(opts buildOptions) error {
	if opts.output == "" {
		return fmt.Errorf("no output path: pass --out or declare output in .twine.yaml")
	}

	logInfo("Compiling %s", strings.Join(baseNames(opts.inputs), ", "))

	cat, err := loadCatalog(opts.inputs)
	if err != nil {
		return err
	}

	src, err := gen.Generate(cat, gen.Options{
		Package: opts.pkg,
		Inputs:  baseNames(opts.inputs),
	})
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(src)
		return err
	}
	if fileExists(opts.output) && !isGenerated(opts.output) {
		logWarning("overwriting %s, which does not carry a generated-code header", opts.output)
	}
	if err := os.WriteFile(opts.output, src, 0644); err != nil {
		return err
	}

	logSuccess(i18n.T("Wrote %s"), opts.output)
	return nil
}

// ---------------------------------------------------------------------------
// check (validate only, report everything)
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate catalogs and report every violation",
		Long: `Parse and validate the catalogs without generating anything.

All violations are reported in one run: missing languages, region
variants without a default, mismatched or malformed printf specifiers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(inputs, "", "")
			if err != nil {
				return err
			}

			cat, err := loadCatalog(opts.inputs)
			if err != nil {
				return err
			}

			logSuccess("%s (%s)",
				i18n.T("Catalog is consistent"),
				fmt.Sprintf(i18n.N("%d key", "%d keys", len(cat.Keys)), len(cat.Keys)))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "in", "i", nil, "Catalog file (repeatable)")

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: catalog inventory)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var inputs []string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog inventory: keys, languages, signatures",
		Long: `Show the catalog's languages, regional variants, and per-key
formatting signatures. Does not validate or modify anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(inputs, "", "")
			if err != nil {
				return err
			}
			return runStatus(opts.inputs)
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "in", "i", nil, "Catalog file (repeatable)")

	return cmd
}

func runStatus(inputs []string) error {
	cat, err := twinefile.Load(inputs...)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%s%s%s\n", colorBlue, i18n.T("Languages:"), colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	for _, loc := range cat.Locales() {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", loc, langmeta.Name(loc))
	}

	fmt.Fprintf(os.Stderr, "\n%s%s%s (%s)\n", colorBlue, i18n.T("Keys:"), colorReset,
		fmt.Sprintf(i18n.N("%d key", "%d keys", len(cat.Keys)), len(cat.Keys)))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	tw := tabwriter.NewWriter(os.Stderr, 2, 4, 2, ' ', 0)
	for _, key := range cat.SortedKeys() {
		sig := validate.Signature(key)
		args := "-"
		if len(sig) > 0 {
			args = printf.KindsString(sig)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", key.Name, args)
	}
	tw.Flush()
	fmt.Fprintln(os.Stderr)

	return nil
}

// ---------------------------------------------------------------------------
// fmt (canonical catalog formatting)
// ---------------------------------------------------------------------------

func newFmtCmd() *cobra.Command {
	var (
		inputs []string
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite catalogs in canonical form",
		Long: `Rewrite each catalog with sorted keys, sorted locales, and
tab-indented entries. Prints to stdout unless --write is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(inputs, "", "")
			if err != nil {
				return err
			}
			return runFmt(opts.inputs, write)
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "in", "i", nil, "Catalog file (repeatable)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place instead of printing")

	return cmd
}

func runFmt(inputs []string, write bool) error {
	for _, path := range inputs {
		cat, err := twinefile.ParseFile(path)
		if err != nil {
			return err
		}

		if !write {
			if err := cat.Write(os.Stdout); err != nil {
				return err
			}
			continue
		}
		if err := cat.WriteFile(path); err != nil {
			return err
		}
		logSuccess(i18n.T("Reformatted %s"), path)
	}
	return nil
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("twinec version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}
