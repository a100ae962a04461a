package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cisasm/assembler/internal/ast"
	"github.com/cisasm/assembler/internal/cis"
	"github.com/cisasm/assembler/internal/context"
	"github.com/cisasm/assembler/internal/debugcontext"
	"github.com/cisasm/assembler/internal/engine"
	"github.com/cisasm/assembler/internal/image"
	"github.com/cisasm/assembler/internal/mif"
	"github.com/cisasm/assembler/internal/parser"
	"github.com/cisasm/assembler/internal/sourcemap"
)

var (
	inputPath  string
	syntaxPath string
	outputPath string
	format     string
	withSymbols bool
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble a source file into a Memory Initialization File",
	RunE:  runAssemble,
}

func init() {
	assembleCmd.Flags().StringVar(&inputPath, "input", "", "assembly source file (required)")
	assembleCmd.Flags().StringVar(&syntaxPath, "syntax", "", "instruction-set TOML table (required)")
	assembleCmd.Flags().StringVar(&outputPath, "output", "", "output file (default stdout)")
	assembleCmd.Flags().StringVar(&format, "format", "mif", "output format: mif or raw")
	assembleCmd.Flags().BoolVar(&withSymbols, "symbols", false, "append the symbol listing after the image")

	assembleCmd.MarkFlagRequired("input")
	assembleCmd.MarkFlagRequired("syntax")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	tr, err := sourcemap.Track(inputPath)
	if err != nil {
		return err
	}

	dbg := debugcontext.NewDebugContext(tr.FilePath())

	is, err := cis.Load(syntaxPath)
	if err != nil {
		return err
	}

	dbg.SetPhase("parse")
	stmts, err := parser.Parse(tr)
	if err != nil {
		return reportAndFail(dbg, err)
	}

	ctx := context.New(is)

	resolved, err := engine.Run(stmts, ctx, dbg)
	if err != nil {
		return reportAndFail(dbg, err)
	}

	dbg.SetPhase("image")
	buf, err := image.Build(resolved)
	if err != nil {
		return reportAndFail(dbg, err)
	}

	dbg.SetPhase("output")
	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "mif":
		io.WriteString(out, mif.Render(buf))
	case "raw":
		io.WriteString(out, mif.RenderRaw(buf))
	default:
		return fmt.Errorf("unknown --format %q: must be \"mif\" or \"raw\"", format)
	}

	if withSymbols {
		io.WriteString(out, mif.RenderSymbols(ctx))
	}

	return nil
}

// reportAndFail records the failure in dbg and prints every accumulated
// entry to stderr, always returning a non-nil error so Execute exits
// non-zero.
func reportAndFail(dbg *debugcontext.DebugContext, err error) error {
	if rerr, ok := err.(*ast.ReduceError); ok {
		dbg.Error(rerr.Location, rerr.Kind.String()+": "+rerr.Message)
	} else {
		dbg.Error(debugcontext.Location{}, err.Error())
	}

	for _, entry := range dbg.Entries() {
		fmt.Fprintln(os.Stderr, entry.String())
	}
	return err
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening output %s: %w", path, err)
	}
	return f, nil
}
