package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tetratelabs/wazero"
	"golang.org/x/term"

	"github.com/wippyai/wasm-linker/wasm"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to wasm module file")
		validate    = flag.Bool("validate", false, "Compile the module with wazero to check validity")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	// Positional form: sections module.wasm
	if *wasmFile == "" && flag.NArg() == 1 {
		*wasmFile = flag.Arg(0)
	}
	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: sections -wasm <file.wasm> [-validate]")
		fmt.Fprintln(os.Stderr, "       sections -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*wasmFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *validate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile string, validate bool) error {
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	infos, err := wasm.ScanSections(data)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s — %d bytes, %d sections",
		wasmFile, len(data), len(infos))))
	fmt.Println()
	fmt.Println(dimStyle.Render(fmt.Sprintf("%-24s %10s %10s", "SECTION", "OFFSET", "SIZE")))

	for _, info := range infos {
		name := info.String()
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		line := fmt.Sprintf("%s %10d %10d",
			kindStyle.Render(fmt.Sprintf("%-24s", name)), info.Offset, info.Size)
		if len(line) > width {
			line = line[:width]
		}
		fmt.Println(line)
	}

	if !validate {
		return nil
	}

	fmt.Println()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, data)
	if err != nil {
		fmt.Println(errStyle.Render("validation failed: " + err.Error()))
		return nil
	}
	defer compiled.Close(ctx)

	var exports []string
	for name := range compiled.ExportedFunctions() {
		exports = append(exports, name)
	}
	msg := "module is valid"
	if len(exports) > 0 {
		msg += "; exported functions: " + strings.Join(exports, ", ")
	}
	fmt.Println(okStyle.Render(msg))
	return nil
}
