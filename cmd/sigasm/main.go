// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lassandro/gosigma/pkg/assembler"
)

const sourceSuffix = ".asm.txt"

var (
	outvar      string
	listingvar  bool
	symbolsvar  bool
	metadatavar bool
	dumpvar     bool
	colorvar    string

	status int
)

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

var rootCmd = &cobra.Command{
	Use:   "sigasm [flags] [file.asm.txt]",
	Short: "Sigma16 assembler",
	Long: `Sigasm assembles one Sigma16 source module. The object code is
written to <base>.obj.txt and the metadata to <base>.md.txt, where base is
the source file name without its .asm.txt extension. Without a file
argument the source is read from stdin.

Every diagnostic is reported with the offending line. When any error is
found the outputs are still written but the exit status is 1, and the
object code should not be loaded.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog only reads its flags once the go flag set has been parsed
		return flag.CommandLine.Parse(nil)
	},
	Run: func(cmd *cobra.Command, args []string) {
		status = run(args)
	},
}

// normalizeFlag accepts the British spelling of --color
func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "colour" {
		name = "color"
	}

	return pflag.NormalizedName(name)
}

func init() {
	flags := rootCmd.Flags()
	flags.SetNormalizeFunc(normalizeFlag)

	flags.StringVarP(
		&outvar, "out", "o", "",
		"Base name for output files, overriding the one derived from the "+
			"source file",
	)
	flags.BoolVarP(
		&listingvar, "listing", "l", false,
		"Write the assembly listing to <base>.lst.txt",
	)
	flags.BoolVarP(
		&symbolsvar, "symbols", "s", false,
		"Print the symbol table to stdout",
	)
	flags.BoolVar(
		&metadatavar, "metadata", true,
		"Write the address map and source to <base>.md.txt",
	)
	flags.BoolVar(
		&dumpvar, "dump", false,
		"Pretty-print every parsed statement to stderr",
	)
	flags.StringVar(
		&colorvar, "color", "auto",
		"Colorize diagnostics: auto, always or never",
	)

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func sigasm(args []string) int {
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		return 2
	}

	glog.Flush()

	return status
}

func run(args []string) int {
	color, err := useColor(colorvar, os.Stderr)

	if err != nil {
		log.Println(err)
		return 2
	}

	var input io.Reader
	var base string

	if len(args) == 0 {
		interactive, err := isCharDevice(os.Stdin)

		if err != nil {
			log.Println(err)
			return 2
		}

		if interactive {
			log.Println("no source file given and stdin is a terminal")
			return 2
		}

		input = os.Stdin
		base = "out"
		log.SetPrefix(prefix("<stdin>:", color))
	} else {
		file, err := os.Open(args[0])

		if err != nil {
			log.Println(err)
			return 1
		}

		defer file.Close()

		filename := filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid Sigma16 source file", filename)
			return 1
		}

		input = file
		base = baseName(args[0])
		log.SetPrefix(prefix(filename+":", color))
	}

	if outvar != "" {
		base = outvar
	}

	state, err := assembler.AssembleSource(input, filepath.Base(base))

	if err != nil {
		log.Println(err)
		return 1
	}

	if dumpvar {
		printer := pp.New()
		printer.SetOutput(os.Stderr)
		printer.SetColoringEnabled(color)

		for _, stmt := range state.Statements() {
			printer.Println(stmt)
		}
	}

	for _, stmt := range state.Statements() {
		for _, err := range stmt.Errors {
			log.Println(diagnostic(err, stmt.Source, color))
		}
	}

	if count := state.ErrorCount(); count > 0 {
		log.Printf("%d errors detected", count)
	}

	outputs := []struct {
		Suffix string
		Text   string
		Enable bool
	}{
		{".obj.txt", state.ObjectText(), true},
		{".md.txt", state.MetadataText(), metadatavar},
		{".lst.txt", state.ListingText(), listingvar},
	}

	for _, output := range outputs {
		if !output.Enable {
			continue
		}

		if err := os.WriteFile(
			base+output.Suffix, []byte(output.Text), 0666,
		); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}

	if symbolsvar {
		fmt.Print(state.SymbolListing())
	}

	if state.ErrorCount() > 0 {
		return 1
	}

	return 0
}

func main() {
	os.Exit(sigasm(os.Args[1:]))
}
