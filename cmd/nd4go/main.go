// Command nd4go inspects and converts NPY and NPZ array files.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nd4go/nd4go/array"
	"github.com/nd4go/nd4go/npy"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "nd4go",
		Short:         "Inspect and convert NPY/NPZ array files",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.AddCommand(infoCmd(), dumpCmd(), convertCmd(), versionCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// load reads either a single .npy array (named after the file stem) or
// all members of an .npz archive.
func load(path string) (map[string]*array.Array, error) {
	if strings.HasSuffix(path, ".npz") {
		return npy.ReadArchiveFile(path)
	}
	a, err := npy.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stem := strings.TrimSuffix(strings.TrimSuffix(path, ".npy"), "/")
	if i := strings.LastIndexByte(stem, '/'); i >= 0 {
		stem = stem[i+1:]
	}
	return map[string]*array.Array{stem: a}, nil
}

func sortedNames(arrays map[string]*array.Array) []string {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func shapeString(s array.Shape) string {
	dims := make([]string, len(s))
	for i, d := range s {
		dims[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(dims, ", ") + ")"
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "List the arrays in a .npy or .npz file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arrays, err := load(args[0])
			if err != nil {
				return err
			}
			var rows [][]string
			for _, name := range sortedNames(arrays) {
				a := arrays[name]
				rows = append(rows, []string{
					name,
					a.DType().String(),
					shapeString(a.Shape()),
					fmt.Sprintf("%d", a.Size()),
				})
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"NAME", "DTYPE", "SHAPE", "SIZE"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(rows)
			table.Render()
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	var name, sliceExpr string
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print an array's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arrays, err := load(args[0])
			if err != nil {
				return err
			}
			a, err := pick(arrays, name)
			if err != nil {
				return err
			}
			if sliceExpr != "" {
				ranges, err := array.ParseSlice(sliceExpr)
				if err != nil {
					return err
				}
				if a, err = array.Slice(a, ranges); err != nil {
					return err
				}
			}
			fmt.Println(a.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "archive member to dump (npz)")
	cmd.Flags().StringVar(&sliceExpr, "slice", "", "slice expression, e.g. \"1:5:2,::-1\"")
	return cmd
}

// pick selects one array from a loaded set, requiring --name only when
// the choice is ambiguous.
func pick(arrays map[string]*array.Array, name string) (*array.Array, error) {
	if name != "" {
		a, ok := arrays[name]
		if !ok {
			return nil, fmt.Errorf("no array named %q (have %s)",
				name, strings.Join(sortedNames(arrays), ", "))
		}
		return a, nil
	}
	if len(arrays) == 1 {
		for _, a := range arrays {
			return a, nil
		}
	}
	return nil, fmt.Errorf("archive has %d members, pick one with --name", len(arrays))
}

func convertCmd() *cobra.Command {
	var name, dtypeName string
	cmd := &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Convert between .npy and .npz, optionally casting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			arrays, err := load(src)
			if err != nil {
				return err
			}
			if dtypeName != "" {
				dtype, err := array.DTypeFromString(dtypeName)
				if err != nil {
					return err
				}
				for key, a := range arrays {
					if arrays[key], err = array.AsType(a, dtype); err != nil {
						return err
					}
				}
			}
			if strings.HasSuffix(dst, ".npz") {
				return npy.WriteArchiveFile(dst, arrays)
			}
			a, err := pick(arrays, name)
			if err != nil {
				return err
			}
			return npy.WriteFile(dst, a)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "archive member to extract (npz to npy)")
	cmd.Flags().StringVar(&dtypeName, "dtype", "", "cast arrays to this dtype")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nd4go version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("nd4go", version)
		},
	}
}
