package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/mcpconf"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var profileDiffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "⚖️ Compare two profiles' merged servers and env keys",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileDiff,
}

func init() {
	profileCmd.AddCommand(profileDiffCmd)
}

func runProfileDiff(cmd *cobra.Command, args []string) error {
	nameA, nameB := args[0], args[1]

	fileA, layersA, err := profiles.Load(nameA)
	if err != nil {
		return err
	}
	fileB, layersB, err := profiles.Load(nameB)
	if err != nil {
		return err
	}

	mergedA, err := mcpconf.Merge(layersA.Paths)
	if err != nil {
		return err
	}
	mergedB, err := mcpconf.Merge(layersB.Paths)
	if err != nil {
		return err
	}

	diff := profiles.Diff(mergedA.MCPServers, mergedB.MCPServers)

	fmt.Printf("⚖️ %s vs %s\n\n", util.BoldCyan(nameA), util.BoldCyan(nameB))
	fmt.Println(util.Bold("MCP servers:"))
	printDiffLine("  only in "+nameA, diff.OnlyA)
	printDiffLine("  only in "+nameB, diff.OnlyB)
	printDiffLine("  different descriptor", diff.Changed)
	printDiffLine("  identical", diff.Same)

	keysA := envKeySet(fileA.Environment)
	keysB := envKeySet(fileB.Environment)
	onlyA, onlyB, shared := splitKeys(keysA, keysB)

	fmt.Println("\n" + util.Bold("Environment keys:"))
	printDiffLine("  only in "+nameA, onlyA)
	printDiffLine("  only in "+nameB, onlyB)
	printDiffLine("  shared", shared)
	return nil
}

func printDiffLine(label string, names []string) {
	if len(names) == 0 {
		fmt.Printf("%s: %s\n", label, util.Dim("-"))
		return
	}
	fmt.Printf("%s: %s\n", label, strings.Join(names, ", "))
}

func envKeySet(vars map[string]string) map[string]bool {
	set := make(map[string]bool, len(vars))
	for key := range vars {
		set[key] = true
	}
	return set
}

func splitKeys(a, b map[string]bool) (onlyA, onlyB, shared []string) {
	for key := range a {
		if b[key] {
			shared = append(shared, key)
		} else {
			onlyA = append(onlyA, key)
		}
	}
	for key := range b {
		if !a[key] {
			onlyB = append(onlyB, key)
		}
	}
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	sort.Strings(shared)
	return onlyA, onlyB, shared
}
