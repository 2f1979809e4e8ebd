// Package main implements wbctl, a small inspector for whiteboard stores.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/whiteboard/internal/whiteboard"
)

var (
	root       string
	phaseLabel string
	project    string
	textOnly   bool

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "wbctl",
	Short:   "Inspect a whiteboard store",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&root, "root", "whiteboard", "store root directory")
	rootCmd.PersistentFlags().BoolVar(&textOnly, "text", false, "print only the snapshot text")

	latestCmd.Flags().StringVar(&phaseLabel, "phase", "", "restrict to one phase")
	latestCmd.Flags().StringVar(&project, "project", "", "restrict to one project")
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(getCmd)
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the newest snapshot",
	Long: `Print the newest snapshot in the store, optionally restricted to a
phase and/or project.

Examples:
  wbctl latest --root ./whiteboard
  wbctl latest --phase dev_plan --project demo`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := whiteboard.NewFileStore(root, zap.NewNop())
		if err != nil {
			return err
		}
		snap, err := store.Latest(cmd.Context(), phaseLabel, project)
		if err != nil {
			return err
		}
		if snap == nil {
			return fmt.Errorf("no matching snapshots under %s", root)
		}
		printSnapshot(snap)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a snapshot by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := whiteboard.NewFileStore(root, zap.NewNop())
		if err != nil {
			return err
		}
		snap, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

func printSnapshot(snap *whiteboard.Snapshot) {
	if textOnly {
		fmt.Print(snap.Text)
		return
	}
	fmt.Printf("id:      %s\n", snap.ID)
	fmt.Printf("phase:   %s\n", snap.Phase)
	fmt.Printf("agent:   %s\n", snap.AgentName)
	fmt.Printf("project: %s\n", snap.Project)
	fmt.Printf("created: %s\n", snap.CreatedAt)
	fmt.Println()
	fmt.Println(snap.Text)
}
