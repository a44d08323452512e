package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tubescribe/internal/deps"
	"tubescribe/log"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

func runDoctor() error {
	if err := bootstrap(); err != nil {
		return err
	}
	defer log.GetLogger().Sync()

	states := deps.ResolveDependencyInventory()
	fmt.Print(deps.FormatDependencyReport(states))

	if _, err := os.Stat("cookies.txt"); err == nil {
		fmt.Println("cookies.txt: found")
	} else {
		fmt.Println("cookies.txt: not found (YouTube downloads run unauthenticated)")
	}
	if os.Getenv("BILIBILI_COOKIE") != "" {
		fmt.Println("BILIBILI_COOKIE: set")
	} else {
		fmt.Println("BILIBILI_COOKIE: not set (Bilibili downloads run unauthenticated)")
	}

	for _, state := range states {
		if state.Tier == deps.DependencyTierMust && state.Status != deps.DependencyStatusOK {
			return fmt.Errorf("缺少必需依赖 required dependency missing: %s", state.Name)
		}
	}
	return nil
}
