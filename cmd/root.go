package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shape-rank",
	Short: "A CLI tool for ranking shape-similarity methods",
	Long: `Shape Rank connects to a shape-comparison backend, detects object
silhouettes in photos, and lets you rank how well six similarity methods
(hamming, ssim, chamfer, hausdorff, dice, jaccard) match each silhouette
against reference sets like country and lake outlines.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
