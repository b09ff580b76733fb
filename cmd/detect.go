package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/shapeapi"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [image]",
	Short: "Detect object silhouettes in an image",
	Long: `Upload an image to the shape-comparison backend and list the
detected objects with their mask dimensions.

Example:
  shape-rank detect holiday.jpg
  shape-rank detect holiday.jpg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().Bool("json", false, "Output as JSON")
}

func maskDimensions(mask [][]uint8) (int, int) {
	if len(mask) == 0 {
		return 0, 0
	}
	return len(mask[0]), len(mask)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	jsonOutput := mustGetBool(cmd, "json")

	client, err := shapeapi.NewClient(cfg.API.URL)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	result, err := client.ProcessImage(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	if len(result.Objects) == 0 {
		fmt.Println("No objects detected.")
		return nil
	}

	fmt.Printf("Detected %d object(s) in %s\n\n", len(result.Objects), result.FileName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tMASK")
	for _, object := range result.Objects {
		width, height := maskDimensions(object.MaskCoords)
		fmt.Fprintf(w, "%d\t%s\t%dx%d\n", object.ObjectID, object.ObjectType, width, height)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if result.CompositeImageURL != "" {
		fmt.Printf("\nComposite overlay: %s\n", result.CompositeImageURL)
	}
	return nil
}
