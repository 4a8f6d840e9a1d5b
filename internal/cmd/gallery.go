package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/frostdune/internal/gallery"
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Inspect and extract gallery databases",
}

var galleryListCmd = &cobra.Command{
	Use:   "list <gallery-file>",
	Short: "List the renders in a gallery database",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryList,
}

var galleryExtractCmd = &cobra.Command{
	Use:   "extract <gallery-file>",
	Short: "Extract all renders from a gallery database to PNG files",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryExtract,
}

func init() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryExtractCmd)

	galleryExtractCmd.Flags().String("dir", "", "Destination directory (defaults to --output-dir)")
}

func runGalleryList(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	reader, err := gallery.OpenReader(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	meta, err := reader.Metadata()
	if err != nil {
		return err
	}
	if meta.Name != "" {
		fmt.Printf("%s", meta.Name)
		if meta.Description != "" {
			fmt.Printf(" - %s", meta.Description)
		}
		fmt.Println()
	}

	entries, err := reader.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("gallery is empty")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-32s %5dx%-5d seed=%-8d %s\n",
			e.Label, e.Width, e.Height, e.Seed, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runGalleryExtract(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = rootCmd.PersistentFlags().Lookup("output-dir").Value.String()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	reader, err := gallery.OpenReader(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	entries, err := reader.List()
	if err != nil {
		return err
	}

	for _, e := range entries {
		data, err := reader.ReadRender(e.Label, e.Width, e.Height)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, e.Key()+".png")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("Render extracted", "path", path)
	}

	logger.Info("Extraction complete", "count", len(entries), "dir", dir)
	return nil
}
