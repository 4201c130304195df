package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

//go:embed _starter
var starterFS embed.FS

var InitCommand = &cli.Command{
	Name:  "init",
	Usage: "Create svgurl.config.yml and an example SVG in the current directory",
	Action: func(c *cli.Context) error {
		targetDir, err := os.Getwd()
		if err != nil {
			return err
		}
		fmt.Println("🚀 Creating svgurl project in:", targetDir)

		if err := copyEmbeddedDir(starterFS, "_starter", targetDir); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Println("✅ Project created successfully.")
		fmt.Println("▶  Run: svgurl annotate && svgurl serve")
		return nil
	},
}

// copyEmbeddedDir copies sourceDir into targetDir, leaving files that
// already exist untouched.
func copyEmbeddedDir(source fs.FS, sourceDir string, targetDir string) error {
	return fs.WalkDir(source, sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		targetPath := filepath.Join(targetDir, rel)

		if d.IsDir() {
			return os.MkdirAll(targetPath, os.ModePerm)
		}

		if _, err := os.Stat(targetPath); err == nil {
			fmt.Println("⏭️  Keeping existing:", rel)
			return nil
		}

		data, err := fs.ReadFile(source, path)
		if err != nil {
			return err
		}

		return os.WriteFile(targetPath, data, 0644)
	})
}
