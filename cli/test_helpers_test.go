package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

func captureOutput(f func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = orig
	return <-done
}

// newProject writes a config pointing at a fresh svg directory and returns
// both paths.
func newProject(t *testing.T) (configPath, svgDir string) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("SVG_DIR", "")
	t.Setenv("BASE_URL", "")

	dir := t.TempDir()
	svgDir = filepath.Join(dir, "svgs")
	if err := os.MkdirAll(svgDir, 0755); err != nil {
		t.Fatal(err)
	}
	configPath = filepath.Join(dir, "svgurl.config.yml")
	yml := fmt.Sprintf("svgDir: %s\nbaseURL: https://svgtourl.example\n", svgDir)
	if err := os.WriteFile(configPath, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath, svgDir
}

func writeSVG(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// runCommand runs cmd through an App that never calls os.Exit.
func runCommand(cmd *cli.Command, args ...string) (string, error) {
	var err error
	out := captureOutput(func() {
		app := &cli.App{
			Commands:       []*cli.Command{cmd},
			ExitErrHandler: func(c *cli.Context, err error) {},
		}
		err = app.Run(append([]string{"svgurl", cmd.Name}, args...))
	})
	return out, err
}
