package pkg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
)

// FindUpwards returns the first path named name in start or one of its parents
func FindUpwards(start, name string) (string, error) {
	path, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(path, name)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}

		if !eris.Is(err, os.ErrNotExist) {
			return "", eris.Wrapf(err, "Failed to check %s", candidate)
		}

		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}

	return "", eris.Errorf("No %s file found", name)
}

// GetProjectRoot returns the closest directory above start that contains a .git entry.
// If there is none, start itself is the project root.
func GetProjectRoot(start string) (string, error) {
	gitPath, err := FindUpwards(start, ".git")
	if err != nil {
		return filepath.Abs(start)
	}

	return filepath.Dir(gitPath), nil
}

// Console renders colorstring markup. Markup passed to it ends with its own [reset].
var Console = colorstring.Colorize{
	Colors: colorstring.DefaultColors,
	Reset:  false,
}

// Fprint writes colorstring markup to out
func Fprint(out io.Writer, markup string) (int, error) {
	return fmt.Fprint(out, Console.Color(markup))
}

func PrintTask(out io.Writer, msg string) {
	Fprint(out, fmt.Sprintf("[blue][bold]==>[reset] %s\n", msg))
}

func PrintSubtask(out io.Writer, msg string) {
	Fprint(out, fmt.Sprintf("[green][bold]  ->[reset] %s\n", msg))
}

func PrintError(out io.Writer, msg string) {
	Fprint(out, fmt.Sprintf("[red][bold]Error:[reset] %s\n", msg))
}
