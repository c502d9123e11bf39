package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	SALES_PROMPT      = "Please enter with your CSV file name:"
	CATEGORIES_PROMPT = "Please enter with your JSON file name:"

	SALES_EXTENSION      = ".csv"
	CATEGORIES_EXTENSION = ".json"
)

var ErrFileNotFound = errors.New("file not found")

// FileHandler locates the two input files, asking on its input when a name was
// not configured.
type FileHandler struct {
	in  *bufio.Reader
	out io.Writer
}

func NewFileHandler(in io.Reader, out io.Writer) *FileHandler {
	return &FileHandler{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (fh *FileHandler) CheckIfFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("File %s doesn't exist! Please try again: %w", path, ErrFileNotFound)
		}
		return err
	}

	if info.IsDir() {
		return fmt.Errorf("File %s is a directory! Please try again: %w", path, ErrFileNotFound)
	}
	return nil
}

// AskForFile prints prompt and reads one line. The default extension is added
// when the answer has none.
func (fh *FileHandler) AskForFile(prompt string, defaultExtension string) (string, error) {
	fmt.Fprintln(fh.out, prompt)

	answer, err := fh.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("read file name: %w", err)
	}

	name := strings.TrimSpace(answer)
	if name == "" {
		return "", fmt.Errorf("read file name: empty answer")
	}

	if filepath.Ext(name) == "" {
		name += defaultExtension
	}
	return name, nil
}

// ResolveFile returns configured when set, otherwise asks for a name, and checks
// that the file exists either way.
func (fh *FileHandler) ResolveFile(configured string, prompt string, defaultExtension string) (string, error) {
	path := strings.TrimSpace(configured)
	if path == "" {
		var err error
		path, err = fh.AskForFile(prompt, defaultExtension)
		if err != nil {
			return "", err
		}
	}

	if err := fh.CheckIfFileExists(path); err != nil {
		return "", err
	}
	return path, nil
}
