// Package home resolves the readlite home directory layout: fetched book
// texts, the results database, generated audio, and the config file.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the readlite home directory.
	DefaultDirName = ".readlite"

	// BooksDirName is the subdirectory for fetched book texts.
	BooksDirName = "books"

	// AudioDirName is the subdirectory for generated chunk audio.
	AudioDirName = "audio"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// DatabaseFileName is the SQLite results database.
	DatabaseFileName = "readlite.db"
)

// Dir represents the readlite home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.readlite).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}
	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// BooksPath returns the directory holding fetched book texts.
func (d *Dir) BooksPath() string {
	return filepath.Join(d.path, BooksDirName)
}

// BookTextPath returns the path of a fetched book's plain text.
func (d *Dir) BookTextPath(bookID string) string {
	return filepath.Join(d.BooksPath(), bookID+".txt")
}

// AudioPath returns the root audio directory.
func (d *Dir) AudioPath() string {
	return filepath.Join(d.path, AudioDirName)
}

// ChunkAudioPath returns the audio file path for one (book, level, chunk).
func (d *Dir) ChunkAudioPath(bookID, level string, chunkIndex int) string {
	return filepath.Join(d.AudioPath(), bookID, level, fmt.Sprintf("chunk_%04d.mp3", chunkIndex))
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// DatabasePath returns the path to the results database.
func (d *Dir) DatabasePath() string {
	return filepath.Join(d.path, DatabaseFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't
// exist.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.BooksPath(), d.AudioPath()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
