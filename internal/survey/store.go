// SPDX-License-Identifier: MPL-2.0

package survey

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSurveyID is returned for empty or whitespace-only survey ids.
var ErrInvalidSurveyID = errors.New("invalid survey id")

type (
	// Assignment is one survey-to-theme mapping.
	Assignment struct {
		SurveyID string `json:"survey_id" yaml:"survey_id"`
		Theme    string `json:"theme" yaml:"theme"`
	}

	document struct {
		Surveys map[string]string `yaml:"surveys"`
	}

	// FileStore is a YAML-backed survey theme store safe for concurrent use.
	FileStore struct {
		path string

		mu      sync.Mutex
		surveys map[string]string
		modTime time.Time
		loaded  bool
	}
)

// NewFileStore returns a store backed by path. The file is created on the
// first Assign; a missing file reads as an empty store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// ThemeFor returns the theme assigned to surveyID.
func (s *FileStore) ThemeFor(ctx context.Context, surveyID string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return "", false, err
	}
	theme, ok := s.surveys[strings.TrimSpace(surveyID)]
	return theme, ok, nil
}

// Assign sets the theme of surveyID and writes the file. An empty theme
// removes the assignment.
func (s *FileStore) Assign(surveyID, theme string) error {
	surveyID = strings.TrimSpace(surveyID)
	if surveyID == "" {
		return ErrInvalidSurveyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return err
	}
	next := maps.Clone(s.surveys)
	if next == nil {
		next = make(map[string]string)
	}
	if theme == "" {
		delete(next, surveyID)
	} else {
		next[surveyID] = theme
	}

	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.surveys = next
	return nil
}

// List returns every assignment ordered by survey id.
func (s *FileStore) List() ([]Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return nil, err
	}
	out := make([]Assignment, 0, len(s.surveys))
	for _, id := range slices.Sorted(maps.Keys(s.surveys)) {
		out = append(out, Assignment{SurveyID: id, Theme: s.surveys[id]})
	}
	return out, nil
}

// refreshLocked re-reads the file when it changed since the last read.
func (s *FileStore) refreshLocked() error {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.surveys, s.modTime, s.loaded = nil, time.Time{}, true
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat survey store: %w", err)
	}
	if s.loaded && info.ModTime().Equal(s.modTime) {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read survey store: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse survey store %s: %w", s.path, err)
	}
	s.surveys, s.modTime, s.loaded = doc.Surveys, info.ModTime(), true
	return nil
}

// writeLocked replaces the file through a temporary file in the same directory.
func (s *FileStore) writeLocked(surveys map[string]string) error {
	data, err := yaml.Marshal(document{Surveys: surveys})
	if err != nil {
		return fmt.Errorf("encode survey store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create survey store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".surveys-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp survey store: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write survey store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close survey store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace survey store: %w", err)
	}

	// Force a re-stat on the next read.
	s.loaded = false
	return nil
}
