package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/usecase/catalog"
	"github.com/johnquangdev/voice-dataset/pkg/validator"
)

// catalogFile is the TOML layout of a seed file:
//
//	[[contributors]]
//	name = "ann"
//	display_name = "Ann"
//
//	[[sentences]]
//	text = "The quick brown fox."
//
// Sentences without an id are numbered by their position, starting at 1.
type catalogFile struct {
	Contributors []contributorEntry `toml:"contributors"`
	Sentences    []sentenceEntry    `toml:"sentences"`
}

type contributorEntry struct {
	Name        string `toml:"name"`
	DisplayName string `toml:"display_name"`
}

type sentenceEntry struct {
	ID   uint   `toml:"id"`
	Text string `toml:"text"`
}

func loadCatalogFile(path string) (*catalog.ImportInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) (*catalog.ImportInput, error) {
	var file catalogFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	input := &catalog.ImportInput{}
	for _, c := range file.Contributors {
		name := strings.TrimSpace(c.Name)
		if !validator.IsContributorID(name) {
			return nil, fmt.Errorf("contributor %q: %w", c.Name, entities.ErrInvalidContributorName)
		}
		display := strings.TrimSpace(c.DisplayName)
		if display == "" {
			display = name
		}
		input.Contributors = append(input.Contributors, &entities.Contributor{Name: name, DisplayName: display})
	}

	seen := make(map[uint]bool, len(file.Sentences))
	for i, s := range file.Sentences {
		id := s.ID
		if id == 0 {
			id = uint(i + 1)
		}
		if seen[id] {
			return nil, fmt.Errorf("sentence id %d appears twice", id)
		}
		seen[id] = true

		text := strings.TrimSpace(s.Text)
		if text == "" {
			return nil, fmt.Errorf("sentence %d has no text", id)
		}
		input.Sentences = append(input.Sentences, &entities.Sentence{ID: id, Text: text})
	}
	return input, nil
}
