package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type URLList struct {
	URLs []string `json:"urls"`
}

// LoadURLsFromFile reads a JSON file of the form {"urls": [...]}. Blank
// entries are dropped.
func LoadURLsFromFile(path string) (*URLList, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var list URLList
	err = json.Unmarshal(file, &list)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshal %s file: %w", path, err)
	}

	urls := make([]string, 0, len(list.URLs))
	for _, rawURL := range list.URLs {
		if strings.TrimSpace(rawURL) != "" {
			urls = append(urls, rawURL)
		}
	}
	list.URLs = urls

	return &list, nil
}
