package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteDefault writes the default configuration to path as commented YAML.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", path)
	}
	data, err := renderDefault()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func renderDefault() ([]byte, error) {
	d := Default()

	var root yaml.Node
	raw, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}

	comments := map[string]string{
		"input_dir":     "Directory tree scanned for .mkv files",
		"output_dir":    "Converted .mp4 files mirror the input layout here",
		"logs_dir":      "Dated log files land here",
		"video":         fmt.Sprintf("height %d-%d, crf %d-%d", MinHeight, MaxHeight, MinCRF, MaxCRF),
		"audio":         "bitrate needs a k or M suffix, e.g. 128k",
		"subtitles":     "language/style are optional; leave empty for the first track",
		"parallel":      "Convert several files at once",
		"max_workers":   fmt.Sprintf("%d-%d, used when parallel is true", MinWorkers, MaxWorkers),
		"skip_existing": "Resume interrupted batches by skipping finished outputs",
	}
	if len(root.Content) == 1 {
		doc := root.Content[0]
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key := doc.Content[i]
			if c, ok := comments[key.Value]; ok {
				key.HeadComment = c
			}
		}
	}
	return yaml.Marshal(&root)
}
