package testutil

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CallRecord is a single recorded executor call.
type CallRecord struct {
	Method    string    `yaml:"method"`
	Version   string    `yaml:"version,omitempty"`
	Line      string    `yaml:"line,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
	Error     string    `yaml:"error,omitempty"`
}

// CallLog wraps []CallRecord for YAML serialization.
type CallLog struct {
	Entries []CallRecord `yaml:"entries"`
}

// WriteCallLog writes a slice of CallRecords to a YAML file.
func WriteCallLog(path string, records []CallRecord) error {
	log := CallLog{Entries: records}

	data, err := yaml.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshaling call log to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing call log to %s: %w", path, err)
	}
	return nil
}

// ReadCallLog reads a YAML call log file.
func ReadCallLog(path string) (*CallLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading call log from %s: %w", path, err)
	}

	var log CallLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("unmarshaling call log YAML: %w", err)
	}
	return &log, nil
}
