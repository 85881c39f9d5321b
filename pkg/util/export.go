package util

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// KeyValue preserves insertion order for deterministic export output.
type KeyValue struct {
	Key   string
	Value string
}

// ExportFormats lists the formats accepted by ExportEnv.
var ExportFormats = []string{"dotenv", "json", "yaml", "csv"}

// ExportEnv writes vars to w in the requested format.
func ExportEnv(w io.Writer, format string, vars []KeyValue) error {
	switch format {
	case "", "dotenv":
		exportDotenv(w, vars)
	case "json":
		exportJSON(w, vars)
	case "yaml":
		return exportYAML(w, vars)
	case "csv":
		return exportCSV(w, vars)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: dotenv, json, yaml, csv)", format)
	}
	return nil
}

func exportDotenv(w io.Writer, vars []KeyValue) {
	for _, kv := range vars {
		fmt.Fprintf(w, "%s=\"%s\"\n", kv.Key, kv.Value)
	}
}

func exportJSON(w io.Writer, vars []KeyValue) {
	// Build a manually ordered JSON object to preserve key order
	fmt.Fprint(w, "{\n")
	for i, kv := range vars {
		keyJSON, _ := json.Marshal(kv.Key)
		valJSON, _ := json.Marshal(kv.Value)
		fmt.Fprintf(w, "    %s: %s", string(keyJSON), string(valJSON))
		if i < len(vars)-1 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "}")
}

func exportCSV(w io.Writer, vars []KeyValue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Key", "Value"}); err != nil {
		return err
	}
	for _, kv := range vars {
		if err := cw.Write([]string{kv.Key, kv.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportYAML(w io.Writer, vars []KeyValue) error {
	// Build ordered YAML manually to preserve key order
	node := &yaml.Node{
		Kind: yaml.MappingNode,
	}
	for _, kv := range vars {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: kv.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: kv.Value},
		)
	}
	doc := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
