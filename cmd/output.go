package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-mfcc/config"
)

// table is output that can also be rendered as CSV
type table interface {
	header() []string
	records() [][]string
}

func writeOutput(w io.Writer, format string, t table) error {
	switch format {
	case config.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(t)

	case config.OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(t); err != nil {
			return err
		}
		return encoder.Close()

	case config.OutputCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write(t.header()); err != nil {
			return err
		}
		if err := writer.WriteAll(t.records()); err != nil {
			return err
		}
		return writer.Error()

	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
