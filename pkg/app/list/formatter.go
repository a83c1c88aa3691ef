package list

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes listing results to w according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table, in directory walk order
func formatTable(w io.Writer, response *Response) error {
	if len(response.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries found matching the filter.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "ID\tTYPE\tLOCATION\tSIZE\n")
	fmt.Fprintf(tw, "--\t----\t--------\t----\n")

	for _, entry := range response.Entries {
		fmt.Fprintf(tw, "%s\t%s\t0x%08X\t%s\n", entry.ID, entry.Type, entry.Location, entry.FormatSize())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nContainer: %s\n", response.Container)
	fmt.Fprintf(w, "Found %d of %d entries", response.TotalFound, response.Scanned)
	if response.Truncated {
		fmt.Fprintf(w, " (showing first %d)", len(response.Entries))
	}
	_, err := fmt.Fprintf(w, " in %v\n", response.ScanTime)
	return err
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	if response.TotalFound == 0 {
		return "No entries found"
	}

	summary := fmt.Sprintf("Found %d entr", response.TotalFound)
	if response.TotalFound == 1 {
		summary += "y"
	} else {
		summary += "ies"
	}

	if response.Truncated {
		summary += fmt.Sprintf(" (showing %d)", len(response.Entries))
	}

	var totalSize int64
	for _, entry := range response.Entries {
		totalSize += int64(entry.Size)
	}

	summary += fmt.Sprintf(" totaling %s in %v", formatBytes(totalSize), response.ScanTime)
	return summary
}
