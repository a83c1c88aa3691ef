package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes extraction results to w according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatTable(w io.Writer, response *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "ID\tTYPE\tSIZE\tWRITTEN\tSOURCE\tPATH\n")
	for _, r := range response.Resources {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n", r.ID, r.Type, r.Size, r.Written, r.Source, r.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, r := range response.Resources {
		if r.Digest != "" {
			fmt.Fprintf(w, "%s  %s\n", r.Digest, r.ID)
		}
	}

	_, err := fmt.Fprintf(w, "\nExtracted %d resources (%d bytes) in %v\n", len(response.Resources), response.TotalBytes, response.Elapsed)
	return err
}
