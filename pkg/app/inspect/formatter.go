package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatInfo writes a header description to w
func FormatInfo(w io.Writer, response *InfoResponse, format string) error {
	if format != "table" {
		return encode(w, response, format)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Container:\t%s\n", response.Container)
	if response.MagicValid {
		fmt.Fprintf(tw, "Magic:\t%s\n", response.Magic)
	} else {
		fmt.Fprintf(tw, "Magic:\t%s (unexpected)\n", response.Magic)
	}
	fmt.Fprintf(tw, "Block size:\t%d\n", response.BlockSize)
	fmt.Fprintf(tw, "Payload size:\t%d\n", response.PayloadSize)
	fmt.Fprintf(tw, "File size:\t%d\n", response.FileSize)
	fmt.Fprintf(tw, "Version:\t%d.%d\n", response.FileVersion, response.FileVersion2)
	fmt.Fprintf(tw, "Free list:\t0x%08X .. 0x%08X (%d sectors)\n", response.FreeHead, response.FreeTail, response.FreeBlockCount)
	fmt.Fprintf(tw, "Root directory:\t0x%08X\n", response.RootPosition)
	if response.Entries != nil {
		fmt.Fprintf(tw, "Entries:\t%d\n", *response.Entries)
	}
	return tw.Flush()
}

// FormatFind writes a resource location to w
func FormatFind(w io.Writer, response *FindResponse, format string) error {
	if format != "table" {
		return encode(w, response, format)
	}

	_, err := fmt.Fprintf(w, "%s %s location=0x%08X size=%d source=%s\n",
		response.ID, response.Type, response.Location, response.Size, response.Source)
	return err
}

func encode(w io.Writer, v interface{}, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
