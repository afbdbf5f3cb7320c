package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chenxiaowo/ktrace/internal/trace"
)

// newTraceDumpCommand constructs the `trace dump` subcommand.
func newTraceDumpCommand(baseURL BaseURLFunc) *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Read out the trace buffer and decode it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, _ := cmd.Flags().GetString("out")
			pretty, _ := cmd.Flags().GetBool("pretty")

			buf, err := getBytes(cmd.Context(), baseURL()+"/v1/trace/read")
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, buf, 0o644); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(buf), out)
				return nil
			}
			if pretty {
				return prettyDump(cmd.OutOrStdout(), buf)
			}
			return jsonDump(cmd.OutOrStdout(), buf)
		},
	}
	dumpCmd.Flags().String("out", "", "Write the raw buffer to a file instead of decoding")
	dumpCmd.Flags().Bool("pretty", false, "Colorized human-readable output")
	return dumpCmd
}

// dumpRecord is the JSON line form of a decoded record.
type dumpRecord struct {
	Offset    int      `json:"offset"`
	Timestamp uint64   `json:"ts"`
	Event     uint16   `json:"event"`
	Group     string   `json:"group"`
	TID       uint32   `json:"tid"`
	Name      string   `json:"name,omitempty"`
	Args32    []uint32 `json:"args32,omitempty"`
}

func jsonDump(w io.Writer, buf []byte) error {
	enc := json.NewEncoder(w)
	if md, ok := trace.DecodeMetadata(buf); ok {
		if err := enc.Encode(map[string]any{"version": md.Version, "ticksPerMS": md.TicksPerMS}); err != nil {
			return err
		}
	}
	dec := trace.NewDecoder(buf)
	for {
		off := dec.Offset()
		rec, ok := dec.Next()
		if !ok {
			return nil
		}
		dr := dumpRecord{
			Offset:    off,
			Timestamp: rec.Timestamp,
			Event:     rec.Tag.Event(),
			Group:     rec.Tag.Group().String(),
			TID:       rec.TID,
		}
		if _, _, name, ok := namedRecord(rec); ok {
			dr.Name = name
		} else if a, b, c, d, ok := rec.Args32(); ok {
			dr.Args32 = []uint32{a, b, c, d}
		}
		if err := enc.Encode(dr); err != nil {
			return err
		}
	}
}

var (
	tsColor    = color.New(color.FgHiBlack)
	eventColor = color.New(color.FgCyan)
	groupColor = color.New(color.FgYellow)
	nameColor  = color.New(color.FgGreen)
)

func prettyDump(w io.Writer, buf []byte) error {
	if md, ok := trace.DecodeMetadata(buf); ok {
		_, _ = fmt.Fprintf(w, "%s version=%d ticksPerMS=%d\n",
			groupColor.Sprint("metadata"), md.Version, md.TicksPerMS)
	}
	dec := trace.NewDecoder(buf)
	for {
		rec, ok := dec.Next()
		if !ok {
			return nil
		}
		_, _ = fmt.Fprintf(w, "%s %s %s tid=%d",
			tsColor.Sprintf("%12d", rec.Timestamp),
			eventColor.Sprintf("0x%03x", rec.Tag.Event()),
			groupColor.Sprintf("%-8s", rec.Tag.Group()),
			rec.TID,
		)
		if id, arg, name, ok := namedRecord(rec); ok {
			_, _ = fmt.Fprintf(w, " id=%d arg=%d name=%s", id, arg, nameColor.Sprint(name))
		} else if a, b, c, d, ok := rec.Args32(); ok {
			_, _ = fmt.Fprintf(w, " args=[%d %d %d %d]", a, b, c, d)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// namedRecord unpacks rec as a naming record when its event id says it is one.
func namedRecord(rec trace.Record) (id, arg uint32, name string, ok bool) {
	if rec.Tag.Event() != trace.TagThreadName.Event() {
		return 0, 0, "", false
	}
	return rec.Named()
}
