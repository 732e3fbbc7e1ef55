package action

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
)

// PrintFormat selects the print handler's rendering.
type PrintFormat int

const (
	PrintPlain PrintFormat = iota
	PrintDetail
	PrintJSON
	PrintCSV
)

// Print builds the print handler (spec's "ls"/"print" verbs).
func Print(c *Context, format PrintFormat) pipeline.Action {
	switch format {
	case PrintJSON:
		return func(ctx context.Context, batch []*objectitem.Item) error {
			enc := json.NewEncoder(c.Stdout)
			for _, it := range batch {
				if err := enc.Encode(NewRecord(it)); err != nil {
					return err
				}
			}
			return nil
		}
	case PrintCSV:
		return func(ctx context.Context, batch []*objectitem.Item) error {
			w := csv.NewWriter(c.Stdout)
			for _, it := range batch {
				r := NewRecord(it)
				row := []string{
					r.ETag, r.Owner, strconv.FormatInt(r.Size, 10), r.LastModified, r.Key, r.StorageClass,
					r.VersionID, boolCell(r.IsLatest), boolCell(r.IsDeleteMarker),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		}
	case PrintDetail:
		return func(ctx context.Context, batch []*objectitem.Item) error {
			for _, it := range batch {
				c.printf("%s %s %d %s \"%s\" %s\n",
					orDefault(it.ETag, "NoEtag"),
					orDefault(it.Owner, "None"),
					it.Size,
					isoOrNone(it),
					it.DisplayKey(),
					orDefault(it.StorageClass, "NONE"),
				)
			}
			return nil
		}
	default:
		return func(ctx context.Context, batch []*objectitem.Item) error {
			for _, it := range batch {
				c.printf("%s\n", it.DisplayKey())
			}
			return nil
		}
	}
}

func boolCell(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func isoOrNone(it *objectitem.Item) string {
	if it.LastModified.IsZero() {
		return "None"
	}
	return it.LastModified.UTC().Format("2006-01-02T15:04:05Z")
}

