package action

import (
	"github.com/3leaps/s3find/pkg/objectitem"
)

// Record is the flat, serializable view of an Item used by the print
// action's JSON and CSV formats. Version-related fields are omitted
// (json) or left blank (csv) when the item carries no version info.
type Record struct {
	ETag           string `json:"e_tag" csv:"e_tag"`
	Owner          string `json:"owner" csv:"owner"`
	Size           int64  `json:"size" csv:"size"`
	LastModified   string `json:"last_modified" csv:"last_modified"`
	Key            string `json:"key" csv:"key"`
	StorageClass   string `json:"storage_class" csv:"storage_class"`
	VersionID      string `json:"version_id,omitempty" csv:"version_id"`
	IsLatest       *bool  `json:"is_latest,omitempty" csv:"is_latest"`
	IsDeleteMarker *bool  `json:"is_delete_marker,omitempty" csv:"is_delete_marker"`
}

// NewRecord builds a Record from an Item.
func NewRecord(it *objectitem.Item) Record {
	r := Record{
		ETag:         it.ETag,
		Owner:        it.Owner,
		Size:         it.Size,
		LastModified: it.LastModified.UTC().Format("2006-01-02T15:04:05Z"),
		Key:          it.Key,
		StorageClass: it.StorageClass,
		VersionID:    it.VersionID,
	}
	if it.VersionID != "" {
		latest := it.IsLatest
		r.IsLatest = &latest
	}
	if it.IsDeleteMarker {
		marker := true
		r.IsDeleteMarker = &marker
	}
	return r
}
