package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ytget/coverflow/internal/model"
)

// SourceKind tells how a collection source string is opened
type SourceKind int

const (
	SourceDirectory SourceKind = iota
	SourcePlaylist
	SourceJSONLines
	SourceURLList
	SourceURL
)

// Source file extensions
const (
	JSONLinesExt = ".jsonl"
	URLListExt   = ".txt"
)

// String returns the string representation of SourceKind
func (k SourceKind) String() string {
	switch k {
	case SourceDirectory:
		return "directory"
	case SourcePlaylist:
		return "playlist"
	case SourceJSONLines:
		return "jsonl"
	case SourceURLList:
		return "url-list"
	case SourceURL:
		return "url"
	default:
		return "unknown"
	}
}

// DetectSource classifies source by its shape. Anything that is not a
// playlist, a URL or a known list file is taken as a directory.
func DetectSource(source string) SourceKind {
	lower := strings.ToLower(strings.TrimSpace(source))
	switch {
	case IsPlaylistURL(lower):
		return SourcePlaylist
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceURL
	case filepath.Ext(lower) == JSONLinesExt:
		return SourceJSONLines
	case filepath.Ext(lower) == URLListExt:
		return SourceURLList
	default:
		return SourceDirectory
	}
}

// OpenSource builds the collection for source. The returned collection's
// Source is always the string it was opened from.
func OpenSource(ctx context.Context, source string, playlists *PlaylistSource) (*model.Collection, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("empty source")
	}

	var (
		c   *model.Collection
		err error
	)
	switch DetectSource(source) {
	case SourcePlaylist:
		c, err = playlists.ParsePlaylist(ctx, source)
	case SourceJSONLines:
		c, err = playlists.LoadJSONLines(source)
	case SourceURLList:
		var urls []string
		if urls, err = ReadURLListFile(source); err == nil {
			c, err = CollectionFromURLs(urls)
		}
		if c != nil {
			c.Title = strings.TrimSuffix(filepath.Base(source), URLListExt)
		}
	case SourceURL:
		c, err = CollectionFromURLs([]string{source})
	default:
		c, err = CollectionFromDir(source)
	}
	if err != nil {
		return nil, err
	}
	c.Source = source
	return c, nil
}
