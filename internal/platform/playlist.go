package platform

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/coverflow/internal/model"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
)

// URL templates
const (
	YouTubeThumbnailURLTemplate = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// Playlist title constants
const (
	MinPrefixLength = 10
	PlaylistSuffix  = " Playlist"
)

// PlaylistEntry is one video of a playlist
type PlaylistEntry struct {
	VideoID   string
	Title     string
	Thumbnail string
}

// entryLister fetches the entries of a playlist by ID
type entryLister func(ctx context.Context, playlistID string) ([]PlaylistEntry, error)

// PlaylistSource turns YouTube playlists into thumbnail collections
type PlaylistSource struct {
	timeout time.Duration
	list    entryLister
}

// NewPlaylistSource creates a new playlist source backed by ytdlp
func NewPlaylistSource() *PlaylistSource {
	return &PlaylistSource{
		timeout: DefaultParseTimeout,
		list:    ytdlpEntries,
	}
}

// SetTimeout sets the timeout for parsing operations
func (p *PlaylistSource) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// ParsePlaylist resolves a playlist URL into a collection of thumbnails
func (p *PlaylistSource) ParsePlaylist(ctx context.Context, url string) (*model.Collection, error) {
	if !IsPlaylistURL(url) {
		return nil, fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.list(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in playlist %s", ErrNoImages, playlistID)
	}

	c := collectionFromEntries(url, entries)
	return c, nil
}

// LoadJSONLines reads a playlist dump written by
// `yt-dlp --flat-playlist -j <url>`
func (p *PlaylistSource) LoadJSONLines(path string) (*model.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist dump: %w", err)
	}
	defer f.Close()

	entries, err := ParseJSONLines(f)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, path)
	}
	return collectionFromEntries(path, entries), nil
}

func collectionFromEntries(source string, entries []PlaylistEntry) *model.Collection {
	c := model.NewCollection(source)
	c.Title = ExtractPlaylistTitle(entries)
	for _, e := range entries {
		thumb := e.Thumbnail
		if thumb == "" {
			thumb = fmt.Sprintf(YouTubeThumbnailURLTemplate, e.VideoID)
		}
		c.AddItem(&model.CoverItem{
			ID:       e.VideoID,
			Title:    e.Title,
			Location: thumb,
			Kind:     model.ItemKindURL,
		})
	}
	c.UpdateStatus(model.CollectionStatusReady)
	return c
}

// ytdlpEntries lists a playlist through the ytdlp library
func ytdlpEntries(ctx context.Context, playlistID string) ([]PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	entries := make([]PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, PlaylistEntry{VideoID: it.VideoID, Title: it.Title})
	}
	return entries, nil
}

// IsPlaylistURL checks if the URL is a YouTube playlist URL
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats
func ExtractPlaylistID(url string) string {
	parts := strings.SplitN(url, PlaylistParam, 2)
	if len(parts) < 2 {
		return ""
	}
	id := parts[1]
	if i := strings.Index(id, ParamSeparator); i >= 0 {
		id = id[:i]
	}
	return id
}

// ParseJSONLines parses yt-dlp JSON-lines output. Lines that are not JSON
// or lack an id are skipped.
func ParseJSONLines(r io.Reader) ([]PlaylistEntry, error) {
	var entries []PlaylistEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var data struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			Thumbnail  string `json:"thumbnail"`
			Thumbnails []struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		}
		if err := json.Unmarshal([]byte(line), &data); err != nil {
			continue
		}
		if data.ID == "" {
			continue
		}
		thumb := data.Thumbnail
		if thumb == "" && len(data.Thumbnails) > 0 {
			// yt-dlp orders thumbnails from smallest to largest
			thumb = data.Thumbnails[len(data.Thumbnails)-1].URL
		}
		entries = append(entries, PlaylistEntry{VideoID: data.ID, Title: data.Title, Thumbnail: thumb})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist dump: %w", err)
	}
	return entries, nil
}

// ExtractPlaylistTitle generates a title for the playlist based on its entries
func ExtractPlaylistTitle(entries []PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		commonPrefix := findCommonPrefix(entries[0].Title, entries[1].Title)
		if len(commonPrefix) > MinPrefixLength {
			return strings.TrimSpace(commonPrefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
