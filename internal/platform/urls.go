package platform

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/ytget/coverflow/internal/model"
)

// URLListSource is the collection source name for plain URL lists
const URLListSource = "urls"

// CollectionFromURLs builds a collection of remote images. Entries that are
// not absolute http(s) URLs are rejected.
func CollectionFromURLs(urls []string) (*model.Collection, error) {
	c := model.NewCollection(URLListSource)
	for i, raw := range urls {
		raw = strings.TrimSpace(raw)
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid image URL #%d: %q", i+1, raw)
		}
		name := path.Base(u.Path)
		name = strings.TrimSuffix(name, path.Ext(name))
		if name == "" || name == "." || name == "/" {
			name = u.Host
		}
		c.AddItem(&model.CoverItem{
			ID:       fmt.Sprintf("%d", i),
			Title:    name,
			Location: raw,
			Kind:     model.ItemKindURL,
		})
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("%w in URL list", ErrNoImages)
	}
	c.UpdateStatus(model.CollectionStatusReady)
	return c, nil
}

// ReadURLList reads one URL per line. Blank lines and lines starting with
// # are ignored.
func ReadURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}

// ReadURLListFile reads a URL list from path
func ReadURLListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()
	return ReadURLList(f)
}
