package platform

// Package platform contains OS integration and collection sources: listing
// image directories, reading URL lists, resolving YouTube playlists into
// thumbnail collections via ytdlp, and opening files with the system viewer.
