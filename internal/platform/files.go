package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ytget/coverflow/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"
)

// Android storage
const (
	AndroidPicturesDir = "/sdcard/Pictures"
)

// ImageExtensions are the file types the loader can decode
var (
	ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}
)

// ErrNoImages is returned when a directory holds no decodable images.
var ErrNoImages = errors.New("no images found")

// IsImageFile reports whether name has a supported image extension
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListImageFiles returns the image files directly inside dir, sorted by name.
// Hidden files are skipped.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !IsImageFile(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})
	return files, nil
}

// CollectionFromDir builds a collection of every image in dir
func CollectionFromDir(dir string) (*model.Collection, error) {
	files, err := ListImageFiles(dir)
	if err != nil {
		return nil, err
	}

	c := model.NewCollection(dir)
	c.Title = filepath.Base(dir)
	for _, path := range files {
		c.AddItem(&model.CoverItem{
			ID:       filepath.Base(path),
			Location: path,
			Kind:     model.ItemKindFile,
		})
	}
	c.UpdateStatus(model.CollectionStatusReady)
	return c, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomePicturesDir returns the standard Pictures directory for the user
func GetHomePicturesDir() (string, error) {
	// Fyne Android apps run as libdist.so
	isAndroid := runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so"

	if isAndroid {
		return AndroidPicturesDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Pictures"), nil
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case OSDarwin:
		cmd = exec.Command(OpenCommand, absPath)
	case OSWindows:
		cmd = exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath)
	case OSLinux:
		cmd = exec.Command(XDGOpenCommand, absPath)
	case OSAndroid:
		cmd = exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+absPath, "-t", "image/*")
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", absPath, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
