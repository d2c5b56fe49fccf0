package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
)

type Service interface {
	Load(ctx context.Context, limit int) ([]pokedex.Record, error)
}

type LoadSuccessMsg struct {
	Records  []pokedex.Record
	Duration time.Duration
	Source   string
}

type LoadErrorMsg struct {
	Err      error
	Duration time.Duration
	Source   string
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type SpritePreviewSuccessMsg struct {
	RecordID int
	URL      string
	Preview  string
}

type SpritePreviewErrorMsg struct {
	RecordID int
	URL      string
	Err      error
}

// LoadCmd runs a full load without a deadline; the fetch completes or fails
// on its own.
func LoadCmd(service Service, limit int, source string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		records, err := service.Load(context.Background(), limit)
		if err != nil {
			return LoadErrorMsg{Err: err, Duration: time.Since(start), Source: source}
		}
		return LoadSuccessMsg{Records: records, Duration: time.Since(start), Source: source}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened sprite in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}

func SpritePreviewCmd(recordID int, url string, width int, renderFn func(string, int) (string, error)) tea.Cmd {
	return func() tea.Msg {
		if renderFn == nil {
			return SpritePreviewErrorMsg{RecordID: recordID, URL: url, Err: fmt.Errorf("sprite preview unavailable")}
		}
		preview, err := renderFn(url, width)
		if err != nil {
			return SpritePreviewErrorMsg{RecordID: recordID, URL: url, Err: err}
		}
		return SpritePreviewSuccessMsg{RecordID: recordID, URL: url, Preview: preview}
	}
}
