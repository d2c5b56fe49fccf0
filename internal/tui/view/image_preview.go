package view

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	spritePreviewRows   = 12
	maxSpriteDownload   = 2 * 1024 * 1024
	spriteFetchDeadline = 8 * time.Second
)

// InlinePreviewEnabled reports whether sprite previews should be rendered.
// POKEDEX_INLINE_IMAGE_PREVIEW=0 turns them off.
func InlinePreviewEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("POKEDEX_INLINE_IMAGE_PREVIEW"))) {
	case "0", "false", "off", "no":
		return false
	}
	return true
}

// RenderSpritePreview downloads a sprite and converts it to terminal output
// through chafa.
func RenderSpritePreview(spriteURL string, width int) (string, error) {
	if width < 30 {
		width = 40
	}

	chafaPath, err := exec.LookPath("chafa")
	if err != nil {
		return "", fmt.Errorf("chafa is not installed")
	}

	imageData, err := downloadSprite(&http.Client{Timeout: spriteFetchDeadline}, spriteURL)
	if err != nil {
		return "", err
	}

	kitty := SupportsKittyGraphics()
	cmd := exec.Command(chafaPath, chafaArgs(width, kitty, KittyPassthroughMode())...)
	cmd.Stdin = bytes.NewReader(imageData)
	output, err := cmd.CombinedOutput()
	raw := string(output)
	trimmed := strings.TrimSpace(raw)

	if err != nil {
		return "", fmt.Errorf("render sprite via chafa: %w: %s", err, trimmed)
	}
	if kitty && ContainsKittyGraphicsEscape(raw) {
		return strings.TrimRight(raw, "\r\n"), nil
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty output")
	}
	return trimmed, nil
}

func downloadSprite(client *http.Client, spriteURL string) ([]byte, error) {
	resp, err := client.Get(spriteURL)
	if err != nil {
		return nil, fmt.Errorf("download sprite: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download sprite: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSpriteDownload))
	if err != nil {
		return nil, fmt.Errorf("read sprite: %w", err)
	}
	return data, nil
}

func chafaArgs(width int, kitty bool, passthrough string) []string {
	size := fmt.Sprintf("%dx%d", width, spritePreviewRows)
	args := []string{"--size", size, "--view-size", size, "--align", "top,center"}
	if kitty {
		args = append(args, "--format", "kitty", "--passthrough", passthrough, "--relative", "on")
	} else {
		args = append(args, "--format", "symbols")
	}
	return append(args, "-")
}

func SupportsKittyGraphics() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	termProgram := strings.ToLower(strings.TrimSpace(os.Getenv("TERM_PROGRAM")))
	if strings.Contains(termProgram, "ghostty") || strings.Contains(termProgram, "kitty") {
		return true
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	return strings.Contains(term, "xterm-kitty") || strings.Contains(term, "ghostty")
}

func ContainsKittyGraphicsEscape(s string) bool {
	return strings.Contains(s, "\x1b_G")
}

// ClearKittyGraphicsSequence deletes every placed kitty image, wrapped for
// tmux passthrough when needed.
func ClearKittyGraphicsSequence() string {
	base := "\x1b_Ga=d,d=A\x1b\\"
	if os.Getenv("TMUX") == "" {
		return base
	}
	escaped := strings.ReplaceAll(base, "\x1b", "\x1b\x1b")
	return "\x1bPtmux;\x1b" + escaped + "\x1b\\"
}

func KittyPassthroughMode() string {
	if os.Getenv("TMUX") != "" {
		return "screen"
	}
	return "none"
}
