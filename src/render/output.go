package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the output name for a participant's trial chart.
func FileName(participant, trialID string) string {
	return fmt.Sprintf("trajectory_%s_%s.png", sanitize(participant), sanitize(trialID))
}

// sanitize keeps ids usable as a single path element.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '-'
		}
		return r
	}, s)
}

// WritePNG encodes img to outDir/FileName(participant, trialID), creating
// outDir as needed and replacing any existing file. It returns the path.
func WritePNG(outDir, participant, trialID string, img image.Image) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("png encode trial %s: %w", trialID, err)
	}
	outPath := filepath.Join(outDir, FileName(participant, trialID))
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}
