package ocr

import (
	"os"
	"os/exec"
)

// ExtractText runs tesseract over an image file and returns the raw text.
// Norwegian receipts need the nor language pack; OCR_LANGUAGES overrides.
func ExtractText(filePath string) (string, error) {
	languages := os.Getenv("OCR_LANGUAGES")
	if languages == "" {
		languages = "nor+eng"
	}

	cmd := exec.Command("tesseract", filePath, "stdout", "-l", languages)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
