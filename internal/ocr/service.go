package ocr

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/hamzafer/KjopsMinne/internal/receipt"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ProcessOne picks ONE uploaded receipt and runs it through OCR and the
// line parser. Every failure path marks the receipt OCR_FAILED and returns
// nil: a bad receipt must never stall the worker loop.
func (s *Service) ProcessOne(ctx context.Context) error {
	id, url, err := s.repo.FetchPending(ctx)
	if err != nil || url == "" {
		// No pending jobs is NOT an error
		return err
	}

	resp, err := http.Get(url)
	if err != nil {
		return s.fail(ctx, id, err.Error())
	}
	defer resp.Body.Close()

	log.Printf("OCR_FETCHED id=%s content-type=%s", id, resp.Header.Get("Content-Type"))

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.fail(ctx, id, err.Error())
	}

	if bytes.HasPrefix(bodyBytes, []byte("%PDF")) {
		return s.fail(ctx, id, "PDF files not supported")
	}

	tmpFile, err := os.CreateTemp("", "receipt-*.jpg")
	if err != nil {
		return s.fail(ctx, id, err.Error())
	}
	defer os.Remove(tmpFile.Name())

	written, err := io.Copy(tmpFile, bytes.NewReader(bodyBytes))
	if err != nil || written == 0 {
		return s.fail(ctx, id, "failed to write temp image")
	}

	_ = tmpFile.Close()

	log.Printf("OCR_PROCESSING id=%s file=%s bytes=%d", id, tmpFile.Name(), written)

	text, err := ExtractText(tmpFile.Name())
	if err != nil {
		return s.fail(ctx, id, err.Error())
	}

	parsed := receipt.ParseLines(strings.Split(text, "\n"))

	log.Printf("OCR_DONE id=%s merchant=%s items=%d", id, parsed.MerchantName, len(parsed.Items))

	return s.repo.SaveParsed(ctx, id, text, parsed)
}

func (s *Service) fail(ctx context.Context, id uuid.UUID, msg string) error {
	_ = s.repo.UpdateStatus(ctx, id, receipt.StatusFailed, &msg)
	return nil // do NOT block worker
}
