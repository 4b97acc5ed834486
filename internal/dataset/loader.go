package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/fr4nk3nst1ner/salarysim/internal/client"
	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

const (
	SourceCSV      = "csv"
	SourceHTML     = "html"
	SourcePostgres = "postgres"
)

// IsValidSource checks if the dataset source is supported
func IsValidSource(source string) bool {
	switch strings.ToLower(source) {
	case SourceCSV, SourceHTML, SourcePostgres:
		return true
	}
	return false
}

// LoadFile reads a CSV or HTML dataset from disk. When progress is set a
// byte progress bar is drawn on progressOut while the file is parsed.
func LoadFile(path, source string, progress bool, progressOut io.Writer, log logger.Logger) ([]models.SalaryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var size int64 = -1
	if progress {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat dataset: %w", err)
		}
		size = info.Size()
	}

	return parseSource(f, size, source, progress, progressOut, log)
}

// LoadURL downloads a CSV or HTML dataset over HTTP and parses it
func LoadURL(ctx context.Context, hc *http.Client, rawURL, source string, progress bool, progressOut io.Writer, log logger.Logger) ([]models.SalaryRecord, error) {
	dl, err := client.Fetch(ctx, hc, rawURL)
	if err != nil {
		return nil, err
	}
	defer dl.Body.Close()

	log.Info("downloading dataset", map[string]interface{}{"url": rawURL, "bytes": dl.Size})

	var raw io.Reader = dl.Body
	if progress {
		bar := newProgressBar(dl.Size, progressOut)
		defer bar.Finish()
		raw = bar.NewProxyReader(dl.Body)
	}

	body, err := dl.Decode(raw)
	if err != nil {
		return nil, err
	}
	return parse(body, source, log)
}

func parseSource(r io.Reader, size int64, source string, progress bool, progressOut io.Writer, log logger.Logger) ([]models.SalaryRecord, error) {
	if progress {
		bar := newProgressBar(size, progressOut)
		defer bar.Finish()
		r = bar.NewProxyReader(r)
	}
	return parse(r, source, log)
}

func parse(r io.Reader, source string, log logger.Logger) ([]models.SalaryRecord, error) {
	switch strings.ToLower(source) {
	case SourceCSV, "":
		return ParseCSV(r, log)
	case SourceHTML:
		return ParseHTML(r, log)
	default:
		return nil, fmt.Errorf("unsupported file source %q", source)
	}
}

// newProgressBar starts a byte counting bar. An unknown size (negative)
// draws a counter without a total.
func newProgressBar(size int64, out io.Writer) *pb.ProgressBar {
	bar := pb.Full.New(0)
	if size > 0 {
		bar.SetTotal(size)
	}
	bar.Set(pb.Bytes, true)
	if out != nil {
		bar.SetWriter(out)
	}
	return bar.Start()
}
