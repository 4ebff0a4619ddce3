package publisher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Publisher rebuilds one Notion page from the report images on disk.
type Publisher struct {
	Client  *Client
	PageID  string
	CDNBase string
	OutDir  string
}

// New wires a publisher. Token or page may be empty; Enabled reports that.
func New(token, pageID, cdnBase, outDir, proxyURL string) *Publisher {
	return &Publisher{
		Client:  NewClient(token, proxyURL),
		PageID:  pageID,
		CDNBase: strings.TrimRight(cdnBase, "/"),
		OutDir:  outDir,
	}
}

// Enabled reports whether publishing is configured.
func (p *Publisher) Enabled() bool {
	return p != nil && p.Client != nil && p.Client.Token != "" && p.PageID != ""
}

// Publish clears the page and appends, per instrument subdirectory of the
// output dir, a heading, an update line, and the newest chart image. The
// whole append goes out as a single batched call.
func (p *Publisher) Publish(ctx context.Context) error {
	entries, err := os.ReadDir(p.OutDir)
	if err != nil {
		return fmt.Errorf("scan output dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		log.Printf("[WARN] nothing to publish under %s", p.OutDir)
		return nil
	}
	log.Printf("[INFO] publishing %d instruments: %v", len(names), names)

	if err := p.Client.ClearPage(ctx, p.PageID); err != nil {
		log.Printf("[WARN] clear page failed: %v", err)
	}

	var blocks []map[string]interface{}
	for _, name := range names {
		file, mtime := latestChart(filepath.Join(p.OutDir, name))
		updated := "N/A"
		if file != "" {
			updated = mtime.Format("2006-01-02 15:04:05")
		}
		blocks = append(blocks, Heading(fmt.Sprintf("📈 %s LP Monitor", name)))
		blocks = append(blocks, Paragraph("🕒 Updated: "+updated))
		if file != "" {
			blocks = append(blocks, ExternalImage(fmt.Sprintf("%s/%s/%s", p.CDNBase, name, file)))
		}
	}

	if err := p.appendWithRetry(ctx, blocks, 3); err != nil {
		return err
	}
	log.Printf("[INFO] notion page updated")
	return nil
}

func (p *Publisher) appendWithRetry(ctx context.Context, blocks []map[string]interface{}, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := p.Client.AppendChildren(ctx, p.PageID, blocks); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] notion append failed (attempt %d/%d): %v, retrying in %v",
				i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// latestChart returns the newest *_lp_dual_zoom_*.png in dir by modification
// time, or "" when none exists.
func latestChart(dir string) (string, time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", time.Time{}
	}
	var name string
	var mtime time.Time
	for _, e := range entries {
		if e.IsDir() || !isChartFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if name == "" || info.ModTime().After(mtime) {
			name = e.Name()
			mtime = info.ModTime()
		}
	}
	return name, mtime
}

func isChartFile(name string) bool {
	return strings.Contains(name, "_lp_dual_zoom") && strings.HasSuffix(name, ".png")
}
