package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
)

// ErrInvalidDish is returned when a catalog file holds an incomplete or miscategorised dish
var ErrInvalidDish = errors.New("invalid dish")

// Loader reads catalog override files. Each source is a JSON array of dishes,
// gzip-compressed when its name ends in ".gz".
type Loader struct {
	client *http.Client
}

// loadResult holds the result of loading a single source
type loadResult struct {
	index  int
	dishes []models.Dish
	err    error
}

type opener func(ctx context.Context, source string) (io.ReadCloser, error)

// NewLoader creates a catalog loader
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load reads a mix of sources: http(s) URLs are downloaded, anything else is opened as a file
func (l *Loader) Load(ctx context.Context, sources []string) ([]models.Dish, error) {
	return l.load(ctx, sources, func(source string) opener {
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			return l.openURL
		}
		return openFile
	})
}

// LoadFromFiles reads every file concurrently and concatenates the dishes in argument order
func (l *Loader) LoadFromFiles(ctx context.Context, paths []string) ([]models.Dish, error) {
	return l.load(ctx, paths, func(string) opener { return openFile })
}

// LoadFromURLs downloads every URL concurrently and concatenates the dishes in argument order
func (l *Loader) LoadFromURLs(ctx context.Context, urls []string) ([]models.Dish, error) {
	return l.load(ctx, urls, func(string) opener { return l.openURL })
}

func (l *Loader) load(ctx context.Context, sources []string, pick func(source string) opener) ([]models.Dish, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no catalog sources provided")
	}

	resultChan := make(chan loadResult, len(sources))
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(index int, source string) {
			defer wg.Done()

			dishes, err := loadSource(ctx, source, pick(source))
			resultChan <- loadResult{index: index, dishes: dishes, err: err}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]loadResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	var dishes []models.Dish
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load catalog source %d: %w", i+1, result.err)
		}
		dishes = append(dishes, result.dishes...)
	}

	dishes = assignIDs(dishes)
	seen := make(map[string]bool, len(dishes))
	for _, d := range dishes {
		if seen[d.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDish, d.ID)
		}
		seen[d.ID] = true
	}

	return dishes, nil
}

func loadSource(ctx context.Context, source string, open opener) ([]models.Dish, error) {
	rc, err := open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if strings.HasSuffix(source, ".gz") {
		gzReader, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	return parseDishes(r)
}

func openFile(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (l *Loader) openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// parseDishes decodes a JSON array of dishes and checks each one
func parseDishes(r io.Reader) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := json.NewDecoder(r).Decode(&dishes); err != nil {
		return nil, fmt.Errorf("error decoding catalog: %w", err)
	}

	for i, d := range dishes {
		if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Description) == "" || strings.TrimSpace(d.Price) == "" {
			return nil, fmt.Errorf("%w: entry %d is missing a field", ErrInvalidDish, i+1)
		}
		if !d.Course.IsValid() {
			return nil, fmt.Errorf("%w: entry %d has course %q", ErrInvalidDish, i+1, d.Course)
		}
	}

	return dishes, nil
}

// assignIDs numbers dishes without an ID after the highest numeric ID present
func assignIDs(dishes []models.Dish) []models.Dish {
	next := 1
	for _, d := range dishes {
		if n, err := strconv.Atoi(d.ID); err == nil && n >= next {
			next = n + 1
		}
	}
	for i := range dishes {
		if dishes[i].ID == "" {
			dishes[i].ID = strconv.Itoa(next)
			next++
		}
	}
	return dishes
}
