// Package stats persists monthly usage counters for serve mode.
package stats

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	statsFile = "stats.json"

	// writeInterval is how often the background writer flushes to disk;
	// writeThrottle bounds how often updates may request an extra flush.
	writeInterval = 5 * time.Minute
	writeThrottle = time.Minute
)

// MonthlyStats holds the usage counters for one month.
type MonthlyStats struct {
	Analyses        int            `json:"analyses"`
	Failures        int            `json:"failures"`
	TotalDurationMS int64          `json:"total_duration_ms"`
	Hosts           map[string]int `json:"hosts,omitempty"`
	LastUpdated     time.Time      `json:"last_updated"`
}

// HostCount pairs an analyzed host with how often it was requested.
type HostCount struct {
	Host  string `json:"host"`
	Count int    `json:"count"`
}

// Storage accumulates analysis counters keyed by month and persists
// them as JSON.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
}

// NewStorage creates a statistics storage backed by dataDir.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, statsFile),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

// load reads statistics from file.
func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to file via a temporary file and rename, so a
// crash mid-write never corrupts the stats file.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile) // Clean up temp file if rename fails
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// backgroundWriter flushes to disk periodically and whenever a write is
// requested, until Shutdown.
func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(writeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		}
	}
}

// requestWrite signals that a flush to disk is needed.
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// Write already pending.
	}
}

// getCurrentMonth returns the current month key in YYYY-MM format.
func getCurrentMonth() string {
	return time.Now().Format("2006-01")
}

// hostOf extracts the host to track for an analyzed URL. Local and
// unparseable URLs return "" and are not tracked.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return ""
	}
	return host
}

// RecordAnalysis counts one analysis request against the current month.
func (s *Storage) RecordAnalysis(rawURL string, duration time.Duration, failed bool) {
	month := getCurrentMonth()

	s.mutex.Lock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{Hosts: make(map[string]int)}
		s.stats[month] = stats
	}
	if stats.Hosts == nil {
		stats.Hosts = make(map[string]int)
	}

	stats.Analyses++
	if failed {
		stats.Failures++
	}
	stats.TotalDurationMS += duration.Milliseconds()
	if host := hostOf(rawURL); host != "" {
		stats.Hosts[host]++
	}
	stats.LastUpdated = time.Now()

	throttled := time.Since(s.lastWrite) <= writeThrottle
	if !throttled {
		s.lastWrite = time.Now()
	}
	s.mutex.Unlock()

	if !throttled {
		s.requestWrite()
	}
}

// copyStats deep-copies the counters so callers cannot mutate the
// stored host map.
func copyStats(stats *MonthlyStats) MonthlyStats {
	out := *stats
	out.Hosts = make(map[string]int, len(stats.Hosts))
	for host, count := range stats.Hosts {
		out.Hosts[host] = count
	}
	return out
}

// CurrentStats returns a copy of this month's counters.
func (s *Storage) CurrentStats() MonthlyStats {
	month := getCurrentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return copyStats(stats)
	}
	return MonthlyStats{}
}

// MonthlyFor returns the counters for a specific "YYYY-MM" month.
func (s *Storage) MonthlyFor(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return copyStats(stats), true
	}
	return MonthlyStats{}, false
}

// Months returns every month with counters, newest first.
func (s *Storage) Months() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// TopHosts returns the n most analyzed hosts this month, most frequent
// first; equal counts order alphabetically so the result is stable.
func (s *Storage) TopHosts(n int) []HostCount {
	current := s.CurrentStats()

	hosts := make([]HostCount, 0, len(current.Hosts))
	for host, count := range current.Hosts {
		hosts = append(hosts, HostCount{Host: host, Count: count})
	}

	sort.Slice(hosts, func(i, j int) bool {
		if hosts[i].Count != hosts[j].Count {
			return hosts[i].Count > hosts[j].Count
		}
		return hosts[i].Host < hosts[j].Host
	})

	if len(hosts) > n {
		hosts = hosts[:n]
	}
	return hosts
}

// Summary returns the statistics payload for the API. Host details are
// included only in dev mode.
func (s *Storage) Summary(devMode bool) map[string]interface{} {
	current := s.CurrentStats()

	errorRate := 0.0
	avgDuration := 0.0
	if current.Analyses > 0 {
		errorRate = float64(current.Failures) / float64(current.Analyses) * 100
		avgDuration = float64(current.TotalDurationMS) / float64(current.Analyses)
	}

	summary := map[string]interface{}{
		"month":               getCurrentMonth(),
		"total_analyses":      current.Analyses,
		"failures":            current.Failures,
		"error_rate":          errorRate,
		"average_duration_ms": avgDuration,
	}

	if devMode {
		summary["top_hosts"] = s.TopHosts(5)
		summary["months"] = s.Months()
	}

	return summary
}

// Cleanup drops every month except the current and previous one.
func (s *Storage) Cleanup() {
	now := time.Now()
	currentMonth := now.Format("2006-01")
	previousMonth := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	for key := range s.stats {
		if key != currentMonth && key != previousMonth {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// Shutdown stops the background writer and flushes once more.
func (s *Storage) Shutdown() error {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	return s.save()
}
