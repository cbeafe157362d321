// Package ships resolves raw vehicle identifiers to short, human-readable
// ship names, with multiple backend options for the name table.
package ships

import (
	"bufio"
	"database/sql"
	"encoding/csv"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	refreshInterval = 15 * time.Minute // Refresh database name table every 15 minutes
	maxDisplayLen   = 20
)

// Resolver maps a raw vehicle/weapon identifier to a display name.
type Resolver interface {
	// DisplayName returns a short manufacturer-less name for the
	// identifier, or a generically formatted fallback. Empty input
	// yields an empty string.
	DisplayName(id string) string
	// Count returns the number of keys in the name table.
	Count() int
	// Start begins any background refresh operations.
	Start()
	// Stop stops any background operations.
	Stop()
}

// displayName implements the shared lookup logic: find the most specific
// substring key in the table, strip the manufacturer (first word) from the
// mapped name, or fall back to a title-cased form of the identifier.
func displayName(table map[string]string, id string) string {
	if id == "" {
		return ""
	}

	needle := strings.ToLower(strings.TrimSpace(id))

	// Longest matching key wins; ties break lexicographically so the
	// result never depends on map iteration order.
	best := ""
	for key := range table {
		if !strings.Contains(needle, key) {
			continue
		}
		if len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
		}
	}

	if best != "" {
		parts := strings.Fields(table[best])
		if len(parts) > 1 {
			return strings.Join(parts[1:], " ") // drop the manufacturer
		}
		return table[best]
	}

	// Generic fallback: title-case, underscores to spaces, bounded length.
	formatted := titleCase(strings.ReplaceAll(needle, "_", " "))
	if len(formatted) > maxDisplayLen {
		formatted = formatted[:maxDisplayLen-3] + "..."
	}
	return formatted
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// StaticResolver serves the built-in ship name table.
type StaticResolver struct{}

// NewStaticResolver creates a resolver backed by the built-in table.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{}
}

func (r *StaticResolver) DisplayName(id string) string { return displayName(shipNames, id) }
func (r *StaticResolver) Count() int                   { return len(shipNames) }
func (r *StaticResolver) Start()                       {}
func (r *StaticResolver) Stop()                        {}

// FileResolver loads ship name mappings from a CSV file and overlays them
// on the built-in table. Expected format: key,display_name
// (e.g. "cutlass,Drake Cutlass").
type FileResolver struct {
	filePath string
	table    map[string]string
	mu       sync.RWMutex
}

// NewFileResolver creates a resolver that loads mappings from a CSV file.
func NewFileResolver(filePath string) (*FileResolver, error) {
	r := &FileResolver{
		filePath: filePath,
		table:    make(map[string]string),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileResolver) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	table := make(map[string]string, len(shipNames))
	for k, v := range shipNames {
		table[k] = v
	}

	reader := csv.NewReader(bufio.NewReader(file))
	loaded := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(record[0]))
		name := strings.TrimSpace(record[1])
		if key == "" || name == "" || key == "key" {
			continue
		}
		table[key] = name
		loaded++
	}

	r.mu.Lock()
	r.table = table
	r.mu.Unlock()

	log.Printf("FileResolver: Loaded %d ship names from %s", loaded, r.filePath)
	return nil
}

func (r *FileResolver) DisplayName(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return displayName(r.table, id)
}

func (r *FileResolver) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}

func (r *FileResolver) Start() {}
func (r *FileResolver) Stop()  {}

// DatabaseResolver loads ship name mappings from a database table and
// refreshes them periodically.
// Uses a simple schema: SELECT key, display_name FROM ship_names
type DatabaseResolver struct {
	db         *sql.DB
	tableName  string
	table      map[string]string
	mu         sync.RWMutex
	done       chan struct{}
	wg         sync.WaitGroup
	lastUpdate time.Time
}

// NewDatabaseResolver creates a resolver that loads mappings from a
// database. tableName defaults to "ship_names" if empty.
func NewDatabaseResolver(db *sql.DB, tableName string) *DatabaseResolver {
	if tableName == "" {
		tableName = "ship_names"
	}
	return &DatabaseResolver{
		db:        db,
		tableName: tableName,
		table:     make(map[string]string),
		done:      make(chan struct{}),
	}
}

// Start loads the table immediately, then begins periodic refresh.
func (r *DatabaseResolver) Start() {
	r.refresh()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.refresh()
			case <-r.done:
				return
			}
		}
	}()
}

// Stop stops the resolver.
func (r *DatabaseResolver) Stop() {
	close(r.done)
	r.wg.Wait()
}

func (r *DatabaseResolver) DisplayName(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.table) == 0 {
		return displayName(shipNames, id)
	}
	return displayName(r.table, id)
}

func (r *DatabaseResolver) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}

// refresh loads the ship name table from the database.
func (r *DatabaseResolver) refresh() {
	start := time.Now()

	query := "SELECT key, display_name FROM " + r.tableName + " WHERE display_name IS NOT NULL AND display_name != ''"
	rows, err := r.db.Query(query)
	if err != nil {
		log.Printf("DatabaseResolver: Failed to query %s: %v", r.tableName, err)
		return
	}
	defer rows.Close()

	newTable := make(map[string]string, len(shipNames))
	for k, v := range shipNames {
		newTable[k] = v
	}
	for rows.Next() {
		var key, name string
		if err := rows.Scan(&key, &name); err != nil {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key != "" {
			newTable[key] = strings.TrimSpace(name)
		}
	}

	if err := rows.Err(); err != nil {
		log.Printf("DatabaseResolver: Row iteration error: %v", err)
		return
	}

	r.mu.Lock()
	r.table = newTable
	r.lastUpdate = time.Now()
	r.mu.Unlock()

	log.Printf("DatabaseResolver: Loaded %d ship names in %v", len(newTable), time.Since(start))
}

// Keys returns the sorted keys of the built-in table. Exposed for
// diagnostics.
func Keys() []string {
	keys := make([]string, 0, len(shipNames))
	for k := range shipNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
