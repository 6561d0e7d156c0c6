// Package project loads an RPG Maker MV/MZ project's data directory into the
// typed model.
package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/rpg"
)

// Fixed file names inside the data directory.
const (
	MapInfosFile     = "MapInfos.json"
	SystemFile       = "System.json"
	CommonEventsFile = "CommonEvents.json"
)

// MapFileName returns the data file name of a map, e.g. "Map005.json".
func MapFileName(id int64) string {
	return fmt.Sprintf("Map%03d.json", id)
}

// Map is one loaded map and its events in file order.
type Map struct {
	ID     int64
	Name   string
	Events []rpg.Event
}

// Project is everything a scan needs, fully decoded before scanning begins.
type Project struct {
	Dir          string
	Names        *names.Tables
	Maps         []Map // ascending map id
	CommonEvents []rpg.CommonEvent
}

// Loader reads a data directory.
type Loader struct {
	Logger *slog.Logger
}

// NewLoader creates a Loader. A nil logger falls back to slog.Default().
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Logger: logger}
}

// Load reads MapInfos.json, System.json, CommonEvents.json and every map file
// listed in the map index.
//
// A missing data directory or a missing, unreadable or malformed required
// file is returned as a *SetupError. Map files are optional: a missing or
// malformed map is logged and skipped.
func (l *Loader) Load(dir string) (*Project, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &SetupError{Code: ErrCodeNoDataDir, Path: dir, Message: "data directory doesn't exist"}
	}
	if err != nil {
		return nil, &SetupError{Code: ErrCodeNoDataDir, Path: dir, Message: "error accessing data directory", Err: err}
	}
	if !info.IsDir() {
		return nil, &SetupError{Code: ErrCodeNoDataDir, Path: dir, Message: "not a directory"}
	}

	tables := names.New()
	decoder := rpg.NewDecoder(l.Logger)

	l.Logger.Info("populating map names", "file", MapInfosFile)
	mapInfos, err := readRequired(filepath.Join(dir, MapInfosFile))
	if err != nil {
		return nil, err
	}
	tables.LoadMapInfos(mapInfos)

	l.Logger.Info("populating variable and switch names", "file", SystemFile)
	systemPath := filepath.Join(dir, SystemFile)
	system, err := readRequired(systemPath)
	if err != nil {
		return nil, err
	}
	if err := tables.LoadSystem(system); err != nil {
		return nil, &SetupError{Code: ErrCodeBadSystem, Path: systemPath, Message: err.Error()}
	}

	commonEventsDoc, err := readRequired(filepath.Join(dir, CommonEventsFile))
	if err != nil {
		return nil, err
	}
	tables.LoadCommonEvents(commonEventsDoc)

	p := &Project{Dir: dir, Names: tables}

	l.Logger.Info("loading maps", "count", len(tables.MapIDs()))
	for _, id := range tables.MapIDs() {
		m, ok := l.loadMap(dir, id, tables.Map(id), decoder)
		if !ok {
			continue
		}
		p.Maps = append(p.Maps, m)
	}

	commonEventsDoc.ForEach(func(_, v gjson.Result) bool {
		if rpg.IsEmpty(v) {
			return true
		}
		if ce, ok := decoder.CommonEvent(v); ok {
			p.CommonEvents = append(p.CommonEvents, ce)
		}
		return true
	})

	l.Logger.Info("project loaded", "maps", len(p.Maps), "common_events", len(p.CommonEvents))
	return p, nil
}

func (l *Loader) loadMap(dir string, id int64, name string, decoder *rpg.Decoder) (Map, bool) {
	path := filepath.Join(dir, MapFileName(id))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		l.Logger.Warn("map listed in the map index has no data file", "map_id", id, "path", path)
		return Map{}, false
	}
	if err != nil {
		l.Logger.Error("unable to read map", "path", path, "error", err)
		return Map{}, false
	}
	if !gjson.ValidBytes(data) {
		l.Logger.Warn("map file is not valid JSON", "path", path)
		return Map{}, false
	}

	doc := gjson.ParseBytes(data)
	events := doc.Get("events")
	if !events.Exists() {
		l.Logger.Warn("map doesn't contain events", "path", path)
		return Map{}, false
	}

	m := Map{ID: id, Name: name}
	events.ForEach(func(_, v gjson.Result) bool {
		if rpg.IsEmpty(v) {
			return true
		}
		if ev, ok := decoder.Event(v); ok {
			m.Events = append(m.Events, ev)
		}
		return true
	})
	l.Logger.Debug("map loaded", "map_id", id, "events", len(m.Events))
	return m, true
}

// readRequired reads and parses a required project file.
func readRequired(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return gjson.Result{}, &SetupError{Code: ErrCodeFileNotFound, Path: path, Message: "required project file doesn't exist"}
	}
	if err != nil {
		return gjson.Result{}, &SetupError{Code: ErrCodeReadFailed, Path: path, Message: "unable to read project file", Err: err}
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &SetupError{Code: ErrCodeInvalidJSON, Path: path, Message: "project file is not valid JSON"}
	}
	return gjson.ParseBytes(data), nil
}
